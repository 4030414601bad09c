package update_schedule

import (
	"context"

	updateSchedule "github.com/m04kA/RC-FacilityService/internal/usecase/update_schedule"
)

type UpdateScheduleUseCase interface {
	Execute(ctx context.Context, req *updateSchedule.Request) (*updateSchedule.Response, error)
}

type AccessChecker interface {
	CheckAdmin(ctx context.Context, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
