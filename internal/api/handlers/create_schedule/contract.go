package create_schedule

import (
	"context"

	createSchedule "github.com/m04kA/RC-FacilityService/internal/usecase/create_schedule"
)

type CreateScheduleUseCase interface {
	Execute(ctx context.Context, req *createSchedule.Request) (*createSchedule.Response, error)
}

type AccessChecker interface {
	CheckAdmin(ctx context.Context, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
