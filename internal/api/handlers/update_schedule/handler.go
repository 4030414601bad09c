package update_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RC-FacilityService/internal/api/handlers"
	"github.com/m04kA/RC-FacilityService/internal/api/middleware"
	updateSchedule "github.com/m04kA/RC-FacilityService/internal/usecase/update_schedule"
)

const (
	msgInvalidScheduleID  = "некорректный ID расписания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "расписание не найдено"
	msgSlotsReserved      = "изменение затрагивает слоты с активными бронированиями"
	msgInvalidInput       = "некорректные параметры расписания"
)

type Handler struct {
	useCase UpdateScheduleUseCase
	access  AccessChecker
	logger  Logger
}

func NewHandler(useCase UpdateScheduleUseCase, access AccessChecker, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		access:  access,
		logger:  logger,
	}
}

// Handle PUT /api/v1/schedules/{scheduleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	scheduleID, err := strconv.ParseInt(vars["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /schedules/{id} - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedules/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /schedules/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Управление расписаниями доступно только администратору
	if err := h.access.CheckAdmin(r.Context(), userID); err != nil {
		h.logger.Warn("PUT /schedules/{id} - Access denied: schedule_id=%d, user_id=%d", scheduleID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(scheduleID)
	if err != nil {
		h.logger.Warn("PUT /schedules/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateSchedule.ErrScheduleNotFound):
			h.logger.Warn("PUT /schedules/{id} - Schedule not found: schedule_id=%d", scheduleID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateSchedule.ErrSlotHasReservations):
			h.logger.Warn("PUT /schedules/{id} - Affected slots have reservations: schedule_id=%d", scheduleID)
			handlers.RespondError(w, http.StatusConflict, msgSlotsReserved)

		case errors.Is(err, updateSchedule.ErrInvalidInput):
			h.logger.Warn("PUT /schedules/{id} - Invalid input: schedule_id=%d, error=%v", scheduleID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /schedules/{id} - Failed to update schedule: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedules/{id} - Schedule updated: schedule_id=%d, created=%d, deleted=%d",
		scheduleID, result.SlotsCreated, result.SlotsDeleted)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
