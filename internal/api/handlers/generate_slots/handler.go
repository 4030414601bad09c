package generate_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RC-FacilityService/internal/api/handlers"
	"github.com/m04kA/RC-FacilityService/internal/api/middleware"
	generateSlots "github.com/m04kA/RC-FacilityService/internal/usecase/generate_slots"
)

const (
	msgInvalidScheduleID  = "некорректный ID расписания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "расписание не найдено"
	msgHorizonTooLong     = "горизонт генерации превышает допустимый"
	msgSlotsReserved      = "устаревшие слоты имеют активные бронирования"
	msgInvalidInput       = "некорректные параметры генерации"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	access  AccessChecker
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, access AccessChecker, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		access:  access,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedules/{scheduleId}/generate-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	scheduleID, err := strconv.ParseInt(vars["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /schedules/{id}/generate-slots - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedules/{id}/generate-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /schedules/{id}/generate-slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Генерация слотов доступна только администратору
	if err := h.access.CheckAdmin(r.Context(), userID); err != nil {
		h.logger.Warn("POST /schedules/{id}/generate-slots - Access denied: schedule_id=%d, user_id=%d",
			scheduleID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(scheduleID)
	if err != nil {
		h.logger.Warn("POST /schedules/{id}/generate-slots - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrScheduleNotFound):
			h.logger.Warn("POST /schedules/{id}/generate-slots - Schedule not found: schedule_id=%d", scheduleID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, generateSlots.ErrHorizonTooLong):
			h.logger.Warn("POST /schedules/{id}/generate-slots - Horizon too long: schedule_id=%d", scheduleID)
			handlers.RespondBadRequest(w, msgHorizonTooLong)

		case errors.Is(err, generateSlots.ErrSlotHasReservations):
			h.logger.Warn("POST /schedules/{id}/generate-slots - Stale slots have reservations: schedule_id=%d",
				scheduleID)
			handlers.RespondError(w, http.StatusConflict, msgSlotsReserved)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /schedules/{id}/generate-slots - Invalid input: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /schedules/{id}/generate-slots - Failed to generate slots: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedules/{id}/generate-slots - Slots generated: schedule_id=%d, created=%d, deleted=%d, total=%d",
		scheduleID, result.Created, result.Deleted, result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
