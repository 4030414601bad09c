package create_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/RC-FacilityService/internal/api/handlers"
	"github.com/m04kA/RC-FacilityService/internal/api/middleware"
	createSchedule "github.com/m04kA/RC-FacilityService/internal/usecase/create_schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgFacilityNotFound   = "объект не найден"
	msgInstructorNotFound = "инструктор не найден"
	msgWrongFacility      = "инструктор относится к другому объекту"
	msgInvalidInput       = "некорректные параметры расписания"
)

type Handler struct {
	useCase CreateScheduleUseCase
	access  AccessChecker
	logger  Logger
}

func NewHandler(useCase CreateScheduleUseCase, access AccessChecker, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		access:  access,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /schedules - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Управление расписаниями доступно только администратору
	if err := h.access.CheckAdmin(r.Context(), userID); err != nil {
		h.logger.Warn("POST /schedules - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /schedules - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSchedule.ErrFacilityNotFound):
			h.logger.Warn("POST /schedules - Facility not found: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, createSchedule.ErrInstructorNotFound):
			h.logger.Warn("POST /schedules - Instructor not found: instructor_id=%d", req.InstructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, createSchedule.ErrInstructorWrongFacility):
			h.logger.Warn("POST /schedules - Instructor belongs to another facility: instructor_id=%d, facility_id=%d",
				req.InstructorID, req.FacilityID)
			handlers.RespondBadRequest(w, msgWrongFacility)

		case errors.Is(err, createSchedule.ErrInvalidInput):
			h.logger.Warn("POST /schedules - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /schedules - Failed to create schedule: instructor_id=%d, error=%v",
				req.InstructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedules - Schedule created: schedule_id=%d, slots_generated=%d",
		result.ID, result.SlotsGenerated)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
