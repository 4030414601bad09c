package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/RC-FacilityService/internal/api/handlers"
	"github.com/m04kA/RC-FacilityService/internal/api/middleware"
	reserveSlot "github.com/m04kA/RC-FacilityService/internal/usecase/reserve_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgFacilityNotFound   = "объект не найден"
	msgUserNotFound       = "житель не найден"
	msgInvalidSlot        = "запрошенный интервал не соответствует ни одному слоту"
	msgCapacityExceeded   = "все места в слоте заняты"
	msgConflict           = "не удалось обработать бронирование из-за конкурентных запросов, попробуйте еще раз"
	msgPastDate           = "бронирование на прошедшую дату недоступно"
	msgInvalidInput       = "некорректные параметры бронирования"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrFacilityNotFound):
			h.logger.Warn("POST /reservations - Facility not found: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, reserveSlot.ErrUserNotFound):
			h.logger.Warn("POST /reservations - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, reserveSlot.ErrInvalidSlot):
			h.logger.Warn("POST /reservations - Invalid slot: facility_id=%d, date=%s, start=%s, end=%s",
				req.FacilityID, req.Date, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, reserveSlot.ErrCapacityExceeded):
			h.logger.Warn("POST /reservations - Capacity exceeded: facility_id=%d, date=%s, start=%s",
				req.FacilityID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		case errors.Is(err, reserveSlot.ErrConflict):
			h.logger.Warn("POST /reservations - Serialization conflict: facility_id=%d, date=%s, start=%s",
				req.FacilityID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		case errors.Is(err, reserveSlot.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Past date: facility_id=%d, date=%s", req.FacilityID, req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, facility_id=%d, error=%v",
				userID, req.FacilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d, facility_id=%d",
		result.ID, userID, req.FacilityID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
