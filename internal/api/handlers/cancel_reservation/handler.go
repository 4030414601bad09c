package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RC-FacilityService/internal/api/handlers"
	"github.com/m04kA/RC-FacilityService/internal/api/middleware"
	"github.com/m04kA/RC-FacilityService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgForbidden            = "доступ запрещен"
	msgNotFound             = "бронирование не найдено"
	msgCannotCancel         = "бронирование нельзя отменить в текущем статусе"
	msgInvalidCancelReason  = "некорректная причина отмены"
	msgStatusConflict       = "статус бронирования был изменен, повторите запрос"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Cancel(r.Context(), reservationID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Access denied: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrCannotCancel):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Cannot cancel: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, reservations.ErrInvalidCancelReason):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid cancel reason: reservation_id=%d, reason_type=%s",
				reservationID, req.ReasonType)
			handlers.RespondBadRequest(w, msgInvalidCancelReason)

		case errors.Is(err, reservations.ErrStatusConflict):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Concurrent status change: reservation_id=%d",
				reservationID)
			handlers.RespondError(w, http.StatusConflict, msgStatusConflict)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed to cancel reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Reservation cancelled: reservation_id=%d, user_id=%d, reason_type=%s",
		reservationID, userID, req.ReasonType)
	handlers.RespondJSON(w, http.StatusOK, result)
}
