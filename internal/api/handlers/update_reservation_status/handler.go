package update_reservation_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RC-FacilityService/internal/api/handlers"
	"github.com/m04kA/RC-FacilityService/internal/api/middleware"
	"github.com/m04kA/RC-FacilityService/internal/domain"
	"github.com/m04kA/RC-FacilityService/internal/service/reservations"
	"github.com/m04kA/RC-FacilityService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStatus        = "допустимые статусы: agree, reject"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgForbidden            = "доступ запрещен"
	msgNotFound             = "бронирование не найдено"
	msgInvalidTransition    = "недопустимый переход статуса"
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

// Handle PATCH /api/v1/reservations/{reservationId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var result *models.ReservationResponse
	switch domain.ReservationStatus(req.Status) {
	case domain.StatusAgree:
		result, err = h.service.Approve(r.Context(), reservationID, userID)
	case domain.StatusReject:
		result, err = h.service.Reject(r.Context(), reservationID, userID)
	default:
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid status: reservation_id=%d, status=%s",
			reservationID, req.Status)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/status - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/status - Access denied: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid transition: reservation_id=%d, status=%s",
				reservationID, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, reservations.ErrStatusConflict):
			h.logger.Warn("PATCH /reservations/{id}/status - Concurrent status change: reservation_id=%d",
				reservationID)
			handlers.RespondError(w, http.StatusConflict, msgStatusConflict)

		default:
			h.logger.Error("PATCH /reservations/{id}/status - Failed to update status: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/status - Status updated: reservation_id=%d, status=%s",
		reservationID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
