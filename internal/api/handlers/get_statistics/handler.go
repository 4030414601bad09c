package get_statistics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RC-FacilityService/internal/api/handlers"
	"github.com/m04kA/RC-FacilityService/internal/api/middleware"
	"github.com/m04kA/RC-FacilityService/internal/service/statistics"
)

const (
	msgInvalidFacilityID = "некорректный ID объекта"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
	msgFacilityNotFound  = "объект не найден"
	msgInvalidQuery      = "некорректные параметры запроса"
)

type Handler struct {
	service StatisticsService
	logger  Logger
}

func NewHandler(service StatisticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/statistics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/statistics - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /facilities/{id}/statistics - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := ParseQuery(r.URL.Query(), facilityID, userID)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/statistics - Invalid query: facility_id=%d, error=%v",
			facilityID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetFacilityStatistics(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, statistics.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/statistics - Invalid period: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, statistics.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/statistics - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, statistics.ErrAccessDenied):
			h.logger.Warn("GET /facilities/{id}/statistics - Access denied: facility_id=%d, user_id=%d",
				facilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /facilities/{id}/statistics - Failed to get statistics: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
