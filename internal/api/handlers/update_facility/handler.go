package update_facility

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RC-FacilityService/internal/api/handlers"
	"github.com/m04kA/RC-FacilityService/internal/api/middleware"
	"github.com/m04kA/RC-FacilityService/internal/service/registry"
	"github.com/m04kA/RC-FacilityService/internal/service/registry/models"
)

const (
	msgInvalidFacilityID  = "некорректный ID объекта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "объект не найден"
	msgInvalidInput       = "некорректные данные объекта"
)

type Handler struct {
	service RegistryService
	logger  Logger
}

func NewHandler(service RegistryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/facilities/{facilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /facilities/{id} - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	var req UpdateFacilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /facilities/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /facilities/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	facility, err := h.service.UpdateFacility(r.Context(), facilityID, &models.UpdateFacilityRequest{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrFacilityNotFound):
			h.logger.Warn("PUT /facilities/{id} - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, registry.ErrAccessDenied):
			h.logger.Warn("PUT /facilities/{id} - Access denied: facility_id=%d, user_id=%d", facilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, registry.ErrInvalidInput):
			h.logger.Warn("PUT /facilities/{id} - Invalid input: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /facilities/{id} - Failed to update facility: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /facilities/{id} - Facility updated: facility_id=%d, user_id=%d", facilityID, userID)
	handlers.RespondJSON(w, http.StatusOK, facility)
}
