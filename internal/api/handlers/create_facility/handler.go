package create_facility

import (
	"errors"
	"net/http"

	"github.com/m04kA/RC-FacilityService/internal/api/handlers"
	"github.com/m04kA/RC-FacilityService/internal/api/middleware"
	"github.com/m04kA/RC-FacilityService/internal/service/registry"
	"github.com/m04kA/RC-FacilityService/internal/service/registry/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/facilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateFacilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /facilities - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	facility, err := h.service.CreateFacility(r.Context(), &models.CreateFacilityRequest{
		UserID:      userID,
		ApartmentID: req.ApartmentID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrAccessDenied):
			h.logger.Warn("POST /facilities - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, registry.ErrInvalidInput):
			h.logger.Warn("POST /facilities - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /facilities - Failed to create facility: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities - Facility created: facility_id=%d, user_id=%d", facility.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, facility)
}
