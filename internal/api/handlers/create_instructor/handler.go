package create_instructor

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
	msgFacilityNotFound   = "объект не найден"
	msgInvalidInput       = "некорректные данные инструктора"
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

// Handle POST /api/v1/facilities/{facilityId}/instructors
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /facilities/{id}/instructors - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	var req CreateInstructorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities/{id}/instructors - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /facilities/{id}/instructors - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	instructor, err := h.service.CreateInstructor(r.Context(), &models.CreateInstructorRequest{
		UserID:      userID,
		FacilityID:  facilityID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrFacilityNotFound):
			h.logger.Warn("POST /facilities/{id}/instructors - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, registry.ErrAccessDenied):
			h.logger.Warn("POST /facilities/{id}/instructors - Access denied: facility_id=%d, user_id=%d",
				facilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, registry.ErrInvalidInput):
			h.logger.Warn("POST /facilities/{id}/instructors - Invalid input: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /facilities/{id}/instructors - Failed to create instructor: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities/{id}/instructors - Instructor created: instructor_id=%d, facility_id=%d",
		instructor.ID, facilityID)
	handlers.RespondJSON(w, http.StatusCreated, instructor)
}
