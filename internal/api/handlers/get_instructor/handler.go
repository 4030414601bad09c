package get_instructor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RC-FacilityService/internal/api/handlers"
	"github.com/m04kA/RC-FacilityService/internal/service/registry"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgNotFound            = "инструктор не найден"
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

// Handle GET /api/v1/instructors/{instructorId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /instructors/{id} - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	instructor, err := h.service.GetInstructor(r.Context(), instructorID)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrInstructorNotFound):
			h.logger.Warn("GET /instructors/{id} - Instructor not found: instructor_id=%d", instructorID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /instructors/{id} - Failed to get instructor: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, instructor)
}
