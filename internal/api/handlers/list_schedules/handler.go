package list_schedules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RC-FacilityService/internal/api/handlers"
	"github.com/m04kA/RC-FacilityService/internal/service/registry"
)

const (
	msgInvalidFacilityID   = "некорректный ID объекта"
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgFacilityNotFound    = "объект не найден"
	msgInstructorNotFound  = "инструктор не найден"
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

// Handle GET /api/v1/facilities/{facilityId}/schedules?instructorId={id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/schedules - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	// При указании instructorId возвращаем расписания конкретного инструктора
	if rawInstructorID := r.URL.Query().Get("instructorId"); rawInstructorID != "" {
		instructorID, err := strconv.ParseInt(rawInstructorID, 10, 64)
		if err != nil {
			h.logger.Warn("GET /facilities/{id}/schedules - Invalid instructor ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInstructorID)
			return
		}

		result, err := h.service.ListInstructorSchedules(r.Context(), instructorID)
		if err != nil {
			switch {
			case errors.Is(err, registry.ErrInstructorNotFound):
				h.logger.Warn("GET /facilities/{id}/schedules - Instructor not found: instructor_id=%d", instructorID)
				handlers.RespondNotFound(w, msgInstructorNotFound)

			default:
				h.logger.Error("GET /facilities/{id}/schedules - Failed to list instructor schedules: instructor_id=%d, error=%v",
					instructorID, err)
				handlers.RespondInternalError(w)
			}
			return
		}

		handlers.RespondJSON(w, http.StatusOK, result)
		return
	}

	result, err := h.service.ListFacilitySchedules(r.Context(), facilityID)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/schedules - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		default:
			h.logger.Error("GET /facilities/{id}/schedules - Failed to list schedules: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
