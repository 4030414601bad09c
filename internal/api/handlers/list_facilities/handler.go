package list_facilities

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RC-FacilityService/internal/api/handlers"
)

const (
	msgInvalidApartmentID = "некорректный ID жилого комплекса"
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

// Handle GET /api/v1/apartments/{apartmentId}/facilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	apartmentID, err := strconv.ParseInt(vars["apartmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /apartments/{id}/facilities - Invalid apartment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidApartmentID)
		return
	}

	facilities, err := h.service.ListFacilities(r.Context(), apartmentID)
	if err != nil {
		h.logger.Error("GET /apartments/{id}/facilities - Failed to list facilities: apartment_id=%d, error=%v",
			apartmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, facilities)
}
