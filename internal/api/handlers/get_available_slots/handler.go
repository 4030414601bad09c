package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/RC-FacilityService/internal/api/handlers"
	"github.com/m04kA/RC-FacilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/RC-FacilityService/internal/usecase/get_available_slots"
)

const (
	msgInvalidFacilityID = "некорректный ID объекта"
	msgMissingDate       = "не указана дата"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgFacilityNotFound  = "объект не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/available-slots - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /facilities/{id}/available-slots - Missing date: facility_id=%d", facilityID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/available-slots - Invalid date: facility_id=%d, date=%s",
			facilityID, rawDate)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		FacilityID: facilityID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/available-slots - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		default:
			h.logger.Error("GET /facilities/{id}/available-slots - Failed to get slots: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
