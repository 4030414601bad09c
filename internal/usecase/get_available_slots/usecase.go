package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/facility"
)

// UseCase use case получения слотов объекта на дату.
// Занятость вычисляется на каждый запрос по журналу активных бронирований -
// хранимых счетчиков занятости нет.
type UseCase struct {
	facilityRepo    FacilityRepository
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	facilityRepo FacilityRepository,
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		facilityRepo:    facilityRepo,
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: facility=%d, date=%s",
		req.FacilityID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.FacilityID <= 0 {
		return nil, fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Проверяем существование объекта
	if _, err := uc.facilityRepo.GetFacilityByID(ctx, req.FacilityID); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("GetAvailableSlots: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %w", ErrInternal, err)
	}

	// 3. Слоты объекта на дату
	slots, err := uc.slotRepo.GetByFacilityAndDate(ctx, req.FacilityID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get slots: %w", ErrInternal, err)
	}

	// 4. Активные бронирования дня
	reservations, err := uc.reservationRepo.GetActiveByFacilityAndDate(ctx, req.FacilityID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
	}

	// 5. Вычисляем занятость каждого слота
	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		occupied := domain.CountOverlappingReservations(s.StartTime, s.EndTime, req.Date, reservations)

		available := s.Capacity - occupied
		if available < 0 {
			available = 0
		}

		result = append(result, Slot{
			ID:             s.ID,
			ScheduleID:     s.ScheduleID,
			InstructorID:   s.InstructorID,
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
			TotalSpots:     s.Capacity,
			AvailableSpots: available,
		})
	}

	uc.logger.Info("GetAvailableSlots: facility=%d, date=%s, slots=%d",
		req.FacilityID, req.Date.Format(domain.DateFormat), len(result))

	return &Response{
		FacilityID: req.FacilityID,
		Date:       req.Date,
		Slots:      result,
	}, nil
}
