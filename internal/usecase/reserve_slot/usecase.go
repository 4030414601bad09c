package reserve_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/facility"
	slotRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/slot"
	"github.com/m04kA/RC-FacilityService/internal/integrations/notifyservice"
	userClient "github.com/m04kA/RC-FacilityService/internal/integrations/userservice"
	"github.com/m04kA/RC-FacilityService/pkg/simpletxmanager"
	"github.com/m04kA/RC-FacilityService/pkg/txmanager"
)

// UseCase use case бронирования слота.
// Занятость слота никогда не хранится: внутри сериализуемой транзакции
// активные бронирования дня блокируются (FOR UPDATE), пересчитываются и
// сравниваются с вместимостью слота. Две конкурентные заявки на последнее
// место не могут пройти одновременно.
type UseCase struct {
	facilityRepo    FacilityRepository
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	userClient      UserServiceClient
	notifyClient    NotifyServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	facilityRepo FacilityRepository,
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	userClient UserServiceClient,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		facilityRepo:    facilityRepo,
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		userClient:      userClient,
		notifyClient:    notifyClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case бронирования слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: user=%d, facility=%d, date=%s, time=%s-%s",
		req.UserID, req.FacilityID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("ReserveSlot: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем объект
	facility, err := uc.facilityRepo.GetFacilityByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("ReserveSlot: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("ReserveSlot: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %w", ErrInternal, err)
	}

	// 4. Получаем профиль жителя. При недоступности UserService бронь
	// создается без корпуса (graceful degradation).
	var userBuilding *string
	resident, err := uc.userClient.GetResidentWithGracefulDegradation(ctx, req.UserID)
	switch {
	case err == nil:
		userBuilding = &resident.Building
	case errors.Is(err, userClient.ErrResidentNotFound):
		uc.logger.Warn("ReserveSlot: user id=%d not found", req.UserID)
		return nil, ErrUserNotFound
	case errors.Is(err, userClient.ErrServiceDegraded):
		uc.logger.Warn("ReserveSlot: creating reservation without building for user id=%d", req.UserID)
	default:
		uc.logger.Error("ReserveSlot: failed to get resident id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get resident: %w", ErrInternal, err)
	}

	var reservation *domain.FacilityReservation

	// 5. Проверка слота и вместимости в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Запрошенный интервал должен точно совпадать со слотом
		slot, err := uc.slotRepo.GetByWindow(txCtx, req.FacilityID, req.Date,
			req.StartTime.String(), req.EndTime.String())
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("ReserveSlot: no slot %s %s-%s at facility id=%d",
					req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.FacilityID)
				return ErrInvalidSlot
			}
			uc.logger.Error("ReserveSlot: failed to get slot: %v", err)
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}

		// 5.2. Активные бронирования дня с блокировкой (FOR UPDATE)
		reservations, err := uc.reservationRepo.GetActiveByFacilityAndDate(txCtx, req.FacilityID, req.Date)
		if err != nil {
			uc.logger.Error("ReserveSlot: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		// 5.3. Считаем занятость и сравниваем с вместимостью
		occupied := domain.CountOverlappingReservations(slot.StartTime, slot.EndTime, req.Date, reservations)
		if occupied >= slot.Capacity {
			uc.logger.Warn("ReserveSlot: slot id=%d is full, %d/%d spots taken",
				slot.ID, occupied, slot.Capacity)
			return ErrCapacityExceeded
		}

		uc.logger.Info("ReserveSlot: slot id=%d available, %d/%d spots taken",
			slot.ID, occupied, slot.Capacity)

		// 5.4. Создаем бронь в статусе pending
		created, err := uc.reservationRepo.Create(txCtx, &domain.FacilityReservation{
			FacilityID:      req.FacilityID,
			UserID:          req.UserID,
			UserBuilding:    userBuilding,
			ReservationDate: req.Date,
			StartTime:       slot.StartTime,
			EndTime:         slot.EndTime,
			Status:          domain.StatusPending,
		})
		if err != nil {
			uc.logger.Error("ReserveSlot: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		reservation = created
		return nil
	})

	if err != nil {
		// Исчерпанные повторы сериализуемой транзакции - транзиентный
		// конфликт конкурентных заявок, а не внутренняя ошибка
		if errors.Is(err, txmanager.ErrSerializationConflict) || errors.Is(err, simpletxmanager.ErrSerializationConflict) {
			uc.logger.Warn("ReserveSlot: serialization conflict after retries: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	uc.logger.Info("ReserveSlot: reservation id=%d created for user=%d", reservation.ID, req.UserID)

	// 6. Уведомление отправляется после коммита и не влияет на результат
	uc.notifyClient.SendEventBestEffort(ctx, notifyservice.Event{
		Type:          notifyservice.EventReservationCreated,
		UserID:        reservation.UserID,
		ReservationID: reservation.ID,
		FacilityName:  facility.Name,
		Date:          reservation.ReservationDate.Format(domain.DateFormat),
		StartTime:     reservation.StartTime.String(),
		EndTime:       reservation.EndTime.String(),
	})

	return &Response{
		ID:              reservation.ID,
		FacilityID:      reservation.FacilityID,
		UserID:          reservation.UserID,
		UserBuilding:    reservation.UserBuilding,
		ReservationDate: reservation.ReservationDate,
		StartTime:       reservation.StartTime,
		EndTime:         reservation.EndTime,
		Status:          reservation.Status,
		CreatedAt:       reservation.CreatedAt,
		UpdatedAt:       reservation.UpdatedAt,
	}, nil
}
