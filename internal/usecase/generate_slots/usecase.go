package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	scheduleRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/schedule"
)

// UseCase use case генерации слотов расписания.
// Генерация идемпотентна: повторный вызов на том же горизонте не создает
// дубликатов и не трогает слоты, совпадающие с ожидаемым набором.
type UseCase struct {
	scheduleRepo       ScheduleRepository
	slotRepo           SlotRepository
	reservationRepo    ReservationRepository
	txManager          TransactionManager
	maxHorizonDays     int
	keepShortFinalSlot bool
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	maxHorizonDays int,
	keepShortFinalSlot bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:       scheduleRepo,
		slotRepo:           slotRepo,
		reservationRepo:    reservationRepo,
		txManager:          txManager,
		maxHorizonDays:     maxHorizonDays,
		keepShortFinalSlot: keepShortFinalSlot,
		logger:             logger,
	}
}

// Execute выполняет генерацию слотов расписания на горизонте [FromDate, ToDate].
// Недостающие слоты создаются, устаревшие (не совпадающие с текущими
// параметрами расписания) удаляются. Устаревший слот с активными
// бронированиями удалить нельзя - в этом случае генерация отклоняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: schedule=%d, from=%s, to=%s",
		req.ScheduleID, req.FromDate.Format(domain.DateFormat), req.ToDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxHorizonDays); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем расписание
	schedule, err := uc.scheduleRepo.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("GenerateSlots: schedule id=%d not found", req.ScheduleID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get schedule id=%d: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
	}

	// 3. Разворачиваем расписание в ожидаемый набор слотов
	expected, err := domain.ExpandScheduleSlots(schedule, req.FromDate, req.ToDate, uc.keepShortFinalSlot)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to expand schedule id=%d: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: failed to expand schedule: %w", ErrInternal, err)
	}

	var resp *Response

	// 4. Сверяем ожидаемый набор с существующим в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Существующие слоты на горизонте с блокировкой (FOR UPDATE)
		existing, err := uc.slotRepo.GetByScheduleInRange(txCtx, req.ScheduleID, req.FromDate, req.ToDate)
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to get existing slots: %v", err)
			return fmt.Errorf("%w: failed to get existing slots: %w", ErrInternal, err)
		}

		// 4.2. Слоты, совпадающие по ключу и параметрам, остаются как есть
		kept := make(map[domain.SlotKey]struct{}, len(existing))
		stale := make([]*domain.TimeSlot, 0)

		expectedByKey := make(map[domain.SlotKey]domain.TimeSlot, len(expected))
		for _, s := range expected {
			expectedByKey[s.Key()] = s
		}

		for _, ex := range existing {
			want, ok := expectedByKey[ex.Key()]
			if ok && want.EndTime == ex.EndTime && want.Capacity == ex.Capacity {
				kept[ex.Key()] = struct{}{}
				continue
			}
			stale = append(stale, ex)
		}

		// 4.3. Устаревшие слоты с активными бронированиями удалять нельзя
		if err := uc.checkStaleSlots(txCtx, stale); err != nil {
			return err
		}

		staleIDs := make([]int64, 0, len(stale))
		for _, s := range stale {
			staleIDs = append(staleIDs, s.ID)
		}

		if err := uc.slotRepo.DeleteByIDs(txCtx, staleIDs); err != nil {
			uc.logger.Error("GenerateSlots: failed to delete stale slots: %v", err)
			return fmt.Errorf("%w: failed to delete stale slots: %w", ErrInternal, err)
		}

		// 4.4. Вставляем недостающие слоты
		toInsert := make([]*domain.TimeSlot, 0, len(expected))
		for i := range expected {
			if _, ok := kept[expected[i].Key()]; ok {
				continue
			}
			toInsert = append(toInsert, &expected[i])
		}

		if err := uc.slotRepo.CreateBatch(txCtx, toInsert); err != nil {
			uc.logger.Error("GenerateSlots: failed to create slots: %v", err)
			return fmt.Errorf("%w: failed to create slots: %w", ErrInternal, err)
		}

		resp = &Response{
			ScheduleID: req.ScheduleID,
			Created:    len(toInsert),
			Deleted:    len(staleIDs),
			Total:      len(expected),
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("GenerateSlots: schedule=%d done, created=%d, deleted=%d, total=%d",
		req.ScheduleID, resp.Created, resp.Deleted, resp.Total)

	return resp, nil
}

// checkStaleSlots проверяет, что ни один устаревший слот не занят
// активными бронированиями
func (uc *UseCase) checkStaleSlots(ctx context.Context, stale []*domain.TimeSlot) error {
	for _, s := range stale {
		reservations, err := uc.reservationRepo.GetActiveByFacilityAndDate(ctx, s.FacilityID, s.Date)
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to get reservations for slot id=%d: %v", s.ID, err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		if count := domain.CountOverlappingReservations(s.StartTime, s.EndTime, s.Date, reservations); count > 0 {
			uc.logger.Warn("GenerateSlots: stale slot id=%d has %d active reservations", s.ID, count)
			return fmt.Errorf("%w: slot %s %s-%s has %d active reservations",
				ErrSlotHasReservations, s.Date.Format(domain.DateFormat), s.StartTime, s.EndTime, count)
		}
	}

	return nil
}
