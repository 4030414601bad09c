package update_schedule

import (
	"context"
	"errors"
	"fmt"

	scheduleRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/schedule"
	"github.com/m04kA/RC-FacilityService/internal/usecase/generate_slots"
)

// UseCase use case изменения расписания инструктора.
// После изменения будущие слоты регенерируются: не совпадающие с новыми
// параметрами удаляются, недостающие создаются. Регенерация покрывает весь
// материализованный горизонт расписания, а не только горизонт по умолчанию.
// Если затронутый слот занят активными бронированиями, изменение
// откатывается целиком.
type UseCase struct {
	scheduleRepo       ScheduleRepository
	slotRepo           SlotRepository
	slotGenerator      SlotGenerator
	txManager          TransactionManager
	timeProvider       TimeProvider
	defaultHorizonDays int
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	slotRepo SlotRepository,
	slotGenerator SlotGenerator,
	txManager TransactionManager,
	defaultHorizonDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:       scheduleRepo,
		slotRepo:           slotRepo,
		slotGenerator:      slotGenerator,
		txManager:          txManager,
		timeProvider:       &RealTimeProvider{},
		defaultHorizonDays: defaultHorizonDays,
		logger:             logger,
	}
}

// Execute выполняет use case изменения расписания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateSchedule: schedule=%d, day=%s, window=%s-%s",
		req.ScheduleID, req.DayOfWeek, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateSchedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее расписание
	schedule, err := uc.scheduleRepo.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("UpdateSchedule: schedule id=%d not found", req.ScheduleID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("UpdateSchedule: failed to get schedule id=%d: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
	}

	schedule.DayOfWeek = req.DayOfWeek
	schedule.StartTime = req.StartTime
	schedule.EndTime = req.EndTime
	schedule.SlotDurationMinutes = req.SlotDurationMinutes
	schedule.Capacity = req.Capacity

	var slotsCreated, slotsDeleted int

	// 3. Обновляем расписание и регенерируем слоты в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.scheduleRepo.Update(txCtx, schedule); err != nil {
			uc.logger.Error("UpdateSchedule: failed to update schedule id=%d: %v", schedule.ID, err)
			return fmt.Errorf("%w: failed to update schedule: %w", ErrInternal, err)
		}

		now := uc.timeProvider.Now()
		toDate := now.AddDate(0, 0, uc.defaultHorizonDays-1)

		// Слоты могли быть сгенерированы дальше горизонта по умолчанию -
		// правка должна накрыть и их, иначе они останутся со старым окном
		maxDate, err := uc.slotRepo.MaxDateBySchedule(txCtx, schedule.ID)
		if err != nil {
			uc.logger.Error("UpdateSchedule: failed to get max slot date for schedule id=%d: %v", schedule.ID, err)
			return fmt.Errorf("%w: failed to get max slot date: %w", ErrInternal, err)
		}
		if maxDate != nil && maxDate.After(toDate) {
			toDate = *maxDate
		}

		genResp, err := uc.slotGenerator.Execute(txCtx, &generate_slots.Request{
			ScheduleID: schedule.ID,
			FromDate:   now,
			ToDate:     toDate,
		})
		if err != nil {
			if errors.Is(err, generate_slots.ErrSlotHasReservations) {
				uc.logger.Warn("UpdateSchedule: schedule id=%d regeneration blocked by reservations: %v",
					schedule.ID, err)
				return fmt.Errorf("%w: %v", ErrSlotHasReservations, err)
			}
			uc.logger.Error("UpdateSchedule: failed to regenerate slots for schedule id=%d: %v", schedule.ID, err)
			return fmt.Errorf("%w: failed to regenerate slots: %w", ErrInternal, err)
		}

		slotsCreated = genResp.Created
		slotsDeleted = genResp.Deleted
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateSchedule: schedule id=%d updated, slots created=%d, deleted=%d",
		schedule.ID, slotsCreated, slotsDeleted)

	return &Response{
		ID:                  schedule.ID,
		InstructorID:        schedule.InstructorID,
		FacilityID:          schedule.FacilityID,
		DayOfWeek:           schedule.DayOfWeek,
		StartTime:           schedule.StartTime,
		EndTime:             schedule.EndTime,
		SlotDurationMinutes: schedule.SlotDurationMinutes,
		Capacity:            schedule.Capacity,
		SlotsCreated:        slotsCreated,
		SlotsDeleted:        slotsDeleted,
		CreatedAt:           schedule.CreatedAt,
		UpdatedAt:           schedule.UpdatedAt,
	}, nil
}
