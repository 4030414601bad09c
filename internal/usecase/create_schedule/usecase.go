package create_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/facility"
	"github.com/m04kA/RC-FacilityService/internal/usecase/generate_slots"
)

// UseCase use case создания расписания инструктора.
// Вместе с расписанием сразу генерируются слоты на горизонте по умолчанию.
type UseCase struct {
	facilityRepo       FacilityRepository
	scheduleRepo       ScheduleRepository
	slotGenerator      SlotGenerator
	txManager          TransactionManager
	timeProvider       TimeProvider
	defaultHorizonDays int
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	facilityRepo FacilityRepository,
	scheduleRepo ScheduleRepository,
	slotGenerator SlotGenerator,
	txManager TransactionManager,
	defaultHorizonDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		facilityRepo:       facilityRepo,
		scheduleRepo:       scheduleRepo,
		slotGenerator:      slotGenerator,
		txManager:          txManager,
		timeProvider:       &RealTimeProvider{},
		defaultHorizonDays: defaultHorizonDays,
		logger:             logger,
	}
}

// Execute выполняет use case создания расписания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSchedule: instructor=%d, facility=%d, day=%s, window=%s-%s",
		req.InstructorID, req.FacilityID, req.DayOfWeek, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSchedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование объекта
	if _, err := uc.facilityRepo.GetFacilityByID(ctx, req.FacilityID); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("CreateSchedule: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("CreateSchedule: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %w", ErrInternal, err)
	}

	// 3. Проверяем инструктора и его принадлежность объекту
	instructor, err := uc.facilityRepo.GetInstructorByID(ctx, req.InstructorID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrInstructorNotFound) {
			uc.logger.Warn("CreateSchedule: instructor id=%d not found", req.InstructorID)
			return nil, ErrInstructorNotFound
		}
		uc.logger.Error("CreateSchedule: failed to get instructor id=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: failed to get instructor: %w", ErrInternal, err)
	}

	if instructor.FacilityID != req.FacilityID {
		uc.logger.Warn("CreateSchedule: instructor id=%d belongs to facility id=%d, not id=%d",
			req.InstructorID, instructor.FacilityID, req.FacilityID)
		return nil, ErrInstructorWrongFacility
	}

	schedule := &domain.InstructorSchedule{
		InstructorID:        req.InstructorID,
		FacilityID:          req.FacilityID,
		DayOfWeek:           req.DayOfWeek,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
		Capacity:            req.Capacity,
	}

	var slotsGenerated int

	// 4. Создаем расписание и генерируем слоты в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := uc.scheduleRepo.Create(txCtx, schedule)
		if err != nil {
			uc.logger.Error("CreateSchedule: failed to create schedule: %v", err)
			return fmt.Errorf("%w: failed to create schedule: %w", ErrInternal, err)
		}
		schedule = created

		now := uc.timeProvider.Now()
		genResp, err := uc.slotGenerator.Execute(txCtx, &generate_slots.Request{
			ScheduleID: schedule.ID,
			FromDate:   now,
			ToDate:     now.AddDate(0, 0, uc.defaultHorizonDays-1),
		})
		if err != nil {
			uc.logger.Error("CreateSchedule: failed to generate slots for schedule id=%d: %v", schedule.ID, err)
			return fmt.Errorf("%w: failed to generate slots: %w", ErrInternal, err)
		}

		slotsGenerated = genResp.Created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateSchedule: schedule id=%d created, slots generated=%d", schedule.ID, slotsGenerated)

	return &Response{
		ID:                  schedule.ID,
		InstructorID:        schedule.InstructorID,
		FacilityID:          schedule.FacilityID,
		DayOfWeek:           schedule.DayOfWeek,
		StartTime:           schedule.StartTime,
		EndTime:             schedule.EndTime,
		SlotDurationMinutes: schedule.SlotDurationMinutes,
		Capacity:            schedule.Capacity,
		SlotsGenerated:      slotsGenerated,
		CreatedAt:           schedule.CreatedAt,
		UpdatedAt:           schedule.UpdatedAt,
	}, nil
}
