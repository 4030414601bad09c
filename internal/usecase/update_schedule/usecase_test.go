package update_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	scheduleRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/schedule"
	"github.com/m04kA/RC-FacilityService/internal/usecase/generate_slots"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeScheduleRepo struct {
	schedule *domain.InstructorSchedule
	updated  *domain.InstructorSchedule
}

func (r *fakeScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.InstructorSchedule, error) {
	if r.schedule == nil || r.schedule.ID != id {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return r.schedule, nil
}

func (r *fakeScheduleRepo) Update(ctx context.Context, s *domain.InstructorSchedule) error {
	r.updated = s
	return nil
}

type fakeSlotRepo struct {
	maxDate *time.Time
}

func (r *fakeSlotRepo) MaxDateBySchedule(ctx context.Context, scheduleID int64) (*time.Time, error) {
	return r.maxDate, nil
}

type fakeSlotGenerator struct {
	lastRequest *generate_slots.Request
	err         error
}

func (g *fakeSlotGenerator) Execute(ctx context.Context, req *generate_slots.Request) (*generate_slots.Response, error) {
	g.lastRequest = req
	if g.err != nil {
		return nil, g.err
	}
	return &generate_slots.Response{Created: 3, Deleted: 1, Total: 3}, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

func testSchedule() *domain.InstructorSchedule {
	return &domain.InstructorSchedule{
		ID:                  1,
		InstructorID:        10,
		FacilityID:          100,
		DayOfWeek:           domain.Tuesday,
		StartTime:           "15:00",
		EndTime:             "18:00",
		SlotDurationMinutes: 60,
		Capacity:            5,
	}
}

func validRequest() *Request {
	return &Request{
		ScheduleID:          1,
		DayOfWeek:           domain.Wednesday,
		StartTime:           "10:00",
		EndTime:             "13:00",
		SlotDurationMinutes: 60,
		Capacity:            8,
	}
}

const defaultHorizonDays = 28

func newTestUseCase(schedRepo *fakeScheduleRepo, slots *fakeSlotRepo, gen *fakeSlotGenerator) *UseCase {
	uc := NewUseCase(schedRepo, slots, gen, passthroughTxManager{}, defaultHorizonDays, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_RegeneratesDefaultHorizon(t *testing.T) {
	gen := &fakeSlotGenerator{}
	schedRepo := &fakeScheduleRepo{schedule: testSchedule()}
	uc := newTestUseCase(schedRepo, &fakeSlotRepo{}, gen)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.Wednesday, schedRepo.updated.DayOfWeek)
	assert.Equal(t, 8, schedRepo.updated.Capacity)
	assert.Equal(t, 3, resp.SlotsCreated)
	assert.Equal(t, 1, resp.SlotsDeleted)

	require.NotNil(t, gen.lastRequest)
	wantTo := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC).AddDate(0, 0, defaultHorizonDays-1)
	assert.Equal(t, wantTo, gen.lastRequest.ToDate)
}

func TestExecute_RegeneratesOutToFurthestSlot(t *testing.T) {
	// Слоты сгенерированы дальше горизонта по умолчанию -
	// регенерация должна покрыть их все
	furthest := time.Date(2026, 11, 24, 0, 0, 0, 0, time.UTC)

	gen := &fakeSlotGenerator{}
	uc := newTestUseCase(&fakeScheduleRepo{schedule: testSchedule()}, &fakeSlotRepo{maxDate: &furthest}, gen)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.NotNil(t, gen.lastRequest)
	assert.Equal(t, furthest, gen.lastRequest.ToDate)
}

func TestExecute_NearMaxDateKeepsDefaultHorizon(t *testing.T) {
	nearDate := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	gen := &fakeSlotGenerator{}
	uc := newTestUseCase(&fakeScheduleRepo{schedule: testSchedule()}, &fakeSlotRepo{maxDate: &nearDate}, gen)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	wantTo := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC).AddDate(0, 0, defaultHorizonDays-1)
	assert.Equal(t, wantTo, gen.lastRequest.ToDate)
}

func TestExecute_BlockedByReservations(t *testing.T) {
	gen := &fakeSlotGenerator{err: generate_slots.ErrSlotHasReservations}
	uc := newTestUseCase(&fakeScheduleRepo{schedule: testSchedule()}, &fakeSlotRepo{}, gen)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotHasReservations)
}

func TestExecute_ScheduleNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeScheduleRepo{}, &fakeSlotRepo{}, &fakeSlotGenerator{})

	req := validRequest()
	req.ScheduleID = 99

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
