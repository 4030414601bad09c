package generate_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	scheduleRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/schedule"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeScheduleRepo struct {
	schedule *domain.InstructorSchedule
}

func (r *fakeScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.InstructorSchedule, error) {
	if r.schedule == nil || r.schedule.ID != id {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return r.schedule, nil
}

type fakeSlotRepo struct {
	existing []*domain.TimeSlot
	created  []*domain.TimeSlot
	deleted  []int64
}

func (r *fakeSlotRepo) GetByScheduleInRange(ctx context.Context, scheduleID int64, from, to time.Time) ([]*domain.TimeSlot, error) {
	return r.existing, nil
}

func (r *fakeSlotRepo) CreateBatch(ctx context.Context, slots []*domain.TimeSlot) error {
	r.created = append(r.created, slots...)
	return nil
}

func (r *fakeSlotRepo) DeleteByIDs(ctx context.Context, ids []int64) error {
	r.deleted = append(r.deleted, ids...)
	return nil
}

type fakeReservationRepo struct {
	reservations []*domain.FacilityReservation
}

func (r *fakeReservationRepo) GetActiveByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) ([]*domain.FacilityReservation, error) {
	return r.reservations, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func newTestUseCase(schedRepo *fakeScheduleRepo, slots *fakeSlotRepo, reservations *fakeReservationRepo) *UseCase {
	return NewUseCase(schedRepo, slots, reservations, passthroughTxManager{}, 92, false, nopLogger{})
}

func TestExecute_CreatesSlotsOnEmptyHorizon(t *testing.T) {
	slots := &fakeSlotRepo{}
	uc := newTestUseCase(&fakeScheduleRepo{schedule: testSchedule()}, slots, &fakeReservationRepo{})

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) // вторник
	resp, err := uc.Execute(context.Background(), &Request{
		ScheduleID: 1,
		FromDate:   from,
		ToDate:     from.AddDate(0, 0, 6),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Created)
	assert.Equal(t, 0, resp.Deleted)
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, slots.created, 3)
	assert.Empty(t, slots.deleted)
}

func TestExecute_IdempotentWhenSlotsMatch(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	schedule := testSchedule()

	expected, err := domain.ExpandScheduleSlots(schedule, from, from.AddDate(0, 0, 6), false)
	require.NoError(t, err)

	existing := make([]*domain.TimeSlot, 0, len(expected))
	for i := range expected {
		s := expected[i]
		s.ID = int64(i + 1)
		existing = append(existing, &s)
	}

	slots := &fakeSlotRepo{existing: existing}
	uc := newTestUseCase(&fakeScheduleRepo{schedule: schedule}, slots, &fakeReservationRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		ScheduleID: 1,
		FromDate:   from,
		ToDate:     from.AddDate(0, 0, 6),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Created)
	assert.Equal(t, 0, resp.Deleted)
	assert.Equal(t, 3, resp.Total)
	assert.Empty(t, slots.created)
	assert.Empty(t, slots.deleted)
}

func TestExecute_ReplacesStaleSlots(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// Существующий слот со старой вместимостью должен быть пересоздан
	stale := &domain.TimeSlot{
		ID:         42,
		ScheduleID: 1,
		FacilityID: 100,
		Date:       from,
		StartTime:  "15:00",
		EndTime:    "16:00",
		Capacity:   2,
	}

	slots := &fakeSlotRepo{existing: []*domain.TimeSlot{stale}}
	uc := newTestUseCase(&fakeScheduleRepo{schedule: testSchedule()}, slots, &fakeReservationRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		ScheduleID: 1,
		FromDate:   from,
		ToDate:     from,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Created)
	assert.Equal(t, 1, resp.Deleted)
	assert.Equal(t, []int64{42}, slots.deleted)
}

func TestExecute_RefusesToDeleteReservedSlot(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	stale := &domain.TimeSlot{
		ID:         42,
		ScheduleID: 1,
		FacilityID: 100,
		Date:       from,
		StartTime:  "08:00",
		EndTime:    "09:00",
		Capacity:   5,
	}

	reservations := &fakeReservationRepo{
		reservations: []*domain.FacilityReservation{
			{
				ReservationDate: from,
				StartTime:       "08:00",
				EndTime:         "09:00",
				Status:          domain.StatusAgree,
			},
		},
	}

	slots := &fakeSlotRepo{existing: []*domain.TimeSlot{stale}}
	uc := newTestUseCase(&fakeScheduleRepo{schedule: testSchedule()}, slots, reservations)

	_, err := uc.Execute(context.Background(), &Request{
		ScheduleID: 1,
		FromDate:   from,
		ToDate:     from,
	})

	assert.ErrorIs(t, err, ErrSlotHasReservations)
	assert.Empty(t, slots.deleted)
	assert.Empty(t, slots.created)
}

func TestExecute_ScheduleNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeScheduleRepo{}, &fakeSlotRepo{}, &fakeReservationRepo{})

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		ScheduleID: 99,
		FromDate:   from,
		ToDate:     from,
	})

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestExecute_HorizonTooLong(t *testing.T) {
	uc := newTestUseCase(&fakeScheduleRepo{schedule: testSchedule()}, &fakeSlotRepo{}, &fakeReservationRepo{})

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		ScheduleID: 1,
		FromDate:   from,
		ToDate:     from.AddDate(0, 0, 92),
	})

	assert.ErrorIs(t, err, ErrHorizonTooLong)
}

func TestValidateRequest(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "valid",
			req:     &Request{ScheduleID: 1, FromDate: from, ToDate: from.AddDate(0, 0, 27)},
			wantErr: nil,
		},
		{
			name:    "zero schedule id",
			req:     &Request{FromDate: from, ToDate: from},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "to before from",
			req:     &Request{ScheduleID: 1, FromDate: from, ToDate: from.AddDate(0, 0, -1)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "max horizon boundary",
			req:     &Request{ScheduleID: 1, FromDate: from, ToDate: from.AddDate(0, 0, 91)},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.req, 92)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
