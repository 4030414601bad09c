package reserve_slot

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/facility"
	slotRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/slot"
	"github.com/m04kA/RC-FacilityService/internal/integrations/notifyservice"
	"github.com/m04kA/RC-FacilityService/internal/integrations/userservice"
	"github.com/m04kA/RC-FacilityService/pkg/simpletxmanager"
	"github.com/m04kA/RC-FacilityService/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeFacilityRepo struct {
	facility *domain.Facility
}

func (r *fakeFacilityRepo) GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error) {
	if r.facility == nil || r.facility.ID != id {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	return r.facility, nil
}

type fakeSlotRepo struct {
	slot *domain.TimeSlot
}

func (r *fakeSlotRepo) GetByWindow(ctx context.Context, facilityID int64, date time.Time, start, end string) (*domain.TimeSlot, error) {
	if r.slot == nil || r.slot.StartTime.String() != start || r.slot.EndTime.String() != end {
		return nil, slotRepo.ErrSlotNotFound
	}
	return r.slot, nil
}

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations []*domain.FacilityReservation
	nextID       int64
}

func (r *fakeReservationRepo) Create(ctx context.Context, res *domain.FacilityReservation) (*domain.FacilityReservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	created := *res
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.reservations = append(r.reservations, &created)
	return &created, nil
}

func (r *fakeReservationRepo) GetActiveByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) ([]*domain.FacilityReservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := make([]*domain.FacilityReservation, 0, len(r.reservations))
	for _, res := range r.reservations {
		if res.FacilityID == facilityID && res.IsActive() {
			active = append(active, res)
		}
	}
	return active, nil
}

type fakeUserClient struct {
	resident *userservice.Resident
	err      error
}

func (c *fakeUserClient) GetResidentWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.Resident, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.resident, nil
}

type fakeNotifyClient struct {
	mu     sync.Mutex
	events []notifyservice.Event
}

func (c *fakeNotifyClient) SendEventBestEffort(ctx context.Context, event notifyservice.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

// serializingTxManager эмулирует сериализуемые транзакции мьютексом:
// конкурентные заявки проходят проверку вместимости по одной
type serializingTxManager struct {
	mu sync.Mutex
}

func (m *serializingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// failingTxManager возвращает подготовленную ошибку, не выполняя fn
type failingTxManager struct {
	err error
}

func (m failingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fmt.Errorf("%w: could not serialize access", m.err)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type testEnv struct {
	uc           *UseCase
	reservations *fakeReservationRepo
	notify       *fakeNotifyClient
}

func newTestEnv(capacity int, userClient UserServiceClient) *testEnv {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	facility := &domain.Facility{ID: 100, ApartmentID: 1, Name: "Спортзал"}
	slot := &domain.TimeSlot{
		ID:         1,
		ScheduleID: 1,
		FacilityID: 100,
		Date:       date,
		StartTime:  "15:00",
		EndTime:    "16:00",
		Capacity:   capacity,
	}

	reservations := &fakeReservationRepo{}
	notify := &fakeNotifyClient{}

	uc := NewUseCase(
		&fakeFacilityRepo{facility: facility},
		&fakeSlotRepo{slot: slot},
		reservations,
		userClient,
		notify,
		&serializingTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}

	return &testEnv{uc: uc, reservations: reservations, notify: notify}
}

func validRequest() *Request {
	return &Request{
		UserID:     7,
		FacilityID: 100,
		Date:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:  "15:00",
		EndTime:    "16:00",
	}
}

func residentClient() *fakeUserClient {
	return &fakeUserClient{
		resident: &userservice.Resident{ID: 7, Name: "Иван", Building: "B3", Unit: "45"},
	}
}

func TestExecute_CreatesPendingReservation(t *testing.T) {
	env := newTestEnv(2, residentClient())

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, resp.Status)
	require.NotNil(t, resp.UserBuilding)
	assert.Equal(t, "B3", *resp.UserBuilding)
	assert.Equal(t, int64(7), resp.UserID)

	require.Len(t, env.notify.events, 1)
	assert.Equal(t, notifyservice.EventReservationCreated, env.notify.events[0].Type)
	assert.Equal(t, resp.ID, env.notify.events[0].ReservationID)
}

func TestExecute_GracefulDegradationWithoutBuilding(t *testing.T) {
	env := newTestEnv(2, &fakeUserClient{err: userservice.ErrServiceDegraded})

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Nil(t, resp.UserBuilding)
	assert.Equal(t, domain.StatusPending, resp.Status)
}

func TestExecute_UserNotFound(t *testing.T) {
	env := newTestEnv(2, &fakeUserClient{err: userservice.ErrResidentNotFound})

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_FacilityNotFound(t *testing.T) {
	env := newTestEnv(2, residentClient())

	req := validRequest()
	req.FacilityID = 999

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestExecute_InvalidSlotWindow(t *testing.T) {
	env := newTestEnv(2, residentClient())

	// Интервал внутри слота, но не совпадающий с его границами
	req := validRequest()
	req.StartTime = "15:15"
	req.EndTime = "15:45"

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestExecute_PastDate(t *testing.T) {
	env := newTestEnv(2, residentClient())

	req := validRequest()
	req.Date = time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	env := newTestEnv(1, residentClient())

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_RejectedReservationFreesSpot(t *testing.T) {
	env := newTestEnv(1, residentClient())

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Отклонённая бронь перестаёт занимать место
	env.reservations.mu.Lock()
	for _, r := range env.reservations.reservations {
		if r.ID == resp.ID {
			r.Status = domain.StatusReject
		}
	}
	env.reservations.mu.Unlock()

	_, err = env.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_ConcurrentRequestsRespectCapacity(t *testing.T) {
	env := newTestEnv(2, residentClient())

	const attempts = 3
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.uc.Execute(context.Background(), validRequest())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, rejected := 0, 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		rejected++
	}

	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 1, rejected)
	assert.Len(t, env.reservations.reservations, 2)
}

func TestExecute_SerializationConflictAfterRetries(t *testing.T) {
	// Исчерпанные повторы транслируются в конфликт, не во внутреннюю ошибку
	for _, sentinel := range []error{
		txmanager.ErrSerializationConflict,
		simpletxmanager.ErrSerializationConflict,
	} {
		env := newTestEnv(2, residentClient())
		env.uc.txManager = failingTxManager{err: sentinel}

		_, err := env.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrConflict)
		assert.NotErrorIs(t, err, ErrInternal)
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero user id", mutate: func(r *Request) { r.UserID = 0 }},
		{name: "zero facility id", mutate: func(r *Request) { r.FacilityID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "bad start time", mutate: func(r *Request) { r.StartTime = "25:00" }},
		{name: "bad end time", mutate: func(r *Request) { r.EndTime = "16:70" }},
		{name: "start after end", mutate: func(r *Request) { r.StartTime = "17:00" }},
		{name: "start equals end", mutate: func(r *Request) { r.EndTime = r.StartTime }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		})
	}
}
