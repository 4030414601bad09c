package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	reservationRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/reservation"
	"github.com/m04kA/RC-FacilityService/internal/integrations/notifyservice"
	"github.com/m04kA/RC-FacilityService/internal/integrations/userservice"
	"github.com/m04kA/RC-FacilityService/internal/service/reservations/models"
	"github.com/m04kA/RC-FacilityService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeReservationRepo struct {
	byID map[int64]*domain.FacilityReservation

	// statusConflict имитирует конкурентное изменение статуса
	statusConflict bool
}

func (r *fakeReservationRepo) GetByID(ctx context.Context, id int64) (*domain.FacilityReservation, error) {
	res, ok := r.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *res
	return &copied, nil
}

func (r *fakeReservationRepo) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.FacilityReservation, error) {
	result := make([]*domain.FacilityReservation, 0)
	for _, res := range r.byID {
		if res.UserID != userID {
			continue
		}
		if status != nil && res.Status != *status {
			continue
		}
		result = append(result, res)
	}
	return result, nil
}

func (r *fakeReservationRepo) GetByFacilityWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.FacilityReservation, error) {
	result := make([]*domain.FacilityReservation, 0)
	for _, res := range r.byID {
		if res.FacilityID != filter.FacilityID {
			continue
		}
		if filter.Status != nil && res.Status != *filter.Status {
			continue
		}
		if filter.Status == nil && !filter.IncludeInactive && !res.IsActive() {
			continue
		}
		result = append(result, res)
	}
	return result, nil
}

func (r *fakeReservationRepo) UpdateStatusIf(ctx context.Context, id int64, expected, next domain.ReservationStatus) error {
	if r.statusConflict {
		return reservationRepo.ErrStatusConflict
	}
	res, ok := r.byID[id]
	if !ok || res.Status != expected {
		return reservationRepo.ErrStatusConflict
	}
	res.Status = next
	return nil
}

func (r *fakeReservationRepo) CancelIf(ctx context.Context, id int64, expected domain.ReservationStatus, reasonType domain.CancelReasonType, reason *string) error {
	if r.statusConflict {
		return reservationRepo.ErrStatusConflict
	}
	res, ok := r.byID[id]
	if !ok || res.Status != expected {
		return reservationRepo.ErrStatusConflict
	}
	now := time.Now()
	res.Status = domain.StatusCancel
	res.CancelReasonType = &reasonType
	res.CancelReason = reason
	res.CancelledAt = &now
	return nil
}

type fakeFacilityRepo struct{}

func (fakeFacilityRepo) GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error) {
	return &domain.Facility{ID: id, Name: "Бассейн"}, nil
}

type fakeUserClient struct {
	residents map[int64]*userservice.Resident
}

func (c *fakeUserClient) GetResident(ctx context.Context, userID int64) (*userservice.Resident, error) {
	resident, ok := c.residents[userID]
	if !ok {
		return nil, userservice.ErrResidentNotFound
	}
	return resident, nil
}

type fakeNotifyClient struct {
	events []notifyservice.Event
}

func (c *fakeNotifyClient) SendEventBestEffort(ctx context.Context, event notifyservice.Event) {
	c.events = append(c.events, event)
}

const (
	adminID    = int64(1)
	residentID = int64(7)
	strangerID = int64(8)
)

func newTestService(repo *fakeReservationRepo) (*Service, *fakeNotifyClient) {
	users := &fakeUserClient{
		residents: map[int64]*userservice.Resident{
			adminID:    {ID: adminID, Name: "Админ", Roles: []string{userservice.RoleAdmin}},
			residentID: {ID: residentID, Name: "Иван", Building: "B3", Roles: []string{"resident"}},
			strangerID: {ID: strangerID, Name: "Пётр", Building: "B1", Roles: []string{"resident"}},
		},
	}
	notify := &fakeNotifyClient{}
	svc := NewService(repo, fakeFacilityRepo{}, users, notify, nopLogger{})
	return svc, notify
}

func pendingReservation(id int64) *domain.FacilityReservation {
	return &domain.FacilityReservation{
		ID:              id,
		FacilityID:      100,
		UserID:          residentID,
		ReservationDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       "15:00",
		EndTime:         "16:00",
		Status:          domain.StatusPending,
	}
}

func TestApprove_ByAdmin(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.FacilityReservation{1: pendingReservation(1)}}
	svc, notify := newTestService(repo)

	resp, err := svc.Approve(context.Background(), 1, adminID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAgree), resp.Status)

	require.Len(t, notify.events, 1)
	assert.Equal(t, notifyservice.EventReservationApproved, notify.events[0].Type)
	assert.Equal(t, "Бассейн", notify.events[0].FacilityName)
}

func TestApprove_DeniedForResident(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.FacilityReservation{1: pendingReservation(1)}}
	svc, _ := newTestService(repo)

	_, err := svc.Approve(context.Background(), 1, residentID)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusPending, repo.byID[1].Status)
}

func TestReject_ByAdmin(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.FacilityReservation{1: pendingReservation(1)}}
	svc, notify := newTestService(repo)

	resp, err := svc.Reject(context.Background(), 1, adminID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusReject), resp.Status)

	require.Len(t, notify.events, 1)
	assert.Equal(t, notifyservice.EventReservationRejected, notify.events[0].Type)
}

func TestResolve_InvalidTransition(t *testing.T) {
	agreed := pendingReservation(1)
	agreed.Status = domain.StatusAgree

	repo := &fakeReservationRepo{byID: map[int64]*domain.FacilityReservation{1: agreed}}
	svc, _ := newTestService(repo)

	_, err := svc.Reject(context.Background(), 1, adminID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestResolve_StatusConflict(t *testing.T) {
	repo := &fakeReservationRepo{
		byID:           map[int64]*domain.FacilityReservation{1: pendingReservation(1)},
		statusConflict: true,
	}
	svc, _ := newTestService(repo)

	_, err := svc.Approve(context.Background(), 1, adminID)
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestResolve_NotFound(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.FacilityReservation{}}
	svc, _ := newTestService(repo)

	_, err := svc.Approve(context.Background(), 99, adminID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel_ByOwner(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.FacilityReservation{1: pendingReservation(1)}}
	svc, notify := newTestService(repo)

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		UserID:     residentID,
		ReasonType: string(domain.CancelReasonHealth),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancel), resp.Status)
	require.NotNil(t, resp.CancelReasonType)
	assert.Equal(t, string(domain.CancelReasonHealth), *resp.CancelReasonType)
	assert.NotNil(t, resp.CancelledAt)

	require.Len(t, notify.events, 1)
	assert.Equal(t, notifyservice.EventReservationCancelled, notify.events[0].Type)
}

func TestCancel_AgreedReservationByAdmin(t *testing.T) {
	agreed := pendingReservation(1)
	agreed.Status = domain.StatusAgree

	repo := &fakeReservationRepo{byID: map[int64]*domain.FacilityReservation{1: agreed}}
	svc, _ := newTestService(repo)

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		UserID:     adminID,
		ReasonType: string(domain.CancelReasonFacilityIssue),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancel), resp.Status)
}

func TestCancel_DeniedForStranger(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.FacilityReservation{1: pendingReservation(1)}}
	svc, _ := newTestService(repo)

	_, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		UserID:     strangerID,
		ReasonType: string(domain.CancelReasonHealth),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_TerminalStatus(t *testing.T) {
	rejected := pendingReservation(1)
	rejected.Status = domain.StatusReject

	repo := &fakeReservationRepo{byID: map[int64]*domain.FacilityReservation{1: rejected}}
	svc, _ := newTestService(repo)

	_, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		UserID:     residentID,
		ReasonType: string(domain.CancelReasonHealth),
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_OtherReasonRequiresText(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.FacilityReservation{1: pendingReservation(1)}}
	svc, _ := newTestService(repo)

	_, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		UserID:     residentID,
		ReasonType: string(domain.CancelReasonOther),
	})
	assert.ErrorIs(t, err, ErrInvalidCancelReason)

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		UserID:     residentID,
		ReasonType: string(domain.CancelReasonOther),
		Reason:     ptr.Ptr("переезд в другой город"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.CancelReason)
	assert.Equal(t, "переезд в другой город", *resp.CancelReason)
}

func TestGetByID_OwnerAndAdmin(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.FacilityReservation{1: pendingReservation(1)}}
	svc, _ := newTestService(repo)

	_, err := svc.GetByID(context.Background(), 1, residentID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, adminID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetFacilityReservations_AdminOnly(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.FacilityReservation{1: pendingReservation(1)}}
	svc, _ := newTestService(repo)

	_, err := svc.GetFacilityReservations(context.Background(), &models.GetFacilityReservationsRequest{
		UserID:     residentID,
		FacilityID: 100,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetFacilityReservations(context.Background(), &models.GetFacilityReservationsRequest{
		UserID:     adminID,
		FacilityID: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestGetFacilityReservations_InvalidStatusFilter(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.FacilityReservation{}}
	svc, _ := newTestService(repo)

	_, err := svc.GetFacilityReservations(context.Background(), &models.GetFacilityReservationsRequest{
		UserID:     adminID,
		FacilityID: 100,
		Status:     ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserReservations(t *testing.T) {
	agreed := pendingReservation(2)
	agreed.Status = domain.StatusAgree

	repo := &fakeReservationRepo{byID: map[int64]*domain.FacilityReservation{
		1: pendingReservation(1),
		2: agreed,
	}}
	svc, _ := newTestService(repo)

	resp, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: residentID})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestGetUserReservations_StatusFilter(t *testing.T) {
	agreed := pendingReservation(2)
	agreed.Status = domain.StatusAgree

	repo := &fakeReservationRepo{byID: map[int64]*domain.FacilityReservation{
		1: pendingReservation(1),
		2: agreed,
	}}
	svc, _ := newTestService(repo)

	resp, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		UserID: residentID,
		Status: ptr.Ptr("agree"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "agree", resp.Reservations[0].Status)

	_, err = svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		UserID: residentID,
		Status: ptr.Ptr("approved"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
