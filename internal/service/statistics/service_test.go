package statistics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/facility"
	"github.com/m04kA/RC-FacilityService/internal/integrations/userservice"
	"github.com/m04kA/RC-FacilityService/internal/service/statistics/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeReservationRepo struct {
	statusCounts []domain.StatusCount
	byBuilding   []domain.BucketCount
	byWeekday    []domain.BucketCount
	byTimePeriod []domain.BucketCount
	byUser       []domain.BucketCount

	lastFilter domain.StatsFilter
}

func (r *fakeReservationRepo) CountByStatus(ctx context.Context, filter domain.StatsFilter) ([]domain.StatusCount, error) {
	r.lastFilter = filter
	return r.statusCounts, nil
}

func (r *fakeReservationRepo) CountByBuilding(ctx context.Context, filter domain.StatsFilter) ([]domain.BucketCount, error) {
	r.lastFilter = filter
	return r.byBuilding, nil
}

func (r *fakeReservationRepo) CountByWeekday(ctx context.Context, filter domain.StatsFilter) ([]domain.BucketCount, error) {
	r.lastFilter = filter
	return r.byWeekday, nil
}

func (r *fakeReservationRepo) CountByTimePeriod(ctx context.Context, filter domain.StatsFilter) ([]domain.BucketCount, error) {
	r.lastFilter = filter
	return r.byTimePeriod, nil
}

func (r *fakeReservationRepo) CountByUser(ctx context.Context, filter domain.StatsFilter) ([]domain.BucketCount, error) {
	r.lastFilter = filter
	return r.byUser, nil
}

type fakeFacilityRepo struct {
	exists bool
}

func (r *fakeFacilityRepo) GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error) {
	if !r.exists {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	return &domain.Facility{ID: id, Name: "Спортзал"}, nil
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

const (
	adminID    = int64(1)
	residentID = int64(7)
)

func newTestService(repo *fakeReservationRepo, facilityExists bool) *Service {
	users := &fakeUserClient{
		residents: map[int64]*userservice.Resident{
			adminID:    {ID: adminID, Roles: []string{userservice.RoleAdmin}},
			residentID: {ID: residentID, Roles: []string{"resident"}},
		},
	}
	return NewService(repo, &fakeFacilityRepo{exists: facilityExists}, users, nopLogger{})
}

func TestGetFacilityStatistics_Ratios(t *testing.T) {
	repo := &fakeReservationRepo{
		statusCounts: []domain.StatusCount{
			{Status: domain.StatusPending, Count: 3},
			{Status: domain.StatusAgree, Count: 5},
			{Status: domain.StatusCancel, Count: 2},
		},
		byBuilding: []domain.BucketCount{{Key: "B3", Count: 6}, {Key: "B1", Count: 4}},
		byWeekday:  []domain.BucketCount{{Key: "TUESDAY", Count: 10}},
		byTimePeriod: []domain.BucketCount{
			{Key: "morning", Count: 4},
			{Key: "evening", Count: 6},
		},
		byUser: []domain.BucketCount{{Key: "7", Count: 10}},
	}
	svc := newTestService(repo, true)

	resp, err := svc.GetFacilityStatistics(context.Background(), &models.GetStatisticsRequest{FacilityID: 100, UserID: adminID})
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.Total)
	assert.InDelta(t, 0.2, resp.CancellationRatio, 1e-9)

	assert.Equal(t, int64(5), resp.ByStatus["agree"].Count)
	assert.InDelta(t, 0.5, resp.ByStatus["agree"].Ratio, 1e-9)
	assert.InDelta(t, 0.3, resp.ByStatus["pending"].Ratio, 1e-9)

	// Статусы без бронирований присутствуют с нулями
	assert.Equal(t, int64(0), resp.ByStatus["reject"].Count)
	assert.Zero(t, resp.ByStatus["reject"].Ratio)

	assert.Equal(t, int64(6), resp.ByBuilding["B3"])
	assert.Equal(t, int64(10), resp.ByWeekday["TUESDAY"])
	assert.Equal(t, int64(6), resp.ByTimePeriod["evening"])
	assert.Equal(t, int64(10), resp.ByUser["7"])
}

func TestGetFacilityStatistics_PeriodFilter(t *testing.T) {
	repo := &fakeReservationRepo{}
	svc := newTestService(repo, true)

	startDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	_, err := svc.GetFacilityStatistics(context.Background(), &models.GetStatisticsRequest{
		FacilityID: 100,
		UserID:     adminID,
		StartDate:  &startDate,
		EndDate:    &endDate,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100), repo.lastFilter.FacilityID)
	require.NotNil(t, repo.lastFilter.StartDate)
	assert.Equal(t, startDate, *repo.lastFilter.StartDate)
	require.NotNil(t, repo.lastFilter.EndDate)
	assert.Equal(t, endDate, *repo.lastFilter.EndDate)
}

func TestGetFacilityStatistics_EndDateBeforeStartDate(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{}, true)

	startDate := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.GetFacilityStatistics(context.Background(), &models.GetStatisticsRequest{
		FacilityID: 100,
		UserID:     adminID,
		StartDate:  &startDate,
		EndDate:    &endDate,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetFacilityStatistics_EmptyJournal(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{}, true)

	resp, err := svc.GetFacilityStatistics(context.Background(), &models.GetStatisticsRequest{FacilityID: 100, UserID: adminID})
	require.NoError(t, err)

	assert.Zero(t, resp.Total)
	assert.Zero(t, resp.CancellationRatio)

	// Все четыре статуса присутствуют даже по пустому журналу
	assert.Len(t, resp.ByStatus, len(domain.AllStatuses))
	for status, stat := range resp.ByStatus {
		assert.Zero(t, stat.Count, status)
		assert.Zero(t, stat.Ratio, status)
	}
}

func TestGetFacilityStatistics_AccessDenied(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{}, true)

	_, err := svc.GetFacilityStatistics(context.Background(), &models.GetStatisticsRequest{FacilityID: 100, UserID: residentID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetFacilityStatistics(context.Background(), &models.GetStatisticsRequest{FacilityID: 100, UserID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetFacilityStatistics_FacilityNotFound(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{}, false)

	_, err := svc.GetFacilityStatistics(context.Background(), &models.GetStatisticsRequest{FacilityID: 100, UserID: adminID})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}
