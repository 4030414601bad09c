package statistics

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/facility"
	userClient "github.com/m04kA/RC-FacilityService/internal/integrations/userservice"
	"github.com/m04kA/RC-FacilityService/internal/service/statistics/models"
)

// Service сервис статистики использования объектов.
// Все сводки считаются агрегатными запросами по журналу бронирований,
// промежуточные счётчики нигде не хранятся. Доступно только администратору.
type Service struct {
	reservationRepo ReservationRepository
	facilityRepo    FacilityRepository
	userClient      UserServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(
	reservationRepo ReservationRepository,
	facilityRepo FacilityRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		facilityRepo:    facilityRepo,
		userClient:      userClient,
		logger:          logger,
	}
}

// GetFacilityStatistics собирает сводную статистику бронирований объекта.
// Необязательный период дат сужает журнал, по которому считаются сводки.
func (s *Service) GetFacilityStatistics(ctx context.Context, req *models.GetStatisticsRequest) (*models.StatisticsResponse, error) {
	s.logger.Info("GetFacilityStatistics: facility=%d by user=%d", req.FacilityID, req.UserID)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("GetFacilityStatistics: end date before start date for facility=%d", req.FacilityID)
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		s.logger.Warn("GetFacilityStatistics: access denied for user=%d", req.UserID)
		return nil, err
	}

	facilityID := req.FacilityID
	if _, err := s.facilityRepo.GetFacilityByID(ctx, facilityID); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("GetFacilityStatistics: facility id=%d not found", facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("GetFacilityStatistics: repository error for facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityStatistics - repository error: %v", ErrInternal, err)
	}

	filter := req.ToDomainFilter()

	statusCounts, err := s.reservationRepo.CountByStatus(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityStatistics: failed to count by status: %v", err)
		return nil, fmt.Errorf("%w: failed to count by status: %v", ErrInternal, err)
	}

	var total int64
	for _, sc := range statusCounts {
		total += sc.Count
	}

	byStatus := make(map[string]models.StatusStat, len(domain.AllStatuses))
	var cancelled int64
	for _, status := range domain.AllStatuses {
		byStatus[string(status)] = models.StatusStat{}
	}
	for _, sc := range statusCounts {
		stat := models.StatusStat{Count: sc.Count}
		if total > 0 {
			stat.Ratio = float64(sc.Count) / float64(total)
		}
		byStatus[string(sc.Status)] = stat

		if sc.Status == domain.StatusCancel {
			cancelled = sc.Count
		}
	}

	// Доля отмен по пустому журналу равна нулю, не NaN
	var cancellationRatio float64
	if total > 0 {
		cancellationRatio = float64(cancelled) / float64(total)
	}

	byBuilding, err := s.reservationRepo.CountByBuilding(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityStatistics: failed to count by building: %v", err)
		return nil, fmt.Errorf("%w: failed to count by building: %v", ErrInternal, err)
	}

	byWeekday, err := s.reservationRepo.CountByWeekday(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityStatistics: failed to count by weekday: %v", err)
		return nil, fmt.Errorf("%w: failed to count by weekday: %v", ErrInternal, err)
	}

	byTimePeriod, err := s.reservationRepo.CountByTimePeriod(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityStatistics: failed to count by time period: %v", err)
		return nil, fmt.Errorf("%w: failed to count by time period: %v", ErrInternal, err)
	}

	byUser, err := s.reservationRepo.CountByUser(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityStatistics: failed to count by user: %v", err)
		return nil, fmt.Errorf("%w: failed to count by user: %v", ErrInternal, err)
	}

	s.logger.Info("GetFacilityStatistics: facility=%d, total=%d", facilityID, total)

	return &models.StatisticsResponse{
		FacilityID:        facilityID,
		Total:             total,
		ByStatus:          byStatus,
		CancellationRatio: cancellationRatio,
		ByBuilding:        bucketsToMap(byBuilding),
		ByWeekday:         bucketsToMap(byWeekday),
		ByTimePeriod:      bucketsToMap(byTimePeriod),
		ByUser:            bucketsToMap(byUser),
	}, nil
}

// checkAdminAccess проверяет, что пользователь имеет роль администратора
func (s *Service) checkAdminAccess(ctx context.Context, userID int64) error {
	resident, err := s.userClient.GetResident(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrResidentNotFound) {
			s.logger.Warn("checkAdminAccess: user id=%d not found", userID)
			return ErrAccessDenied
		}
		s.logger.Error("checkAdminAccess: failed to get resident id=%d: %v", userID, err)
		return fmt.Errorf("%w: failed to get resident: %v", ErrInternal, err)
	}

	if !resident.IsAdmin() {
		return ErrAccessDenied
	}

	return nil
}

func bucketsToMap(buckets []domain.BucketCount) map[string]int64 {
	result := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		result[b.Key] = b.Count
	}
	return result
}
