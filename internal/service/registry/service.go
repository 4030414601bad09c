package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/facility"
	userClient "github.com/m04kA/RC-FacilityService/internal/integrations/userservice"
	"github.com/m04kA/RC-FacilityService/internal/service/registry/models"
)

// Service сервис реестра объектов и инструкторов.
// Создание и изменение доступны только администратору, чтение - всем.
type Service struct {
	facilityRepo FacilityRepository
	scheduleRepo ScheduleRepository
	userClient   UserServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса реестра
func NewService(
	facilityRepo FacilityRepository,
	scheduleRepo ScheduleRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		facilityRepo: facilityRepo,
		scheduleRepo: scheduleRepo,
		userClient:   userClient,
		logger:       logger,
	}
}

// CreateFacility создает новый объект жилого комплекса
func (s *Service) CreateFacility(ctx context.Context, req *models.CreateFacilityRequest) (*models.FacilityResponse, error) {
	s.logger.Info("CreateFacility: apartment=%d, name=%q by user=%d", req.ApartmentID, req.Name, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		s.logger.Warn("CreateFacility: access denied for user=%d", req.UserID)
		return nil, err
	}

	if req.ApartmentID <= 0 {
		return nil, fmt.Errorf("%w: apartmentId must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	facility, err := s.facilityRepo.CreateFacility(ctx, &domain.Facility{
		ApartmentID: req.ApartmentID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		s.logger.Error("CreateFacility: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateFacility - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateFacility: facility id=%d created", facility.ID)
	return models.FromDomainFacility(facility), nil
}

// GetFacility получает объект по ID
func (s *Service) GetFacility(ctx context.Context, facilityID int64) (*models.FacilityResponse, error) {
	s.logger.Info("GetFacility: fetching facility id=%d", facilityID)

	facility, err := s.facilityRepo.GetFacilityByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("GetFacility: facility id=%d not found", facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("GetFacility: repository error for facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: GetFacility - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainFacility(facility), nil
}

// ListFacilities получает все объекты жилого комплекса
func (s *Service) ListFacilities(ctx context.Context, apartmentID int64) (*models.FacilityListResponse, error) {
	s.logger.Info("ListFacilities: fetching facilities for apartment=%d", apartmentID)

	facilities, err := s.facilityRepo.ListFacilitiesByApartment(ctx, apartmentID)
	if err != nil {
		s.logger.Error("ListFacilities: repository error for apartment=%d: %v", apartmentID, err)
		return nil, fmt.Errorf("%w: ListFacilities - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainFacilityList(facilities), nil
}

// UpdateFacility обновляет имя и описание объекта
func (s *Service) UpdateFacility(ctx context.Context, facilityID int64, req *models.UpdateFacilityRequest) (*models.FacilityResponse, error) {
	s.logger.Info("UpdateFacility: facility id=%d by user=%d", facilityID, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		s.logger.Warn("UpdateFacility: access denied for user=%d", req.UserID)
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if err := s.facilityRepo.UpdateFacility(ctx, facilityID, req.Name, req.Description); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("UpdateFacility: facility id=%d not found", facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("UpdateFacility: repository error for facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: UpdateFacility - repository error: %v", ErrInternal, err)
	}

	return s.GetFacility(ctx, facilityID)
}

// CreateInstructor создает нового инструктора объекта
func (s *Service) CreateInstructor(ctx context.Context, req *models.CreateInstructorRequest) (*models.InstructorResponse, error) {
	s.logger.Info("CreateInstructor: facility=%d, name=%q by user=%d", req.FacilityID, req.Name, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		s.logger.Warn("CreateInstructor: access denied for user=%d", req.UserID)
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	// Объект должен существовать
	if _, err := s.facilityRepo.GetFacilityByID(ctx, req.FacilityID); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("CreateInstructor: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("CreateInstructor: repository error for facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: CreateInstructor - repository error: %v", ErrInternal, err)
	}

	instructor, err := s.facilityRepo.CreateInstructor(ctx, &domain.Instructor{
		FacilityID:  req.FacilityID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		s.logger.Error("CreateInstructor: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateInstructor - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateInstructor: instructor id=%d created", instructor.ID)
	return models.FromDomainInstructor(instructor), nil
}

// GetInstructor получает инструктора по ID
func (s *Service) GetInstructor(ctx context.Context, instructorID int64) (*models.InstructorResponse, error) {
	s.logger.Info("GetInstructor: fetching instructor id=%d", instructorID)

	instructor, err := s.facilityRepo.GetInstructorByID(ctx, instructorID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrInstructorNotFound) {
			s.logger.Warn("GetInstructor: instructor id=%d not found", instructorID)
			return nil, ErrInstructorNotFound
		}
		s.logger.Error("GetInstructor: repository error for instructor id=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: GetInstructor - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainInstructor(instructor), nil
}

// ListInstructors получает всех инструкторов объекта
func (s *Service) ListInstructors(ctx context.Context, facilityID int64) (*models.InstructorListResponse, error) {
	s.logger.Info("ListInstructors: fetching instructors for facility=%d", facilityID)

	instructors, err := s.facilityRepo.ListInstructorsByFacility(ctx, facilityID)
	if err != nil {
		s.logger.Error("ListInstructors: repository error for facility=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: ListInstructors - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainInstructorList(instructors), nil
}

// ListFacilitySchedules получает все расписания объекта
func (s *Service) ListFacilitySchedules(ctx context.Context, facilityID int64) (*models.ScheduleListResponse, error) {
	s.logger.Info("ListFacilitySchedules: fetching schedules for facility=%d", facilityID)

	schedules, err := s.scheduleRepo.ListByFacility(ctx, facilityID)
	if err != nil {
		s.logger.Error("ListFacilitySchedules: repository error for facility=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: ListFacilitySchedules - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainScheduleList(schedules), nil
}

// ListInstructorSchedules получает все расписания инструктора
func (s *Service) ListInstructorSchedules(ctx context.Context, instructorID int64) (*models.ScheduleListResponse, error) {
	s.logger.Info("ListInstructorSchedules: fetching schedules for instructor=%d", instructorID)

	schedules, err := s.scheduleRepo.ListByInstructor(ctx, instructorID)
	if err != nil {
		s.logger.Error("ListInstructorSchedules: repository error for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: ListInstructorSchedules - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainScheduleList(schedules), nil
}

// CheckAdmin проверяет, что пользователь имеет роль администратора.
// Используется обработчиками операций, у которых нет собственного сервиса
// (управление расписаниями и генерация слотов).
func (s *Service) CheckAdmin(ctx context.Context, userID int64) error {
	return s.checkAdminAccess(ctx, userID)
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
