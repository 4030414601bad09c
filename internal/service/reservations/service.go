package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	reservationRepo "github.com/m04kA/RC-FacilityService/internal/infra/storage/reservation"
	"github.com/m04kA/RC-FacilityService/internal/integrations/notifyservice"
	userClient "github.com/m04kA/RC-FacilityService/internal/integrations/userservice"
	"github.com/m04kA/RC-FacilityService/internal/service/reservations/models"
)

// Service сервис жизненного цикла бронирований.
// Переходы статусов выполняются условными апдейтами (сравнение с ожидаемым
// статусом в WHERE), поэтому два администратора не могут обработать одну
// заявку одновременно.
type Service struct {
	reservationRepo ReservationRepository
	facilityRepo    FacilityRepository
	userClient      UserServiceClient
	notifyClient    NotifyServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	facilityRepo FacilityRepository,
	userClient UserServiceClient,
	notifyClient NotifyServiceClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		facilityRepo:    facilityRepo,
		userClient:      userClient,
		notifyClient:    notifyClient,
		logger:          logger,
	}
}

// Approve подтверждает заявку на бронирование (pending -> agree).
// Доступно только администратору.
func (s *Service) Approve(ctx context.Context, reservationID int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("Approve: reservation id=%d by user=%d", reservationID, userID)
	return s.resolve(ctx, reservationID, userID, domain.StatusAgree, notifyservice.EventReservationApproved)
}

// Reject отклоняет заявку на бронирование (pending -> reject).
// Доступно только администратору. Отклонённая заявка освобождает место.
func (s *Service) Reject(ctx context.Context, reservationID int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("Reject: reservation id=%d by user=%d", reservationID, userID)
	return s.resolve(ctx, reservationID, userID, domain.StatusReject, notifyservice.EventReservationRejected)
}

// resolve выполняет переход pending -> agree|reject с проверкой прав администратора
func (s *Service) resolve(ctx context.Context, reservationID int64, userID int64, next domain.ReservationStatus, event string) (*models.ReservationResponse, error) {
	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	// Подтверждение и отклонение доступны только администратору
	if err := s.checkAdminAccess(ctx, userID); err != nil {
		s.logger.Warn("resolve: access denied for user=%d on reservation id=%d", userID, reservationID)
		return nil, err
	}

	if !reservation.Status.CanTransitionTo(next) {
		s.logger.Warn("resolve: invalid transition %s -> %s for reservation id=%d",
			reservation.Status, next, reservationID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, next)
	}

	if err := s.reservationRepo.UpdateStatusIf(ctx, reservationID, reservation.Status, next); err != nil {
		if errors.Is(err, reservationRepo.ErrStatusConflict) {
			s.logger.Warn("resolve: reservation id=%d status changed concurrently", reservationID)
			return nil, ErrStatusConflict
		}
		s.logger.Error("resolve: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: resolve - repository error: %v", ErrInternal, err)
	}

	reservation.Status = next
	s.logger.Info("resolve: reservation id=%d -> %s", reservationID, next)

	s.notifyReservation(ctx, reservation, event)

	return models.FromDomainReservation(reservation), nil
}

// Cancel отменяет бронирование.
// Житель может отменить только своё бронирование, администратор - любое.
// Для типа причины other обязателен свободный текст.
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: reservation id=%d by user=%d, reason=%s", reservationID, req.UserID, req.ReasonType)

	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	// Владелец отменяет своё бронирование, остальным нужны права администратора
	if reservation.UserID != req.UserID {
		if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", req.UserID, reservationID)
			return nil, ErrAccessDenied
		}
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return nil, ErrCannotCancel
	}

	reasonType := domain.CancelReasonType(req.ReasonType)
	if err := domain.ValidateCancelReason(reasonType, req.Reason); err != nil {
		s.logger.Warn("Cancel: invalid cancel reason for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidCancelReason, err)
	}

	if err := s.reservationRepo.CancelIf(ctx, reservationID, reservation.Status, reasonType, req.Reason); err != nil {
		if errors.Is(err, reservationRepo.ErrStatusConflict) {
			s.logger.Warn("Cancel: reservation id=%d status changed concurrently", reservationID)
			return nil, ErrStatusConflict
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: reservation id=%d cancelled with reason=%s", reservationID, reasonType)

	// Перечитываем бронь, чтобы вернуть заполненные поля отмены
	cancelled, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	s.notifyReservation(ctx, cancelled, notifyservice.EventReservationCancelled)

	return models.FromDomainReservation(cancelled), nil
}

// GetByID получает бронирование по ID.
// Житель видит только свои бронирования, администратор - любые.
func (s *Service) GetByID(ctx context.Context, reservationID int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", reservationID, userID)

	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.UserID != userID {
		if err := s.checkAdminAccess(ctx, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, reservationID)
			return nil, ErrAccessDenied
		}
	}

	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает историю бронирований жителя
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var status *domain.ReservationStatus
	if req.Status != nil {
		converted, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &converted
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetFacilityReservations получает бронирования объекта с фильтрацией
// по периоду и статусу. Доступно только администратору.
func (s *Service) GetFacilityReservations(ctx context.Context, req *models.GetFacilityReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetFacilityReservations: facility=%d, user=%d", req.FacilityID, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		s.logger.Warn("GetFacilityReservations: access denied for user=%d", req.UserID)
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetFacilityReservations: invalid filter for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityReservations: repository error for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetFacilityReservations: fetched %d reservations for facility=%d",
		len(reservations), req.FacilityID)
	return models.FromDomainReservationList(reservations), nil
}

// Вспомогательные методы

func (s *Service) getReservation(ctx context.Context, reservationID int64) (*domain.FacilityReservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("getReservation: reservation id=%d not found", reservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("getReservation: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: getReservation - repository error: %v", ErrInternal, err)
	}

	return reservation, nil
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

// notifyReservation отправляет уведомление о смене статуса бронирования.
// Ошибка получения имени объекта уведомление не блокирует.
func (s *Service) notifyReservation(ctx context.Context, r *domain.FacilityReservation, event string) {
	facilityName := ""
	if facility, err := s.facilityRepo.GetFacilityByID(ctx, r.FacilityID); err == nil {
		facilityName = facility.Name
	}

	s.notifyClient.SendEventBestEffort(ctx, notifyservice.Event{
		Type:          event,
		UserID:        r.UserID,
		ReservationID: r.ID,
		FacilityName:  facilityName,
		Date:          r.ReservationDate.Format(domain.DateFormat),
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
	})
}
