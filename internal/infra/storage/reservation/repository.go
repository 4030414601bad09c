package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	"github.com/m04kA/RC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/RC-FacilityService/pkg/psqlbuilder"
)

var reservationColumns = []string{
	"id", "facility_id", "user_id", "user_building",
	"reservation_date", "start_time", "end_time", "status",
	"cancel_reason_type", "cancel_reason", "cancelled_at",
	"created_at", "updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую бронь
func (r *Repository) Create(ctx context.Context, res *domain.FacilityReservation) (*domain.FacilityReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("facility_reservations").
		Columns("facility_id", "user_id", "user_building",
			"reservation_date", "start_time", "end_time", "status").
		Values(res.FacilityID, res.UserID, res.UserBuilding,
			res.ReservationDate, res.StartTime, res.EndTime, res.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронь по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.FacilityReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("facility_reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return res, nil
}

// GetActiveByFacilityAndDate получает активные брони объекта на указанную дату.
// Внутри транзакции строки блокируются через FOR UPDATE - на этом держится
// проверка вместимости при конкурентных бронированиях.
func (r *Repository) GetActiveByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) ([]*domain.FacilityReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("facility_reservations").
		Where(squirrel.Eq{
			"facility_id":      facilityID,
			"reservation_date": date,
			"status":           domain.ActiveStatuses,
		}).
		OrderBy("start_time ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByFacilityAndDate - build select query: %w", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, executor, query, args, "GetActiveByFacilityAndDate")
}

// GetByUserID получает брони пользователя, новые первыми.
// При переданном статусе возвращает только брони в этом статусе.
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.FacilityReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("facility_reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("reservation_date DESC", "start_time DESC", "id DESC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %w", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, executor, query, args, "GetByUserID")
}

// GetByFacilityWithFilter получает брони объекта с фильтрацией
// по интервалу дат и статусу
func (r *Repository) GetByFacilityWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.FacilityReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("facility_reservations").
		Where(squirrel.Eq{"facility_id": filter.FacilityID}).
		OrderBy("reservation_date ASC", "start_time ASC", "id ASC")

	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		builder = builder.Where(squirrel.Eq{"status": domain.ActiveStatuses})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, executor, query, args, "GetByFacilityWithFilter")
}

// UpdateStatusIf переводит бронь из ожидаемого статуса в новый.
// Возвращает ErrStatusConflict, если статус уже изменился конкурентно.
func (r *Repository) UpdateStatusIf(ctx context.Context, id int64, expected, next domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("facility_reservations").
		Set("status", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": expected}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - build update query: %w", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, "UpdateStatusIf")
}

// CancelIf переводит бронь в статус cancel с причиной отмены.
// Возвращает ErrStatusConflict, если статус уже изменился конкурентно.
func (r *Repository) CancelIf(ctx context.Context, id int64, expected domain.ReservationStatus, reasonType domain.CancelReasonType, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("facility_reservations").
		Set("status", domain.StatusCancel).
		Set("cancel_reason_type", reasonType).
		Set("cancel_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": expected}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelIf - build update query: %w", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, "CancelIf")
}

// CountByStatus считает брони объекта по статусам
func (r *Repository) CountByStatus(ctx context.Context, filter domain.StatsFilter) ([]domain.StatusCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("status", "COUNT(*)").
		From("facility_reservations").
		Where(squirrel.Eq{"facility_id": filter.FacilityID}).
		GroupBy("status")

	query, args, err := applyStatsPeriod(builder, filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]domain.StatusCount, 0)
	for rows.Next() {
		var sc domain.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %w", ErrScanRow, err)
		}
		counts = append(counts, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

// CountByBuilding считает брони объекта по корпусам.
// Брони без корпуса попадают в пустой ключ.
func (r *Repository) CountByBuilding(ctx context.Context, filter domain.StatsFilter) ([]domain.BucketCount, error) {
	return r.countBuckets(ctx, "COALESCE(user_building, '')", filter, "CountByBuilding")
}

// CountByWeekday считает брони объекта по дням недели
func (r *Repository) CountByWeekday(ctx context.Context, filter domain.StatsFilter) ([]domain.BucketCount, error) {
	return r.countBuckets(ctx, "TRIM(TO_CHAR(reservation_date, 'DAY'))", filter, "CountByWeekday")
}

// CountByTimePeriod считает брони объекта по периодам дня.
// Границы периодов совпадают с domain.TimePeriodOf.
func (r *Repository) CountByTimePeriod(ctx context.Context, filter domain.StatsFilter) ([]domain.BucketCount, error) {
	expr := `CASE
		WHEN start_time >= '06:00' AND start_time < '12:00' THEN 'morning'
		WHEN start_time >= '12:00' AND start_time < '18:00' THEN 'afternoon'
		WHEN start_time >= '18:00' AND start_time < '22:00' THEN 'evening'
		ELSE 'night'
	END`
	return r.countBuckets(ctx, expr, filter, "CountByTimePeriod")
}

// CountByUser считает брони объекта по пользователям
func (r *Repository) CountByUser(ctx context.Context, filter domain.StatsFilter) ([]domain.BucketCount, error) {
	return r.countBuckets(ctx, "user_id::TEXT", filter, "CountByUser")
}

func applyStatsPeriod(builder squirrel.SelectBuilder, filter domain.StatsFilter) squirrel.SelectBuilder {
	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}
	return builder
}

func (r *Repository) countBuckets(ctx context.Context, keyExpr string, filter domain.StatsFilter, method string) ([]domain.BucketCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(keyExpr+" AS bucket", "COUNT(*)").
		From("facility_reservations").
		Where(squirrel.Eq{"facility_id": filter.FacilityID}).
		GroupBy("bucket").
		OrderBy("bucket ASC")

	query, args, err := applyStatsPeriod(builder, filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	counts := make([]domain.BucketCount, 0)
	for rows.Next() {
		var bc domain.BucketCount
		if err := rows.Scan(&bc.Key, &bc.Count); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, method, err)
		}
		counts = append(counts, bc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, method, err)
	}

	return counts, nil
}

func (r *Repository) execConditional(ctx context.Context, executor DBExecutor, query string, args []any, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

func (r *Repository) queryReservations(ctx context.Context, executor DBExecutor, query string, args []any, method string) ([]*domain.FacilityReservation, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	reservations := make([]*domain.FacilityReservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, method, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, method, err)
	}

	return reservations, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*domain.FacilityReservation, error) {
	var res domain.FacilityReservation
	var reasonType, reason sql.NullString
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID, &res.FacilityID, &res.UserID, &res.UserBuilding,
		&res.ReservationDate, &res.StartTime, &res.EndTime, &res.Status,
		&reasonType, &reason, &cancelledAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reasonType.Valid {
		rt := domain.CancelReasonType(reasonType.String)
		res.CancelReasonType = &rt
	}
	if reason.Valid {
		res.CancelReason = &reason.String
	}
	if cancelledAt.Valid {
		res.CancelledAt = &cancelledAt.Time
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}
