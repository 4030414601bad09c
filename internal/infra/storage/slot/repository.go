package slot

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

var slotColumns = []string{
	"id", "schedule_id", "facility_id", "instructor_id",
	"slot_date", "start_time", "end_time", "capacity", "created_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает слоты пачкой.
// Конфликты по (schedule_id, slot_date, start_time) пропускаются,
// поэтому повторная генерация идемпотентна.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("facility_slots").
		Columns("schedule_id", "facility_id", "instructor_id", "slot_date",
			"start_time", "end_time", "capacity")

	for _, s := range slots {
		builder = builder.Values(
			s.ScheduleID, s.FacilityID, s.InstructorID, s.Date,
			s.StartTime, s.EndTime, s.Capacity,
		)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (schedule_id, slot_date, start_time) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByFacilityAndDate получает все слоты объекта на указанную дату
func (r *Repository) GetByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) ([]*domain.TimeSlot, error) {
	return r.list(ctx, squirrel.Eq{
		"facility_id": facilityID,
		"slot_date":   date,
	}, "GetByFacilityAndDate")
}

// GetByScheduleInRange получает слоты расписания в интервале дат [from, to].
// Внутри транзакции строки блокируются через FOR UPDATE.
func (r *Repository) GetByScheduleInRange(ctx context.Context, scheduleID int64, from, to time.Time) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(slotColumns...).
		From("facility_slots").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		Where(squirrel.GtOrEq{"slot_date": from}).
		Where(squirrel.LtOrEq{"slot_date": to}).
		OrderBy("slot_date ASC", "start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByScheduleInRange - build select query: %w", ErrBuildQuery, err)
	}

	return r.queryslots(ctx, executor, query, args, "GetByScheduleInRange")
}

// MaxDateBySchedule возвращает дату самого дальнего слота расписания,
// nil - когда слотов нет
func (r *Repository) MaxDateBySchedule(ctx context.Context, scheduleID int64) (*time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("MAX(slot_date)").
		From("facility_slots").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: MaxDateBySchedule - build select query: %w", ErrBuildQuery, err)
	}

	var maxDate sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&maxDate); err != nil {
		return nil, fmt.Errorf("%w: MaxDateBySchedule - scan row: %w", ErrScanRow, err)
	}

	if !maxDate.Valid {
		return nil, nil
	}

	return &maxDate.Time, nil
}

// GetByWindow получает слот объекта с точным совпадением даты и границ окна
func (r *Repository) GetByWindow(ctx context.Context, facilityID int64, date time.Time, start, end string) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("facility_slots").
		Where(squirrel.Eq{
			"facility_id": facilityID,
			"slot_date":   date,
			"start_time":  start,
			"end_time":    end,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByWindow - build select query: %w", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWindow - scan slot: %w", ErrScanRow, err)
	}

	return s, nil
}

// DeleteByIDs удаляет слоты по списку ID
func (r *Repository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("facility_slots").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByIDs - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByIDs - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) list(ctx context.Context, where squirrel.Eq, method string) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("facility_slots").
		Where(where).
		OrderBy("slot_date ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, method, err)
	}

	return r.queryslots(ctx, executor, query, args, method)
}

func (r *Repository) queryslots(ctx context.Context, executor DBExecutor, query string, args []any, method string) ([]*domain.TimeSlot, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, method, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, method, err)
	}

	return slots, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row rowScanner) (*domain.TimeSlot, error) {
	var s domain.TimeSlot
	var createdAt sql.NullTime

	err := row.Scan(
		&s.ID, &s.ScheduleID, &s.FacilityID, &s.InstructorID,
		&s.Date, &s.StartTime, &s.EndTime, &s.Capacity, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time

	return &s, nil
}
