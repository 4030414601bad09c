package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	"github.com/m04kA/RC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/RC-FacilityService/pkg/psqlbuilder"
)

var scheduleColumns = []string{
	"id", "instructor_id", "facility_id", "day_of_week",
	"start_time", "end_time", "slot_duration_minutes", "capacity",
	"created_at", "updated_at",
}

// Repository репозиторий для работы с расписаниями инструкторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое расписание инструктора
func (r *Repository) Create(ctx context.Context, s *domain.InstructorSchedule) (*domain.InstructorSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("instructor_schedules").
		Columns("instructor_id", "facility_id", "day_of_week", "start_time", "end_time",
			"slot_duration_minutes", "capacity").
		Values(s.InstructorID, s.FacilityID, s.DayOfWeek, s.StartTime, s.EndTime,
			s.SlotDurationMinutes, s.Capacity).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает расписание по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.InstructorSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("instructor_schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	s, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan schedule: %w", ErrScanRow, err)
	}

	return s, nil
}

// Update обновляет параметры расписания
func (r *Repository) Update(ctx context.Context, s *domain.InstructorSchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("instructor_schedules").
		Set("day_of_week", s.DayOfWeek).
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("slot_duration_minutes", s.SlotDurationMinutes).
		Set("capacity", s.Capacity).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// ListByFacility получает все расписания объекта
func (r *Repository) ListByFacility(ctx context.Context, facilityID int64) ([]*domain.InstructorSchedule, error) {
	return r.list(ctx, squirrel.Eq{"facility_id": facilityID}, "ListByFacility")
}

// ListByInstructor получает все расписания инструктора
func (r *Repository) ListByInstructor(ctx context.Context, instructorID int64) ([]*domain.InstructorSchedule, error) {
	return r.list(ctx, squirrel.Eq{"instructor_id": instructorID}, "ListByInstructor")
}

func (r *Repository) list(ctx context.Context, where squirrel.Eq, method string) ([]*domain.InstructorSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("instructor_schedules").
		Where(where).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	schedules := make([]*domain.InstructorSchedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, method, err)
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, method, err)
	}

	return schedules, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (*domain.InstructorSchedule, error) {
	var s domain.InstructorSchedule
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID, &s.InstructorID, &s.FacilityID, &s.DayOfWeek,
		&s.StartTime, &s.EndTime, &s.SlotDurationMinutes, &s.Capacity,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
