package facility

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	"github.com/m04kA/RC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/RC-FacilityService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с объектами и инструкторами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория объектов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateFacility создает новый объект
func (r *Repository) CreateFacility(ctx context.Context, f *domain.Facility) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("facilities").
		Columns("apartment_id", "name", "description").
		Values(f.ApartmentID, f.Name, f.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateFacility - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&f.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateFacility - execute insert: %w", ErrExecQuery, err)
	}

	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return f, nil
}

// GetFacilityByID получает объект по ID
func (r *Repository) GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "apartment_id", "name", "description", "created_at", "updated_at",
	).
		From("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetFacilityByID - build select query: %w", ErrBuildQuery, err)
	}

	var f domain.Facility
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&f.ID, &f.ApartmentID, &f.Name, &f.Description, &createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetFacilityByID - scan facility: %w", ErrScanRow, err)
	}

	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return &f, nil
}

// ListFacilitiesByApartment получает все объекты жилого комплекса
func (r *Repository) ListFacilitiesByApartment(ctx context.Context, apartmentID int64) ([]*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "apartment_id", "name", "description", "created_at", "updated_at",
	).
		From("facilities").
		Where(squirrel.Eq{"apartment_id": apartmentID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListFacilitiesByApartment - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFacilitiesByApartment - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	facilities := make([]*domain.Facility, 0)
	for rows.Next() {
		var f domain.Facility
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&f.ID, &f.ApartmentID, &f.Name, &f.Description, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListFacilitiesByApartment - scan row: %w", ErrScanRow, err)
		}

		f.CreatedAt = createdAt.Time
		f.UpdatedAt = updatedAt.Time
		facilities = append(facilities, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListFacilitiesByApartment - rows error: %w", ErrScanRow, err)
	}

	return facilities, nil
}

// UpdateFacility обновляет имя и описание объекта
func (r *Repository) UpdateFacility(ctx context.Context, id int64, name string, description *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("facilities").
		Set("name", name).
		Set("description", description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateFacility - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateFacility - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateFacility - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrFacilityNotFound
	}

	return nil
}

// CreateInstructor создает нового инструктора объекта
func (r *Repository) CreateInstructor(ctx context.Context, ins *domain.Instructor) (*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("instructors").
		Columns("facility_id", "name", "description").
		Values(ins.FacilityID, ins.Name, ins.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateInstructor - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&ins.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateInstructor - execute insert: %w", ErrExecQuery, err)
	}

	ins.CreatedAt = createdAt.Time
	ins.UpdatedAt = updatedAt.Time

	return ins, nil
}

// GetInstructorByID получает инструктора по ID
func (r *Repository) GetInstructorByID(ctx context.Context, id int64) (*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "facility_id", "name", "description", "created_at", "updated_at",
	).
		From("instructors").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetInstructorByID - build select query: %w", ErrBuildQuery, err)
	}

	var ins domain.Instructor
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&ins.ID, &ins.FacilityID, &ins.Name, &ins.Description, &createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrInstructorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetInstructorByID - scan instructor: %w", ErrScanRow, err)
	}

	ins.CreatedAt = createdAt.Time
	ins.UpdatedAt = updatedAt.Time

	return &ins, nil
}

// ListInstructorsByFacility получает всех инструкторов объекта
func (r *Repository) ListInstructorsByFacility(ctx context.Context, facilityID int64) ([]*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "facility_id", "name", "description", "created_at", "updated_at",
	).
		From("instructors").
		Where(squirrel.Eq{"facility_id": facilityID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListInstructorsByFacility - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInstructorsByFacility - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	instructors := make([]*domain.Instructor, 0)
	for rows.Next() {
		var ins domain.Instructor
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&ins.ID, &ins.FacilityID, &ins.Name, &ins.Description, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListInstructorsByFacility - scan row: %w", ErrScanRow, err)
		}

		ins.CreatedAt = createdAt.Time
		ins.UpdatedAt = updatedAt.Time
		instructors = append(instructors, &ins)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListInstructorsByFacility - rows error: %w", ErrScanRow, err)
	}

	return instructors, nil
}
