package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id string) (*Doctor, error)
	GetByUserID(ctx context.Context, userID string) (*Doctor, error)
	List(ctx context.Context, filter Filter) ([]*Doctor, int, error)
	Update(ctx context.Context, d *Doctor) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, d *Doctor) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.doctors").
		Columns("user_id", "specialty_id", "title", "bio", "clinic_address").
		Values(d.UserID, d.SpecialtyID, d.Title, d.Bio, d.ClinicAddress).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create doctor query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return ErrProfileExists
			case pgerrcode.ForeignKeyViolation:
				return ErrInvalidSpecialty
			}
		}
		return fmt.Errorf("create doctor failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) getBy(ctx context.Context, column, value string) (*Doctor, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"d.id", "d.user_id", "u.full_name", "d.specialty_id", "s.name",
		"d.title", "d.bio", "d.clinic_address", "d.created_at", "d.updated_at",
	).
		From("public.doctors d").
		Join("public.users u ON d.user_id = u.id").
		Join("public.specialties s ON d.specialty_id = s.id").
		Where(squirrel.Eq{column: value}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get doctor query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var d Doctor
	if err := row.Scan(
		&d.ID, &d.UserID, &d.FullName, &d.SpecialtyID, &d.SpecialtyName,
		&d.Title, &d.Bio, &d.ClinicAddress, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get doctor failed: %w", err)
	}
	return &d, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Doctor, error) {
	return r.getBy(ctx, "d.id", id)
}

func (r *pgxRepository) GetByUserID(ctx context.Context, userID string) (*Doctor, error) {
	return r.getBy(ctx, "d.user_id", userID)
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Doctor, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"d.id", "d.user_id", "u.full_name", "d.specialty_id", "s.name",
		"d.title", "d.bio", "d.clinic_address", "d.created_at", "d.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.doctors d").
		Join("public.users u ON d.user_id = u.id").
		Join("public.specialties s ON d.specialty_id = s.id").
		Where(squirrel.Eq{"u.is_active": true})

	if filter.SpecialtyID != "" {
		query = query.Where(squirrel.Eq{"d.specialty_id": filter.SpecialtyID})
	}
	if filter.Keyword != "" {
		query = query.Where(squirrel.Or{
			squirrel.ILike{"u.full_name": "%" + filter.Keyword + "%"},
			squirrel.ILike{"d.bio": "%" + filter.Keyword + "%"},
			squirrel.ILike{"s.name": "%" + filter.Keyword + "%"},
		})
	}

	// Sorting
	orderBy := "u.full_name"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}

	orderDir := "ASC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list doctors query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list doctors failed: %w", err)
	}
	defer rows.Close()

	var doctors []*Doctor
	var total int

	for rows.Next() {
		var d Doctor
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.FullName, &d.SpecialtyID, &d.SpecialtyName,
			&d.Title, &d.Bio, &d.ClinicAddress, &d.CreatedAt, &d.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan doctor failed: %w", err)
		}
		doctors = append(doctors, &d)
	}

	return doctors, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, d *Doctor) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.doctors").
		Set("specialty_id", d.SpecialtyID).
		Set("title", d.Title).
		Set("bio", d.Bio).
		Set("clinic_address", d.ClinicAddress).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": d.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update doctor query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrInvalidSpecialty
		}
		return fmt.Errorf("update doctor failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
