package specialty

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
	Create(ctx context.Context, sp *Specialty) error
	GetByID(ctx context.Context, id string) (*Specialty, error)
	List(ctx context.Context, filter Filter) ([]*Specialty, int, error)
	Update(ctx context.Context, sp *Specialty) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, sp *Specialty) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.specialties").
		Columns("name", "description").
		Values(sp.Name, sp.Description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create specialty query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&sp.ID, &sp.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNameAlreadyUsed
		}
		return fmt.Errorf("create specialty failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Specialty, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "description", "created_at").
		From("public.specialties").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get specialty query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var sp Specialty
	if err := row.Scan(&sp.ID, &sp.Name, &sp.Description, &sp.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get specialty failed: %w", err)
	}
	return &sp, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Specialty, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "name", "description", "created_at", "count(*) OVER() as total_count").
		From("public.specialties")

	if filter.Keyword != "" {
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": "%" + filter.Keyword + "%"},
			squirrel.ILike{"description": "%" + filter.Keyword + "%"},
		})
	}

	// Sorting
	orderBy := "name"
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
		return nil, 0, fmt.Errorf("build list specialties query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list specialties failed: %w", err)
	}
	defer rows.Close()

	var result []*Specialty
	var total int

	for rows.Next() {
		var sp Specialty
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Description, &sp.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan specialty failed: %w", err)
		}
		result = append(result, &sp)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, sp *Specialty) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.specialties").
		Set("name", sp.Name).
		Set("description", sp.Description).
		Where(squirrel.Eq{"id": sp.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update specialty query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNameAlreadyUsed
		}
		return fmt.Errorf("update specialty failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.specialties").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete specialty query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrInUse
		}
		return fmt.Errorf("delete specialty failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
