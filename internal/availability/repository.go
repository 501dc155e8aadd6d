package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, w *Window) error
	GetByID(ctx context.Context, id string) (*Window, error)
	ListForDoctorDate(ctx context.Context, doctorID string, date time.Time) ([]*Window, error)
	List(ctx context.Context, filter Filter) ([]*Window, int, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, w *Window) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.availability_windows").
		Columns("doctor_id", "date", "start_time", "end_time").
		Values(w.DoctorID, w.Date, w.StartTime, w.EndTime).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create window query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&w.ID, &w.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Window, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "doctor_id", "date", "start_time", "end_time", "created_at").
		From("public.availability_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get window query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var w Window
	if err := row.Scan(&w.ID, &w.DoctorID, &w.Date, &w.StartTime, &w.EndTime, &w.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get window failed: %w", err)
	}
	return &w, nil
}

func (r *pgxRepository) ListForDoctorDate(ctx context.Context, doctorID string, date time.Time) ([]*Window, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "doctor_id", "date", "start_time", "end_time", "created_at").
		From("public.availability_windows").
		Where(squirrel.Eq{"doctor_id": doctorID, "date": date}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list windows query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list windows failed: %w", err)
	}
	defer rows.Close()

	var windows []*Window
	for rows.Next() {
		var w Window
		if err := rows.Scan(&w.ID, &w.DoctorID, &w.Date, &w.StartTime, &w.EndTime, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan window failed: %w", err)
		}
		windows = append(windows, &w)
	}

	return windows, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Window, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "doctor_id", "date", "start_time", "end_time", "created_at",
		"count(*) OVER() as total_count").
		From("public.availability_windows")

	if filter.DoctorID != "" {
		query = query.Where(squirrel.Eq{"doctor_id": filter.DoctorID})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	query = query.OrderBy("date ASC", "start_time ASC")

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
		return nil, 0, fmt.Errorf("build list windows query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list windows failed: %w", err)
	}
	defer rows.Close()

	var windows []*Window
	var total int

	for rows.Next() {
		var w Window
		if err := rows.Scan(&w.ID, &w.DoctorID, &w.Date, &w.StartTime, &w.EndTime, &w.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan window failed: %w", err)
		}
		windows = append(windows, &w)
	}

	return windows, total, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.availability_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete window query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete window failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
