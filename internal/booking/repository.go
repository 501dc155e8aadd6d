package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts the booking inside a transaction that serializes
	// writers per doctor and date, so two concurrent requests for the same
	// slot cannot both pass the overlap check.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListForDoctorDate(ctx context.Context, doctorID string, date time.Time) ([]*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const bookingJoins = `public.bookings b
	JOIN public.doctors d ON d.id = b.doctor_id
	JOIN public.users du ON du.id = d.user_id
	JOIN public.users pu ON pu.id = b.patient_id`

func bookingColumns(extra ...string) []string {
	cols := []string{
		"b.id", "b.doctor_id", "du.full_name", "d.user_id",
		"b.patient_id", "pu.full_name",
		"b.date", "b.start_time", "b.end_time", "b.duration_minutes",
		"b.status", "b.created_at", "b.updated_at",
	}
	return append(cols, extra...)
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.DoctorID, &b.DoctorName, &b.DoctorUserID,
		&b.PatientID, &b.PatientName,
		&b.Date, &b.StartTime, &b.EndTime, &b.DurationMinutes,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Serialize concurrent writers for this doctor/date. The lock is
	// transaction-scoped and released automatically on commit or rollback.
	lockKey := b.DoctorID + "@" + b.Date.Format("2006-01-02")
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, lockKey); err != nil {
		return fmt.Errorf("acquire booking lock failed: %w", err)
	}

	// Re-check overlap while holding the lock; the service's check ran
	// before the transaction started and may be stale. Start and end are
	// zero-padded HH:MM, so text comparison orders correctly.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"doctor_id": b.DoctorID, "date": b.Date}).
		Where(squirrel.Eq{"status": []Status{StatusPending, StatusAccepted}}).
		Where(squirrel.Lt{"start_time": b.EndTime}).
		Where(squirrel.Gt{"end_time": b.StartTime}).
		Limit(1).
		ToSql()
	if err != nil {
		return fmt.Errorf("build overlap check query failed: %w", err)
	}

	var one int
	err = tx.QueryRow(ctx, query, args...).Scan(&one)
	if err == nil {
		return ErrSlotConflict
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("overlap check failed: %w", err)
	}

	query, args, err = psql.Insert("public.bookings").
		Columns("doctor_id", "patient_id", "date", "start_time", "end_time", "duration_minutes", "status").
		Values(b.DoctorID, b.PatientID, b.Date, b.StartTime, b.EndTime, b.DurationMinutes, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.ExclusionViolation:
				return ErrSlotConflict
			case pgerrcode.ForeignKeyViolation:
				return ErrDoctorNotFound
			}
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns()...).
		From(bookingJoins).
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListForDoctorDate returns every booking of a doctor on a date regardless of
// status, ordered by start time. Callers that only care about occupied slots
// filter by status themselves.
func (r *pgxRepository) ListForDoctorDate(ctx context.Context, doctorID string, date time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns()...).
		From(bookingJoins).
		Where(squirrel.Eq{"b.doctor_id": doctorID, "b.date": date}).
		OrderBy("b.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select(bookingColumns("count(*) OVER() as total_count")...).
		From(bookingJoins)

	if filter.DoctorID != "" {
		builder = builder.Where(squirrel.Eq{"b.doctor_id": filter.DoctorID})
	}
	if filter.PatientID != "" {
		builder = builder.Where(squirrel.Eq{"b.patient_id": filter.PatientID})
	}
	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"b.date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(squirrel.LtOrEq{"b.date": *filter.DateTo})
	}

	sortBy := "b.date"
	if filter.SortBy == "created_at" {
		sortBy = "b.created_at"
	}
	sortOrder := "ASC"
	if filter.SortOrder == "desc" {
		sortOrder = "DESC"
	}
	builder = builder.OrderBy(fmt.Sprintf("%s %s, b.start_time %s", sortBy, sortOrder, sortOrder))

	offset := (filter.Page - 1) * filter.PageSize
	builder = builder.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		list  []*Booking
		total int
	)
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, b)
	}
	return list, total, rows.Err()
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
