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

	"github.com/quickcourt/quickcourt-backend/internal/pkg/timeofday"
)

type Repository interface {
	// Reserve atomically checks for conflicts and inserts the booking.
	// Returns ErrTimeConflict when the interval overlaps a confirmed booking
	// or a blocked slot on the same court and date.
	Reserve(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	ListForDate(ctx context.Context, courtID string, date time.Time) ([]*Booking, error)

	// SweepCompleted flips confirmed bookings whose end time has passed to
	// completed and returns how many rows changed.
	SweepCompleted(ctx context.Context, now time.Time) (int64, error)

	// CreateBlock goes through the same admission path as Reserve.
	CreateBlock(ctx context.Context, blk *Block) error
	GetBlockByID(ctx context.Context, id string) (*Block, error)
	DeleteBlock(ctx context.Context, id string) error
	ListBlocksForDate(ctx context.Context, courtID string, date time.Time) ([]*Block, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// lockSchedule serializes writers on one (court, date) schedule for the
// duration of the transaction.
func lockSchedule(ctx context.Context, tx pgx.Tx, courtID string, date time.Time) error {
	const query = `SELECT pg_advisory_xact_lock(hashtextextended($1 || ':' || $2, 0))`

	if _, err := tx.Exec(ctx, query, courtID, timeofday.FormatDate(date)); err != nil {
		return fmt.Errorf("lock schedule failed: %w", err)
	}
	return nil
}

// scheduleTaken reports whether [start, end) collides with a confirmed
// booking or a blocked slot on the court and date. Must run inside a
// transaction holding the schedule lock.
func scheduleTaken(ctx context.Context, tx pgx.Tx, courtID string, date time.Time, start, end timeofday.Minutes) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE court_id = $1 AND date = $2 AND status = 'confirmed'
			  AND start_min < $4 AND end_min > $3
		) OR EXISTS (
			SELECT 1 FROM public.time_slots
			WHERE court_id = $1 AND date = $2
			  AND start_min < $4 AND end_min > $3
		)
	`

	var taken bool
	err := tx.QueryRow(ctx, query, courtID, date, int(start), int(end)).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check schedule failed: %w", err)
	}
	return taken, nil
}

func (r *pgxRepository) Reserve(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reserve failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockSchedule(ctx, tx, b.CourtID, b.Date); err != nil {
		return err
	}

	taken, err := scheduleTaken(ctx, tx, b.CourtID, b.Date, b.StartMin, b.EndMin)
	if err != nil {
		return err
	}
	if taken {
		return ErrTimeConflict
	}

	const query = `
		INSERT INTO public.bookings (court_id, user_id, date, start_min, end_min, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(
		ctx, query,
		b.CourtID, b.UserID, b.Date, int(b.StartMin), int(b.EndMin), b.TotalPrice, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		// The exclusion constraint backstops the check above.
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ExclusionViolation {
			return ErrTimeConflict
		}
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrCourtNotFound
		}
		return fmt.Errorf("insert booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reserve failed: %w", err)
	}
	return nil
}

const bookingColumns = `
	b.id, b.court_id, c.name, c.facility_id, f.name, f.owner_id,
	b.user_id, u.username, b.date, b.start_min, b.end_min,
	b.total_price, b.status, b.created_at, b.updated_at
`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.CourtID, &b.CourtName, &b.FacilityID, &b.FacilityName, &b.FacilityOwnerID,
		&b.UserID, &b.UserName, &b.Date, &b.StartMin, &b.EndMin,
		&b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM public.bookings b
		JOIN public.courts c ON b.court_id = c.id
		JOIN public.facilities f ON c.facility_id = f.id
		JOIN public.users u ON b.user_id = u.id
		WHERE b.id = $1
	`

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.court_id", "c.name", "c.facility_id", "f.name", "f.owner_id",
		"b.user_id", "u.username", "b.date", "b.start_min", "b.end_min",
		"b.total_price", "b.status", "b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.courts c ON b.court_id = c.id").
		Join("public.facilities f ON c.facility_id = f.id").
		Join("public.users u ON b.user_id = u.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.CourtID != "" {
		query = query.Where(squirrel.Eq{"b.court_id": filter.CourtID})
	}
	if filter.FacilityID != "" {
		query = query.Where(squirrel.Eq{"c.facility_id": filter.FacilityID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"b.date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"b.date": *filter.DateTo})
	}

	orderBy := "b.date"
	if filter.SortBy != "" {
		orderBy = "b." + filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy(orderBy+" "+orderDir, "b.start_min ASC")

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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.CourtID, &b.CourtName, &b.FacilityID, &b.FacilityName, &b.FacilityOwnerID,
			&b.UserID, &b.UserName, &b.Date, &b.StartMin, &b.EndMin,
			&b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	const query = `
		UPDATE public.bookings
		SET status = $1, updated_at = now()
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListForDate(ctx context.Context, courtID string, date time.Time) ([]*Booking, error) {
	const query = `
		SELECT id, court_id, user_id, date, start_min, end_min, total_price, status, created_at, updated_at
		FROM public.bookings
		WHERE court_id = $1 AND date = $2 AND status = 'confirmed'
		ORDER BY start_min
	`

	rows, err := r.pool.Query(ctx, query, courtID, date)
	if err != nil {
		return nil, fmt.Errorf("list bookings for date failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.CourtID, &b.UserID, &b.Date, &b.StartMin, &b.EndMin,
			&b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, nil
}

func (r *pgxRepository) SweepCompleted(ctx context.Context, now time.Time) (int64, error) {
	const query = `
		UPDATE public.bookings
		SET status = 'completed', updated_at = now()
		WHERE status = 'confirmed'
		  AND date + make_interval(mins => end_min) <= $1
	`

	ct, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("sweep completed bookings failed: %w", err)
	}
	return ct.RowsAffected(), nil
}

func (r *pgxRepository) CreateBlock(ctx context.Context, blk *Block) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create block failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockSchedule(ctx, tx, blk.CourtID, blk.Date); err != nil {
		return err
	}

	taken, err := scheduleTaken(ctx, tx, blk.CourtID, blk.Date, blk.StartMin, blk.EndMin)
	if err != nil {
		return err
	}
	if taken {
		return ErrTimeConflict
	}

	const query = `
		INSERT INTO public.time_slots (court_id, date, start_min, end_min, blocked_reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err = tx.QueryRow(
		ctx, query,
		blk.CourtID, blk.Date, int(blk.StartMin), int(blk.EndMin), blk.Reason,
	).Scan(&blk.ID, &blk.CreatedAt)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrCourtNotFound
		}
		return fmt.Errorf("insert blocked slot failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create block failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetBlockByID(ctx context.Context, id string) (*Block, error) {
	const query = `
		SELECT t.id, t.court_id, f.owner_id, t.date, t.start_min, t.end_min, t.blocked_reason, t.created_at
		FROM public.time_slots t
		JOIN public.courts c ON t.court_id = c.id
		JOIN public.facilities f ON c.facility_id = f.id
		WHERE t.id = $1
	`

	var blk Block
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&blk.ID, &blk.CourtID, &blk.FacilityOwnerID, &blk.Date,
		&blk.StartMin, &blk.EndMin, &blk.Reason, &blk.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBlockNotFound
		}
		return nil, fmt.Errorf("get blocked slot failed: %w", err)
	}
	return &blk, nil
}

func (r *pgxRepository) DeleteBlock(ctx context.Context, id string) error {
	const query = `DELETE FROM public.time_slots WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete blocked slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrBlockNotFound
	}
	return nil
}

func (r *pgxRepository) ListBlocksForDate(ctx context.Context, courtID string, date time.Time) ([]*Block, error) {
	const query = `
		SELECT id, court_id, date, start_min, end_min, blocked_reason, created_at
		FROM public.time_slots
		WHERE court_id = $1 AND date = $2
		ORDER BY start_min
	`

	rows, err := r.pool.Query(ctx, query, courtID, date)
	if err != nil {
		return nil, fmt.Errorf("list blocked slots failed: %w", err)
	}
	defer rows.Close()

	var blocks []*Block
	for rows.Next() {
		var blk Block
		if err := rows.Scan(
			&blk.ID, &blk.CourtID, &blk.Date, &blk.StartMin, &blk.EndMin,
			&blk.Reason, &blk.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan blocked slot failed: %w", err)
		}
		blocks = append(blocks, &blk)
	}
	return blocks, nil
}
