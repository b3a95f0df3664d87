package court

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
	Create(ctx context.Context, ct *Court) error
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, ct *Court) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, ct *Court) error {
	const query = `
		INSERT INTO public.courts (facility_id, name, sport_type, price_per_hour, open_min, close_min)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		ct.FacilityID, ct.Name, ct.SportType, ct.PricePerHour, int(ct.OpenMin), int(ct.CloseMin),
	).Scan(&ct.ID, &ct.CreatedAt, &ct.UpdatedAt)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrFacilityNotFound
		}
		return fmt.Errorf("create court failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	const query = `
		SELECT c.id, c.facility_id, f.name, f.owner_id, c.name, c.sport_type,
		       c.price_per_hour, c.open_min, c.close_min, c.created_at, c.updated_at
		FROM public.courts c
		JOIN public.facilities f ON c.facility_id = f.id
		WHERE c.id = $1
	`

	var ct Court
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ct.ID, &ct.FacilityID, &ct.FacilityName, &ct.FacilityOwnerID, &ct.Name, &ct.SportType,
		&ct.PricePerHour, &ct.OpenMin, &ct.CloseMin, &ct.CreatedAt, &ct.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get court failed: %w", err)
	}
	return &ct, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"c.id", "c.facility_id", "f.name", "f.owner_id", "c.name", "c.sport_type",
		"c.price_per_hour", "c.open_min", "c.close_min", "c.created_at", "c.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.courts c").
		Join("public.facilities f ON c.facility_id = f.id")

	if filter.FacilityID != "" {
		query = query.Where(squirrel.Eq{"c.facility_id": filter.FacilityID})
	}
	if filter.SportType != "" {
		query = query.Where(squirrel.Eq{"c.sport_type": filter.SportType})
	}
	if filter.SearchTerm != "" {
		query = query.Where(squirrel.ILike{"c.name": "%" + filter.SearchTerm + "%"})
	}

	orderBy := "c.created_at"
	if filter.SortBy != "" {
		orderBy = "c." + filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy(orderBy + " " + orderDir)

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
		return nil, 0, fmt.Errorf("build list courts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courts failed: %w", err)
	}
	defer rows.Close()

	var courts []*Court
	var total int

	for rows.Next() {
		var ct Court
		if err := rows.Scan(
			&ct.ID, &ct.FacilityID, &ct.FacilityName, &ct.FacilityOwnerID, &ct.Name, &ct.SportType,
			&ct.PricePerHour, &ct.OpenMin, &ct.CloseMin, &ct.CreatedAt, &ct.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan court failed: %w", err)
		}
		courts = append(courts, &ct)
	}

	return courts, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, ct *Court) error {
	const query = `
		UPDATE public.courts
		SET name = $1, sport_type = $2, price_per_hour = $3, open_min = $4, close_min = $5, updated_at = now()
		WHERE id = $6
	`

	res, err := r.pool.Exec(
		ctx, query,
		ct.Name, ct.SportType, ct.PricePerHour, int(ct.OpenMin), int(ct.CloseMin), ct.ID,
	)
	if err != nil {
		return fmt.Errorf("update court failed: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.courts WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		// Bookings reference courts with ON DELETE RESTRICT; keep history.
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrHasBookings
		}
		return fmt.Errorf("delete court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
