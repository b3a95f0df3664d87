package facility

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
	Create(ctx context.Context, f *Facility) error
	GetByID(ctx context.Context, id string) (*Facility, error)
	List(ctx context.Context, filter Filter) ([]*Facility, int, error)
	Update(ctx context.Context, f *Facility) error
	Delete(ctx context.Context, id string) error

	// CountCourts returns how many courts reference the facility. Used to
	// refuse deleting a facility that still has courts.
	CountCourts(ctx context.Context, facilityID string) (int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, f *Facility) error {
	const query = `
		INSERT INTO public.facilities (owner_id, name, location, description, sports, amenities, images, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx,
		query,
		f.OwnerID, f.Name, f.Location, f.Description, f.Sports, f.Amenities, f.Images, f.Status,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateName
		}
		return fmt.Errorf("create facility failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Facility, error) {
	const query = `
		SELECT f.id, f.owner_id, u.username, f.name, f.location, f.description,
		       f.sports, f.amenities, f.images, f.status, f.created_at, f.updated_at
		FROM public.facilities f
		JOIN public.users u ON f.owner_id = u.id
		WHERE f.id = $1
	`

	var f Facility
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.OwnerID, &f.OwnerName, &f.Name, &f.Location, &f.Description,
		&f.Sports, &f.Amenities, &f.Images, &f.Status, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get facility failed: %w", err)
	}
	return &f, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Facility, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"f.id", "f.owner_id", "u.username", "f.name", "f.location", "f.description",
		"f.sports", "f.amenities", "f.images", "f.status", "f.created_at", "f.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.facilities f").
		Join("public.users u ON f.owner_id = u.id")

	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"f.owner_id": filter.OwnerID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"f.status": filter.Status})
	}
	if filter.Sport != "" {
		query = query.Where("? = ANY(f.sports)", filter.Sport)
	}
	if filter.SearchTerm != "" {
		pattern := "%" + filter.SearchTerm + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"f.name": pattern},
			squirrel.ILike{"f.description": pattern},
			squirrel.ILike{"f.location": pattern},
		})
	}

	orderBy := "f.created_at"
	if filter.SortBy != "" {
		orderBy = "f." + filter.SortBy
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
		return nil, 0, fmt.Errorf("build list facilities query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list facilities failed: %w", err)
	}
	defer rows.Close()

	var facilities []*Facility
	var total int

	for rows.Next() {
		var f Facility
		if err := rows.Scan(
			&f.ID, &f.OwnerID, &f.OwnerName, &f.Name, &f.Location, &f.Description,
			&f.Sports, &f.Amenities, &f.Images, &f.Status, &f.CreatedAt, &f.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan facility failed: %w", err)
		}
		facilities = append(facilities, &f)
	}

	return facilities, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, f *Facility) error {
	const query = `
		UPDATE public.facilities
		SET name = $1, location = $2, description = $3, sports = $4,
		    amenities = $5, images = $6, status = $7, updated_at = now()
		WHERE id = $8
	`

	ct, err := r.pool.Exec(
		ctx, query,
		f.Name, f.Location, f.Description, f.Sports, f.Amenities, f.Images, f.Status, f.ID,
	)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateName
		}
		return fmt.Errorf("update facility failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.facilities WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrHasCourts
		}
		return fmt.Errorf("delete facility failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CountCourts(ctx context.Context, facilityID string) (int, error) {
	const query = `SELECT count(*) FROM public.courts WHERE facility_id = $1`

	var n int
	if err := r.pool.QueryRow(ctx, query, facilityID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count courts failed: %w", err)
	}
	return n, nil
}
