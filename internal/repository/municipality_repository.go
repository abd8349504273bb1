package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/pkg/geo"
)

// MunicipalityRepository encapsulates municipality persistence. Candidate
// lookups are always bounded by a bounding box so no request scans the
// full table.
type MunicipalityRepository interface {
	Create(ctx context.Context, m *domain.Municipality) error
	GetByID(ctx context.Context, id string) (*domain.Municipality, error)
	ListWithinBox(ctx context.Context, box geo.BoundingBox, limit int) ([]domain.Municipality, error)
}

type municipalityRepository struct {
	pool *pgxpool.Pool
}

// NewMunicipalityRepository returns a Postgres-backed implementation.
func NewMunicipalityRepository(pool *pgxpool.Pool) MunicipalityRepository {
	return &municipalityRepository{pool: pool}
}

func (r *municipalityRepository) Create(ctx context.Context, m *domain.Municipality) error {
	const query = `
        INSERT INTO municipalities (name, district, state, latitude, longitude, area_km2, verified)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		m.Name,
		m.District,
		m.State,
		m.Home.Lat,
		m.Home.Lon,
		m.AreaKm2,
		m.Verified,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *municipalityRepository) GetByID(ctx context.Context, id string) (*domain.Municipality, error) {
	const query = `
        SELECT id, name, district, state, latitude, longitude, area_km2, verified, created_at, updated_at
        FROM municipalities WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *municipalityRepository) ListWithinBox(ctx context.Context, box geo.BoundingBox, limit int) ([]domain.Municipality, error) {
	const query = `
        SELECT id, name, district, state, latitude, longitude, area_km2, verified, created_at, updated_at
        FROM municipalities
        WHERE latitude BETWEEN $1 AND $2 AND longitude BETWEEN $3 AND $4
        ORDER BY id
        LIMIT $5`
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, query, box.LatMin, box.LatMax, box.LonMin, box.LonMax, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMunicipalities(rows)
}

func (r *municipalityRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Municipality, error) {
	var m domain.Municipality
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&m.ID,
		&m.Name,
		&m.District,
		&m.State,
		&m.Home.Lat,
		&m.Home.Lon,
		&m.AreaKm2,
		&m.Verified,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMunicipalities(rows pgx.Rows) ([]domain.Municipality, error) {
	var result []domain.Municipality
	for rows.Next() {
		var m domain.Municipality
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.District,
			&m.State,
			&m.Home.Lat,
			&m.Home.Lon,
			&m.AreaKm2,
			&m.Verified,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
