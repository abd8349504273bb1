package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/pkg/geo"
)

// CitizenRepository defines persistence access for citizens. The
// municipality resolver is the only caller of UpdateAssignment, keeping a
// single writer on the citizen/municipality relationship.
type CitizenRepository interface {
	Create(ctx context.Context, citizen *domain.Citizen) error
	Update(ctx context.Context, citizen *domain.Citizen) error
	GetByID(ctx context.Context, id string) (*domain.Citizen, error)
	GetByEmail(ctx context.Context, email string) (*domain.Citizen, error)
	UpdateAssignment(ctx context.Context, citizenID string, municipalityID *string, coord geo.Coordinate) error
}

type citizenRepository struct {
	pool *pgxpool.Pool
}

// NewCitizenRepository returns a Postgres-backed implementation.
func NewCitizenRepository(pool *pgxpool.Pool) CitizenRepository {
	return &citizenRepository{pool: pool}
}

func (r *citizenRepository) Create(ctx context.Context, citizen *domain.Citizen) error {
	const query = `
        INSERT INTO citizens (name, email, password_hash, phone, status, integrity_score)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		citizen.Name,
		citizen.Email,
		citizen.PasswordHash,
		citizen.Phone,
		citizen.Status,
		citizen.IntegrityScore,
	).Scan(&citizen.ID, &citizen.CreatedAt, &citizen.UpdatedAt)
}

func (r *citizenRepository) Update(ctx context.Context, citizen *domain.Citizen) error {
	const query = `
        UPDATE citizens SET name=$1, email=$2, password_hash=$3, phone=$4, status=$5,
            integrity_score=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		citizen.Name,
		citizen.Email,
		citizen.PasswordHash,
		citizen.Phone,
		citizen.Status,
		citizen.IntegrityScore,
		citizen.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *citizenRepository) GetByID(ctx context.Context, id string) (*domain.Citizen, error) {
	const query = `
        SELECT id, name, email, password_hash, phone, status, latitude, longitude,
               municipality_id, integrity_score, created_at, updated_at
        FROM citizens WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *citizenRepository) GetByEmail(ctx context.Context, email string) (*domain.Citizen, error) {
	const query = `
        SELECT id, name, email, password_hash, phone, status, latitude, longitude,
               municipality_id, integrity_score, created_at, updated_at
        FROM citizens WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *citizenRepository) UpdateAssignment(ctx context.Context, citizenID string, municipalityID *string, coord geo.Coordinate) error {
	const query = `
        UPDATE citizens SET municipality_id=$1, latitude=$2, longitude=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query, municipalityID, coord.Lat, coord.Lon, citizenID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *citizenRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Citizen, error) {
	var (
		citizen domain.Citizen
		lat     *float64
		lon     *float64
	)
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&citizen.ID,
		&citizen.Name,
		&citizen.Email,
		&citizen.PasswordHash,
		&citizen.Phone,
		&citizen.Status,
		&lat,
		&lon,
		&citizen.MunicipalityID,
		&citizen.IntegrityScore,
		&citizen.CreatedAt,
		&citizen.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if lat != nil && lon != nil {
		citizen.Coordinate = &geo.Coordinate{Lat: *lat, Lon: *lon}
	}
	return &citizen, nil
}
