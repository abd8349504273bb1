package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/civic-complaints/internal/domain"
)

// OfficialRepository defines persistence access for municipality officials.
type OfficialRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Official, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Official, error)
}

type officialRepository struct {
	pool *pgxpool.Pool
}

// NewOfficialRepository returns a Postgres-backed implementation.
func NewOfficialRepository(pool *pgxpool.Pool) OfficialRepository {
	return &officialRepository{pool: pool}
}

func (r *officialRepository) GetByID(ctx context.Context, id string) (*domain.Official, error) {
	const query = `
        SELECT id, name, phone, designation, municipality_id, created_at, updated_at
        FROM officials WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *officialRepository) GetByPhone(ctx context.Context, phone string) (*domain.Official, error) {
	const query = `
        SELECT id, name, phone, designation, municipality_id, created_at, updated_at
        FROM officials WHERE phone=$1`
	return r.fetchSingle(ctx, query, phone)
}

func (r *officialRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Official, error) {
	var official domain.Official
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&official.ID,
		&official.Name,
		&official.Phone,
		&official.Designation,
		&official.MunicipalityID,
		&official.CreatedAt,
		&official.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &official, nil
}
