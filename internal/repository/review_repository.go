package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/civic-complaints/internal/domain"
)

// ErrDuplicateReview is returned when a (complaint, citizen) review already exists.
var ErrDuplicateReview = errors.New("review already exists for complaint")

// ReviewRepository persists complaint reviews. The (complaint, citizen)
// uniqueness invariant is enforced by the store, not by callers.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ExistsForComplaint(ctx context.Context, complaintID, citizenID string) (bool, error)
	ListByCitizen(ctx context.Context, citizenID string, limit, offset int) ([]domain.Review, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository instantiates repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (complaint_id, citizen_id, rating, feedback)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		review.ComplaintID,
		review.CitizenID,
		review.Rating,
		review.Feedback,
	).Scan(&review.ID, &review.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateReview
	}
	return err
}

func (r *reviewRepository) ExistsForComplaint(ctx context.Context, complaintID, citizenID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM reviews WHERE complaint_id=$1 AND citizen_id=$2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, complaintID, citizenID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *reviewRepository) ListByCitizen(ctx context.Context, citizenID string, limit, offset int) ([]domain.Review, error) {
	const query = `
        SELECT id, complaint_id, citizen_id, rating, feedback, created_at
        FROM reviews WHERE citizen_id=$1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, query, citizenID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.ComplaintID,
			&review.CitizenID,
			&review.Rating,
			&review.Feedback,
			&review.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	return result, rows.Err()
}
