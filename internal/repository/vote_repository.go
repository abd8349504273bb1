package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// VoteRepository persists engagement votes. InsertIfAbsent is the single
// atomic check-and-insert for the (complaint, citizen) pair; the unique
// constraint plus the conditional counter increment run in one transaction
// so exactly one increment survives concurrent duplicates.
type VoteRepository interface {
	// InsertIfAbsent records the vote unless the pair already exists.
	// It returns whether a new vote was inserted and the current count.
	InsertIfAbsent(ctx context.Context, complaintID, citizenID string) (bool, int, error)
	HasVoted(ctx context.Context, complaintID, citizenID string) (bool, error)
}

type voteRepository struct {
	pool *pgxpool.Pool
}

// NewVoteRepository instantiates repository.
func NewVoteRepository(pool *pgxpool.Pool) VoteRepository {
	return &voteRepository{pool: pool}
}

func (r *voteRepository) InsertIfAbsent(ctx context.Context, complaintID, citizenID string) (bool, int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insert = `
        INSERT INTO engagement_votes (complaint_id, citizen_id)
        VALUES ($1, $2)
        ON CONFLICT (complaint_id, citizen_id) DO NOTHING`
	cmd, err := tx.Exec(ctx, insert, complaintID, citizenID)
	if err != nil {
		return false, 0, err
	}
	inserted := cmd.RowsAffected() == 1

	var count int
	if inserted {
		const bump = `
            UPDATE complaints SET upvote_count = upvote_count + 1, updated_at=NOW()
            WHERE id=$1
            RETURNING upvote_count`
		if err := tx.QueryRow(ctx, bump, complaintID).Scan(&count); err != nil {
			return false, 0, err
		}
	} else {
		const read = `SELECT upvote_count FROM complaints WHERE id=$1`
		if err := tx.QueryRow(ctx, read, complaintID).Scan(&count); err != nil {
			return false, 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, 0, err
	}
	return inserted, count, nil
}

func (r *voteRepository) HasVoted(ctx context.Context, complaintID, citizenID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM engagement_votes WHERE complaint_id=$1 AND citizen_id=$2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, complaintID, citizenID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
