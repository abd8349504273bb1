package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/pkg/geo"
)

// FeedScanLimit caps how many complaints a single feed request ranks.
const FeedScanLimit = 500

// ComplaintFilter captures complaint listing parameters.
type ComplaintFilter struct {
	MunicipalityID *string
	CitizenID      *string
	Statuses       []domain.ComplaintStatus
	Box            *geo.BoundingBox
	Limit          int
	Offset         int
}

// ComplaintRepository encapsulates complaint persistence. Status changes go
// through UpdateStatusIf so two operators cannot race a complaint into an
// inconsistent final state.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error)
	// UpdateStatusIf atomically moves the complaint from expected to next.
	// It reports false when the complaint was not in the expected status.
	UpdateStatusIf(ctx context.Context, id string, expected, next domain.ComplaintStatus, at time.Time) (bool, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (citizen_id, municipality_id, department, topic, description,
            location, latitude, longitude, status, upvote_count, last_status_change_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW())
        RETURNING id, created_at, updated_at, last_status_change_at`
	return r.pool.QueryRow(ctx, query,
		complaint.CitizenID,
		complaint.MunicipalityID,
		complaint.Department,
		complaint.Topic,
		complaint.Description,
		complaint.Location,
		complaint.Coordinate.Lat,
		complaint.Coordinate.Lon,
		complaint.Status,
		complaint.UpvoteCount,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt, &complaint.LastStatusChangeAt)
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	const query = `
        SELECT id, citizen_id, municipality_id, department, topic, description, location,
               latitude, longitude, status, upvote_count, created_at, updated_at, last_status_change_at
        FROM complaints WHERE id=$1`
	var complaint domain.Complaint
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&complaint.ID,
		&complaint.CitizenID,
		&complaint.MunicipalityID,
		&complaint.Department,
		&complaint.Topic,
		&complaint.Description,
		&complaint.Location,
		&complaint.Coordinate.Lat,
		&complaint.Coordinate.Lon,
		&complaint.Status,
		&complaint.UpvoteCount,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
		&complaint.LastStatusChangeAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	base := `SELECT id, citizen_id, municipality_id, department, topic, description, location,
                    latitude, longitude, status, upvote_count, created_at, updated_at, last_status_change_at
             FROM complaints`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.MunicipalityID != nil {
		args = append(args, *filter.MunicipalityID)
		clauses = append(clauses, fmt.Sprintf("municipality_id=$%d", len(args)))
	}
	if filter.CitizenID != nil {
		args = append(args, *filter.CitizenID)
		clauses = append(clauses, fmt.Sprintf("citizen_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Box != nil {
		args = append(args, filter.Box.LatMin, filter.Box.LatMax)
		clauses = append(clauses, fmt.Sprintf("latitude BETWEEN $%d AND $%d", len(args)-1, len(args)))
		args = append(args, filter.Box.LonMin, filter.Box.LonMax)
		clauses = append(clauses, fmt.Sprintf("longitude BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}

	limit := filter.Limit
	if limit <= 0 || limit > FeedScanLimit {
		limit = FeedScanLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC, id LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) UpdateStatusIf(ctx context.Context, id string, expected, next domain.ComplaintStatus, at time.Time) (bool, error) {
	const query = `
        UPDATE complaints SET status=$1, last_status_change_at=$2, updated_at=NOW()
        WHERE id=$3 AND status=$4`
	cmd, err := r.pool.Exec(ctx, query, next, at, id, expected)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.CitizenID,
			&complaint.MunicipalityID,
			&complaint.Department,
			&complaint.Topic,
			&complaint.Description,
			&complaint.Location,
			&complaint.Coordinate.Lat,
			&complaint.Coordinate.Lon,
			&complaint.Status,
			&complaint.UpvoteCount,
			&complaint.CreatedAt,
			&complaint.UpdatedAt,
			&complaint.LastStatusChangeAt,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}
