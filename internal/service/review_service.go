package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/internal/repository"
	apperrors "github.com/spec-kit/civic-complaints/pkg/util/errorutil"
)

// ReviewService handles post-resolution feedback. A review unlocks only
// once the complaint reaches Resolved, only for its creator, and at most
// once per (complaint, citizen) pair.
type ReviewService struct {
	reviews    repository.ReviewRepository
	complaints repository.ComplaintRepository
}

// NewReviewService constructs the service.
func NewReviewService(reviews repository.ReviewRepository, complaints repository.ComplaintRepository) *ReviewService {
	return &ReviewService{reviews: reviews, complaints: complaints}
}

// Create records a review for a resolved complaint.
func (s *ReviewService) Create(ctx context.Context, citizenID, complaintID string, rating int, feedback string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", nil)
	}
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.CitizenID != citizenID {
		return nil, apperrors.NewForbidden("only the complaint creator may review it")
	}
	if complaint.Status != domain.ComplaintStatusResolved {
		return nil, apperrors.NewValidationError("complaint must be resolved before review", map[string]any{
			"status": complaint.Status,
		})
	}

	review := &domain.Review{
		ComplaintID: complaintID,
		CitizenID:   citizenID,
		Rating:      rating,
		Feedback:    strings.TrimSpace(feedback),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, apperrors.NewConflict("review already submitted", nil)
		}
		return nil, err
	}
	return review, nil
}

// ListMine returns the citizen's reviews, newest first.
func (s *ReviewService) ListMine(ctx context.Context, citizenID string, limit, offset int) ([]domain.Review, error) {
	return s.reviews.ListByCitizen(ctx, citizenID, limit, offset)
}

// ComplaintWithReviewStatus pairs a complaint with whether its creator has
// already reviewed it.
type ComplaintWithReviewStatus struct {
	Complaint domain.Complaint
	Reviewed  bool
}

// ListOwnComplaints returns the citizen's complaints annotated with review
// status, newest first.
func (s *ReviewService) ListOwnComplaints(ctx context.Context, citizenID string, limit, offset int) ([]ComplaintWithReviewStatus, error) {
	complaints, err := s.complaints.ListWithFilter(ctx, repository.ComplaintFilter{
		CitizenID: &citizenID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]ComplaintWithReviewStatus, 0, len(complaints))
	for _, complaint := range complaints {
		reviewed, err := s.reviews.ExistsForComplaint(ctx, complaint.ID, citizenID)
		if err != nil {
			return nil, err
		}
		result = append(result, ComplaintWithReviewStatus{Complaint: complaint, Reviewed: reviewed})
	}
	return result, nil
}
