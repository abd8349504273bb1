package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/pkg/geo"
)

// In-memory implementations back unit tests and local development without
// Postgres. They honor the same atomicity contracts as the SQL versions:
// vote insert-and-increment is one critical section, status changes are
// compare-and-swap on the expected status.

// InMemoryMunicipalityRepository stores municipalities in a map.
type InMemoryMunicipalityRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Municipality
}

// NewInMemoryMunicipalityRepository creates an empty store.
func NewInMemoryMunicipalityRepository() *InMemoryMunicipalityRepository {
	return &InMemoryMunicipalityRepository{items: make(map[string]domain.Municipality)}
}

func (r *InMemoryMunicipalityRepository) Create(_ context.Context, m *domain.Municipality) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	r.items[m.ID] = *m
	return nil
}

func (r *InMemoryMunicipalityRepository) GetByID(_ context.Context, id string) (*domain.Municipality, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &m, nil
}

func (r *InMemoryMunicipalityRepository) ListWithinBox(_ context.Context, box geo.BoundingBox, limit int) ([]domain.Municipality, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 {
		limit = 100
	}
	var result []domain.Municipality
	for _, m := range r.items {
		if box.Contains(m.Home) {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// InMemoryCitizenRepository stores citizens in a map.
type InMemoryCitizenRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Citizen
}

// NewInMemoryCitizenRepository creates an empty store.
func NewInMemoryCitizenRepository() *InMemoryCitizenRepository {
	return &InMemoryCitizenRepository{items: make(map[string]domain.Citizen)}
}

func (r *InMemoryCitizenRepository) Create(_ context.Context, citizen *domain.Citizen) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if citizen.ID == "" {
		citizen.ID = uuid.NewString()
	}
	now := time.Now()
	citizen.CreatedAt = now
	citizen.UpdatedAt = now
	r.items[citizen.ID] = *citizen
	return nil
}

func (r *InMemoryCitizenRepository) Update(_ context.Context, citizen *domain.Citizen) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[citizen.ID]; !ok {
		return pgx.ErrNoRows
	}
	citizen.UpdatedAt = time.Now()
	r.items[citizen.ID] = *citizen
	return nil
}

func (r *InMemoryCitizenRepository) GetByID(_ context.Context, id string) (*domain.Citizen, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	citizen, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &citizen, nil
}

func (r *InMemoryCitizenRepository) GetByEmail(_ context.Context, email string) (*domain.Citizen, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, citizen := range r.items {
		if citizen.Email == email {
			c := citizen
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *InMemoryCitizenRepository) UpdateAssignment(_ context.Context, citizenID string, municipalityID *string, coord geo.Coordinate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	citizen, ok := r.items[citizenID]
	if !ok {
		return pgx.ErrNoRows
	}
	citizen.MunicipalityID = municipalityID
	citizen.Coordinate = &coord
	citizen.UpdatedAt = time.Now()
	r.items[citizenID] = citizen
	return nil
}

// InMemoryComplaintRepository stores complaints and their vote counts.
type InMemoryComplaintRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Complaint
	votes map[string]map[string]struct{}
}

// NewInMemoryComplaintRepository creates an empty store.
func NewInMemoryComplaintRepository() *InMemoryComplaintRepository {
	return &InMemoryComplaintRepository{
		items: make(map[string]domain.Complaint),
		votes: make(map[string]map[string]struct{}),
	}
}

func (r *InMemoryComplaintRepository) Create(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if complaint.ID == "" {
		complaint.ID = uuid.NewString()
	}
	now := time.Now()
	if complaint.CreatedAt.IsZero() {
		complaint.CreatedAt = now
	}
	complaint.UpdatedAt = now
	complaint.LastStatusChangeAt = complaint.CreatedAt
	r.items[complaint.ID] = *complaint
	return nil
}

func (r *InMemoryComplaintRepository) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	complaint, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &complaint, nil
}

func (r *InMemoryComplaintRepository) ListWithFilter(_ context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Complaint
	for _, complaint := range r.items {
		if filter.MunicipalityID != nil && complaint.MunicipalityID != *filter.MunicipalityID {
			continue
		}
		if filter.CitizenID != nil && complaint.CitizenID != *filter.CitizenID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, complaint.Status) {
			continue
		}
		if filter.Box != nil && !filter.Box.Contains(complaint.Coordinate) {
			continue
		}
		result = append(result, complaint)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	limit := filter.Limit
	if limit <= 0 || limit > FeedScanLimit {
		limit = FeedScanLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *InMemoryComplaintRepository) UpdateStatusIf(_ context.Context, id string, expected, next domain.ComplaintStatus, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint, ok := r.items[id]
	if !ok {
		return false, pgx.ErrNoRows
	}
	if complaint.Status != expected {
		return false, nil
	}
	complaint.Status = next
	complaint.LastStatusChangeAt = at
	complaint.UpdatedAt = time.Now()
	r.items[id] = complaint
	return true, nil
}

// InsertVoteIfAbsent implements the VoteRepository contract against the
// same store so counts and vote rows cannot drift apart.
func (r *InMemoryComplaintRepository) InsertVoteIfAbsent(_ context.Context, complaintID, citizenID string) (bool, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint, ok := r.items[complaintID]
	if !ok {
		return false, 0, pgx.ErrNoRows
	}
	voters, ok := r.votes[complaintID]
	if !ok {
		voters = make(map[string]struct{})
		r.votes[complaintID] = voters
	}
	if _, voted := voters[citizenID]; voted {
		return false, complaint.UpvoteCount, nil
	}
	voters[citizenID] = struct{}{}
	complaint.UpvoteCount++
	complaint.UpdatedAt = time.Now()
	r.items[complaintID] = complaint
	return true, complaint.UpvoteCount, nil
}

func (r *InMemoryComplaintRepository) HasVoted(_ context.Context, complaintID, citizenID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	voters, ok := r.votes[complaintID]
	if !ok {
		return false, nil
	}
	_, voted := voters[citizenID]
	return voted, nil
}

// InMemoryVoteRepository adapts an InMemoryComplaintRepository to the
// VoteRepository interface.
type InMemoryVoteRepository struct {
	complaints *InMemoryComplaintRepository
}

// NewInMemoryVoteRepository binds the vote store to the complaint store.
func NewInMemoryVoteRepository(complaints *InMemoryComplaintRepository) *InMemoryVoteRepository {
	return &InMemoryVoteRepository{complaints: complaints}
}

func (r *InMemoryVoteRepository) InsertIfAbsent(ctx context.Context, complaintID, citizenID string) (bool, int, error) {
	return r.complaints.InsertVoteIfAbsent(ctx, complaintID, citizenID)
}

func (r *InMemoryVoteRepository) HasVoted(ctx context.Context, complaintID, citizenID string) (bool, error) {
	return r.complaints.HasVoted(ctx, complaintID, citizenID)
}

// InMemoryCommentRepository stores comments per complaint.
type InMemoryCommentRepository struct {
	mu    sync.RWMutex
	items map[string][]domain.Comment
}

// NewInMemoryCommentRepository creates an empty store.
func NewInMemoryCommentRepository() *InMemoryCommentRepository {
	return &InMemoryCommentRepository{items: make(map[string][]domain.Comment)}
}

func (r *InMemoryCommentRepository) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	comment.CreatedAt = time.Now()
	r.items[comment.ComplaintID] = append(r.items[comment.ComplaintID], *comment)
	return nil
}

func (r *InMemoryCommentRepository) ListByComplaint(_ context.Context, complaintID string, limit, offset int) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	comments := append([]domain.Comment{}, r.items[complaintID]...)
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.After(comments[j].CreatedAt) })
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(comments) {
		return nil, nil
	}
	comments = comments[offset:]
	if len(comments) > limit {
		comments = comments[:limit]
	}
	return comments, nil
}

// InMemoryReviewRepository stores reviews keyed by (complaint, citizen).
type InMemoryReviewRepository struct {
	mu    sync.Mutex
	items map[string]domain.Review
}

// NewInMemoryReviewRepository creates an empty store.
func NewInMemoryReviewRepository() *InMemoryReviewRepository {
	return &InMemoryReviewRepository{items: make(map[string]domain.Review)}
}

func reviewKey(complaintID, citizenID string) string {
	return complaintID + "|" + citizenID
}

func (r *InMemoryReviewRepository) Create(_ context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := reviewKey(review.ComplaintID, review.CitizenID)
	if _, exists := r.items[key]; exists {
		return ErrDuplicateReview
	}
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	review.CreatedAt = time.Now()
	r.items[key] = *review
	return nil
}

func (r *InMemoryReviewRepository) ExistsForComplaint(_ context.Context, complaintID, citizenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[reviewKey(complaintID, citizenID)]
	return exists, nil
}

func (r *InMemoryReviewRepository) ListByCitizen(_ context.Context, citizenID string, limit, offset int) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Review
	for _, review := range r.items {
		if review.CitizenID == citizenID {
			result = append(result, review)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// InMemoryOfficialRepository stores officials in a map.
type InMemoryOfficialRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Official
}

// NewInMemoryOfficialRepository creates an empty store.
func NewInMemoryOfficialRepository() *InMemoryOfficialRepository {
	return &InMemoryOfficialRepository{items: make(map[string]domain.Official)}
}

// Add seeds an official, generating an id when absent.
func (r *InMemoryOfficialRepository) Add(official domain.Official) domain.Official {
	r.mu.Lock()
	defer r.mu.Unlock()
	if official.ID == "" {
		official.ID = uuid.NewString()
	}
	r.items[official.ID] = official
	return official
}

func (r *InMemoryOfficialRepository) GetByID(_ context.Context, id string) (*domain.Official, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	official, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &official, nil
}

func (r *InMemoryOfficialRepository) GetByPhone(_ context.Context, phone string) (*domain.Official, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, official := range r.items {
		if official.Phone == phone {
			o := official
			return &o, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func containsStatus(statuses []domain.ComplaintStatus, status domain.ComplaintStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
