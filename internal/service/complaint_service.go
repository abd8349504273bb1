package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/internal/engine"
	"github.com/spec-kit/civic-complaints/internal/events"
	"github.com/spec-kit/civic-complaints/internal/repository"
	"github.com/spec-kit/civic-complaints/pkg/geo"
	apperrors "github.com/spec-kit/civic-complaints/pkg/util/errorutil"
)

// ComplaintService coordinates complaint workflows. It is the sole writer
// of complaint state: creation, status transitions and upvotes all pass
// through here.
type ComplaintService struct {
	complaints     repository.ComplaintRepository
	votes          repository.VoteRepository
	comments       repository.CommentRepository
	citizens       repository.CitizenRepository
	municipalities repository.MunicipalityRepository
	gate           *engine.ProximityGate
	detector       *engine.DuplicateDetector
	dispatcher     events.Dispatcher
}

// ComplaintDependencies bundles collaborators for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo    repository.ComplaintRepository
	VoteRepo         repository.VoteRepository
	CommentRepo      repository.CommentRepository
	CitizenRepo      repository.CitizenRepository
	MunicipalityRepo repository.MunicipalityRepository
	Gate             *engine.ProximityGate
	Detector         *engine.DuplicateDetector
	Dispatcher       events.Dispatcher
}

// ComplaintCreateInput describes complaint creation payload.
type ComplaintCreateInput struct {
	MunicipalityID string
	Department     string
	Topic          string
	Description    string
	Location       string
	Coordinate     geo.Coordinate
	ForceCreate    bool
}

// CreateResult carries either the created complaint or, when similar open
// complaints exist and the caller did not force creation, the candidates
// the citizen should consider upvoting instead.
type CreateResult struct {
	Complaint *domain.Complaint
	Similar   []domain.Complaint
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints:     deps.ComplaintRepo,
		votes:          deps.VoteRepo,
		comments:       deps.CommentRepo,
		citizens:       deps.CitizenRepo,
		municipalities: deps.MunicipalityRepo,
		gate:           deps.Gate,
		detector:       deps.Detector,
		dispatcher:     deps.Dispatcher,
	}
}

// Create files a complaint for a citizen. The proximity gate re-checks the
// municipality service radius and the integrity score server-side, then the
// duplicate detector runs; matches only block when ForceCreate is false.
func (s *ComplaintService) Create(ctx context.Context, citizenID string, input ComplaintCreateInput) (*CreateResult, error) {
	if err := validateComplaintInput(&input); err != nil {
		return nil, err
	}
	citizen, err := s.citizens.GetByID(ctx, citizenID)
	if err != nil {
		return nil, err
	}
	municipality, err := s.municipalities.GetByID(ctx, input.MunicipalityID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.CheckCreate(citizen, municipality); err != nil {
		return nil, err
	}

	similar, err := s.detector.FindSimilar(ctx, engine.DuplicateCandidate{
		MunicipalityID: municipality.ID,
		Department:     input.Department,
		Topic:          input.Topic,
		Description:    input.Description,
		Coordinate:     input.Coordinate,
	})
	if err != nil {
		return nil, err
	}
	if len(similar) > 0 && !input.ForceCreate {
		return &CreateResult{Similar: similar}, nil
	}

	complaint := &domain.Complaint{
		CitizenID:      citizen.ID,
		MunicipalityID: municipality.ID,
		Department:     input.Department,
		Topic:          strings.TrimSpace(input.Topic),
		Description:    strings.TrimSpace(input.Description),
		Location:       strings.TrimSpace(input.Location),
		Coordinate:     input.Coordinate,
		Status:         domain.ComplaintStatusNew,
		UpvoteCount:    0,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		Actor:       citizenActor(citizen.ID),
		Payload: events.ComplaintCreatedPayload{
			MunicipalityID: complaint.MunicipalityID,
			Department:     complaint.Department,
			Topic:          complaint.Topic,
			SimilarCount:   len(similar),
			Forced:         input.ForceCreate && len(similar) > 0,
		},
	})
	return &CreateResult{Complaint: complaint, Similar: similar}, nil
}

// CheckSimilar runs duplicate detection without creating anything.
func (s *ComplaintService) CheckSimilar(ctx context.Context, input ComplaintCreateInput) ([]domain.Complaint, error) {
	if err := validateComplaintInput(&input); err != nil {
		return nil, err
	}
	if _, err := s.municipalities.GetByID(ctx, input.MunicipalityID); err != nil {
		return nil, err
	}
	return s.detector.FindSimilar(ctx, engine.DuplicateCandidate{
		MunicipalityID: input.MunicipalityID,
		Department:     input.Department,
		Topic:          input.Topic,
		Description:    input.Description,
		Coordinate:     input.Coordinate,
	})
}

// Upvote records a citizen's upvote. Voting twice is a silent no-op; the
// check-and-insert is a single atomic operation in the vote store, so
// concurrent duplicates produce exactly one increment.
func (s *ComplaintService) Upvote(ctx context.Context, citizenID, complaintID string) (int, error) {
	citizen, err := s.citizens.GetByID(ctx, citizenID)
	if err != nil {
		return 0, err
	}
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return 0, err
	}
	if citizen.Coordinate == nil {
		return 0, apperrors.NewValidationError("citizen location not granted", nil)
	}
	if !s.gate.CanUpvote(citizen, complaint) {
		dist := geo.DistanceKm(*citizen.Coordinate, complaint.Coordinate)
		return 0, apperrors.NewOutOfRange(dist, engine.UpvoteRadiusKm)
	}

	inserted, count, err := s.votes.InsertIfAbsent(ctx, complaint.ID, citizen.ID)
	if err != nil {
		return 0, err
	}
	if inserted {
		s.publishEvent(ctx, events.Event{
			Type:        events.EventComplaintUpvoted,
			ComplaintID: complaint.ID,
			Actor:       citizenActor(citizen.ID),
			Payload:     events.ComplaintUpvotedPayload{UpvoteCount: count},
		})
	}
	return count, nil
}

// Transition moves a complaint to a new status on behalf of a municipality
// official. The repository applies a conditional update keyed on the
// current status, so two racing operators cannot both win.
func (s *ComplaintService) Transition(ctx context.Context, official *domain.Official, complaintID string, next domain.ComplaintStatus, comment string) (*domain.Complaint, error) {
	if official == nil {
		return nil, apperrors.NewForbidden("official required")
	}
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.MunicipalityID != official.MunicipalityID {
		return nil, apperrors.NewForbidden("complaint outside official's municipality")
	}
	if !engine.IsValidTransition(complaint.Status, next) {
		return nil, apperrors.NewInvalidTransition(string(complaint.Status), string(next))
	}

	now := time.Now()
	swapped, err := s.complaints.UpdateStatusIf(ctx, complaint.ID, complaint.Status, next, now)
	if err != nil {
		return nil, err
	}
	if !swapped {
		// lost the race; report against the status that actually won
		current, err := s.complaints.GetByID(ctx, complaint.ID)
		if err != nil {
			return nil, err
		}
		return nil, apperrors.NewInvalidTransition(string(current.Status), string(next))
	}

	oldStatus := complaint.Status
	complaint.Status = next
	complaint.LastStatusChangeAt = now
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: complaint.ID,
		Actor:       officialActor(official.ID),
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: next,
			Comment:   comment,
		},
	})
	return complaint, nil
}

// Get fetches a complaint by id.
func (s *ComplaintService) Get(ctx context.Context, complaintID string) (*domain.Complaint, error) {
	return s.complaints.GetByID(ctx, complaintID)
}

// HasUpvoted reports whether the citizen already upvoted the complaint.
func (s *ComplaintService) HasUpvoted(ctx context.Context, citizenID, complaintID string) (bool, error) {
	return s.votes.HasVoted(ctx, complaintID, citizenID)
}

// ListByMunicipality returns a municipality's complaints, newest first.
func (s *ComplaintService) ListByMunicipality(ctx context.Context, municipalityID string, limit, offset int) ([]domain.Complaint, error) {
	if _, err := s.municipalities.GetByID(ctx, municipalityID); err != nil {
		return nil, err
	}
	return s.complaints.ListWithFilter(ctx, repository.ComplaintFilter{
		MunicipalityID: &municipalityID,
		Limit:          limit,
		Offset:         offset,
	})
}

// AddComment attaches a citizen comment to a complaint.
func (s *ComplaintService) AddComment(ctx context.Context, citizenID, complaintID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}
	if _, err := s.complaints.GetByID(ctx, complaintID); err != nil {
		return nil, err
	}
	comment := &domain.Comment{
		ComplaintID: complaintID,
		CitizenID:   citizenID,
		Content:     content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a complaint's comments, newest first.
func (s *ComplaintService) ListComments(ctx context.Context, complaintID string, limit, offset int) ([]domain.Comment, error) {
	if _, err := s.complaints.GetByID(ctx, complaintID); err != nil {
		return nil, err
	}
	return s.comments.ListByComplaint(ctx, complaintID, limit, offset)
}

func validateComplaintInput(input *ComplaintCreateInput) error {
	if input.MunicipalityID == "" {
		return apperrors.NewValidationError("municipality_id required", nil)
	}
	if !domain.ValidDepartment(input.Department) {
		return apperrors.NewValidationError("unknown department", map[string]any{
			"department": input.Department,
		})
	}
	if strings.TrimSpace(input.Topic) == "" || strings.TrimSpace(input.Description) == "" {
		return apperrors.NewValidationError("topic and description required", nil)
	}
	return nil
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func citizenActor(citizenID string) events.Actor {
	return events.Actor{
		Type:      domain.SubjectTypeCitizen,
		CitizenID: &citizenID,
	}
}

func officialActor(officialID string) events.Actor {
	return events.Actor{
		Type:       domain.SubjectTypeOfficial,
		OfficialID: &officialID,
	}
}
