package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/internal/engine"
	"github.com/spec-kit/civic-complaints/internal/repository"
	"github.com/spec-kit/civic-complaints/pkg/geo"
	apperrors "github.com/spec-kit/civic-complaints/pkg/util/errorutil"
)

type ComplaintServiceSuite struct {
	suite.Suite
	ctx context.Context

	municipalities *repository.InMemoryMunicipalityRepository
	citizens       *repository.InMemoryCitizenRepository
	complaints     *repository.InMemoryComplaintRepository
	officials      *repository.InMemoryOfficialRepository
	service        *ComplaintService

	municipality *domain.Municipality
	citizen      *domain.Citizen
	official     domain.Official
}

func TestComplaintServiceSuite(t *testing.T) {
	suite.Run(t, new(ComplaintServiceSuite))
}

func (s *ComplaintServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.municipalities = repository.NewInMemoryMunicipalityRepository()
	s.citizens = repository.NewInMemoryCitizenRepository()
	s.complaints = repository.NewInMemoryComplaintRepository()
	s.officials = repository.NewInMemoryOfficialRepository()

	s.service = NewComplaintService(ComplaintDependencies{
		ComplaintRepo:    s.complaints,
		VoteRepo:         repository.NewInMemoryVoteRepository(s.complaints),
		CommentRepo:      repository.NewInMemoryCommentRepository(),
		CitizenRepo:      s.citizens,
		MunicipalityRepo: s.municipalities,
		Gate:             engine.NewProximityGate(1.0),
		Detector:         engine.NewDuplicateDetector(s.complaints),
	})

	area := 100.0
	s.municipality = &domain.Municipality{
		Name:    "Northtown",
		Home:    geo.Coordinate{Lat: 10, Lon: 10},
		AreaKm2: &area,
	}
	s.Require().NoError(s.municipalities.Create(s.ctx, s.municipality))

	s.citizen = s.newCitizen("asha@example.com", 10.005, 10, 100)
	s.official = s.officials.Add(domain.Official{
		Name:           "Inspector Rao",
		Phone:          "+911234567890",
		MunicipalityID: s.municipality.ID,
	})
}

func (s *ComplaintServiceSuite) newCitizen(email string, lat, lon float64, integrity int) *domain.Citizen {
	citizen := &domain.Citizen{
		Name:           "Citizen",
		Email:          email,
		Status:         domain.CitizenStatusActive,
		Coordinate:     &geo.Coordinate{Lat: lat, Lon: lon},
		MunicipalityID: &s.municipality.ID,
		IntegrityScore: integrity,
	}
	s.Require().NoError(s.citizens.Create(s.ctx, citizen))
	return citizen
}

func (s *ComplaintServiceSuite) createInput() ComplaintCreateInput {
	return ComplaintCreateInput{
		MunicipalityID: s.municipality.ID,
		Department:     "Roads",
		Topic:          "Pothole on main street",
		Description:    "large pothole near the bus stop on main street",
		Location:       "Main street, near bus stop",
		Coordinate:     geo.Coordinate{Lat: 10.004, Lon: 10},
	}
}

func (s *ComplaintServiceSuite) mustCreate(citizenID string, input ComplaintCreateInput) *domain.Complaint {
	result, err := s.service.Create(s.ctx, citizenID, input)
	s.Require().NoError(err)
	s.Require().NotNil(result.Complaint)
	return result.Complaint
}

func (s *ComplaintServiceSuite) TestCreate() {
	s.Run("creates a complaint in New status", func() {
		complaint := s.mustCreate(s.citizen.ID, s.createInput())
		s.Equal(domain.ComplaintStatusNew, complaint.Status)
		s.Zero(complaint.UpvoteCount)
		s.Equal(s.municipality.ID, complaint.MunicipalityID)
	})

	s.Run("rejects unknown departments", func() {
		input := s.createInput()
		input.Department = "Telepathy"
		_, err := s.service.Create(s.ctx, s.citizen.ID, input)
		s.Error(err)
	})

	s.Run("blocks low integrity citizens", func() {
		blocked := s.newCitizen("blocked@example.com", 10.005, 10, 25)
		_, err := s.service.Create(s.ctx, blocked.ID, s.createInput())
		s.Require().Error(err)
		var domainErr *apperrors.DomainError
		s.Require().True(errors.As(err, &domainErr))
		s.Equal("INTEGRITY_BLOCKED", domainErr.Code)
	})

	s.Run("blocks citizens outside the service radius", func() {
		remote := s.newCitizen("remote@example.com", 10.5, 10, 100) // ~55 km away
		_, err := s.service.Create(s.ctx, remote.ID, s.createInput())
		s.Require().Error(err)
		var domainErr *apperrors.DomainError
		s.Require().True(errors.As(err, &domainErr))
		s.Equal("OUT_OF_RANGE", domainErr.Code)
	})
}

func (s *ComplaintServiceSuite) TestDuplicateAdvisory() {
	existing := s.mustCreate(s.citizen.ID, s.createInput())

	s.Run("similar complaint nearby returns candidates instead of creating", func() {
		result, err := s.service.Create(s.ctx, s.citizen.ID, s.createInput())
		s.Require().NoError(err)
		s.Nil(result.Complaint)
		s.Require().Len(result.Similar, 1)
		s.Equal(existing.ID, result.Similar[0].ID)
	})

	s.Run("force create proceeds despite candidates", func() {
		input := s.createInput()
		input.ForceCreate = true
		result, err := s.service.Create(s.ctx, s.citizen.ID, input)
		s.Require().NoError(err)
		s.Require().NotNil(result.Complaint)
		s.NotEqual(existing.ID, result.Complaint.ID)
		s.NotEmpty(result.Similar)
	})

	s.Run("check-similar never creates", func() {
		similar, err := s.service.CheckSimilar(s.ctx, s.createInput())
		s.Require().NoError(err)
		s.NotEmpty(similar)
	})
}

func (s *ComplaintServiceSuite) TestUpvote() {
	complaint := s.mustCreate(s.citizen.ID, s.createInput())

	s.Run("first vote increments", func() {
		count, err := s.service.Upvote(s.ctx, s.citizen.ID, complaint.ID)
		s.Require().NoError(err)
		s.Equal(1, count)
	})

	s.Run("repeat vote is a silent no-op", func() {
		count, err := s.service.Upvote(s.ctx, s.citizen.ID, complaint.ID)
		s.Require().NoError(err)
		s.Equal(1, count)
	})

	s.Run("vote state is queryable", func() {
		voted, err := s.service.HasUpvoted(s.ctx, s.citizen.ID, complaint.ID)
		s.Require().NoError(err)
		s.True(voted)

		other := s.newCitizen("other@example.com", 10.004, 10, 100)
		voted, err = s.service.HasUpvoted(s.ctx, other.ID, complaint.ID)
		s.Require().NoError(err)
		s.False(voted)
	})

	s.Run("distant citizen is rejected with the measured distance", func() {
		far := s.newCitizen("far@example.com", 10.05, 10, 100) // ~5 km from the complaint
		_, err := s.service.Upvote(s.ctx, far.ID, complaint.ID)
		s.Require().Error(err)
		var domainErr *apperrors.DomainError
		s.Require().True(errors.As(err, &domainErr))
		s.Equal("OUT_OF_RANGE", domainErr.Code)
	})

	s.Run("citizen without location cannot vote", func() {
		nowhere := &domain.Citizen{
			Email:          "nowhere@example.com",
			Status:         domain.CitizenStatusActive,
			IntegrityScore: 100,
		}
		s.Require().NoError(s.citizens.Create(s.ctx, nowhere))
		_, err := s.service.Upvote(s.ctx, nowhere.ID, complaint.ID)
		s.Error(err)
	})
}

func (s *ComplaintServiceSuite) TestConcurrentUpvotes() {
	complaint := s.mustCreate(s.citizen.ID, s.createInput())

	s.Run("same citizen racing produces exactly one increment", func() {
		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = s.service.Upvote(s.ctx, s.citizen.ID, complaint.ID)
			}()
		}
		wg.Wait()

		stored, err := s.complaints.GetByID(s.ctx, complaint.ID)
		s.Require().NoError(err)
		s.Equal(1, stored.UpvoteCount)
	})

	s.Run("distinct citizens each count once", func() {
		const voters = 10
		ids := make([]string, 0, voters)
		for i := 0; i < voters; i++ {
			voter := s.newCitizen(fmt.Sprintf("voter%d@example.com", i), 10.004, 10, 100)
			ids = append(ids, voter.ID)
		}

		var wg sync.WaitGroup
		for _, id := range ids {
			wg.Add(1)
			go func(citizenID string) {
				defer wg.Done()
				_, err := s.service.Upvote(s.ctx, citizenID, complaint.ID)
				s.NoError(err)
			}(id)
		}
		wg.Wait()

		stored, err := s.complaints.GetByID(s.ctx, complaint.ID)
		s.Require().NoError(err)
		s.Equal(1+voters, stored.UpvoteCount)
	})
}

func (s *ComplaintServiceSuite) TestTransition() {
	complaint := s.mustCreate(s.citizen.ID, s.createInput())

	s.Run("officials from another municipality are rejected", func() {
		other := &domain.Municipality{Name: "Southtown", Home: geo.Coordinate{Lat: 20, Lon: 20}}
		s.Require().NoError(s.municipalities.Create(s.ctx, other))
		stranger := s.officials.Add(domain.Official{Phone: "+910000000000", MunicipalityID: other.ID})
		_, err := s.service.Transition(s.ctx, &stranger, complaint.ID, domain.ComplaintStatusInProgress, "")
		s.Error(err)
	})

	s.Run("new cannot jump straight to resolved", func() {
		_, err := s.service.Transition(s.ctx, &s.official, complaint.ID, domain.ComplaintStatusResolved, "")
		s.Require().Error(err)
		var domainErr *apperrors.DomainError
		s.Require().True(errors.As(err, &domainErr))
		s.Equal("INVALID_TRANSITION", domainErr.Code)
	})

	s.Run("forward moves succeed and stamp the change time", func() {
		updated, err := s.service.Transition(s.ctx, &s.official, complaint.ID, domain.ComplaintStatusInProgress, "crew dispatched")
		s.Require().NoError(err)
		s.Equal(domain.ComplaintStatusInProgress, updated.Status)
		s.False(updated.LastStatusChangeAt.IsZero())

		resolved, err := s.service.Transition(s.ctx, &s.official, complaint.ID, domain.ComplaintStatusResolved, "")
		s.Require().NoError(err)
		s.Equal(domain.ComplaintStatusResolved, resolved.Status)
	})

	s.Run("terminal complaints accept no further moves", func() {
		_, err := s.service.Transition(s.ctx, &s.official, complaint.ID, domain.ComplaintStatusPending, "")
		s.Require().Error(err)
		var domainErr *apperrors.DomainError
		s.Require().True(errors.As(err, &domainErr))
		s.Equal("INVALID_TRANSITION", domainErr.Code)
		s.Equal(string(domain.ComplaintStatusResolved), domainErr.Details["from"])
	})
}

func (s *ComplaintServiceSuite) TestLostTransitionRace() {
	complaint := s.mustCreate(s.citizen.ID, s.createInput())

	// another operator moved the complaint after our read
	swapped, err := s.complaints.UpdateStatusIf(s.ctx, complaint.ID, domain.ComplaintStatusNew, domain.ComplaintStatusRejected, complaint.CreatedAt)
	s.Require().NoError(err)
	s.Require().True(swapped)

	// the losing caller is told about the status that actually won; even a
	// move that would have been legal from New is now reported against
	// Rejected
	_, err = s.service.Transition(s.ctx, &s.official, complaint.ID, domain.ComplaintStatusPending, "")
	s.Require().Error(err)
	var domainErr *apperrors.DomainError
	s.Require().True(errors.As(err, &domainErr))
	s.Equal("INVALID_TRANSITION", domainErr.Code)
	s.Equal(string(domain.ComplaintStatusRejected), domainErr.Details["from"])
}

func (s *ComplaintServiceSuite) TestComments() {
	complaint := s.mustCreate(s.citizen.ID, s.createInput())

	s.Run("attaches and lists comments", func() {
		comment, err := s.service.AddComment(s.ctx, s.citizen.ID, complaint.ID, "  still not fixed  ")
		s.Require().NoError(err)
		s.Equal("still not fixed", comment.Content)

		comments, err := s.service.ListComments(s.ctx, complaint.ID, 10, 0)
		s.Require().NoError(err)
		s.Require().Len(comments, 1)
		s.Equal(comment.ID, comments[0].ID)
	})

	s.Run("rejects empty content", func() {
		_, err := s.service.AddComment(s.ctx, s.citizen.ID, complaint.ID, "   ")
		s.Error(err)
	})
}
