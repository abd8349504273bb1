package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/internal/repository"
	"github.com/spec-kit/civic-complaints/pkg/geo"
)

type ReviewServiceSuite struct {
	suite.Suite
	ctx context.Context

	complaints *repository.InMemoryComplaintRepository
	service    *ReviewService

	resolved domain.Complaint
	open     domain.Complaint
}

func TestReviewServiceSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceSuite))
}

func (s *ReviewServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.complaints = repository.NewInMemoryComplaintRepository()
	s.service = NewReviewService(repository.NewInMemoryReviewRepository(), s.complaints)

	s.resolved = domain.Complaint{
		CitizenID:      "creator",
		MunicipalityID: "m1",
		Department:     "Roads",
		Topic:          "Pothole",
		Description:    "pothole",
		Coordinate:     geo.Coordinate{Lat: 10, Lon: 10},
		Status:         domain.ComplaintStatusResolved,
	}
	s.Require().NoError(s.complaints.Create(s.ctx, &s.resolved))

	s.open = s.resolved
	s.open.ID = ""
	s.open.Status = domain.ComplaintStatusInProgress
	s.Require().NoError(s.complaints.Create(s.ctx, &s.open))
}

func (s *ReviewServiceSuite) TestCreate() {
	s.Run("creator reviews a resolved complaint", func() {
		review, err := s.service.Create(s.ctx, "creator", s.resolved.ID, 4, "fixed within a week")
		s.Require().NoError(err)
		s.Equal(4, review.Rating)
		s.NotEmpty(review.ID)
	})

	s.Run("second review of the same complaint conflicts", func() {
		_, err := s.service.Create(s.ctx, "creator", s.resolved.ID, 5, "")
		s.Error(err)
	})

	s.Run("only the creator may review", func() {
		_, err := s.service.Create(s.ctx, "someone-else", s.resolved.ID, 5, "")
		s.Error(err)
	})

	s.Run("unresolved complaints cannot be reviewed", func() {
		_, err := s.service.Create(s.ctx, "creator", s.open.ID, 5, "")
		s.Error(err)
	})

	s.Run("rating bounds are enforced", func() {
		_, err := s.service.Create(s.ctx, "creator", s.resolved.ID, 0, "")
		s.Error(err)
		_, err = s.service.Create(s.ctx, "creator", s.resolved.ID, 6, "")
		s.Error(err)
	})
}

func (s *ReviewServiceSuite) TestListOwnComplaints() {
	_, err := s.service.Create(s.ctx, "creator", s.resolved.ID, 5, "good work")
	s.Require().NoError(err)

	rows, err := s.service.ListOwnComplaints(s.ctx, "creator", 10, 0)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)

	byID := map[string]bool{}
	for _, row := range rows {
		byID[row.Complaint.ID] = row.Reviewed
	}
	s.True(byID[s.resolved.ID])
	s.False(byID[s.open.ID])
}

func (s *ReviewServiceSuite) TestListMine() {
	_, err := s.service.Create(s.ctx, "creator", s.resolved.ID, 3, "slow but done")
	s.Require().NoError(err)

	reviews, err := s.service.ListMine(s.ctx, "creator", 10, 0)
	s.Require().NoError(err)
	s.Require().Len(reviews, 1)
	s.Equal(3, reviews[0].Rating)

	none, err := s.service.ListMine(s.ctx, "stranger", 10, 0)
	s.Require().NoError(err)
	s.Empty(none)
}
