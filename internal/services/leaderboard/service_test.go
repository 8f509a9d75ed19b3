package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/neonsnake/neonsnake-backend/internal/dependencies/mocks"
	"github.com/neonsnake/neonsnake-backend/internal/model"
	"github.com/neonsnake/neonsnake-backend/internal/storage/memory"
	"github.com/neonsnake/neonsnake-backend/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	clock   *mocks.MockClock
	user    *model.User
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(memory.New(), s.clock, testutil.NopLogger())
	s.user = &model.User{ID: "user-1", Username: "alice"}
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestSubmit() {
	entry, err := s.service.Submit(s.ctx, s.user, 150, "walls", nil)
	s.Require().NoError(err)

	s.NotEmpty(entry.ID)
	s.Equal(s.user.ID, entry.UserID)
	s.Equal("alice", entry.Username)
	s.Equal(150, entry.Score)
	s.Equal("walls", entry.Mode)
	s.Nil(entry.Duration)
	s.True(entry.SubmittedAt.Equal(s.clock.Now()))
	s.Equal(1, entry.Rank)
}

func (s *ServiceSuite) TestSubmitWithDuration() {
	duration := 95
	entry, err := s.service.Submit(s.ctx, s.user, 150, "walls", &duration)
	s.Require().NoError(err)
	s.Require().NotNil(entry.Duration)
	s.Equal(95, *entry.Duration)
}

func (s *ServiceSuite) TestSubmitRanksAgainstExistingEntries() {
	_, err := s.service.Submit(s.ctx, s.user, 300, "walls", nil)
	s.Require().NoError(err)

	entry, err := s.service.Submit(s.ctx, s.user, 150, "walls", nil)
	s.Require().NoError(err)
	s.Equal(2, entry.Rank)

	entry, err = s.service.Submit(s.ctx, s.user, 500, "walls", nil)
	s.Require().NoError(err)
	s.Equal(1, entry.Rank)
}

func (s *ServiceSuite) TestList() {
	_, _ = s.service.Submit(s.ctx, s.user, 100, "walls", nil)
	_, _ = s.service.Submit(s.ctx, s.user, 300, "passthrough", nil)
	_, _ = s.service.Submit(s.ctx, s.user, 200, "walls", nil)

	entries, total, err := s.service.List(s.ctx, "", 100, 0)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Require().Len(entries, 3)
	s.Equal(300, entries[0].Score)
	s.Equal(200, entries[1].Score)
	s.Equal(100, entries[2].Score)
}

func (s *ServiceSuite) TestListFilteredTotalCountsMatchesOnly() {
	_, _ = s.service.Submit(s.ctx, s.user, 100, "walls", nil)
	_, _ = s.service.Submit(s.ctx, s.user, 300, "passthrough", nil)
	_, _ = s.service.Submit(s.ctx, s.user, 200, "walls", nil)

	entries, total, err := s.service.List(s.ctx, "walls", 100, 0)
	s.Require().NoError(err)
	s.Equal(2, total)
	s.Require().Len(entries, 2)
	s.Equal(200, entries[0].Score)
	s.Equal(2, entries[0].Rank) // ranks stay global under the filter
}

func (s *ServiceSuite) TestListTotalIgnoresPagination() {
	_, _ = s.service.Submit(s.ctx, s.user, 100, "walls", nil)
	_, _ = s.service.Submit(s.ctx, s.user, 200, "walls", nil)
	_, _ = s.service.Submit(s.ctx, s.user, 300, "walls", nil)

	entries, total, err := s.service.List(s.ctx, "", 1, 1)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Require().Len(entries, 1)
	s.Equal(200, entries[0].Score)
}
