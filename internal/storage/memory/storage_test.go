package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/neonsnake/neonsnake-backend/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:        "user-1",
		Username:  "alice",
		Email:     "alice@example.com",
		CreatedAt: s.now,
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(user.Username, retrieved.Username)
	s.Equal(user.Email, retrieved.Email)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByEmail() {
	user := &model.User{ID: "user-1", Username: "alice", Email: "alice@example.com"}
	_ = s.storage.SaveUser(s.ctx, user)

	retrieved, err := s.storage.GetUserByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), retrieved.ID)

	_, err = s.storage.GetUserByEmail(s.ctx, "bob@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByEmailIsCaseSensitive() {
	user := &model.User{ID: "user-1", Username: "alice", Email: "alice@example.com"}
	_ = s.storage.SaveUser(s.ctx, user)

	_, err := s.storage.GetUserByEmail(s.ctx, "Alice@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	user := &model.User{ID: "user-1", Username: "alice", Email: "alice@example.com"}
	_ = s.storage.SaveUser(s.ctx, user)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), retrieved.ID)

	_, err = s.storage.GetUserByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Leaderboard tests

func (s *StorageSuite) addEntry(id string, score int, mode string) *model.LeaderboardEntry {
	entry := &model.LeaderboardEntry{
		ID:          model.EntryID(id),
		UserID:      "user-1",
		Username:    "alice",
		Score:       score,
		Mode:        mode,
		SubmittedAt: s.now,
	}
	added, err := s.storage.AddLeaderboardEntry(s.ctx, entry)
	s.Require().NoError(err)
	return added
}

func (s *StorageSuite) TestAddEntryAssignsRank() {
	entry := s.addEntry("e1", 100, "walls")
	s.Equal(1, entry.Rank)
}

func (s *StorageSuite) TestEntriesOrderedByScoreDescending() {
	s.addEntry("e1", 100, "walls")
	s.addEntry("e2", 300, "walls")
	s.addEntry("e3", 200, "walls")

	entries, err := s.storage.ListLeaderboard(s.ctx, "", 100, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)

	s.Equal(model.EntryID("e2"), entries[0].ID)
	s.Equal(1, entries[0].Rank)
	s.Equal(model.EntryID("e3"), entries[1].ID)
	s.Equal(2, entries[1].Rank)
	s.Equal(model.EntryID("e1"), entries[2].ID)
	s.Equal(3, entries[2].Rank)
}

func (s *StorageSuite) TestRanksReassignedAcrossWholeBoard() {
	first := s.addEntry("e1", 100, "walls")
	s.Equal(1, first.Rank)

	s.addEntry("e2", 500, "walls")

	entries, err := s.storage.ListLeaderboard(s.ctx, "", 100, 0)
	s.Require().NoError(err)
	s.Equal(model.EntryID("e2"), entries[0].ID)
	s.Equal(1, entries[0].Rank)
	s.Equal(model.EntryID("e1"), entries[1].ID)
	s.Equal(2, entries[1].Rank)
}

func (s *StorageSuite) TestTiedScoresKeepInsertionOrder() {
	s.addEntry("e1", 200, "walls")
	s.addEntry("e2", 200, "walls")
	s.addEntry("e3", 200, "walls")

	entries, err := s.storage.ListLeaderboard(s.ctx, "", 100, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)

	s.Equal(model.EntryID("e1"), entries[0].ID)
	s.Equal(model.EntryID("e2"), entries[1].ID)
	s.Equal(model.EntryID("e3"), entries[2].ID)
	s.Equal(1, entries[0].Rank)
	s.Equal(2, entries[1].Rank)
	s.Equal(3, entries[2].Rank)
}

func (s *StorageSuite) TestModeFilterKeepsGlobalRanks() {
	s.addEntry("e1", 300, "walls")
	s.addEntry("e2", 250, "passthrough")
	s.addEntry("e3", 200, "walls")

	entries, err := s.storage.ListLeaderboard(s.ctx, "walls", 100, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)

	s.Equal(model.EntryID("e1"), entries[0].ID)
	s.Equal(1, entries[0].Rank)
	s.Equal(model.EntryID("e3"), entries[1].ID)
	s.Equal(3, entries[1].Rank) // global rank, not position within the filter
}

func (s *StorageSuite) TestListPagination() {
	s.addEntry("e1", 300, "walls")
	s.addEntry("e2", 200, "walls")
	s.addEntry("e3", 100, "walls")

	entries, err := s.storage.ListLeaderboard(s.ctx, "", 2, 1)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(model.EntryID("e2"), entries[0].ID)
	s.Equal(model.EntryID("e3"), entries[1].ID)
}

func (s *StorageSuite) TestListOffsetBeyondLengthReturnsEmpty() {
	s.addEntry("e1", 100, "walls")

	entries, err := s.storage.ListLeaderboard(s.ctx, "", 100, 5)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *StorageSuite) TestEmptyLeaderboard() {
	entries, err := s.storage.ListLeaderboard(s.ctx, "", 100, 0)
	s.Require().NoError(err)
	s.Empty(entries)

	count, err := s.storage.CountLeaderboard(s.ctx, "")
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *StorageSuite) TestCountWithModeFilter() {
	s.addEntry("e1", 300, "walls")
	s.addEntry("e2", 200, "passthrough")
	s.addEntry("e3", 100, "walls")

	count, err := s.storage.CountLeaderboard(s.ctx, "")
	s.Require().NoError(err)
	s.Equal(3, count)

	count, err = s.storage.CountLeaderboard(s.ctx, "walls")
	s.Require().NoError(err)
	s.Equal(2, count)

	count, err = s.storage.CountLeaderboard(s.ctx, "maze")
	s.Require().NoError(err)
	s.Equal(0, count)
}

// Session tests

func (s *StorageSuite) newSession(id string, startedAt time.Time) *model.GameSession {
	return &model.GameSession{
		ID:        model.SessionID(id),
		UserID:    "user-1",
		Username:  "alice",
		Mode:      "walls",
		Active:    true,
		StartedAt: startedAt,
	}
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := s.newSession("s1", s.now)
	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "s1")
	s.Require().NoError(err)
	s.True(retrieved.Active)
	s.Equal("walls", retrieved.Mode)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestListActiveSessionsOrderedByActivity() {
	_ = s.storage.SaveSession(s.ctx, s.newSession("s1", s.now))
	_ = s.storage.SaveSession(s.ctx, s.newSession("s2", s.now.Add(2*time.Minute)))
	_ = s.storage.SaveSession(s.ctx, s.newSession("s3", s.now.Add(time.Minute)))

	// Updating s1 makes it the most recently active despite starting first
	score := 50
	_, err := s.storage.ApplySessionPatch(s.ctx, "s1", model.SessionPatch{CurrentScore: &score}, s.now.Add(5*time.Minute))
	s.Require().NoError(err)

	sessions, err := s.storage.ListActiveSessions(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(sessions, 3)
	s.Equal(model.SessionID("s1"), sessions[0].ID)
	s.Equal(model.SessionID("s2"), sessions[1].ID)
	s.Equal(model.SessionID("s3"), sessions[2].ID)
}

func (s *StorageSuite) TestListActiveSessionsTruncatesToLimit() {
	_ = s.storage.SaveSession(s.ctx, s.newSession("s1", s.now))
	_ = s.storage.SaveSession(s.ctx, s.newSession("s2", s.now.Add(time.Minute)))

	sessions, err := s.storage.ListActiveSessions(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(sessions, 1)
	s.Equal(model.SessionID("s2"), sessions[0].ID)
}

func (s *StorageSuite) TestListActiveExcludesEndedSessions() {
	_ = s.storage.SaveSession(s.ctx, s.newSession("s1", s.now))
	_ = s.storage.SaveSession(s.ctx, s.newSession("s2", s.now))

	_, err := s.storage.ApplySessionPatch(s.ctx, "s1", model.EndPatch(100), s.now.Add(time.Minute))
	s.Require().NoError(err)

	sessions, err := s.storage.ListActiveSessions(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(sessions, 1)
	s.Equal(model.SessionID("s2"), sessions[0].ID)
}

func (s *StorageSuite) TestPatchMergesOnlyGivenFields() {
	session := s.newSession("s1", s.now)
	direction := "UP"
	session.GameState = &model.GameState{Direction: &direction}
	session.CurrentScore = 10
	_ = s.storage.SaveSession(s.ctx, session)

	score := 42
	updated, err := s.storage.ApplySessionPatch(s.ctx, "s1", model.SessionPatch{CurrentScore: &score}, s.now.Add(time.Minute))
	s.Require().NoError(err)

	s.Equal(42, updated.CurrentScore)
	s.Require().NotNil(updated.GameState)
	s.Equal("UP", *updated.GameState.Direction) // untouched

	down := "DOWN"
	updated, err = s.storage.ApplySessionPatch(s.ctx, "s1", model.SessionPatch{GameState: &model.GameState{Direction: &down}}, s.now.Add(2*time.Minute))
	s.Require().NoError(err)

	s.Equal(42, updated.CurrentScore) // untouched
	s.Equal("DOWN", *updated.GameState.Direction)
}

func (s *StorageSuite) TestPatchAdvancesLastUpdatedAt() {
	_ = s.storage.SaveSession(s.ctx, s.newSession("s1", s.now))

	retrieved, _ := s.storage.GetSession(s.ctx, "s1")
	s.Nil(retrieved.LastUpdatedAt)

	score := 1
	first, err := s.storage.ApplySessionPatch(s.ctx, "s1", model.SessionPatch{CurrentScore: &score}, s.now.Add(time.Minute))
	s.Require().NoError(err)
	s.Require().NotNil(first.LastUpdatedAt)

	later := s.now.Add(2 * time.Minute)
	second, err := s.storage.ApplySessionPatch(s.ctx, "s1", model.SessionPatch{CurrentScore: &score}, later)
	s.Require().NoError(err)
	s.Require().NotNil(second.LastUpdatedAt)
	s.False(second.LastUpdatedAt.Before(*first.LastUpdatedAt))
}

func (s *StorageSuite) TestEndPatchFreezesScores() {
	_ = s.storage.SaveSession(s.ctx, s.newSession("s1", s.now))

	ended, err := s.storage.ApplySessionPatch(s.ctx, "s1", model.EndPatch(250), s.now.Add(time.Minute))
	s.Require().NoError(err)

	s.False(ended.Active)
	s.Equal(250, ended.Score)
	s.Equal(250, ended.CurrentScore)
}

func (s *StorageSuite) TestPatchRejectedOnceEnded() {
	_ = s.storage.SaveSession(s.ctx, s.newSession("s1", s.now))

	_, err := s.storage.ApplySessionPatch(s.ctx, "s1", model.EndPatch(250), s.now.Add(time.Minute))
	s.Require().NoError(err)

	score := 99
	_, err = s.storage.ApplySessionPatch(s.ctx, "s1", model.SessionPatch{CurrentScore: &score}, s.now.Add(2*time.Minute))
	s.ErrorIs(err, model.ErrSessionEnded)

	_, err = s.storage.ApplySessionPatch(s.ctx, "s1", model.EndPatch(300), s.now.Add(2*time.Minute))
	s.ErrorIs(err, model.ErrSessionEnded)
}

func (s *StorageSuite) TestPatchNotFound() {
	score := 1
	_, err := s.storage.ApplySessionPatch(s.ctx, "missing", model.SessionPatch{CurrentScore: &score}, s.now)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Isolation tests

func (s *StorageSuite) TestReturnedEntriesAreSnapshots() {
	first := s.addEntry("e1", 100, "walls")
	s.Equal(1, first.Rank)

	listed, err := s.storage.ListLeaderboard(s.ctx, "", 100, 0)
	s.Require().NoError(err)
	s.Require().Len(listed, 1)

	s.addEntry("e2", 500, "walls")

	// Entries handed out before the insert keep the ranks they were
	// returned with; only a fresh read sees the re-rank
	s.Equal(1, first.Rank)
	s.Equal(1, listed[0].Rank)

	entries, err := s.storage.ListLeaderboard(s.ctx, "", 100, 0)
	s.Require().NoError(err)
	s.Equal(2, entries[1].Rank)
}

func (s *StorageSuite) TestReturnedSessionsAreSnapshots() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.newSession("s1", s.now)))

	before, err := s.storage.GetSession(s.ctx, "s1")
	s.Require().NoError(err)

	score := 42
	_, err = s.storage.ApplySessionPatch(s.ctx, "s1", model.SessionPatch{CurrentScore: &score}, s.now.Add(time.Minute))
	s.Require().NoError(err)

	s.Equal(0, before.CurrentScore)
	s.Nil(before.LastUpdatedAt)
}

func (s *StorageSuite) TestSavedObjectsDetachedFromCaller() {
	session := s.newSession("s1", s.now)
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	// Mutating the caller's object after save must not leak into the store
	session.CurrentScore = 999

	retrieved, err := s.storage.GetSession(s.ctx, "s1")
	s.Require().NoError(err)
	s.Equal(0, retrieved.CurrentScore)
}

func (s *StorageSuite) TestConcurrentReadsAndWrites() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.newSession("s1", s.now)))

	const iterations = 200
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			entry := &model.LeaderboardEntry{
				ID:          model.EntryID(fmt.Sprintf("e%d", i)),
				UserID:      "user-1",
				Username:    "alice",
				Score:       i % 50,
				Mode:        "walls",
				SubmittedAt: s.now,
			}
			_, _ = s.storage.AddLeaderboardEntry(s.ctx, entry)

			score := i
			_, _ = s.storage.ApplySessionPatch(s.ctx, "s1", model.SessionPatch{CurrentScore: &score}, s.now)
		}
	}()

	var rankSum, scoreSum int
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			entries, _ := s.storage.ListLeaderboard(s.ctx, "", 10, 0)
			for _, e := range entries {
				rankSum += e.Rank
			}
			if sess, err := s.storage.GetSession(s.ctx, "s1"); err == nil {
				scoreSum += sess.CurrentScore
			}
		}
	}()

	wg.Wait()
	s.GreaterOrEqual(rankSum, 0)
	s.GreaterOrEqual(scoreSum, 0)

	count, err := s.storage.CountLeaderboard(s.ctx, "")
	s.Require().NoError(err)
	s.Equal(iterations, count)
}
