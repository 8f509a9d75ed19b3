package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neonsnake/neonsnake-backend/internal/model"
	"github.com/neonsnake/neonsnake-backend/internal/storage"
)

// seqStride spaces composite ZSET scores so that entries with equal game
// scores order by submission sequence (earlier submission ranks first).
// Supports up to ~1M submissions, well past the bounded leaderboard scale.
const seqStride = 1 << 20

// patchRetries bounds optimistic retries when a concurrent patch races ours
const patchRetries = 5

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, emailIndexKey(user.Email), string(user.ID), 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), string(user.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	id, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(id))
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	id, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(id))
}

// Leaderboard operations

func (s *Storage) AddLeaderboardEntry(ctx context.Context, entry *model.LeaderboardEntry) (*model.LeaderboardEntry, error) {
	seq, err := s.client.Incr(ctx, entrySeqKey()).Result()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}

	// Composite index score orders by game score descending, then by
	// submission order for ties
	composite := float64(entry.Score)*seqStride - float64(seq)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, entryKey(entry.ID), data, 0)
	pipe.ZAdd(ctx, scoreIndexKey(), redis.Z{Score: composite, Member: string(entry.ID)})
	pipe.Incr(ctx, modeCountKey(entry.Mode))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	rank, err := s.client.ZRevRank(ctx, scoreIndexKey(), string(entry.ID)).Result()
	if err != nil {
		return nil, err
	}
	entry.Rank = int(rank) + 1
	return entry, nil
}

func (s *Storage) ListLeaderboard(ctx context.Context, mode string, limit, offset int) ([]*model.LeaderboardEntry, error) {
	// Ranks are global, so the whole ordered index is read even when a mode
	// filter applies; the board is bounded by design
	entries, err := s.allEntriesRanked(ctx)
	if err != nil {
		return nil, err
	}

	filtered := entries
	if mode != "" {
		filtered = make([]*model.LeaderboardEntry, 0, len(entries))
		for _, e := range entries {
			if e.Mode == mode {
				filtered = append(filtered, e)
			}
		}
	}

	if offset >= len(filtered) {
		return []*model.LeaderboardEntry{}, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (s *Storage) CountLeaderboard(ctx context.Context, mode string) (int, error) {
	if mode == "" {
		total, err := s.client.ZCard(ctx, scoreIndexKey()).Result()
		if err != nil {
			return 0, err
		}
		return int(total), nil
	}

	count, err := s.client.Get(ctx, modeCountKey(mode)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// allEntriesRanked fetches every entry in index order with ranks assigned
func (s *Storage) allEntriesRanked(ctx context.Context) ([]*model.LeaderboardEntry, error) {
	ids, err := s.client.ZRevRange(ctx, scoreIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.LeaderboardEntry{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = entryKey(model.EntryID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*model.LeaderboardEntry, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var entry model.LeaderboardEntry
		if err := json.Unmarshal([]byte(val.(string)), &entry); err != nil {
			continue // Skip invalid data
		}
		entry.Rank = len(entries) + 1
		entries = append(entries, &entry)
	}

	return entries, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + active index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, sessionKey(session.ID), data, 0)
	if session.Active {
		pipe.SAdd(ctx, activeSessionsKey(), string(session.ID))
	} else {
		pipe.SRem(ctx, activeSessionsKey(), string(session.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) ListActiveSessions(ctx context.Context, limit int) ([]*model.GameSession, error) {
	ids, err := s.client.SMembers(ctx, activeSessionsKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.GameSession{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = sessionKey(model.SessionID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	active := make([]*model.GameSession, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var session model.GameSession
		if err := json.Unmarshal([]byte(val.(string)), &session); err != nil {
			continue // Skip invalid data
		}
		if !session.Active {
			continue
		}
		active = append(active, &session)
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].LastActivity().After(active[j].LastActivity())
	})

	if limit < len(active) {
		active = active[:limit]
	}
	return active, nil
}

func (s *Storage) ApplySessionPatch(ctx context.Context, id model.SessionID, patch model.SessionPatch, now time.Time) (*model.GameSession, error) {
	key := sessionKey(id)
	var updated *model.GameSession

	// Optimistic transaction: re-read and retry if a concurrent patch lands
	// between our read and write
	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrSessionNotFound
			}
			return err
		}

		var session model.GameSession
		if err := json.Unmarshal(data, &session); err != nil {
			return err
		}
		if !session.Active {
			return model.ErrSessionEnded
		}

		session.Apply(patch, now)

		newData, err := json.Marshal(&session)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, newData, 0)
			if !session.Active {
				pipe.SRem(ctx, activeSessionsKey(), string(session.ID))
			}
			return nil
		})
		if err != nil {
			return err
		}

		updated = &session
		return nil
	}

	for i := 0; i < patchRetries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, redis.TxFailedErr
}
