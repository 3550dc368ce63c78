package workout

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const snapshotKeyPrefix = "gymxp:session:"

// SnapshotStore keeps a redis hash per live session, so other instances and
// operators can see what is running. Hashes expire on their own.
type SnapshotStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewSnapshotStore(rdb redis.Cmdable, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{
		rdb: rdb,
		ttl: ttl,
	}
}

func SnapshotKey(id uuid.UUID) string {
	return snapshotKeyPrefix + id.String()
}

func (s *SnapshotStore) Save(ctx context.Context, session Session) error {
	key := SnapshotKey(session.ID)

	formatOptional := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format(time.RFC3339Nano)
	}

	// field order is fixed so the command is deterministic
	if err := s.rdb.HSet(ctx, key,
		"user_id", session.UserID,
		"analyzer", session.Analyzer,
		"status", session.Status.String(),
		"started_at", session.StartedAt.Format(time.RFC3339Nano),
		"last_frame_at", formatOptional(session.LastFrameAt),
		"last_seen_at", formatOptional(session.LastSeenAt),
		"reps", session.Reps,
		"frames", session.Frames,
		"stale_frames", session.StaleFrames,
	).Err(); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}

	if err := s.rdb.Expire(ctx, key, s.ttl).Err(); err != nil {
		return fmt.Errorf("expire %s: %w", key, err)
	}
	return nil
}

// Get returns ErrSessionNotFound when no snapshot exists.
func (s *SnapshotStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	values, err := s.rdb.HGetAll(ctx, SnapshotKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrSessionNotFound
	}

	session := &Session{
		ID:       id,
		UserID:   values["user_id"],
		Analyzer: values["analyzer"],
		Status:   Status(values["status"]),
	}
	if session.StartedAt, err = time.Parse(time.RFC3339Nano, values["started_at"]); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	for field, dst := range map[string]**time.Time{
		"last_frame_at": &session.LastFrameAt,
		"last_seen_at":  &session.LastSeenAt,
	} {
		v := values[field]
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", field, err)
		}
		*dst = &t
	}
	for field, dst := range map[string]*int{
		"reps":         &session.Reps,
		"frames":       &session.Frames,
		"stale_frames": &session.StaleFrames,
	} {
		if *dst, err = strconv.Atoi(values[field]); err != nil {
			return nil, fmt.Errorf("parse %s: %w", field, err)
		}
	}

	return session, nil
}

func (s *SnapshotStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rdb.Del(ctx, SnapshotKey(id)).Err()
}
