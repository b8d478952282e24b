package salesreport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrStaleGeneration is returned by Commit when a newer load began after gen.
var ErrStaleGeneration = errors.New("salesreport: superseded by a newer load")

const snapshotPrefix = "dailymart:report"

// Snapshot is the report a session last loaded successfully. Exports and the
// print view read only from it.
type Snapshot struct {
	Generation int64     `json:"generation"`
	LoadedAt   time.Time `json:"loaded_at"`
	Report     Report    `json:"report"`
}

// SnapshotStore keeps one snapshot per session in Redis. Every load takes a
// generation with Begin; Commit only stores the result while that generation
// is still the newest, so a slow response never replaces a newer one.
type SnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotStore constructs a store. Snapshots expire after ttl.
func NewSnapshotStore(client *redis.Client, ttl time.Duration) *SnapshotStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SnapshotStore{client: client, ttl: ttl}
}

// Begin starts a load for owner and returns its generation.
func (s *SnapshotStore) Begin(ctx context.Context, owner string) (int64, error) {
	key := s.generationKey(owner)
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("snapshot begin: %w", err)
	}
	return incr.Val(), nil
}

// Commit stores report as the snapshot of owner when gen is still the latest
// generation. It returns ErrStaleGeneration otherwise.
func (s *SnapshotStore) Commit(ctx context.Context, owner string, gen int64, report Report, now time.Time) error {
	payload, err := json.Marshal(Snapshot{Generation: gen, LoadedAt: now, Report: report})
	if err != nil {
		return fmt.Errorf("snapshot encode: %w", err)
	}
	genKey := s.generationKey(owner)
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return ErrStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.dataKey(owner), payload, s.ttl)
			return nil
		})
		return err
	}, genKey)
	switch {
	case errors.Is(err, ErrStaleGeneration):
		return ErrStaleGeneration
	case errors.Is(err, redis.TxFailedErr):
		// The generation moved while we were writing.
		return ErrStaleGeneration
	case err != nil:
		return fmt.Errorf("snapshot commit: %w", err)
	}
	return nil
}

// Load returns the snapshot of owner. ok is false when there is none.
func (s *SnapshotStore) Load(ctx context.Context, owner string) (Snapshot, bool, error) {
	payload, err := s.client.Get(ctx, s.dataKey(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("snapshot load: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("snapshot decode: %w", err)
	}
	return snap, true, nil
}

// Clear drops the snapshot of owner.
func (s *SnapshotStore) Clear(ctx context.Context, owner string) error {
	return s.client.Del(ctx, s.dataKey(owner), s.generationKey(owner)).Err()
}

func (s *SnapshotStore) generationKey(owner string) string {
	return fmt.Sprintf("%s:%s:generation", snapshotPrefix, owner)
}

func (s *SnapshotStore) dataKey(owner string) string {
	return fmt.Sprintf("%s:%s:data", snapshotPrefix, owner)
}
