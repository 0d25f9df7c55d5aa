package combats

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/petrichor-games/duelist/internal/domain/combat"
	apperr "github.com/petrichor-games/duelist/internal/errors"
	"github.com/petrichor-games/duelist/internal/uuid"
)

// redisRepo implements Repository and Watcher using Redis. Records are
// JSON blobs; a per-room guard key makes the one-active-combat-per-room
// invariant an atomic SET NX instead of a check-then-insert race, and
// Update runs under WATCH so concurrent writers get a typed conflict
// instead of last-write-wins.
type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
}

// NewRedis creates a Redis-backed combat repository
func NewRedis(cfg *RedisRepoConfig) *redisRepo {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	repo := &redisRepo{
		client:        cfg.Client,
		uuidGenerator: cfg.UUIDGenerator,
	}
	if repo.uuidGenerator == nil {
		repo.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	return repo
}

func combatKey(id string) string {
	return fmt.Sprintf("combat:%s", id)
}

func roomIndexKey(roomID string) string {
	return fmt.Sprintf("room:%s:combats", roomID)
}

func roomActiveKey(roomID string) string {
	return fmt.Sprintf("room:%s:active_combat", roomID)
}

func roomChannel(roomID string) string {
	return fmt.Sprintf("room:%s:combat_events", roomID)
}

// Create stores a new combat, claiming the room's active slot first
func (r *redisRepo) Create(ctx context.Context, c *combat.Combat) error {
	if c == nil {
		return apperr.InvalidArgument("combat cannot be nil")
	}
	if c.RoomID == "" {
		return apperr.InvalidArgument("combat room id is required")
	}

	if c.ID == "" {
		c.ID = r.uuidGenerator.New()
	}
	c.Version = 1
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	payload, err := json.Marshal(c)
	if err != nil {
		return apperr.Wrap(err, "failed to marshal combat")
	}

	claimed := false
	if c.Active() {
		ok, err := r.client.SetNX(ctx, roomActiveKey(c.RoomID), c.ID, 0).Result()
		if err != nil {
			return apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to claim room active slot")
		}
		if !ok {
			return apperr.AlreadyExistsf("room %s already has an active combat", c.RoomID)
		}
		claimed = true
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, combatKey(c.ID), payload, 0)
	pipe.SAdd(ctx, roomIndexKey(c.RoomID), c.ID)
	pipe.Publish(ctx, roomChannel(c.RoomID), c.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		if claimed {
			// Release the slot so the room is not wedged by a failed write
			_ = r.client.Del(ctx, roomActiveKey(c.RoomID)).Err()
		}
		return apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to store combat")
	}

	return nil
}

// Get retrieves a combat by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*combat.Combat, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("combat id is required")
	}

	data, err := r.client.Get(ctx, combatKey(id)).Bytes()
	if err == redis.Nil {
		return nil, apperr.NotFoundf("combat not found: %s", id)
	}
	if err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to get combat")
	}

	var c combat.Combat
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, apperr.Wrap(err, "failed to unmarshal combat")
	}
	return &c, nil
}

// Update writes the whole record back under an optimistic version check
func (r *redisRepo) Update(ctx context.Context, c *combat.Combat, expectedVersion int64) error {
	if c == nil {
		return apperr.InvalidArgument("combat cannot be nil")
	}
	if c.ID == "" {
		return apperr.InvalidArgument("combat id is required")
	}

	key := combatKey(c.ID)
	activeKey := roomActiveKey(c.RoomID)

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return apperr.NotFoundf("combat not found: %s", c.ID)
		}
		if err != nil {
			return apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to read combat")
		}

		var stored combat.Combat
		if err := json.Unmarshal(data, &stored); err != nil {
			return apperr.Wrap(err, "failed to unmarshal stored combat")
		}
		if stored.Version != expectedVersion {
			return apperr.Conflictf("combat %s changed underneath you (read version %d, stored %d)",
				c.ID, expectedVersion, stored.Version).
				WithMeta("stored_version", stored.Version)
		}

		holdsActiveSlot := false
		if c.Terminal() {
			holder, err := tx.Get(ctx, activeKey).Result()
			if err != nil && err != redis.Nil {
				return apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to read room active slot")
			}
			holdsActiveSlot = holder == c.ID
		}

		c.Version = expectedVersion + 1
		c.UpdatedAt = time.Now().UTC()

		payload, err := json.Marshal(c)
		if err != nil {
			return apperr.Wrap(err, "failed to marshal combat")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			if holdsActiveSlot {
				pipe.Del(ctx, activeKey)
			}
			pipe.Publish(ctx, roomChannel(c.RoomID), c.ID)
			return nil
		})
		return err
	}

	err := r.client.Watch(ctx, txf, key, activeKey)
	if err == redis.TxFailedErr {
		return apperr.Conflictf("combat %s changed underneath you", c.ID)
	}
	if err != nil {
		if apperr.GetCode(err) != apperr.CodeUnknown {
			return err
		}
		return apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to update combat")
	}
	return nil
}

// ListByRoom retrieves all combats for a room, oldest first
func (r *redisRepo) ListByRoom(ctx context.Context, roomID string) ([]*combat.Combat, error) {
	if roomID == "" {
		return nil, apperr.InvalidArgument("room id is required")
	}

	ids, err := r.client.SMembers(ctx, roomIndexKey(roomID)).Result()
	if err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to list room combats")
	}

	combats := make([]*combat.Combat, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			c, err := r.Get(gctx, id)
			if err != nil {
				if apperr.IsNotFound(err) {
					return nil
				}
				return err
			}
			combats[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*combat.Combat, 0, len(combats))
	for _, c := range combats {
		if c != nil {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// GetActiveByRoom retrieves the room's pending or in-progress combat
func (r *redisRepo) GetActiveByRoom(ctx context.Context, roomID string) (*combat.Combat, error) {
	if roomID == "" {
		return nil, apperr.InvalidArgument("room id is required")
	}

	id, err := r.client.Get(ctx, roomActiveKey(roomID)).Result()
	if err == redis.Nil {
		return nil, apperr.NotFoundf("no active combat in room %s", roomID)
	}
	if err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to read room active slot")
	}

	c, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.Active() {
		return nil, apperr.NotFoundf("no active combat in room %s", roomID)
	}
	return c, nil
}

// Watch subscribes to change events for a room
func (r *redisRepo) Watch(ctx context.Context, roomID string) (<-chan Event, error) {
	if roomID == "" {
		return nil, apperr.InvalidArgument("room id is required")
	}

	pubsub := r.client.Subscribe(ctx, roomChannel(roomID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to subscribe to room events")
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		defer func() { _ = pubsub.Close() }()

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case events <- Event{RoomID: roomID, CombatID: msg.Payload}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}
