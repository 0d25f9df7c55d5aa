package characters

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/petrichor-games/duelist/internal/domain/sheet"
	apperr "github.com/petrichor-games/duelist/internal/errors"
)

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client redis.UniversalClient
}

// NewRedis creates a Redis-backed character repository
func NewRedis(client redis.UniversalClient) *redisRepo {
	if client == nil {
		panic("redis client is required")
	}
	return &redisRepo{client: client}
}

func characterKey(id string) string {
	return fmt.Sprintf("character:%s", id)
}

func roomCharactersKey(roomID string) string {
	return fmt.Sprintf("room:%s:characters", roomID)
}

// Get retrieves a character by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*sheet.Character, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("character id is required")
	}

	data, err := r.client.Get(ctx, characterKey(id)).Bytes()
	if err == redis.Nil {
		return nil, apperr.NotFoundf("character not found: %s", id)
	}
	if err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to get character")
	}

	var c sheet.Character
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, apperr.Wrap(err, "failed to unmarshal character")
	}
	return &c, nil
}

// Put stores a character sheet
func (r *redisRepo) Put(ctx context.Context, c *sheet.Character) error {
	if c == nil {
		return apperr.InvalidArgument("character cannot be nil")
	}
	if c.ID == "" {
		return apperr.InvalidArgument("character id is required")
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return apperr.Wrap(err, "failed to marshal character")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, characterKey(c.ID), payload, 0)
	if c.RoomID != "" {
		pipe.SAdd(ctx, roomCharactersKey(c.RoomID), c.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to store character")
	}
	return nil
}

// ListByRoom retrieves all characters in a room, sorted by name
func (r *redisRepo) ListByRoom(ctx context.Context, roomID string) ([]*sheet.Character, error) {
	if roomID == "" {
		return nil, apperr.InvalidArgument("room id is required")
	}

	ids, err := r.client.SMembers(ctx, roomCharactersKey(roomID)).Result()
	if err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to list room characters")
	}

	chars := make([]*sheet.Character, len(ids))
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
			chars[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*sheet.Character, 0, len(chars))
	for _, c := range chars {
		if c != nil {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}
