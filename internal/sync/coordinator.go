// Package sync keeps every connected client's view of a room's combats
// current: it subscribes to store change events and runs a periodic
// reconciliation poll that catches missed notifications. Events only name
// the changed record; state is always re-derived from a fresh read, and
// duplicate or out-of-order deliveries are squashed by record version.
package sync

import (
	"context"
	stdsync "sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/petrichor-games/duelist/internal/domain/combat"
	apperr "github.com/petrichor-games/duelist/internal/errors"
	"github.com/petrichor-games/duelist/internal/repositories/combats"
)

// OnChange receives the canonical record after every observed change,
// including changes the receiving client wrote itself.
type OnChange func(c *combat.Combat)

// Coordinator reconciles room state across clients
type Coordinator struct {
	repository combats.Repository
	watcher    combats.Watcher
	interval   time.Duration
	log        zerolog.Logger
}

// CoordinatorConfig holds configuration for the coordinator
type CoordinatorConfig struct {
	Repository combats.Repository
	Watcher    combats.Watcher
	// PollInterval is the reconciliation poll period backing up the
	// subscription. Defaults to 5s.
	PollInterval time.Duration
	Logger       zerolog.Logger
}

// NewCoordinator creates a sync coordinator
func NewCoordinator(cfg *CoordinatorConfig) *Coordinator {
	if cfg.Repository == nil {
		panic("combat repository is required")
	}
	if cfg.Watcher == nil {
		panic("combat watcher is required")
	}

	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	return &Coordinator{
		repository: cfg.Repository,
		watcher:    cfg.Watcher,
		interval:   interval,
		log:        cfg.Logger,
	}
}

// Run watches a room until ctx is done, invoking onChange with every new
// version of every combat record in the room. It returns the first
// subscription or poll failure, or ctx.Err() on shutdown.
func (co *Coordinator) Run(ctx context.Context, roomID string, onChange OnChange) error {
	if roomID == "" {
		return apperr.InvalidArgument("room id is required")
	}
	if onChange == nil {
		return apperr.InvalidArgument("onChange callback is required")
	}

	events, err := co.watcher.Watch(ctx, roomID)
	if err != nil {
		return err
	}

	seen := &versionTracker{delivered: make(map[string]int64)}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case event, ok := <-events:
				if !ok {
					return gctx.Err()
				}
				co.deliver(gctx, event.CombatID, seen, onChange)
			}
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(co.interval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := co.reconcile(gctx, roomID, seen, onChange); err != nil {
					co.log.Warn().Err(err).Str("room_id", roomID).Msg("reconciliation poll failed")
				}
			}
		}
	})

	return g.Wait()
}

// deliver re-reads one record and hands it to onChange if it is news
func (co *Coordinator) deliver(ctx context.Context, combatID string, seen *versionTracker, onChange OnChange) {
	c, err := co.repository.Get(ctx, combatID)
	if err != nil {
		co.log.Warn().Err(err).Str("combat_id", combatID).Msg("failed to read changed combat")
		return
	}
	if seen.newer(c.ID, c.Version) {
		onChange(c)
	}
}

// reconcile re-reads the whole room, catching events the subscription missed
func (co *Coordinator) reconcile(ctx context.Context, roomID string, seen *versionTracker, onChange OnChange) error {
	list, err := co.repository.ListByRoom(ctx, roomID)
	if err != nil {
		return err
	}
	for _, c := range list {
		if seen.newer(c.ID, c.Version) {
			onChange(c)
		}
	}
	return nil
}

// versionTracker records the highest delivered version per combat so
// duplicate and out-of-order deliveries collapse to one callback each.
type versionTracker struct {
	mu        stdsync.Mutex
	delivered map[string]int64
}

// newer marks version as delivered and reports whether it was news
func (t *versionTracker) newer(id string, version int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if version <= t.delivered[id] {
		return false
	}
	t.delivered[id] = version
	return true
}
