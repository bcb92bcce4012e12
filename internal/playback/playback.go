// Package playback runs a play queue against the player adapter.
//
// The [QueueEngine] plays items one at a time, blocking per item, and
// checks for cancellation between items so a user-initiated stop takes
// effect at the next item boundary at the latest. Per-item failures are
// recorded and the queue keeps going; only cancellation stops it.
// Progress is reported over a channel without ever blocking playback.
package playback

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/player"
	"github.com/desertthunder/crate/internal/shared"
	"golang.org/x/time/rate"
)

// Options contains configuration for one queue run.
type Options struct {
	Player     player.Config // Per-item playback settings
	Shuffle    bool          // Play the queue in random order
	Seed       int64         // Shuffle seed; 0 seeds from the clock
	LaunchRate float64       // Max player launches per second (default 1)
}

// ItemResult records the outcome of one queue item.
type ItemResult struct {
	Item models.PlayableItem
	Err  error // nil on success
}

// RunResult contains all data from a queue run.
type RunResult struct {
	SessionID string       // Correlation id carried in logs
	Played    int          // Items that played to completion
	Failed    int          // Items the player reported a failure for
	Stopped   bool         // The run was cancelled before the queue drained
	Results   []ItemResult // Per-item outcomes in play order
}

// QueueEngine iterates a playable sequence through a [player.Player].
// It never touches catalog state.
type QueueEngine struct {
	player player.Player
	logger *log.Logger
}

// NewQueueEngine creates a queue engine over the given player.
func NewQueueEngine(p player.Player, logger *log.Logger) *QueueEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &QueueEngine{player: p, logger: shared.WithLogger(logger, "component", "playback")}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default so progress reporting never stalls playback.
func (e *QueueEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run plays every item in the queue, one at a time. An empty queue is a
// valid no-op run. Cancelling the context stops consumption at the next
// item boundary (and kills the current item via the player); the partial
// result is still returned with Stopped set.
func (e *QueueEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, items []models.PlayableItem, opts Options) (*RunResult, error) {
	if e.player == nil {
		return nil, fmt.Errorf("%w: no player configured", shared.ErrPlayerNotFound)
	}

	session := shared.GenerateID()
	logger := e.logger.With("session", session)

	result := &RunResult{
		SessionID: session,
		Results:   make([]ItemResult, 0, len(items)),
	}

	if len(items) == 0 {
		e.sendProgress(progress, queueDoneUpdate(0, 0, result))
		return result, nil
	}

	queue := items
	if opts.Shuffle {
		queue = shuffled(items, opts.Seed)
	}

	if opts.LaunchRate <= 0 {
		opts.LaunchRate = 1.0
	}

	// Throttle launches so a player that exits immediately cannot be
	// respawned in a tight loop.
	limiter := rate.NewLimiter(rate.Limit(opts.LaunchRate), 1)

	total := len(queue)
	logger.Info("starting queue", "items", total, "shuffle", opts.Shuffle)
	e.sendProgress(progress, queueStartUpdate(total))

	for i, item := range queue {
		select {
		case <-ctx.Done():
			result.Stopped = true
			logger.Info("queue stopped", "played", result.Played, "remaining", total-i)
			e.sendProgress(progress, queueDoneUpdate(i, total, result))
			return result, nil
		default:
		}

		if err := limiter.Wait(ctx); err != nil {
			result.Stopped = true
			e.sendProgress(progress, queueDoneUpdate(i, total, result))
			return result, nil
		}

		e.sendProgress(progress, playItemUpdate(i+1, total, item))

		err := e.player.Play(ctx, item, opts.Player)
		result.Results = append(result.Results, ItemResult{Item: item, Err: err})

		switch {
		case err == nil:
			result.Played++
			e.sendProgress(progress, itemDoneUpdate(i+1, total, item))
		case ctx.Err() != nil:
			result.Stopped = true
			logger.Info("playback cancelled", "title", item.Title)
			e.sendProgress(progress, queueDoneUpdate(i+1, total, result))
			return result, nil
		default:
			result.Failed++
			logger.Warn("item failed", "title", item.Title, "error", err)
			e.sendProgress(progress, itemFailedUpdate(i+1, total, item, err))
		}
	}

	logger.Info("queue finished", "played", result.Played, "failed", result.Failed)
	e.sendProgress(progress, queueDoneUpdate(total, total, result))
	return result, nil
}

// shuffled returns a shuffled copy, leaving the input order intact so
// playlist builders stay deterministic.
func shuffled(items []models.PlayableItem, seed int64) []models.PlayableItem {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	queue := make([]models.PlayableItem, len(items))
	copy(queue, items)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})

	return queue
}
