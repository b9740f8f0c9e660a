package ticker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stormvale/vocation-engine/internal/logger"
	"github.com/stormvale/vocation-engine/internal/metrics"
	"github.com/stormvale/vocation-engine/internal/realtime"
	"github.com/stormvale/vocation-engine/internal/vocation"
)

// Broadcaster pushes events to a player's live connections.
type Broadcaster interface {
	BroadcastToPlayer(playerID string, event realtime.Event)
}

// Poller sweeps running activities on a fixed interval and settles at most
// one unit per activity per sweep, pushing the result to connected clients.
// A sweep that overruns the interval is not stacked behind another; the
// in-flight guard skips the overlapping fire instead.
type Poller struct {
	svc      vocation.Service
	hub      Broadcaster
	interval time.Duration

	sweeping atomic.Bool
	quit     chan struct{}
	wg       sync.WaitGroup

	now func() time.Time
}

// New creates a poller sweeping at the given interval.
func New(svc vocation.Service, hub Broadcaster, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = time.Second
	}
	return &Poller{
		svc:      svc,
		hub:      hub,
		interval: interval,
		quit:     make(chan struct{}),
		now:      time.Now,
	}
}

// Start launches the sweep loop.
func (p *Poller) Start(ctx context.Context) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				p.Sweep(ctx)
			case <-p.quit:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (p *Poller) Stop() {
	close(p.quit)
	p.wg.Wait()
}

// Sweep settles one due unit for every running activity. Exported so tests
// and the daemon's signal handling can run a sweep directly.
func (p *Poller) Sweep(ctx context.Context) {
	if !p.sweeping.CompareAndSwap(false, true) {
		logger.FromContext(ctx).Warn("Tick sweep still running, skipping this interval")
		return
	}
	defer p.sweeping.Store(false)

	start := time.Now()
	defer func() {
		metrics.TickSweeps.Inc()
		metrics.TickSweepDuration.Observe(time.Since(start).Seconds())
	}()

	log := logger.FromContext(ctx)
	now := p.now()

	activities, err := p.svc.ListRunning(ctx, now)
	if err != nil {
		log.Error("Failed to list running activities", "error", err)
		return
	}

	for i := range activities {
		act := &activities[i]

		progress := vocation.Progress(act, now)
		if progress.UnitsClaimable == 0 && !progress.IsComplete {
			continue
		}

		result, err := p.svc.Claim(ctx, act.PlayerID, 1)
		if err != nil {
			metrics.TickClaimErrors.Inc()
			log.Error("Tick claim failed", "playerID", act.PlayerID, "error", err)
			continue
		}

		if result.ClaimedUnits == 0 && !result.Stopped {
			continue
		}

		p.hub.BroadcastToPlayer(act.PlayerID, realtime.NewEvent(realtime.EventTypeTick, act.PlayerID, realtime.TickPayload{
			ActionType:              act.ActionType,
			ResourceID:              act.ResourceID,
			ClaimedUnits:            result.ClaimedUnits,
			GrantedQuantity:         result.GrantedQuantity,
			XPAwarded:               result.XPAwarded,
			RemainingClaimableUnits: result.RemainingClaimableUnits,
			Stopped:                 result.Stopped,
		}))

		if result.GrantedQuantity > 0 {
			p.hub.BroadcastToPlayer(act.PlayerID, realtime.NewEvent(realtime.EventTypeInventoryChanged, act.PlayerID, realtime.InventoryChangedPayload{
				Quantity: result.GrantedQuantity,
			}))
		}
		if result.Stopped && result.Summary != nil {
			p.hub.BroadcastToPlayer(act.PlayerID, realtime.NewEvent(realtime.EventTypeActivityComplete, act.PlayerID, realtime.ActivityCompletePayload{
				Summary: result.Summary,
			}))
		}
	}
}
