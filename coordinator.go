package leaguepulse

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leaguepulse/leaguepulse/internal/metrics"
	"github.com/leaguepulse/leaguepulse/internal/schedule"
)

// DataSource is the read-only upstream the coordinator fetches from.
//
// Implementations must be safe for concurrent use: within one fetch cycle
// the league, roster, member, and matchup calls are issued concurrently.
// Errors should be the internal/sleeper typed errors (or wrap them) so
// failures classify correctly; anything unrecognized counts as a
// connection failure.
type DataSource interface {
	SeasonState(ctx context.Context) (SeasonState, error)
	League(ctx context.Context, leagueID string) (LeagueInfo, error)
	Rosters(ctx context.Context, leagueID string) ([]Roster, error)
	Members(ctx context.Context, leagueID string) ([]LeagueMember, error)
	Matchups(ctx context.Context, leagueID string, week int) ([]Matchup, error)
}

// cycleTicket represents one fetch cycle that callers can wait on.
// err is written before done is closed.
type cycleTicket struct {
	done chan struct{}
	err  error
}

func newCycleTicket() *cycleTicket {
	return &cycleTicket{done: make(chan struct{})}
}

// Coordinator owns the fetch/aggregate/reschedule loop for one league.
//
// One logical timer-driven loop runs per Coordinator: a fetch cycle runs to
// completion before the next is scheduled, and at most one cycle is ever in
// flight. On success the new Snapshot replaces the published one atomically
// and the next interval is recomputed from the current wall-clock phase. On
// failure the previously published Snapshot keeps serving, the failure is
// recorded for observers, and the previous interval is reused.
//
// All lifecycle methods are safe for concurrent use.
type Coordinator struct {
	source     DataSource
	leagueID   string
	myUsername string
	classifier *schedule.Classifier
	policy     schedule.Policy
	logger     *slog.Logger
	metrics    *metrics.Recorder
	callbacks  []func(*Snapshot)
	now        func() time.Time

	snapshot atomic.Pointer[Snapshot]

	kick chan struct{}

	mu          sync.Mutex
	failure     *Failure
	inflight    *cycleTicket
	interval    time.Duration
	subscribers map[chan *Snapshot]struct{}
	started     bool
	stopped     bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newCoordinator(source DataSource, leagueID, myUsername string, classifier *schedule.Classifier, policy schedule.Policy, logger *slog.Logger, recorder *metrics.Recorder, callbacks []func(*Snapshot)) *Coordinator {
	return &Coordinator{
		source:      source,
		leagueID:    leagueID,
		myUsername:  myUsername,
		classifier:  classifier,
		policy:      policy,
		logger:      logger,
		metrics:     recorder,
		callbacks:   callbacks,
		now:         time.Now,
		kick:        make(chan struct{}, 1),
		interval:    policy.IntervalFor(schedule.NonGameDay),
		subscribers: make(map[chan *Snapshot]struct{}),
	}
}

// Start begins the polling loop in a background goroutine.
//
// The loop performs an immediate fetch cycle, then reschedules itself at
// the interval computed after each cycle. Start is idempotent; calls after
// the first (or after Stop) are no-ops. If ctx is nil, context.Background()
// is used.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	c.started = true
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		c.run(ctx)
	}()
}

// Stop tears the loop down: it cancels any in-flight sub-fetches and the
// armed timer, then waits for the loop to exit. No shared state is updated
// after Stop returns. Idempotent, and safe to call before Start.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if !c.stopped {
		c.stopped = true
		if c.cancel != nil {
			c.cancel()
		}
	}
	c.mu.Unlock()

	c.wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	for ch := range c.subscribers {
		close(ch)
		delete(c.subscribers, ch)
	}
}

// run is the single timer-driven loop. It owns the timer; cycles never
// overlap because they execute inline here.
func (c *Coordinator) run(ctx context.Context) {
	c.runCycle(ctx)

	timer := time.NewTimer(c.currentInterval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			c.failPending(ctx.Err())
			return
		case <-timer.C:
			c.runCycle(ctx)
			timer.Reset(c.currentInterval())
		case <-c.kick:
			if !c.hasPendingTicket() {
				// the cycle this kick requested was already absorbed
				// by a timer tick
				continue
			}
			c.runCycle(ctx)
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(c.currentInterval())
		}
	}
}

// RefreshNow forces an out-of-band fetch cycle and blocks until it
// resolves, returning the cycle's error.
//
// A forced refresh collapses with any already-in-flight cycle: it waits on
// the in-flight result rather than issuing a second fetch. Returns ctx's
// error if the caller's context is cancelled first.
func (c *Coordinator) RefreshNow(ctx context.Context) error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return context.Canceled
	}
	ticket := c.inflight
	if ticket == nil {
		ticket = newCycleTicket()
		c.inflight = ticket
		select {
		case c.kick <- struct{}{}:
		default:
		}
	}
	c.mu.Unlock()

	select {
	case <-ticket.done:
		return ticket.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CurrentSnapshot returns the most recently published Snapshot, or
// ErrNotReady if no fetch cycle has ever succeeded.
func (c *Coordinator) CurrentSnapshot() (*Snapshot, error) {
	if snap := c.snapshot.Load(); snap != nil {
		return snap, nil
	}
	return nil, ErrNotReady
}

// LastFailure returns the most recent cycle failure, or false if the last
// cycle succeeded (or none has run).
func (c *Coordinator) LastFailure() (Failure, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failure == nil {
		return Failure{}, false
	}
	return *c.failure, true
}

// Subscribe returns a channel that receives each newly published Snapshot.
//
// The channel is buffered; if a subscriber falls behind, notifications are
// dropped for it rather than blocking publication (the subscriber can
// always read the latest state via CurrentSnapshot). The channel is closed
// by Unsubscribe or Stop.
func (c *Coordinator) Subscribe() <-chan *Snapshot {
	ch := make(chan *Snapshot, 16)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		close(ch)
		return ch
	}
	c.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscription and closes its channel. Safe to call
// with an unknown channel or more than once.
func (c *Coordinator) Unsubscribe(ch <-chan *Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for sub := range c.subscribers {
		if sub == ch {
			delete(c.subscribers, sub)
			close(sub)
			return
		}
	}
}

// runCycle executes one full fetch/aggregate/reschedule cycle inline.
func (c *Coordinator) runCycle(ctx context.Context) {
	ticket := c.claimTicket()
	start := c.now()

	snap, err := c.fetchCycle(ctx)
	elapsed := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			// teardown, not an upstream failure
			c.resolveTicket(ticket, ctx.Err())
			return
		}
		kind := classifyFailure(err)
		c.mu.Lock()
		c.failure = &Failure{Kind: kind, Err: err, At: c.now()}
		c.mu.Unlock()
		c.metrics.RecordCycle(elapsed, string(kind))
		c.logger.Warn("fetch cycle failed",
			"league_id", c.leagueID,
			"kind", string(kind),
			"error", err.Error(),
			"duration_ms", elapsed.Milliseconds(),
		)
		// keep the previous interval; the schedule is already adaptive
		c.resolveTicket(ticket, err)
		return
	}

	c.publish(snap)

	phase := c.classifier.Classify(c.now(), snap.Season.Week, schedule.SeasonType(snap.Season.Phase))
	next := c.policy.IntervalFor(phase)
	c.mu.Lock()
	c.failure = nil
	c.interval = next
	c.mu.Unlock()

	c.metrics.RecordCycle(elapsed, "success")
	c.logger.Debug("fetch cycle succeeded",
		"league_id", c.leagueID,
		"week", snap.Season.Week,
		"phase", phase.String(),
		"next_interval", next.String(),
		"duration_ms", elapsed.Milliseconds(),
	)
	c.resolveTicket(ticket, nil)
}

// fetchCycle gathers all entity sets and aggregates them into a Snapshot.
//
// The season clock is fetched first because the matchup call needs the
// current week; the remaining fetches run concurrently. One failing
// sub-fetch cancels its siblings and fails the whole cycle, so a Snapshot
// is never built from partial data.
func (c *Coordinator) fetchCycle(ctx context.Context) (*Snapshot, error) {
	season, err := c.source.SeasonState(ctx)
	if err != nil {
		return nil, err
	}

	var (
		league   LeagueInfo
		rosters  []Roster
		members  []LeagueMember
		matchups []Matchup
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		league, err = c.source.League(gctx, c.leagueID)
		return err
	})
	g.Go(func() error {
		var err error
		rosters, err = c.source.Rosters(gctx, c.leagueID)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = c.source.Members(gctx, c.leagueID)
		return err
	})
	if season.Phase.Active() {
		// matchups only exist during the regular season and postseason
		g.Go(func() error {
			var err error
			matchups, err = c.source.Matchups(gctx, c.leagueID, season.Week)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return BuildSnapshot(league, season, rosters, members, matchups, c.myUsername)
}

// publish atomically swaps in the new Snapshot and notifies observers.
func (c *Coordinator) publish(snap *Snapshot) {
	c.snapshot.Store(snap)
	c.metrics.RecordPublish(snap.FetchedAt)

	c.mu.Lock()
	for ch := range c.subscribers {
		select {
		case ch <- snap:
		default:
			// subscriber is slow, drop the notification
		}
	}
	c.mu.Unlock()

	for _, cb := range c.callbacks {
		c.invokeCallbackSafe(cb, snap)
	}
}

// invokeCallbackSafe calls a snapshot callback with panic recovery. The
// full stack is logged with a correlation id; the loop keeps running.
func (c *Coordinator) invokeCallbackSafe(cb func(*Snapshot), snap *Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			c.logger.Error("snapshot callback panicked",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	cb(snap)
}

// claimTicket adopts the pending cycle ticket, or creates one when the
// cycle was triggered by the timer rather than RefreshNow.
func (c *Coordinator) claimTicket() *cycleTicket {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight == nil {
		c.inflight = newCycleTicket()
	}
	return c.inflight
}

// resolveTicket completes a cycle ticket, waking any RefreshNow callers.
func (c *Coordinator) resolveTicket(t *cycleTicket, err error) {
	c.mu.Lock()
	if c.inflight == t {
		c.inflight = nil
	}
	c.mu.Unlock()
	t.err = err
	close(t.done)
}

// failPending resolves a ticket left pending at teardown so RefreshNow
// callers unblock.
func (c *Coordinator) failPending(err error) {
	c.mu.Lock()
	ticket := c.inflight
	c.inflight = nil
	c.mu.Unlock()
	if ticket != nil {
		ticket.err = err
		close(ticket.done)
	}
}

func (c *Coordinator) hasPendingTicket() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight != nil
}

func (c *Coordinator) currentInterval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}
