package leaguepulse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leaguepulse/leaguepulse/internal/metrics"
	"github.com/leaguepulse/leaguepulse/internal/schedule"
	"github.com/leaguepulse/leaguepulse/internal/sleeper"
)

// LeaguePulse is the main orchestrator: it owns the Sleeper client, the
// schedule classifier, and the polling [Coordinator] for one league.
//
// The typical lifecycle is:
//
//	lp, err := leaguepulse.New(leagueID, leaguepulse.WithUsername("me"))
//	if err != nil {
//	    slog.Error("failed to create leaguepulse", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	lp.Start(ctx) // blocks until context cancelled
//
// The caller controls the lifecycle via the context. Cancel the context to
// trigger graceful shutdown.
type LeaguePulse struct {
	leagueID string
	client   *sleeper.Client
	coord    *Coordinator
	logger   *slog.Logger
}

// New creates a LeaguePulse for the given league identifier.
//
// The league identifier is required; everything else has defaults: the
// public Sleeper API, the standard NFL schedule in US Eastern time, and the
// default per-phase polling intervals. Returns an error if the league id is
// empty or any option is invalid.
func New(leagueID string, opts ...Option) (*LeaguePulse, error) {
	if leagueID == "" {
		return nil, errors.New("league id is required")
	}

	cfg := &lpConfig{
		scheduleCfg: schedule.DefaultConfig(),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	classifier, err := schedule.NewClassifier(cfg.scheduleCfg)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule config: %w", err)
	}
	policy := schedule.NewPolicy(cfg.scheduleCfg.Intervals)

	var recorder *metrics.Recorder
	if cfg.registerer != nil {
		recorder = metrics.NewRecorder(cfg.registerer)
	}

	lp := &LeaguePulse{
		leagueID: leagueID,
		logger:   logger,
	}

	source := cfg.source
	if source == nil {
		lp.client = sleeper.NewClient(cfg.baseURL, cfg.timeout)
		source = &sleeperSource{client: lp.client}
	}

	lp.coord = newCoordinator(source, leagueID, cfg.username, classifier, policy, logger, recorder, cfg.callbacks)
	return lp, nil
}

// Start begins polling and blocks until the provided context is cancelled.
//
// The first fetch cycle runs immediately; subsequent cycles follow the
// adaptive schedule. Returns nil on graceful shutdown.
func (lp *LeaguePulse) Start(ctx context.Context) error {
	lp.logger.Info("leaguepulse starting", "league_id", lp.leagueID)

	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return nil
	}

	lp.coord.Start(ctx)

	<-ctx.Done()
	lp.coord.Stop()
	if lp.client != nil {
		lp.client.Close()
	}
	lp.logger.Info("leaguepulse stopped", "league_id", lp.leagueID)
	return nil
}

// CurrentSnapshot returns the most recently published Snapshot, or
// ErrNotReady before the first successful fetch cycle.
func (lp *LeaguePulse) CurrentSnapshot() (*Snapshot, error) {
	return lp.coord.CurrentSnapshot()
}

// LastFailure returns the most recent cycle failure, or false if the last
// cycle succeeded.
func (lp *LeaguePulse) LastFailure() (Failure, bool) {
	return lp.coord.LastFailure()
}

// RefreshNow forces an out-of-band fetch cycle; see [Coordinator.RefreshNow].
func (lp *LeaguePulse) RefreshNow(ctx context.Context) error {
	return lp.coord.RefreshNow(ctx)
}

// Subscribe returns a channel receiving each newly published Snapshot;
// see [Coordinator.Subscribe].
func (lp *LeaguePulse) Subscribe() <-chan *Snapshot {
	return lp.coord.Subscribe()
}

// Unsubscribe removes a subscription created by Subscribe.
func (lp *LeaguePulse) Unsubscribe(ch <-chan *Snapshot) {
	lp.coord.Unsubscribe(ch)
}

// LeagueID returns the configured league identifier.
func (lp *LeaguePulse) LeagueID() string {
	return lp.leagueID
}

// sleeperSource adapts the internal Sleeper client to the DataSource
// interface, converting wire types to the public domain types.
type sleeperSource struct {
	client *sleeper.Client
}

func (s *sleeperSource) SeasonState(ctx context.Context) (SeasonState, error) {
	state, err := s.client.NFLState(ctx)
	if err != nil {
		return SeasonState{}, err
	}
	return SeasonState{
		Week:   state.Week,
		Season: state.Season,
		Phase:  SeasonPhase(state.SeasonType),
	}, nil
}

func (s *sleeperSource) League(ctx context.Context, leagueID string) (LeagueInfo, error) {
	league, err := s.client.League(ctx, leagueID)
	if err != nil {
		return LeagueInfo{}, err
	}
	return LeagueInfo{
		LeagueID:     league.LeagueID,
		Name:         league.Name,
		Status:       league.Status,
		Season:       league.Season,
		TotalRosters: league.TotalRosters,
	}, nil
}

func (s *sleeperSource) Rosters(ctx context.Context, leagueID string) ([]Roster, error) {
	rosters, err := s.client.Rosters(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	out := make([]Roster, len(rosters))
	for i, r := range rosters {
		out[i] = Roster{
			RosterID:       r.RosterID,
			OwnerID:        r.OwnerID,
			Wins:           r.Wins,
			Losses:         r.Losses,
			Ties:           r.Ties,
			PointsFor:      r.PointsFor,
			PointsAgainst:  r.PointsAgainst,
			WaiverPosition: r.WaiverPosition,
			TotalMoves:     r.TotalMoves,
		}
	}
	return out, nil
}

func (s *sleeperSource) Members(ctx context.Context, leagueID string) ([]LeagueMember, error) {
	members, err := s.client.Members(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	out := make([]LeagueMember, len(members))
	for i, m := range members {
		out[i] = LeagueMember{
			UserID:      m.UserID,
			DisplayName: m.DisplayName,
			TeamName:    m.TeamName,
		}
	}
	return out, nil
}

func (s *sleeperSource) Matchups(ctx context.Context, leagueID string, week int) ([]Matchup, error) {
	matchups, err := s.client.Matchups(ctx, leagueID, week)
	if err != nil {
		return nil, err
	}
	out := make([]Matchup, len(matchups))
	for i, m := range matchups {
		out[i] = Matchup{
			RosterID:  m.RosterID,
			Week:      week,
			Points:    m.Points,
			MatchupID: m.MatchupID,
		}
	}
	return out, nil
}
