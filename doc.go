// Package leaguepulse watches a Sleeper fantasy-football league on behalf
// of a long-running host process.
//
// LeaguePulse polls the Sleeper API on an adaptive schedule and publishes a
// single, fully-consistent [Snapshot] of league state (standings, rosters,
// members, the current week's matchups) that observers read on their own
// cadence. Polling cadence tracks the NFL calendar: every five minutes while
// games are live, hourly on a quiet regular-season day, daily in the
// offseason.
//
// # Quick Start
//
//	lp, _ := leaguepulse.New("289646328504385536",
//	    leaguepulse.WithUsername("my_sleeper_name"),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	lp.Start(ctx) // blocks until context is cancelled
//
// Observers obtain the latest snapshot at any time:
//
//	snap, err := lp.CurrentSnapshot()
//	if err == nil {
//	    for _, s := range snap.Standings() {
//	        fmt.Println(s.Rank, s.Roster.RosterID, s.Roster.Wins)
//	    }
//	}
//
// # Consistency model
//
// A Snapshot is built only when every entity fetch of a cycle succeeds; a
// single failing sub-fetch fails the whole cycle and the previously
// published Snapshot keeps serving. Publication is a single atomic pointer
// swap, so readers never observe a partially-updated aggregate and never
// need to lock.
//
// # Architecture
//
// The library consists of the root package (aggregation model, polling
// coordinator, functional options) plus internal packages:
//
//   - internal/schedule: NFL calendar classification and interval policy
//   - internal/sleeper: HTTP client for the Sleeper API
//   - internal/metrics: Prometheus instrumentation for the poll loop
//
// The internal packages are not part of the public API and may change
// without notice.
package leaguepulse
