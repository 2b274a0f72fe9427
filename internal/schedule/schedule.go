package schedule

import (
	"fmt"
	"time"
)

// Phase classifies a moment in time by how quickly league data can change.
//
// Phases are ordered by increasing freshness value: data changes slowest
// during the offseason and fastest while games are being played.
type Phase int

const (
	// Offseason means no active season; standings cannot change.
	Offseason Phase = iota

	// NonGameDay is a regular-season day with no scheduled games.
	NonGameDay

	// GameDay is a day with scheduled games, outside the kickoff window.
	GameDay

	// LiveWindow covers the span from the earliest kickoff of the day
	// through a post-game buffer, while scores are actively moving.
	LiveWindow
)

// String returns a human-readable phase name for logging.
func (p Phase) String() string {
	switch p {
	case Offseason:
		return "offseason"
	case NonGameDay:
		return "non_game_day"
	case GameDay:
		return "game_day"
	case LiveWindow:
		return "live_window"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// SeasonType mirrors the upstream season_type values.
type SeasonType string

const (
	SeasonPre     SeasonType = "pre"
	SeasonRegular SeasonType = "regular"
	SeasonPost    SeasonType = "post"
	SeasonOff     SeasonType = "off"
)

// DayRule describes one candidate game day and its live window.
//
// Schedule changes are a table edit: adjusting kickoff windows or adding a
// game day never requires touching the classifier logic.
type DayRule struct {
	// Day is the day of week this rule applies to, in the league's
	// home time zone.
	Day time.Weekday

	// FromWeek restricts the rule to a late-season schedule shift.
	// Zero means the rule applies every week. A non-zero value means the
	// rule applies from that week of the regular season onward, and on
	// every postseason week.
	FromWeek int

	// WindowStart is the local hour (inclusive) at which the live
	// window opens.
	WindowStart int

	// WindowEnd is the local hour (exclusive) at which the live window
	// closes. 24 means the window runs to midnight.
	WindowEnd int
}

// defaults for the current NFL broadcast schedule
const (
	// DefaultTimezone is the zone in which NFL game schedules are
	// conventionally published.
	DefaultTimezone = "America/New_York"

	// DefaultSaturdayFromWeek is the regular-season week from which
	// Saturday games appear on the schedule.
	DefaultSaturdayFromWeek = 15

	// DefaultFinalWeek is the last week of the regular season.
	DefaultFinalWeek = 18
)

// Default polling intervals per phase. The interval inversely tracks the
// rate at which the underlying data can actually change.
const (
	DefaultLiveWindowInterval = 5 * time.Minute
	DefaultGameDayInterval    = 15 * time.Minute
	DefaultNonGameDayInterval = time.Hour
	DefaultOffseasonInterval  = 24 * time.Hour
)

// defaultRules returns the standard NFL game-day table.
//
// Thursday and Monday games kick off in the evening; Sunday has early
// afternoon kickoffs. Saturday joins the schedule late in the season with
// afternoon kickoffs. All windows run to midnight as a post-game buffer.
func defaultRules(saturdayFromWeek int) []DayRule {
	if saturdayFromWeek <= 0 {
		saturdayFromWeek = DefaultSaturdayFromWeek
	}
	return []DayRule{
		{Day: time.Thursday, WindowStart: 19, WindowEnd: 24},
		{Day: time.Sunday, WindowStart: 12, WindowEnd: 24},
		{Day: time.Monday, WindowStart: 19, WindowEnd: 24},
		{Day: time.Saturday, FromWeek: saturdayFromWeek, WindowStart: 12, WindowEnd: 24},
	}
}

// Intervals maps each phase to a refresh interval. Zero fields fall back
// to the package defaults.
type Intervals struct {
	LiveWindow time.Duration
	GameDay    time.Duration
	NonGameDay time.Duration
	Offseason  time.Duration
}

// Config holds the schedule-policy constants that shift season to season.
type Config struct {
	// Timezone is the IANA name of the league's home time zone.
	// Defaults to America/New_York.
	Timezone string

	// SaturdayFromWeek is the regular-season week from which Saturday
	// counts as a game day. Defaults to 15. Ignored when Rules is set.
	SaturdayFromWeek int

	// FinalWeek is the last week of the regular season. Weeks beyond it
	// during the regular season classify as Offseason. Defaults to 18.
	FinalWeek int

	// Rules overrides the built-in game-day table entirely.
	Rules []DayRule

	// Intervals overrides the per-phase polling intervals.
	Intervals Intervals
}

// DefaultConfig returns the configuration for the current NFL schedule.
func DefaultConfig() Config {
	return Config{
		Timezone:         DefaultTimezone,
		SaturdayFromWeek: DefaultSaturdayFromWeek,
		FinalWeek:        DefaultFinalWeek,
	}
}

// Classifier determines the polling phase for a moment in time.
//
// Classify is total: it returns a phase for every input and never fails.
// A Classifier is immutable after construction and safe for concurrent use.
type Classifier struct {
	loc       *time.Location
	rules     []DayRule
	finalWeek int
}

// NewClassifier builds a Classifier from cfg, applying defaults for any
// zero-value field. Returns an error if the time zone cannot be loaded.
func NewClassifier(cfg Config) (*Classifier, error) {
	tz := cfg.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	rules := cfg.Rules
	if len(rules) == 0 {
		rules = defaultRules(cfg.SaturdayFromWeek)
	}

	finalWeek := cfg.FinalWeek
	if finalWeek <= 0 {
		finalWeek = DefaultFinalWeek
	}

	return &Classifier{loc: loc, rules: rules, finalWeek: finalWeek}, nil
}

// Classify maps a timestamp to a polling phase given the current week and
// season type.
//
// Postseason weeks follow the same day-of-week rules as the regular season;
// late-season rules (FromWeek) always apply in the postseason. The
// preseason classifies as NonGameDay so standings are still refreshed
// hourly without chasing exhibition games.
func (c *Classifier) Classify(now time.Time, week int, season SeasonType) Phase {
	if season == SeasonOff {
		return Offseason
	}
	if season != SeasonRegular && season != SeasonPost {
		return NonGameDay
	}
	if week < 1 || (season == SeasonRegular && week > c.finalWeek) {
		// no active season despite the reported type
		return Offseason
	}

	local := now.In(c.loc)
	for _, rule := range c.rules {
		if rule.Day != local.Weekday() {
			continue
		}
		if rule.FromWeek > 0 && week < rule.FromWeek && season != SeasonPost {
			continue
		}
		if h := local.Hour(); h >= rule.WindowStart && h < rule.WindowEnd {
			return LiveWindow
		}
		return GameDay
	}
	return NonGameDay
}

// Policy maps a phase to a refresh interval.
//
// The mapping is a fixed table: polling more often than the data can change
// wastes upstream calls without adding freshness.
type Policy struct {
	intervals Intervals
}

// NewPolicy builds a Policy, filling zero intervals with the defaults.
func NewPolicy(iv Intervals) Policy {
	if iv.LiveWindow <= 0 {
		iv.LiveWindow = DefaultLiveWindowInterval
	}
	if iv.GameDay <= 0 {
		iv.GameDay = DefaultGameDayInterval
	}
	if iv.NonGameDay <= 0 {
		iv.NonGameDay = DefaultNonGameDayInterval
	}
	if iv.Offseason <= 0 {
		iv.Offseason = DefaultOffseasonInterval
	}
	return Policy{intervals: iv}
}

// IntervalFor returns the refresh interval for a phase. Unknown phases get
// the NonGameDay interval so the mapping stays total.
func (p Policy) IntervalFor(phase Phase) time.Duration {
	switch phase {
	case LiveWindow:
		return p.intervals.LiveWindow
	case GameDay:
		return p.intervals.GameDay
	case Offseason:
		return p.intervals.Offseason
	default:
		return p.intervals.NonGameDay
	}
}
