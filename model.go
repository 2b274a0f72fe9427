package leaguepulse

// SeasonPhase is the upstream season type: preseason, regular season,
// postseason, or offseason.
type SeasonPhase string

const (
	SeasonPre     SeasonPhase = "pre"
	SeasonRegular SeasonPhase = "regular"
	SeasonPost    SeasonPhase = "post"
	SeasonOff     SeasonPhase = "off"
)

// Active reports whether head-to-head matchups are being played, i.e. the
// regular season or postseason.
func (p SeasonPhase) Active() bool {
	return p == SeasonRegular || p == SeasonPost
}

// SeasonState is the league-wide season clock. It is the source of truth
// for which polling-interval branch applies.
type SeasonState struct {
	// Week is the current week number within the season phase.
	Week int

	// Season is the season year, e.g. "2025".
	Season string

	// Phase is the current season phase.
	Phase SeasonPhase
}

// LeagueInfo is the metadata for one fantasy league.
type LeagueInfo struct {
	LeagueID string
	Name     string

	// Status is the upstream league status, e.g. "in_season" or "complete".
	Status string

	// Season is the season year the league is playing.
	Season string

	// TotalRosters is the league's configured roster count. It is at
	// least the number of Roster records observed.
	TotalRosters int
}

// Roster is one fantasy team's persistent record within a league: its
// standing numbers, not a weekly score.
type Roster struct {
	// RosterID is unique within a league.
	RosterID int

	// OwnerID identifies the owning member. Empty means unclaimed.
	OwnerID string

	Wins   int
	Losses int
	Ties   int

	// PointsFor and PointsAgainst are cumulative season totals.
	PointsFor     float64
	PointsAgainst float64

	WaiverPosition int
	TotalMoves     int
}

// GamesPlayed returns the number of decided games on the record.
func (r Roster) GamesPlayed() int {
	return r.Wins + r.Losses + r.Ties
}

// LeagueMember is one user participating in a league. A member owns at
// most one roster per league.
type LeagueMember struct {
	// UserID is unique across the upstream service.
	UserID string

	DisplayName string

	// TeamName is optional; empty when the user never set one.
	TeamName string
}

// Name returns the member's team name, falling back to the display name.
func (m LeagueMember) Name() string {
	if m.TeamName != "" {
		return m.TeamName
	}
	return m.DisplayName
}

// Matchup is one roster's participation in one week's head-to-head
// comparison. Rosters sharing a MatchupID for a week are opponents; a
// roster alone in its group (or with MatchupID zero) has a bye.
type Matchup struct {
	RosterID  int
	Week      int
	Points    float64
	MatchupID int
}
