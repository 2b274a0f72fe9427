package sleeper

// NFLState is the league-wide season clock reported by /state/nfl.
type NFLState struct {
	// Week is the current week number within the season type.
	Week int

	// Season is the season year, e.g. "2025".
	Season string

	// SeasonType is one of "pre", "regular", "post", "off".
	SeasonType string
}

// League is the metadata for one fantasy league.
type League struct {
	LeagueID     string
	Name         string
	Status       string
	Season       string
	TotalRosters int
}

// Roster is one team's persistent record within a league.
type Roster struct {
	RosterID int

	// OwnerID is empty when the roster is unclaimed.
	OwnerID string

	Wins   int
	Losses int
	Ties   int

	PointsFor     float64
	PointsAgainst float64

	WaiverPosition int
	TotalMoves     int
}

// Member is one user participating in a league.
type Member struct {
	UserID      string
	DisplayName string

	// TeamName is optional; empty when the user never set one.
	TeamName string
}

// Matchup is one roster's entry in one week's head-to-head comparison.
type Matchup struct {
	RosterID int
	Points   float64

	// MatchupID groups the two opposing rosters for the week.
	// Zero means the roster has no group, i.e. a bye.
	MatchupID int
}

// Wire-level shapes. Sleeper nests the standings numbers under a settings
// object and splits fractional points into integer and hundredths fields.

type nflStateWire struct {
	Week       int    `json:"week"`
	Season     string `json:"season"`
	SeasonType string `json:"season_type"`
}

func (w nflStateWire) toState() NFLState {
	return NFLState{Week: w.Week, Season: w.Season, SeasonType: w.SeasonType}
}

type leagueWire struct {
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	Season       string `json:"season"`
	TotalRosters int    `json:"total_rosters"`
}

func (w leagueWire) toLeague() League {
	return League{
		LeagueID:     w.LeagueID,
		Name:         w.Name,
		Status:       w.Status,
		Season:       w.Season,
		TotalRosters: w.TotalRosters,
	}
}

type rosterWire struct {
	RosterID int     `json:"roster_id"`
	OwnerID  *string `json:"owner_id"`
	Settings struct {
		Wins               int `json:"wins"`
		Losses             int `json:"losses"`
		Ties               int `json:"ties"`
		Fpts               int `json:"fpts"`
		FptsDecimal        int `json:"fpts_decimal"`
		FptsAgainst        int `json:"fpts_against"`
		FptsAgainstDecimal int `json:"fpts_against_decimal"`
		WaiverPosition     int `json:"waiver_position"`
		TotalMoves         int `json:"total_moves"`
	} `json:"settings"`
}

func (w rosterWire) toRoster() Roster {
	var ownerID string
	if w.OwnerID != nil {
		ownerID = *w.OwnerID
	}
	return Roster{
		RosterID:       w.RosterID,
		OwnerID:        ownerID,
		Wins:           w.Settings.Wins,
		Losses:         w.Settings.Losses,
		Ties:           w.Settings.Ties,
		PointsFor:      float64(w.Settings.Fpts) + float64(w.Settings.FptsDecimal)/100,
		PointsAgainst:  float64(w.Settings.FptsAgainst) + float64(w.Settings.FptsAgainstDecimal)/100,
		WaiverPosition: w.Settings.WaiverPosition,
		TotalMoves:     w.Settings.TotalMoves,
	}
}

type memberWire struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Metadata    struct {
		TeamName string `json:"team_name"`
	} `json:"metadata"`
}

func (w memberWire) toMember() Member {
	return Member{
		UserID:      w.UserID,
		DisplayName: w.DisplayName,
		TeamName:    w.Metadata.TeamName,
	}
}

type matchupWire struct {
	RosterID  int     `json:"roster_id"`
	MatchupID *int    `json:"matchup_id"`
	Points    float64 `json:"points"`
}

func (w matchupWire) toMatchup() Matchup {
	var matchupID int
	if w.MatchupID != nil {
		matchupID = *w.MatchupID
	}
	return Matchup{RosterID: w.RosterID, MatchupID: matchupID, Points: w.Points}
}
