package leaguepulse

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Snapshot is one fully-consistent, immutable aggregation of all fetched
// league data at a point in time.
//
// A Snapshot is constructed fresh on every successful fetch cycle, never
// mutated afterwards, and superseded wholesale by the next one. Consumers
// hold a reference to exactly one Snapshot at a time and never observe a
// partially-updated aggregate. All derived queries are computed from the
// stored records on demand.
type Snapshot struct {
	// League is the league metadata for this cycle.
	League LeagueInfo

	// Season is the season clock observed for this cycle.
	Season SeasonState

	// FetchedAt is when the cycle that produced this Snapshot completed.
	FetchedAt time.Time

	rosters  []Roster
	members  []LeagueMember
	matchups []Matchup

	myUsername string

	rosterByID map[int]Roster
	memberByID map[string]LeagueMember
}

// BuildSnapshot assembles a Snapshot from independently fetched entity
// sets, validating referential integrity across them first.
//
// It fails with a *DataIntegrityError when rosters contains duplicate
// roster identifiers, when a matchup references a roster absent from
// rosters, or when two rosters claim the same owner. myUsername may be
// empty; it is matched case-insensitively against member display names by
// [Snapshot.MyMember].
func BuildSnapshot(league LeagueInfo, season SeasonState, rosters []Roster, members []LeagueMember, matchups []Matchup, myUsername string) (*Snapshot, error) {
	rosterByID := make(map[int]Roster, len(rosters))
	ownerSeen := make(map[string]int, len(rosters))
	for _, r := range rosters {
		if _, dup := rosterByID[r.RosterID]; dup {
			return nil, &DataIntegrityError{Reason: fmt.Sprintf("duplicate roster id %d", r.RosterID)}
		}
		rosterByID[r.RosterID] = r

		if r.OwnerID != "" {
			if other, dup := ownerSeen[r.OwnerID]; dup {
				return nil, &DataIntegrityError{
					Reason: fmt.Sprintf("owner %s claims rosters %d and %d", r.OwnerID, other, r.RosterID),
				}
			}
			ownerSeen[r.OwnerID] = r.RosterID
		}
	}

	for _, m := range matchups {
		if _, ok := rosterByID[m.RosterID]; !ok {
			return nil, &DataIntegrityError{
				Reason: fmt.Sprintf("matchup for week %d references unknown roster %d", m.Week, m.RosterID),
			}
		}
	}

	memberByID := make(map[string]LeagueMember, len(members))
	for _, m := range members {
		memberByID[m.UserID] = m
	}

	return &Snapshot{
		League:     league,
		Season:     season,
		FetchedAt:  time.Now(),
		rosters:    append([]Roster(nil), rosters...),
		members:    append([]LeagueMember(nil), members...),
		matchups:   append([]Matchup(nil), matchups...),
		myUsername: myUsername,
		rosterByID: rosterByID,
		memberByID: memberByID,
	}, nil
}

// Rosters returns a copy of all roster records in the snapshot.
func (s *Snapshot) Rosters() []Roster {
	return append([]Roster(nil), s.rosters...)
}

// Members returns a copy of all league members in the snapshot.
func (s *Snapshot) Members() []LeagueMember {
	return append([]LeagueMember(nil), s.members...)
}

// Matchups returns a copy of the current week's matchup entries.
// Empty outside the regular season and postseason.
func (s *Snapshot) Matchups() []Matchup {
	return append([]Matchup(nil), s.matchups...)
}

// Standing is one roster's position in the league table.
type Standing struct {
	// Rank is the dense rank: rosters tied on both sort keys share a
	// rank, and the next distinct roster takes the following integer.
	Rank   int
	Roster Roster
}

// Standings returns the rosters ranked by wins (ties counting as half a
// win), then by cumulative points-for.
//
// The order is deterministic regardless of input record order: rosters
// tied on both keys share a dense rank and are listed by ascending roster
// id within it.
func (s *Snapshot) Standings() []Standing {
	ranked := append([]Roster(nil), s.rosters...)
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if wa, wb := winShares(a), winShares(b); wa != wb {
			return wa > wb
		}
		if a.PointsFor != b.PointsFor {
			return a.PointsFor > b.PointsFor
		}
		return a.RosterID < b.RosterID
	})

	standings := make([]Standing, len(ranked))
	rank := 0
	for i, r := range ranked {
		if i == 0 || winShares(r) != winShares(ranked[i-1]) || r.PointsFor != ranked[i-1].PointsFor {
			rank++
		}
		standings[i] = Standing{Rank: rank, Roster: r}
	}
	return standings
}

// winShares weighs a record with ties as half-wins, in half-win units so
// the comparison stays integral.
func winShares(r Roster) int {
	return 2*r.Wins + r.Ties
}

// OwnerOf returns the member owning the given roster, or false if the
// roster is unclaimed or unknown.
func (s *Snapshot) OwnerOf(rosterID int) (LeagueMember, bool) {
	r, ok := s.rosterByID[rosterID]
	if !ok || r.OwnerID == "" {
		return LeagueMember{}, false
	}
	m, ok := s.memberByID[r.OwnerID]
	return m, ok
}

// MyMember resolves the configured username to a league member by
// case-insensitive display-name match. Returns false when no username is
// configured or no member matches.
func (s *Snapshot) MyMember() (LeagueMember, bool) {
	if s.myUsername == "" {
		return LeagueMember{}, false
	}
	for _, m := range s.members {
		if strings.EqualFold(m.DisplayName, s.myUsername) {
			return m, true
		}
	}
	return LeagueMember{}, false
}

// MyRoster returns the roster owned by the configured username's member.
// Returns false when the username is unset, unmatched, or matched to a
// member owning no roster.
func (s *Snapshot) MyRoster() (Roster, bool) {
	member, ok := s.MyMember()
	if !ok {
		return Roster{}, false
	}
	for _, r := range s.rosters {
		if r.OwnerID == member.UserID {
			return r, true
		}
	}
	return Roster{}, false
}

// WeeklyMatchup is one roster's head-to-head pairing for the current week.
type WeeklyMatchup struct {
	// Self is the roster's own matchup entry.
	Self Matchup

	// Opponent is the opposing roster's entry. Zero value when Bye.
	Opponent Matchup

	// Bye is true when the roster has no opponent this week.
	Bye bool
}

// MatchupFor returns the given roster's pairing for the current week, or
// false when the roster has no matchup entry at all (e.g. outside the
// active season).
func (s *Snapshot) MatchupFor(rosterID int) (WeeklyMatchup, bool) {
	var self Matchup
	found := false
	for _, m := range s.matchups {
		if m.RosterID == rosterID {
			self = m
			found = true
			break
		}
	}
	if !found {
		return WeeklyMatchup{}, false
	}
	if self.MatchupID == 0 {
		return WeeklyMatchup{Self: self, Bye: true}, true
	}
	for _, m := range s.matchups {
		if m.MatchupID == self.MatchupID && m.RosterID != rosterID {
			return WeeklyMatchup{Self: self, Opponent: m}, true
		}
	}
	// alone in the matchup group
	return WeeklyMatchup{Self: self, Bye: true}, true
}
