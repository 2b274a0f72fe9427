package leaguepulse

import (
	"errors"
	"math/rand"
	"testing"
)

func testLeague() LeagueInfo {
	return LeagueInfo{
		LeagueID:     "289646328504385536",
		Name:         "Test League",
		Status:       "in_season",
		Season:       "2025",
		TotalRosters: 4,
	}
}

func testSeason() SeasonState {
	return SeasonState{Week: 11, Season: "2025", Phase: SeasonRegular}
}

func mustBuild(t *testing.T, rosters []Roster, members []LeagueMember, matchups []Matchup, username string) *Snapshot {
	t.Helper()
	snap, err := BuildSnapshot(testLeague(), testSeason(), rosters, members, matchups, username)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}
	return snap
}

func TestBuildSnapshot_IntegrityViolations(t *testing.T) {
	members := []LeagueMember{{UserID: "u1", DisplayName: "alice"}}

	tests := []struct {
		name     string
		rosters  []Roster
		matchups []Matchup
	}{
		{
			name: "duplicate roster id",
			rosters: []Roster{
				{RosterID: 1, OwnerID: "u1"},
				{RosterID: 1, OwnerID: "u2"},
			},
		},
		{
			name: "matchup references unknown roster",
			rosters: []Roster{
				{RosterID: 1, OwnerID: "u1"},
			},
			matchups: []Matchup{
				{RosterID: 9, Week: 11, MatchupID: 1},
			},
		},
		{
			name: "one owner claims two rosters",
			rosters: []Roster{
				{RosterID: 1, OwnerID: "u1"},
				{RosterID: 2, OwnerID: "u1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSnapshot(testLeague(), testSeason(), tt.rosters, members, tt.matchups, "")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var integrity *DataIntegrityError
			if !errors.As(err, &integrity) {
				t.Fatalf("error = %v, want *DataIntegrityError", err)
			}
		})
	}
}

func TestBuildSnapshot_UnclaimedRostersAllowed(t *testing.T) {
	rosters := []Roster{
		{RosterID: 1, OwnerID: ""},
		{RosterID: 2, OwnerID: ""},
		{RosterID: 3, OwnerID: "u1"},
	}
	snap := mustBuild(t, rosters, nil, nil, "")
	if got := len(snap.Rosters()); got != 3 {
		t.Errorf("len(Rosters()) = %d, want 3", got)
	}
}

func TestStandings_DenseRankingWithTies(t *testing.T) {
	// C leads outright, A and B share rank 2 on identical records and
	// points, D follows at the next integer rank.
	rosters := []Roster{
		{RosterID: 1, OwnerID: "uA", Wins: 6, Losses: 4, PointsFor: 1001.5}, // A
		{RosterID: 2, OwnerID: "uB", Wins: 6, Losses: 4, PointsFor: 1001.5}, // B
		{RosterID: 3, OwnerID: "uC", Wins: 8, Losses: 2, PointsFor: 1100.0}, // C
		{RosterID: 4, OwnerID: "uD", Wins: 3, Losses: 7, PointsFor: 900.0},  // D
	}
	snap := mustBuild(t, rosters, nil, nil, "")

	standings := snap.Standings()
	if len(standings) != 4 {
		t.Fatalf("len(Standings()) = %d, want 4", len(standings))
	}

	wantRanks := []struct {
		rosterID int
		rank     int
	}{
		{3, 1},
		{1, 2},
		{2, 2},
		{4, 3},
	}
	for i, want := range wantRanks {
		got := standings[i]
		if got.Roster.RosterID != want.rosterID || got.Rank != want.rank {
			t.Errorf("standings[%d] = roster %d rank %d, want roster %d rank %d",
				i, got.Roster.RosterID, got.Rank, want.rosterID, want.rank)
		}
	}
}

func TestStandings_TiesCountAsHalfWins(t *testing.T) {
	// 5-4-2 (6 win-equivalents) ranks above 5-5-1 (5.5) even though the
	// latter has more points.
	rosters := []Roster{
		{RosterID: 1, Wins: 5, Losses: 5, Ties: 1, PointsFor: 1200},
		{RosterID: 2, Wins: 5, Losses: 4, Ties: 2, PointsFor: 1000},
	}
	snap := mustBuild(t, rosters, nil, nil, "")

	standings := snap.Standings()
	if standings[0].Roster.RosterID != 2 {
		t.Errorf("leader = roster %d, want roster 2", standings[0].Roster.RosterID)
	}
	if standings[0].Rank != 1 || standings[1].Rank != 2 {
		t.Errorf("ranks = %d, %d, want 1, 2", standings[0].Rank, standings[1].Rank)
	}
}

func TestStandings_PointsForBreaksWinTies(t *testing.T) {
	rosters := []Roster{
		{RosterID: 1, Wins: 6, Losses: 4, PointsFor: 990.0},
		{RosterID: 2, Wins: 6, Losses: 4, PointsFor: 1010.0},
	}
	snap := mustBuild(t, rosters, nil, nil, "")

	standings := snap.Standings()
	if standings[0].Roster.RosterID != 2 {
		t.Errorf("leader = roster %d, want roster 2", standings[0].Roster.RosterID)
	}
	if standings[0].Rank != 1 || standings[1].Rank != 2 {
		t.Errorf("ranks = %d, %d, want 1, 2", standings[0].Rank, standings[1].Rank)
	}
}

// TestStandings_DeterministicUnderReordering shuffles the input records and
// checks that the ranking comes out identical every time.
func TestStandings_DeterministicUnderReordering(t *testing.T) {
	rosters := []Roster{
		{RosterID: 1, Wins: 6, Losses: 4, PointsFor: 1001.5},
		{RosterID: 2, Wins: 6, Losses: 4, PointsFor: 1001.5},
		{RosterID: 3, Wins: 8, Losses: 2, PointsFor: 1100.0},
		{RosterID: 4, Wins: 3, Losses: 7, PointsFor: 900.0},
		{RosterID: 5, Wins: 6, Losses: 4, PointsFor: 1001.5},
	}

	base := mustBuild(t, rosters, nil, nil, "").Standings()

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		shuffled := append([]Roster(nil), rosters...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := mustBuild(t, shuffled, nil, nil, "").Standings()
		for i := range base {
			if got[i].Rank != base[i].Rank || got[i].Roster.RosterID != base[i].Roster.RosterID {
				t.Fatalf("trial %d: standings[%d] = roster %d rank %d, want roster %d rank %d",
					trial, i, got[i].Roster.RosterID, got[i].Rank, base[i].Roster.RosterID, base[i].Rank)
			}
		}
	}
}

func TestOwnerOf(t *testing.T) {
	rosters := []Roster{
		{RosterID: 1, OwnerID: "u1"},
		{RosterID: 2, OwnerID: ""},
	}
	members := []LeagueMember{
		{UserID: "u1", DisplayName: "alice", TeamName: "The Aces"},
	}
	snap := mustBuild(t, rosters, members, nil, "")

	owner, ok := snap.OwnerOf(1)
	if !ok {
		t.Fatal("OwnerOf(1) = false, want true")
	}
	if owner.DisplayName != "alice" {
		t.Errorf("owner.DisplayName = %q, want %q", owner.DisplayName, "alice")
	}
	if owner.Name() != "The Aces" {
		t.Errorf("owner.Name() = %q, want %q", owner.Name(), "The Aces")
	}

	if _, ok := snap.OwnerOf(2); ok {
		t.Error("OwnerOf(2) = true for unclaimed roster, want false")
	}
	if _, ok := snap.OwnerOf(99); ok {
		t.Error("OwnerOf(99) = true for unknown roster, want false")
	}
}

func TestMyMember(t *testing.T) {
	members := []LeagueMember{
		{UserID: "u1", DisplayName: "Alice"},
		{UserID: "u2", DisplayName: "bob"},
	}
	rosters := []Roster{{RosterID: 1, OwnerID: "u1"}}

	t.Run("unset username", func(t *testing.T) {
		snap := mustBuild(t, rosters, members, nil, "")
		if _, ok := snap.MyMember(); ok {
			t.Error("MyMember() = true with no username, want false")
		}
	})

	t.Run("case-insensitive match", func(t *testing.T) {
		snap := mustBuild(t, rosters, members, nil, "ALICE")
		m, ok := snap.MyMember()
		if !ok {
			t.Fatal("MyMember() = false, want true")
		}
		if m.UserID != "u1" {
			t.Errorf("MyMember().UserID = %q, want %q", m.UserID, "u1")
		}
	})

	t.Run("no match", func(t *testing.T) {
		snap := mustBuild(t, rosters, members, nil, "carol")
		if _, ok := snap.MyMember(); ok {
			t.Error("MyMember() = true for unknown username, want false")
		}
	})
}

func TestMyRoster(t *testing.T) {
	members := []LeagueMember{
		{UserID: "u1", DisplayName: "alice"},
		{UserID: "u2", DisplayName: "bob"},
	}
	rosters := []Roster{
		{RosterID: 1, OwnerID: "u1", Wins: 7},
	}

	t.Run("owned roster", func(t *testing.T) {
		snap := mustBuild(t, rosters, members, nil, "alice")
		r, ok := snap.MyRoster()
		if !ok {
			t.Fatal("MyRoster() = false, want true")
		}
		if r.RosterID != 1 || r.Wins != 7 {
			t.Errorf("MyRoster() = roster %d with %d wins, want roster 1 with 7 wins", r.RosterID, r.Wins)
		}
	})

	t.Run("member without roster", func(t *testing.T) {
		snap := mustBuild(t, rosters, members, nil, "bob")
		if _, ok := snap.MyRoster(); ok {
			t.Error("MyRoster() = true for rosterless member, want false")
		}
	})
}

func TestMatchupFor(t *testing.T) {
	rosters := []Roster{
		{RosterID: 1, OwnerID: "u1"},
		{RosterID: 2, OwnerID: "u2"},
		{RosterID: 3, OwnerID: "u3"},
		{RosterID: 4, OwnerID: "u4"},
		{RosterID: 5, OwnerID: "u5"},
	}
	matchups := []Matchup{
		{RosterID: 1, Week: 11, Points: 101.2, MatchupID: 1},
		{RosterID: 2, Week: 11, Points: 95.8, MatchupID: 1},
		{RosterID: 3, Week: 11, Points: 88.0, MatchupID: 0}, // explicit bye
		{RosterID: 4, Week: 11, Points: 70.0, MatchupID: 2}, // alone in its group
	}
	snap := mustBuild(t, rosters, nil, matchups, "")

	t.Run("head to head pairing", func(t *testing.T) {
		pairing, ok := snap.MatchupFor(1)
		if !ok {
			t.Fatal("MatchupFor(1) = false, want true")
		}
		if pairing.Bye {
			t.Error("pairing.Bye = true, want false")
		}
		if pairing.Self.Points != 101.2 || pairing.Opponent.RosterID != 2 {
			t.Errorf("pairing = self %v opponent roster %d, want self points 101.2 opponent roster 2",
				pairing.Self.Points, pairing.Opponent.RosterID)
		}
	})

	t.Run("explicit bye", func(t *testing.T) {
		pairing, ok := snap.MatchupFor(3)
		if !ok {
			t.Fatal("MatchupFor(3) = false, want true")
		}
		if !pairing.Bye {
			t.Error("pairing.Bye = false, want true")
		}
	})

	t.Run("alone in group is a bye", func(t *testing.T) {
		pairing, ok := snap.MatchupFor(4)
		if !ok {
			t.Fatal("MatchupFor(4) = false, want true")
		}
		if !pairing.Bye {
			t.Error("pairing.Bye = false, want true")
		}
	})

	t.Run("no entry at all", func(t *testing.T) {
		if _, ok := snap.MatchupFor(5); ok {
			t.Error("MatchupFor(5) = true for roster with no entry, want false")
		}
	})
}

// TestSnapshot_AccessorsReturnCopies confirms that mutating a returned
// slice cannot corrupt the snapshot.
func TestSnapshot_AccessorsReturnCopies(t *testing.T) {
	rosters := []Roster{{RosterID: 1, OwnerID: "u1", Wins: 5}}
	snap := mustBuild(t, rosters, nil, nil, "")

	got := snap.Rosters()
	got[0].Wins = 99

	again := snap.Rosters()
	if again[0].Wins != 5 {
		t.Errorf("snapshot mutated through accessor copy: Wins = %d, want 5", again[0].Wins)
	}
}

// TestBuildSnapshot_CopiesInputSlices confirms that mutating the caller's
// slices after construction cannot corrupt the snapshot.
func TestBuildSnapshot_CopiesInputSlices(t *testing.T) {
	rosters := []Roster{{RosterID: 1, OwnerID: "u1", Wins: 5}}
	snap := mustBuild(t, rosters, nil, nil, "")

	rosters[0].Wins = 99

	if got := snap.Rosters()[0].Wins; got != 5 {
		t.Errorf("snapshot shares caller slice: Wins = %d, want 5", got)
	}
}

func TestRoster_GamesPlayed(t *testing.T) {
	r := Roster{Wins: 6, Losses: 4, Ties: 1}
	if got := r.GamesPlayed(); got != 11 {
		t.Errorf("GamesPlayed() = %d, want 11", got)
	}
}

func TestSeasonPhase_Active(t *testing.T) {
	tests := []struct {
		phase SeasonPhase
		want  bool
	}{
		{SeasonPre, false},
		{SeasonRegular, true},
		{SeasonPost, true},
		{SeasonOff, false},
	}
	for _, tt := range tests {
		if got := tt.phase.Active(); got != tt.want {
			t.Errorf("SeasonPhase(%q).Active() = %v, want %v", tt.phase, got, tt.want)
		}
	}
}
