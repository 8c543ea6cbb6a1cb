package schedule

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func testPlayers(n int) []Player {
	skills := []float64{2.0, 2.5, 3.0, 3.5, 4.0, 4.5}
	players := make([]Player, n)
	for i := range players {
		players[i] = Player{
			ID:     fmt.Sprintf("p%02d", i+1),
			Name:   fmt.Sprintf("Player %d", i+1),
			Skill:  skills[i%len(skills)],
			Active: true,
		}
	}
	return players
}

func playerRounds(s *GameSchedule) []map[string]int {
	out := make([]map[string]int, len(s.Rounds))
	for r, games := range s.Rounds {
		out[r] = make(map[string]int)
		for _, g := range games {
			for _, id := range g.Players() {
				out[r][id]++
			}
		}
	}
	return out
}

func TestGenerateScenario(t *testing.T) {
	roster := testPlayers(16)
	roster[0].PartnerID = roster[1].ID
	roster[1].PartnerID = roster[0].ID
	roster[4].PartnerID = roster[5].ID

	opts := Options{
		Courts:          3,
		Rounds:          8,
		BalanceSkill:    true,
		MaxSkillDiff:    1.5,
		RespectPartners: true,
		DistributeRest:  true,
	}

	gen := Generator{Seed: 42}
	s, err := gen.Generate(context.Background(), "Test Mixer", roster, opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	t.Run("8 rounds of 3 games", func(t *testing.T) {
		if len(s.Rounds) != 8 {
			t.Fatalf("rounds = %d, want 8", len(s.Rounds))
		}
		for r, games := range s.Rounds {
			if len(games) != 3 {
				t.Errorf("round %d has %d games, want 3", r+1, len(games))
			}
		}
	})

	t.Run("4 resting players per round", func(t *testing.T) {
		if len(s.Resting) != 8 {
			t.Fatalf("resting entries = %d, want 8", len(s.Resting))
		}
		for r, ids := range s.Resting {
			if len(ids) != 4 {
				t.Errorf("round %d has %d resting players, want 4", r+1, len(ids))
			}
		}
	})

	t.Run("no player is double-booked", func(t *testing.T) {
		for r, counts := range playerRounds(s) {
			for id, c := range counts {
				if c > 1 {
					t.Errorf("round %d: %s appears in %d games", r+1, id, c)
				}
			}
		}
	})

	t.Run("courts are unique within a round", func(t *testing.T) {
		for r, games := range s.Rounds {
			seen := make(map[int]bool)
			for _, g := range games {
				if seen[g.Court] {
					t.Errorf("round %d: court %d used twice", r+1, g.Court)
				}
				seen[g.Court] = true
				if g.Court < 1 || g.Court > 3 {
					t.Errorf("round %d: court %d out of range", r+1, g.Court)
				}
			}
		}
	})

	t.Run("playing and resting cover the roster", func(t *testing.T) {
		counts := playerRounds(s)
		for r := range s.Rounds {
			covered := make(map[string]bool)
			for id := range counts[r] {
				covered[id] = true
			}
			for _, id := range s.Resting[r] {
				if covered[id] {
					t.Errorf("round %d: %s both plays and rests", r+1, id)
				}
				covered[id] = true
			}
			for _, p := range roster {
				if !covered[p.ID] {
					t.Errorf("round %d: %s neither plays nor rests", r+1, p.ID)
				}
			}
		}
	})

	t.Run("rest counts spread at most 1", func(t *testing.T) {
		rests := make(map[string]int)
		for _, ids := range s.Resting {
			for _, id := range ids {
				rests[id]++
			}
		}
		minRests, maxRests := -1, 0
		for _, p := range roster {
			c := rests[p.ID]
			if minRests < 0 || c < minRests {
				minRests = c
			}
			if c > maxRests {
				maxRests = c
			}
		}
		if maxRests-minRests > 1 {
			t.Errorf("rest spread = %d, want <= 1", maxRests-minRests)
		}
	})

	t.Run("declared partner pairs play together", func(t *testing.T) {
		together := make(map[[2]string]bool)
		for _, games := range s.Rounds {
			for _, g := range games {
				together[pairKey(g.TeamA[0], g.TeamA[1])] = true
				together[pairKey(g.TeamB[0], g.TeamB[1])] = true
			}
		}
		for _, pair := range [][2]string{
			{roster[0].ID, roster[1].ID},
			{roster[4].ID, roster[5].ID},
		} {
			if !together[pairKey(pair[0], pair[1])] {
				t.Errorf("declared partners %s and %s never play together", pair[0], pair[1])
			}
		}
	})

	t.Run("few games exceed the skill limit", func(t *testing.T) {
		total, over := 0, 0
		for _, games := range s.Rounds {
			for _, g := range games {
				total++
				if g.SkillDiff > opts.MaxSkillDiff {
					over++
				}
			}
		}
		if over > total/2 {
			t.Errorf("%d of %d games exceed the skill limit", over, total)
		}
	})

	t.Run("score and timestamp are set", func(t *testing.T) {
		if s.Score < 0 {
			t.Errorf("score = %f, want >= 0", s.Score)
		}
		if s.CreatedAt.IsZero() {
			t.Error("CreatedAt not set")
		}
		if s.Event != "Test Mixer" {
			t.Errorf("event = %q", s.Event)
		}
	})
}

func TestGenerateFourPlayers(t *testing.T) {
	gen := Generator{Attempts: 50, Seed: 7}
	s, err := gen.Generate(context.Background(), "Boundary", testPlayers(4), Options{Courts: 1, Rounds: 3})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(s.Rounds) != 3 {
		t.Fatalf("rounds = %d, want 3", len(s.Rounds))
	}
	for r, games := range s.Rounds {
		if len(games) != 1 {
			t.Errorf("round %d has %d games, want 1", r+1, len(games))
		}
		if len(s.Resting[r]) != 0 {
			t.Errorf("round %d has %d resting players, want 0", r+1, len(s.Resting[r]))
		}
	}
}

func TestGenerateZeroRounds(t *testing.T) {
	gen := Generator{Attempts: 10, Seed: 1}
	s, err := gen.Generate(context.Background(), "Empty", testPlayers(8), Options{Courts: 2, Rounds: 0})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if s == nil {
		t.Fatal("schedule is nil")
	}
	if len(s.Rounds) != 0 || len(s.Resting) != 0 {
		t.Errorf("rounds = %d, resting = %d, want 0/0", len(s.Rounds), len(s.Resting))
	}
	if s.Score != 0 {
		t.Errorf("score = %f, want 0", s.Score)
	}
}

func TestGenerateDegenerateInputs(t *testing.T) {
	t.Run("empty roster", func(t *testing.T) {
		s, err := Generate(context.Background(), "Nobody", nil, Options{Courts: 2, Rounds: 3})
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if len(s.Rounds) != 3 {
			t.Fatalf("rounds = %d, want 3", len(s.Rounds))
		}
		for r, games := range s.Rounds {
			if len(games) != 0 {
				t.Errorf("round %d has %d games, want 0", r+1, len(games))
			}
		}
	})

	t.Run("zero courts", func(t *testing.T) {
		s, err := Generate(context.Background(), "No Courts", testPlayers(8), Options{Courts: 0, Rounds: 2})
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		for r, games := range s.Rounds {
			if len(games) != 0 {
				t.Errorf("round %d has %d games, want 0", r+1, len(games))
			}
			if len(s.Resting[r]) != 8 {
				t.Errorf("round %d has %d resting players, want 8", r+1, len(s.Resting[r]))
			}
		}
	})

	t.Run("too few players for a court", func(t *testing.T) {
		s, err := Generate(context.Background(), "Trio", testPlayers(3), Options{Courts: 1, Rounds: 2})
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		for r, games := range s.Rounds {
			if len(games) != 0 {
				t.Errorf("round %d has %d games, want 0", r+1, len(games))
			}
		}
	})
}

func TestGenerateClampsCourtsToRoster(t *testing.T) {
	// 10 players cannot fill 3 courts; two courts run and two players rest.
	gen := Generator{Attempts: 100, Seed: 3}
	s, err := gen.Generate(context.Background(), "Clamped", testPlayers(10), Options{Courts: 3, Rounds: 4})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	for r, games := range s.Rounds {
		if len(games) != 2 {
			t.Errorf("round %d has %d games, want 2", r+1, len(games))
		}
		if len(s.Resting[r]) != 2 {
			t.Errorf("round %d has %d resting players, want 2", r+1, len(s.Resting[r]))
		}
	}
}

func TestGenerateStructureIsStable(t *testing.T) {
	roster := testPlayers(12)
	opts := Options{Courts: 2, Rounds: 5, DistributeRest: true}

	a, err := (&Generator{Attempts: 100, Seed: 11}).Generate(context.Background(), "A", roster, opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	b, err := (&Generator{Attempts: 100, Seed: 99}).Generate(context.Background(), "B", roster, opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if len(a.Rounds) != len(b.Rounds) {
		t.Fatalf("round counts differ: %d vs %d", len(a.Rounds), len(b.Rounds))
	}
	for r := range a.Rounds {
		if len(a.Rounds[r]) != len(b.Rounds[r]) {
			t.Errorf("round %d: game counts differ: %d vs %d", r+1, len(a.Rounds[r]), len(b.Rounds[r]))
		}
		if len(a.Resting[r]) != len(b.Resting[r]) {
			t.Errorf("round %d: resting counts differ: %d vs %d", r+1, len(a.Resting[r]), len(b.Resting[r]))
		}
	}
}

func TestGenerateCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, "Cancelled", testPlayers(8), Options{Courts: 2, Rounds: 4})
	if !errors.Is(err, ErrNoSchedule) {
		t.Fatalf("error = %v, want ErrNoSchedule", err)
	}
}

func TestGenerateForcedSitterOverflowWarns(t *testing.T) {
	roster := testPlayers(8)
	opts := Options{
		Courts: 1,
		Rounds: 3,
		FirstRoundRest: []string{
			roster[0].ID, roster[1].ID, roster[2].ID, roster[3].ID, roster[4].ID, roster[5].ID,
		},
	}

	gen := Generator{Attempts: 50, Seed: 5}
	s, err := gen.Generate(context.Background(), "Overflow", roster, opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	t.Run("first four forced sitters kept", func(t *testing.T) {
		resting := make(map[string]bool)
		for _, id := range s.Resting[0] {
			resting[id] = true
		}
		for _, id := range opts.FirstRoundRest[:4] {
			if !resting[id] {
				t.Errorf("forced sitter %s is not resting in round 1", id)
			}
		}
	})

	t.Run("overflow reported", func(t *testing.T) {
		if len(s.Warnings) == 0 {
			t.Fatal("no warnings recorded")
		}
	})
}

func TestGenerateMetrics(t *testing.T) {
	roster := testPlayers(8)
	gen := Generator{Attempts: 100, Seed: 9}
	s, err := gen.Generate(context.Background(), "Metrics", roster, Options{Courts: 1, Rounds: 4, DistributeRest: true})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	metrics := s.Metrics(roster)
	if len(metrics) != 8 {
		t.Fatalf("metrics entries = %d, want 8", len(metrics))
	}
	for _, p := range roster {
		m := metrics[p.ID]
		if m.Games+m.Rests != 4 {
			t.Errorf("%s: games %d + rests %d != 4 rounds", p.ID, m.Games, m.Rests)
		}
		if m.Games > 0 && (m.Partners == 0 || m.Opponents == 0) {
			t.Errorf("%s: played %d games but has %d partners, %d opponents", p.ID, m.Games, m.Partners, m.Opponents)
		}
	}
}
