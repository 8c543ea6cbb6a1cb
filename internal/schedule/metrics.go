package schedule

// PlayerMetrics holds per-player schedule statistics.
type PlayerMetrics struct {
	Games     int
	Rests     int
	Partners  int // distinct partners
	Opponents int // distinct opponents
}

// Metrics computes per-player statistics for a finished schedule, keyed by
// player id. Every roster player gets an entry, even with zero games.
func (s *GameSchedule) Metrics(roster []Player) map[string]*PlayerMetrics {
	metrics := make(map[string]*PlayerMetrics, len(roster))
	for _, p := range roster {
		metrics[p.ID] = &PlayerMetrics{}
	}

	partners := make(map[string]map[string]bool)
	opponents := make(map[string]map[string]bool)
	mark := func(m map[string]map[string]bool, a, b string) {
		if m[a] == nil {
			m[a] = make(map[string]bool)
		}
		m[a][b] = true
	}

	for _, games := range s.Rounds {
		for _, g := range games {
			for _, id := range g.Players() {
				if m, ok := metrics[id]; ok {
					m.Games++
				}
			}
			mark(partners, g.TeamA[0], g.TeamA[1])
			mark(partners, g.TeamA[1], g.TeamA[0])
			mark(partners, g.TeamB[0], g.TeamB[1])
			mark(partners, g.TeamB[1], g.TeamB[0])
			for _, p := range g.TeamA {
				for _, q := range g.TeamB {
					mark(opponents, p, q)
					mark(opponents, q, p)
				}
			}
		}
	}
	for _, ids := range s.Resting {
		for _, id := range ids {
			if m, ok := metrics[id]; ok {
				m.Rests++
			}
		}
	}
	for id, m := range metrics {
		m.Partners = len(partners[id])
		m.Opponents = len(opponents[id])
	}
	return metrics
}
