package schedule

import "math"

// Weights holds the scorer's term weights. Priority between terms is encoded
// by weight magnitude: a better outcome on a heavier term dominates any
// combination of lighter ones at realistic roster sizes.
type Weights struct {
	RestSpread     float64
	RestSpacing    float64
	PartnerRepeat  float64
	RecentOpponent float64
	OpponentRepeat float64
	CourtRepeat    float64
	SkillBalance   float64
	SkillOverLimit float64
	PartnerPref    float64
}

// DefaultWeights returns the standard term weights, heaviest first.
func DefaultWeights() Weights {
	return Weights{
		RestSpread:     10000,
		RestSpacing:    1000,
		PartnerRepeat:  200,
		RecentOpponent: 50,
		OpponentRepeat: 80,
		CourtRepeat:    30,
		SkillBalance:   5,
		SkillOverLimit: 100,
		PartnerPref:    1,
	}
}

// Score evaluates a completed schedule; lower is better. It is a pure
// function of the schedule and roster, recomputing all history from the
// games themselves.
func Score(s *GameSchedule, roster []Player, w Weights) float64 {
	rounds := len(s.Rounds)
	score := 0.0

	// Rest spread and spacing.
	restRounds := make(map[string][]int, len(roster))
	for r, ids := range s.Resting {
		for _, id := range ids {
			restRounds[id] = append(restRounds[id], r+1)
		}
	}
	if s.Options.DistributeRest && len(roster) > 0 {
		minRests, maxRests := math.MaxInt, 0
		for _, p := range roster {
			c := len(restRounds[p.ID])
			if c < minRests {
				minRests = c
			}
			if c > maxRests {
				maxRests = c
			}
		}
		score += float64(maxRests-minRests) * w.RestSpread
	}
	var gaps []float64
	for _, p := range roster {
		rr := restRounds[p.ID]
		for i := 1; i < len(rr); i++ {
			gaps = append(gaps, float64(rr[i]-rr[i-1]))
		}
	}
	score += variance(gaps) * w.RestSpacing

	// Partner and opponent repetition.
	partnerCount := make(map[[2]string]int)
	oppCount := make(map[[2]string]int)
	opponents := make([]map[string][]string, rounds) // per round: player -> opponents
	courtByRound := make([]map[string]int, rounds)   // per round: player -> court
	for r, games := range s.Rounds {
		opponents[r] = make(map[string][]string)
		courtByRound[r] = make(map[string]int)
		for _, g := range games {
			partnerCount[pairKey(g.TeamA[0], g.TeamA[1])]++
			partnerCount[pairKey(g.TeamB[0], g.TeamB[1])]++
			for _, p := range g.TeamA {
				for _, q := range g.TeamB {
					oppCount[pairKey(p, q)]++
					opponents[r][p] = append(opponents[r][p], q)
					opponents[r][q] = append(opponents[r][q], p)
				}
			}
			for _, p := range g.Players() {
				courtByRound[r][p] = g.Court
			}
		}
	}
	for _, k := range partnerCount {
		if k > 1 {
			score += math.Pow(2, float64(k-1)) * w.PartnerRepeat
		}
	}
	for _, k := range oppCount {
		if k > 2 {
			score += math.Pow(2, float64(k-2)) * w.OpponentRepeat
		}
	}

	// Facing the same opponent in back-to-back or near-back-to-back rounds.
	recent := 0.0
	for r := 1; r < rounds; r++ {
		for p, opps := range opponents[r] {
			for _, q := range opps {
				if containsID(opponents[r-1][p], q) {
					recent += 100
				}
				if r >= 2 && containsID(opponents[r-2][p], q) {
					recent += 30
				}
			}
		}
	}
	score += recent * w.RecentOpponent

	// Court repetition.
	courts := 0.0
	for r := 1; r < rounds; r++ {
		for p, c := range courtByRound[r] {
			if prev, ok := courtByRound[r-1][p]; ok && prev == c {
				courts += 50
				if r >= 2 {
					if pp, ok := courtByRound[r-2][p]; ok && pp == c {
						courts += 100
					}
				}
			}
		}
	}
	score += courts * w.CourtRepeat

	// Skill balance.
	if s.Options.BalanceSkill {
		for _, games := range s.Rounds {
			for _, g := range games {
				score += g.SkillDiff * w.SkillBalance
				if excess := g.SkillDiff - s.Options.MaxSkillDiff; excess > 0 {
					score += math.Pow(2, excess) * w.SkillOverLimit
				}
			}
		}
	}

	// Declared partner pairs that never played together.
	if s.Options.RespectPartners {
		ids := make(map[string]bool, len(roster))
		for _, p := range roster {
			ids[p.ID] = true
		}
		seen := make(map[[2]string]bool)
		for _, p := range roster {
			if p.PartnerID == "" || p.PartnerID == p.ID || !ids[p.PartnerID] {
				continue
			}
			key := pairKey(p.ID, p.PartnerID)
			if seen[key] {
				continue
			}
			seen[key] = true
			if partnerCount[key] == 0 {
				score += 100 * w.PartnerPref
			}
		}
	}

	return score
}

func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	v := 0.0
	for _, x := range xs {
		v += (x - mean) * (x - mean)
	}
	return v / float64(len(xs))
}

func containsID(list []string, x string) bool {
	for _, v := range list {
		if v == x {
			return true
		}
	}
	return false
}
