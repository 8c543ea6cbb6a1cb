package schedule

import "math"

const (
	newPartnerBonus      = 100.0
	repeatPartnerPenalty = 40.0
	partnerPrefBonus     = 80.0
	skillPeakBonus       = 20.0
	skillPeakFalloff     = 10.0
)

// pairPlayers forms disjoint two-player teams covering every playing player.
// The pool is shuffled for tie-break fairness, then the first remaining
// player is greedily paired with its best-scoring candidate.
func (b *builder) pairPlayers(playing []int) [][2]int {
	pool := append([]int(nil), playing...)
	b.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	var teams [][2]int
	for len(pool) >= 2 {
		p := pool[0]
		bestIdx := -1
		bestScore := math.Inf(-1)
		for i := 1; i < len(pool); i++ {
			score := b.partnerScore(p, pool[i])
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			// Nothing scored; pair with the next player rather than fail.
			bestIdx = 1
		}
		teams = append(teams, [2]int{p, pool[bestIdx]})
		pool = append(pool[:bestIdx], pool[bestIdx+1:]...)
		pool = pool[1:]
	}
	return teams
}

func (b *builder) partnerScore(p, q int) float64 {
	score := 0.0
	if b.partnered[p][q] {
		score -= repeatPartnerPenalty
	} else {
		score += newPartnerBonus
	}
	if b.opts.BalanceSkill {
		avg := (b.players[p].Skill + b.players[q].Skill) / 2
		score += skillPeakBonus - math.Abs(avg-b.midSkill)*skillPeakFalloff
	}
	if b.opts.RespectPartners && (b.prefIdx[p] == q || b.prefIdx[q] == p) {
		score += partnerPrefBonus
	}
	return score
}
