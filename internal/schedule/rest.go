package schedule

// restPlan is the per-round sitter selection for one attempt.
type restPlan struct {
	rounds  [][]int // dense player indices sitting out, one slice per round
	dropped int     // forced first-round sitters dropped by the slot cap
}

// buildRestPlan decides who sits out each round. Sitters are chosen greedily:
// players under their fair share of rest score highest, then players who have
// gone longest without a rest, with random jitter breaking exact ties.
//
// Forced first-round sitters beyond the per-round slot count are capped: the
// excess names are dropped in list order and reported via the dropped count.
func (b *builder) buildRestPlan(sittersPerRound, rounds int) restPlan {
	plan := restPlan{rounds: make([][]int, rounds)}
	if sittersPerRound <= 0 {
		for r := range plan.rounds {
			plan.rounds[r] = nil
		}
		return plan
	}

	n := len(b.players)
	restCount := make([]int, n)
	lastRest := make([]int, n)
	target := float64(sittersPerRound*rounds) / float64(n)

	for r := 1; r <= rounds; r++ {
		selected := make([]int, 0, sittersPerRound)
		chosen := make([]bool, n)

		if r == 1 {
			for _, id := range b.opts.FirstRoundRest {
				p, ok := b.index[id]
				if !ok || chosen[p] {
					continue
				}
				if len(selected) >= sittersPerRound {
					plan.dropped++
					continue
				}
				selected = append(selected, p)
				chosen[p] = true
			}
		}

		scores := make([]float64, n)
		for p := range b.players {
			if chosen[p] {
				continue
			}
			score := 0.0
			if b.opts.DistributeRest {
				score += (target - float64(restCount[p])) * 1000
			}
			score += float64(r-lastRest[p]) * 10
			score += b.rng.Float64()
			scores[p] = score
		}

		for len(selected) < sittersPerRound && len(selected) < n {
			best := -1
			for p := range b.players {
				if chosen[p] {
					continue
				}
				if best < 0 || scores[p] > scores[best] {
					best = p
				}
			}
			if best < 0 {
				break
			}
			selected = append(selected, best)
			chosen[best] = true
		}

		for _, p := range selected {
			restCount[p]++
			lastRest[p] = r
		}
		plan.rounds[r-1] = selected
	}

	return plan
}
