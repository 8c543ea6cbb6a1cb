package schedule

import "math"

const (
	lastCourtPenalty   = 30.0
	courtStreakPenalty = 60.0
)

// assignCourts gives each matchup a distinct court in 1..courts. Courts a
// player occupied in the previous round score worse, two rounds running much
// worse; jitter breaks ties. A court already used this round is never
// considered.
func (b *builder) assignCourts(matchups []matchup, courts int) []int {
	used := make([]bool, courts+1)
	out := make([]int, len(matchups))

	for i := range matchups {
		players := matchups[i].players()
		bestCourt := -1
		bestScore := math.Inf(1)
		for c := 1; c <= courts; c++ {
			if used[c] {
				continue
			}
			score := b.rng.Float64()
			for _, p := range players {
				h := b.courtHist[p]
				if len(h) >= 1 && h[len(h)-1] == c {
					score += lastCourtPenalty
					if len(h) >= 2 && h[len(h)-2] == c {
						score += courtStreakPenalty
					}
				}
			}
			if score < bestScore {
				bestScore = score
				bestCourt = c
			}
		}
		used[bestCourt] = true
		out[i] = bestCourt
	}
	return out
}
