package schedule

import "math"

const (
	priorMeetingPenalty    = 30.0
	lastRoundOppPenalty    = 60.0
	earlierRoundOppPenalty = 20.0
	skillGapPenalty        = 5.0
)

// matchup is a pairing of two teams for one game. Fields are dense player
// indices.
type matchup struct {
	teamA [2]int
	teamB [2]int
}

func (m *matchup) players() [4]int {
	return [4]int{m.teamA[0], m.teamA[1], m.teamB[0], m.teamB[1]}
}

// matchTeams pairs teams against each other, covering every team exactly
// once. A strict first pass excludes opponents beyond the skill-difference
// limit; if the strict pass leaves a team with no candidate, a relaxed
// second pass considers everyone so no team stays unmatched.
func (b *builder) matchTeams(teams [][2]int) []matchup {
	matched := make([]bool, len(teams))
	var out []matchup
	for i := range teams {
		if matched[i] {
			continue
		}
		matched[i] = true

		j := b.bestOpponent(teams, matched, i, true)
		if j < 0 {
			j = b.bestOpponent(teams, matched, i, false)
		}
		if j < 0 {
			for k := i + 1; k < len(teams); k++ {
				if !matched[k] {
					j = k
					break
				}
			}
		}
		if j < 0 {
			break // odd leftover; the round builder rejects the attempt
		}
		matched[j] = true
		out = append(out, matchup{teamA: teams[i], teamB: teams[j]})
	}
	return out
}

// bestOpponent scores every unmatched team as an opponent for teams[i] and
// returns the best index, or -1 when no candidate survives.
func (b *builder) bestOpponent(teams [][2]int, matched []bool, i int, strict bool) int {
	best := -1
	bestScore := math.Inf(-1)
	skillI := b.teamSkill(teams[i])

	for j := range teams {
		if j == i || matched[j] {
			continue
		}
		diff := absDiff(skillI, b.teamSkill(teams[j]))
		if strict && b.opts.BalanceSkill && diff > b.opts.MaxSkillDiff {
			continue
		}

		score := -diff * skillGapPenalty
		for _, p := range teams[i] {
			for _, q := range teams[j] {
				score -= float64(b.oppCount[p][q]) * priorMeetingPenalty
				if containsIdx(b.lastOpp[p], q) {
					score -= lastRoundOppPenalty
				}
				if containsIdx(b.prevOpp[p], q) {
					score -= earlierRoundOppPenalty
				}
			}
		}
		if score > bestScore {
			bestScore = score
			best = j
		}
	}
	return best
}

func containsIdx(list []int, x int) bool {
	for _, v := range list {
		if v == x {
			return true
		}
	}
	return false
}
