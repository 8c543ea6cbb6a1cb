package schedule

import (
	"fmt"
	"math/rand"
)

// builder holds the state of one construction attempt. All history is local
// to the attempt and indexed by dense per-run player indices, so a failed
// attempt can simply be discarded.
type builder struct {
	opts    Options
	players []Player
	rng     *rand.Rand

	index    map[string]int // player id -> dense index
	prefIdx  []int          // declared partner as dense index, -1 if none
	midSkill float64

	partnered [][]bool
	oppCount  [][]int
	lastOpp   [][]int // opponents one round back, per player
	prevOpp   [][]int // opponents two rounds back, per player
	courtHist [][]int // court played per round, per player; 0 = rested
}

func newBuilder(players []Player, opts Options, rng *rand.Rand) *builder {
	n := len(players)
	b := &builder{
		opts:      opts,
		players:   players,
		rng:       rng,
		index:     make(map[string]int, n),
		prefIdx:   make([]int, n),
		midSkill:  meanSkill(players),
		partnered: make([][]bool, n),
		oppCount:  make([][]int, n),
		lastOpp:   make([][]int, n),
		prevOpp:   make([][]int, n),
		courtHist: make([][]int, n),
	}
	for i, p := range players {
		b.index[p.ID] = i
	}
	for i, p := range players {
		b.prefIdx[i] = -1
		if p.PartnerID == "" || p.PartnerID == p.ID {
			continue
		}
		if j, ok := b.index[p.PartnerID]; ok {
			b.prefIdx[i] = j
		}
	}
	for i := range players {
		b.partnered[i] = make([]bool, n)
		b.oppCount[i] = make([]int, n)
	}
	return b
}

// build constructs a full schedule, one round at a time. A count mismatch in
// any round aborts the whole attempt.
func (b *builder) build() (*GameSchedule, error) {
	n := len(b.players)
	rounds := b.opts.Rounds
	if rounds < 0 {
		rounds = 0
	}

	// A court only exists for a round if four players can fill it.
	courts := b.opts.Courts
	if courts > n/4 {
		courts = n / 4
	}
	if courts < 0 {
		courts = 0
	}
	sitters := n - courts*4

	plan := b.buildRestPlan(sitters, rounds)

	s := &GameSchedule{
		Options: b.opts,
		Rounds:  make([][]Game, 0, rounds),
		Resting: make([][]string, 0, rounds),
	}
	if plan.dropped > 0 {
		s.Warnings = append(s.Warnings, fmt.Sprintf(
			"dropped %d forced first-round sitter(s): only %d rest slot(s) per round", plan.dropped, sitters))
	}

	for r := 1; r <= rounds; r++ {
		restIdx := plan.rounds[r-1]
		playing := b.playingPlayers(restIdx)
		if len(playing) != courts*4 {
			return nil, fmt.Errorf("round %d: %d players to seat, need %d", r, len(playing), courts*4)
		}

		teams := b.pairPlayers(playing)
		if len(teams)*2 != len(playing) {
			return nil, fmt.Errorf("round %d: paired %d teams from %d players", r, len(teams), len(playing))
		}

		matchups := b.matchTeams(teams)
		if len(matchups)*2 != len(teams) {
			return nil, fmt.Errorf("round %d: matched %d games from %d teams", r, len(matchups), len(teams))
		}

		courtNums := b.assignCourts(matchups, courts)

		games := make([]Game, len(matchups))
		for i, m := range matchups {
			skillA := b.teamSkill(m.teamA)
			skillB := b.teamSkill(m.teamB)
			games[i] = Game{
				Round:      r,
				Court:      courtNums[i],
				TeamA:      [2]string{b.players[m.teamA[0]].ID, b.players[m.teamA[1]].ID},
				TeamB:      [2]string{b.players[m.teamB[0]].ID, b.players[m.teamB[1]].ID},
				TeamASkill: skillA,
				TeamBSkill: skillB,
				SkillDiff:  absDiff(skillA, skillB),
			}
		}

		b.recordRound(matchups, courtNums, restIdx)

		resting := make([]string, len(restIdx))
		for i, p := range restIdx {
			resting[i] = b.players[p].ID
		}
		s.Rounds = append(s.Rounds, games)
		s.Resting = append(s.Resting, resting)
	}

	return s, nil
}

func (b *builder) playingPlayers(resting []int) []int {
	out := make([]int, 0, len(b.players)-len(resting))
	sitting := make([]bool, len(b.players))
	for _, p := range resting {
		sitting[p] = true
	}
	for i := range b.players {
		if !sitting[i] {
			out = append(out, i)
		}
	}
	return out
}

func (b *builder) teamSkill(team [2]int) float64 {
	return b.players[team[0]].Skill + b.players[team[1]].Skill
}

// recordRound folds a finished round into the history accumulators before
// the next round is built.
func (b *builder) recordRound(matchups []matchup, courtNums []int, resting []int) {
	next := make([][]int, len(b.players))
	for i, m := range matchups {
		b.partnered[m.teamA[0]][m.teamA[1]] = true
		b.partnered[m.teamA[1]][m.teamA[0]] = true
		b.partnered[m.teamB[0]][m.teamB[1]] = true
		b.partnered[m.teamB[1]][m.teamB[0]] = true

		for _, p := range m.teamA {
			for _, q := range m.teamB {
				b.oppCount[p][q]++
				b.oppCount[q][p]++
				next[p] = append(next[p], q)
				next[q] = append(next[q], p)
			}
		}

		for _, p := range m.players() {
			b.courtHist[p] = append(b.courtHist[p], courtNums[i])
		}
	}
	for _, p := range resting {
		b.courtHist[p] = append(b.courtHist[p], 0)
	}
	b.prevOpp = b.lastOpp
	b.lastOpp = next
}
