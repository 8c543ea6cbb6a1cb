package schedule

import (
	"math"
	"time"
)

// Player is one roster entry. The engine reads ID, Skill and PartnerID;
// Name is carried through untouched for rendering.
type Player struct {
	ID        string
	Name      string
	Skill     float64
	PartnerID string // preferred partner's id; dangling or self references are ignored
	Active    bool
}

// Options configures a single generation run.
type Options struct {
	Courts          int
	Rounds          int
	BalanceSkill    bool
	RespectPartners bool
	MaxSkillDiff    float64
	DistributeRest  bool
	FirstRoundRest  []string // player ids forced to sit out round 1
}

// Game is one doubles game: two teams of two on a numbered court.
type Game struct {
	Round      int // 1-based
	Court      int // 1-based, unique within the round
	TeamA      [2]string
	TeamB      [2]string
	TeamASkill float64
	TeamBSkill float64
	SkillDiff  float64
}

// Players returns the four participating player ids.
func (g *Game) Players() [4]string {
	return [4]string{g.TeamA[0], g.TeamA[1], g.TeamB[0], g.TeamB[1]}
}

// GameSchedule is a complete multi-round schedule. Rounds and Resting are
// parallel: Resting[i] holds the ids sitting out during Rounds[i].
type GameSchedule struct {
	Event     string
	Options   Options
	Rounds    [][]Game
	Resting   [][]string
	CreatedAt time.Time
	Score     float64 // lower is better; set by the generator
	Warnings  []string
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func meanSkill(players []Player) float64 {
	if len(players) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range players {
		sum += p.Skill
	}
	return sum / float64(len(players))
}

func absDiff(a, b float64) float64 {
	return math.Abs(a - b)
}
