package profile

import (
	"fmt"

	"github.com/courtmix/courtmix/internal/schedule"
)

// Get returns the scoring weights registered under name. An empty name
// selects "balanced".
func Get(name string) (schedule.Weights, error) {
	switch name {
	case "", "balanced":
		return schedule.DefaultWeights(), nil
	case "competitive":
		// Tight games matter more than variety.
		w := schedule.DefaultWeights()
		w.SkillBalance = 25
		w.SkillOverLimit = 500
		return w, nil
	case "social":
		// Playing with and against new people matters more than tight games.
		w := schedule.DefaultWeights()
		w.PartnerRepeat = 600
		w.OpponentRepeat = 240
		w.PartnerPref = 5
		return w, nil
	default:
		return schedule.Weights{}, fmt.Errorf("unknown profile: %q", name)
	}
}

// Names lists the registered profile names.
func Names() []string {
	return []string{"balanced", "competitive", "social"}
}
