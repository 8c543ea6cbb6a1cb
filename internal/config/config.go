package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/courtmix/courtmix/internal/schedule"
)

// Player is one roster entry in the event file. Partner references another
// player by name.
type Player struct {
	ID      string  `yaml:"id"`
	Name    string  `yaml:"name"`
	Skill   float64 `yaml:"skill"`
	Partner string  `yaml:"partner"`
	Active  *bool   `yaml:"active"` // default true
}

func (p *Player) active() bool {
	return p.Active == nil || *p.Active
}

// Matching holds the round-construction options.
type Matching struct {
	Courts          int      `yaml:"courts"`
	Rounds          int      `yaml:"rounds"`
	BalanceSkill    bool     `yaml:"balance_skill_levels"`
	RespectPartners bool     `yaml:"respect_partner_preferences"`
	MaxSkillDiff    float64  `yaml:"max_skill_difference"`
	DistributeRest  bool     `yaml:"distribute_rest_equally"`
	FirstRoundRest  []string `yaml:"first_round_rest"` // player names
}

// Search holds the search-loop options.
type Search struct {
	Attempts int    `yaml:"attempts"`
	Workers  int    `yaml:"workers"`
	Seed     int64  `yaml:"seed"`
	Profile  string `yaml:"profile"`
}

type Config struct {
	Event    string   `yaml:"event"`
	Players  []Player `yaml:"players"`
	Matching Matching `yaml:"matching"`
	Search   Search   `yaml:"search"`
}

// LoadFromBytes parses YAML bytes into a Config, validates it and assigns
// ids to players that have none.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	for i := range cfg.Players {
		if cfg.Players[i].ID == "" {
			cfg.Players[i].ID = uuid.NewString()
		}
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML event file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) validate() error {
	if len(c.Players) == 0 {
		return fmt.Errorf("at least one player is required")
	}

	seen := make(map[string]bool)
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("every player needs a name")
		}
		if seen[p.Name] {
			return fmt.Errorf("player %q appears more than once", p.Name)
		}
		seen[p.Name] = true
		if p.Skill < 0 {
			return fmt.Errorf("player %q: skill must not be negative", p.Name)
		}
	}
	for _, p := range c.Players {
		if p.Partner == "" {
			continue
		}
		if p.Partner == p.Name {
			return fmt.Errorf("player %q: partner references themselves", p.Name)
		}
		if !seen[p.Partner] {
			return fmt.Errorf("player %q: unknown partner %q", p.Name, p.Partner)
		}
	}

	if c.Matching.Courts < 0 {
		return fmt.Errorf("courts must not be negative")
	}
	if c.Matching.Rounds < 0 {
		return fmt.Errorf("rounds must not be negative")
	}
	if c.Matching.MaxSkillDiff < 0 {
		return fmt.Errorf("max_skill_difference must not be negative")
	}
	for _, name := range c.Matching.FirstRoundRest {
		if !seen[name] {
			return fmt.Errorf("first_round_rest: unknown player %q", name)
		}
	}
	return nil
}

// Roster returns the active players as core roster entries. Partner names
// are resolved to ids; a partner who is inactive simply never matches.
func (c *Config) Roster() []schedule.Player {
	ids := make(map[string]string, len(c.Players))
	for _, p := range c.Players {
		ids[p.Name] = p.ID
	}
	var roster []schedule.Player
	for _, p := range c.Players {
		if !p.active() {
			continue
		}
		roster = append(roster, schedule.Player{
			ID:        p.ID,
			Name:      p.Name,
			Skill:     p.Skill,
			PartnerID: ids[p.Partner],
			Active:    true,
		})
	}
	return roster
}

// Options maps the matching section to core options, resolving forced
// first-round sitter names to ids.
func (c *Config) Options() schedule.Options {
	ids := make(map[string]string, len(c.Players))
	for _, p := range c.Players {
		ids[p.Name] = p.ID
	}
	var rest []string
	for _, name := range c.Matching.FirstRoundRest {
		if id, ok := ids[name]; ok {
			rest = append(rest, id)
		}
	}
	return schedule.Options{
		Courts:          c.Matching.Courts,
		Rounds:          c.Matching.Rounds,
		BalanceSkill:    c.Matching.BalanceSkill,
		RespectPartners: c.Matching.RespectPartners,
		MaxSkillDiff:    c.Matching.MaxSkillDiff,
		DistributeRest:  c.Matching.DistributeRest,
		FirstRoundRest:  rest,
	}
}
