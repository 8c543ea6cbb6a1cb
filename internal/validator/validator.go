package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/courtmix/courtmix/internal/config"
)

// Violation represents a constraint violation found during validation.
type Violation struct {
	Row     int
	Type    string // "error" or "warning"
	Message string
}

// parsedGame is one game cell read back from the master sheet.
type parsedGame struct {
	Row     int
	Round   int
	Court   int
	TeamA   [2]string // player names
	TeamB   [2]string
	Resting []string
}

// Validate reads a schedule workbook and checks it against the event config.
// Structural problems (double-booked players, unknown names, bad coverage)
// are errors; fairness and preference problems are warnings, since manual
// edits may break guidelines on purpose.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	rounds, err := readRounds(f)
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}

	var violations []Violation
	violations = append(violations, checkNames(cfg, rounds)...)
	violations = append(violations, checkDoubleBooking(rounds)...)
	violations = append(violations, checkCoverage(cfg, rounds)...)
	violations = append(violations, checkRestSpread(cfg, rounds)...)
	violations = append(violations, checkSkillDifference(cfg, rounds)...)
	violations = append(violations, checkPartnerPreferences(cfg, rounds)...)
	return violations, nil
}

// roundData groups the games and resting list parsed for one round.
type roundData struct {
	Row     int
	Round   int
	Games   []parsedGame
	Resting []string
}

func readRounds(f *excelize.File) ([]roundData, error) {
	rows, err := f.GetRows("Schedule")
	if err != nil {
		return nil, fmt.Errorf("reading Schedule sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("Schedule sheet is empty")
	}

	header := rows[0]
	if len(header) < 2 || header[0] != "Round" {
		return nil, fmt.Errorf("unexpected header row %v", header)
	}
	restCol := -1
	lastCourtCol := len(header) - 1
	if header[len(header)-1] == "Resting" {
		restCol = len(header) - 1
		lastCourtCol = restCol - 1
	}

	var out []roundData
	for i, row := range rows {
		if i == 0 || len(row) == 0 || row[0] == "" {
			continue
		}
		round, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad round number %q", i+1, row[0])
		}
		rd := roundData{Row: i + 1, Round: round}
		for col := 1; col <= lastCourtCol && col < len(row); col++ {
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			teamA, teamB, ok := parseGameCell(cell)
			if !ok {
				return nil, fmt.Errorf("row %d: unparseable game cell %q", i+1, cell)
			}
			rd.Games = append(rd.Games, parsedGame{
				Row:   i + 1,
				Round: round,
				Court: col,
				TeamA: teamA,
				TeamB: teamB,
			})
		}
		if restCol >= 0 && restCol < len(row) && strings.TrimSpace(row[restCol]) != "" {
			for _, name := range strings.Split(row[restCol], ",") {
				rd.Resting = append(rd.Resting, strings.TrimSpace(name))
			}
		}
		out = append(out, rd)
	}
	return out, nil
}

// parseGameCell parses "A & B vs C & D" into the two teams.
func parseGameCell(cell string) ([2]string, [2]string, bool) {
	sides := strings.Split(cell, " vs ")
	if len(sides) != 2 {
		return [2]string{}, [2]string{}, false
	}
	parseTeam := func(s string) ([2]string, bool) {
		members := strings.Split(s, " & ")
		if len(members) != 2 {
			return [2]string{}, false
		}
		return [2]string{strings.TrimSpace(members[0]), strings.TrimSpace(members[1])}, true
	}
	teamA, okA := parseTeam(sides[0])
	teamB, okB := parseTeam(sides[1])
	return teamA, teamB, okA && okB
}

func activeNames(cfg *config.Config) map[string]bool {
	names := make(map[string]bool)
	for _, p := range cfg.Players {
		if p.Active == nil || *p.Active {
			names[p.Name] = true
		}
	}
	return names
}

func roundPlayers(rd roundData) []string {
	var players []string
	for _, g := range rd.Games {
		players = append(players, g.TeamA[0], g.TeamA[1], g.TeamB[0], g.TeamB[1])
	}
	return players
}

func checkNames(cfg *config.Config, rounds []roundData) []Violation {
	known := activeNames(cfg)
	var violations []Violation
	for _, rd := range rounds {
		for _, name := range append(roundPlayers(rd), rd.Resting...) {
			if !known[name] {
				violations = append(violations, Violation{
					Row:     rd.Row,
					Type:    "error",
					Message: fmt.Sprintf("round %d: unknown player %q", rd.Round, name),
				})
			}
		}
	}
	return violations
}

func checkDoubleBooking(rounds []roundData) []Violation {
	var violations []Violation
	for _, rd := range rounds {
		seen := make(map[string]int)
		for _, name := range roundPlayers(rd) {
			seen[name]++
		}
		for name, count := range seen {
			if count > 1 {
				violations = append(violations, Violation{
					Row:     rd.Row,
					Type:    "error",
					Message: fmt.Sprintf("round %d: %s plays %d games", rd.Round, name, count),
				})
			}
		}
	}
	return violations
}

func checkCoverage(cfg *config.Config, rounds []roundData) []Violation {
	known := activeNames(cfg)
	var violations []Violation
	for _, rd := range rounds {
		covered := make(map[string]bool)
		for _, name := range roundPlayers(rd) {
			covered[name] = true
		}
		for _, name := range rd.Resting {
			covered[name] = true
		}
		var missing []string
		for name := range known {
			if !covered[name] {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			violations = append(violations, Violation{
				Row:     rd.Row,
				Type:    "error",
				Message: fmt.Sprintf("round %d: %d player(s) neither playing nor resting: %s", rd.Round, len(missing), strings.Join(missing, ", ")),
			})
		}
	}
	return violations
}

func checkRestSpread(cfg *config.Config, rounds []roundData) []Violation {
	if !cfg.Matching.DistributeRest {
		return nil
	}
	counts := make(map[string]int)
	for name := range activeNames(cfg) {
		counts[name] = 0
	}
	anyRest := false
	for _, rd := range rounds {
		for _, name := range rd.Resting {
			counts[name]++
			anyRest = true
		}
	}
	if !anyRest {
		return nil
	}
	minRests, maxRests := -1, 0
	for _, c := range counts {
		if minRests < 0 || c < minRests {
			minRests = c
		}
		if c > maxRests {
			maxRests = c
		}
	}
	if maxRests-minRests > 1 {
		return []Violation{{
			Type:    "warning",
			Message: fmt.Sprintf("rest imbalance: min %d, max %d rests across players", minRests, maxRests),
		}}
	}
	return nil
}

func checkSkillDifference(cfg *config.Config, rounds []roundData) []Violation {
	if !cfg.Matching.BalanceSkill {
		return nil
	}
	skills := make(map[string]float64)
	for _, p := range cfg.Players {
		skills[p.Name] = p.Skill
	}
	var violations []Violation
	for _, rd := range rounds {
		for _, g := range rd.Games {
			diff := skills[g.TeamA[0]] + skills[g.TeamA[1]] - skills[g.TeamB[0]] - skills[g.TeamB[1]]
			if diff < 0 {
				diff = -diff
			}
			if diff > cfg.Matching.MaxSkillDiff {
				violations = append(violations, Violation{
					Row:  g.Row,
					Type: "warning",
					Message: fmt.Sprintf("round %d court %d: skill difference %.1f exceeds limit %.1f",
						g.Round, g.Court, diff, cfg.Matching.MaxSkillDiff),
				})
			}
		}
	}
	return violations
}

func checkPartnerPreferences(cfg *config.Config, rounds []roundData) []Violation {
	if !cfg.Matching.RespectPartners {
		return nil
	}
	known := activeNames(cfg)

	partnered := make(map[[2]string]bool)
	key := func(a, b string) [2]string {
		if a > b {
			a, b = b, a
		}
		return [2]string{a, b}
	}
	for _, rd := range rounds {
		for _, g := range rd.Games {
			partnered[key(g.TeamA[0], g.TeamA[1])] = true
			partnered[key(g.TeamB[0], g.TeamB[1])] = true
		}
	}

	var violations []Violation
	seen := make(map[[2]string]bool)
	for _, p := range cfg.Players {
		if p.Partner == "" || p.Partner == p.Name || !known[p.Name] || !known[p.Partner] {
			continue
		}
		k := key(p.Name, p.Partner)
		if seen[k] {
			continue
		}
		seen[k] = true
		if !partnered[k] {
			violations = append(violations, Violation{
				Type:    "warning",
				Message: fmt.Sprintf("declared partners %s and %s never play together", k[0], k[1]),
			})
		}
	}
	return violations
}
