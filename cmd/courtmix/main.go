package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/courtmix/courtmix/internal/config"
	"github.com/courtmix/courtmix/internal/excel"
	"github.com/courtmix/courtmix/internal/profile"
	"github.com/courtmix/courtmix/internal/schedule"
	"github.com/courtmix/courtmix/internal/validator"
)

const defaultConfigFile = "event.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "courtmix",
		Short: "Doubles court rotation schedule generator",
	}

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log search diagnostics")

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter event.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and validate schedules",
	}

	var configFile string
	scheduleCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to event file (default: event.yaml in current directory)")

	var outputFile string
	var timeout time.Duration
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a schedule from an event file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runGenerate(configPath, outputFile, timeout, verbose)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "Output Excel file path")
	generateCmd.Flags().DurationVar(&timeout, "timeout", 0, "Stop searching after this long and keep the best schedule so far")

	validateCmd := &cobra.Command{
		Use:          "validate <schedule.xlsx>",
		Short:        "Validate a schedule workbook against the event file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runValidate(configPath, args[0])
		},
	}

	scheduleCmd.AddCommand(generateCmd, validateCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# Courtmix Event Configuration
# ============================
# This file defines the roster and options for one play session.

event: "Tuesday Night Mixer"

# Roster. Skill is a continuous rating (typically 1.0-5.0). A player may
# name a preferred partner; set "active: false" to keep someone on the list
# without scheduling them. An "id" is optional and generated when omitted.
players:
  - name: Alice
    skill: 3.5
    partner: Bob
  - name: Bob
    skill: 3.0
    partner: Alice
  - name: Carol
    skill: 4.0
  - name: Dave
    skill: 2.5
  - name: Erin
    skill: 3.5
  - name: Frank
    skill: 3.0
  - name: Grace
    skill: 4.5
  - name: Heidi
    skill: 2.0
    active: false

matching:
  courts: 1
  rounds: 6

  # Prefer evenly-skilled teams and cap the acceptable gap between the two
  # teams' summed ratings. The cap is relaxed for a team that would
  # otherwise stay unmatched.
  balance_skill_levels: true
  max_skill_difference: 1.5

  # Try to put declared partner pairs on the same team at least once.
  respect_partner_preferences: true

  # Spread sit-out rounds evenly across the roster.
  distribute_rest_equally: true

  # Players (by name) who must sit out the first round, e.g. late arrivals.
  # Names beyond the per-round rest slot count are dropped with a warning.
  first_round_rest: []

search:
  # Independent randomized attempts; the lowest-scoring schedule wins.
  attempts: 1500
  # Concurrent workers; defaults to the number of CPUs.
  workers: 0
  # Fix for reproducible schedules; 0 seeds from the clock.
  seed: 0
  # Scoring profile: balanced, competitive or social.
  profile: balanced
`

func runGenerate(configPath, outputPath string, timeout time.Duration, verbose bool) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	weights, err := profile.Get(cfg.Search.Profile)
	if err != nil {
		return err
	}

	log := zerolog.Nop()
	if verbose {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	roster := cfg.Roster()
	opts := cfg.Options()

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	gen := schedule.Generator{
		Attempts: cfg.Search.Attempts,
		Workers:  cfg.Search.Workers,
		Seed:     cfg.Search.Seed,
		Weights:  weights,
		Log:      log,
	}

	fmt.Printf("Scheduling %d players onto %d court(s) for %d round(s)...\n",
		len(roster), opts.Courts, opts.Rounds)

	s, err := gen.Generate(ctx, cfg.Event, roster, opts)
	if err != nil {
		return fmt.Errorf("generating schedule: %w", err)
	}
	fmt.Printf("✓ Schedule found (score %.0f)\n", s.Score)

	fmt.Println("\nPer Player Metrics:")
	fmt.Printf("  %-15s %6s %5s %9s %10s\n", "Player", "Games", "Rest", "Partners", "Opponents")
	metrics := s.Metrics(roster)
	for _, p := range roster {
		m := metrics[p.ID]
		fmt.Printf("  %-15s %6d %5d %9d %10d\n", p.Name, m.Games, m.Rests, m.Partners, m.Opponents)
	}

	if len(s.Warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(s.Warnings))
		for _, w := range s.Warnings {
			fmt.Printf("  ⚠ %s\n", w)
		}
	}

	f, err := excel.Generate(s, roster)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}

	fmt.Printf("\n✓ Schedule saved to %s\n", outputPath)
	return nil
}

func runValidate(configPath, schedulePath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	violations, err := validator.Validate(cfg, schedulePath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errors := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ Rule violation: %s\n", v.Message)
		case "warning":
			warnings++
			fmt.Printf("⚠ Guideline violation: %s\n", v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d rule violations, %d guideline violations\n", errors, warnings)

	if errors > 0 {
		return fmt.Errorf("%d constraint violations found", errors)
	}
	return nil
}
