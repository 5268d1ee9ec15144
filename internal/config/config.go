// Package config loads a tournament's HCL configuration file: the
// player roster, starting stack, blinds schedule, RNG seed, and the
// sandboxing limits applied to restricted bots. Grounded on the
// server's HCL config loader, adapted from a table/bot layout to a
// single tournament block plus a blinds schedule.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/foldline/holdem-engine/internal/engine"
)

// TournamentConfig is the full decoded contents of a tournament file.
type TournamentConfig struct {
	Tournament TournamentSettings `hcl:"tournament,block"`
	Players    []PlayerConfig     `hcl:"player,block"`
	Blinds     []BlindsLevel      `hcl:"blinds_level,block"`
}

// TournamentSettings are the table-wide knobs.
type TournamentSettings struct {
	StartingStack int   `hcl:"starting_stack"`
	Seed          int64 `hcl:"seed,optional"`
	LogDir        string `hcl:"log_dir,optional"`
}

// PlayerConfig names one seat and how its bot runs. A restricted
// player is spawned as a subprocess from Command; an unrestricted
// player runs in-process as one of the built-in reference bots named
// by Bot ("fold", "call", "random", "aggressive").
type PlayerConfig struct {
	Name          string `hcl:"name,label"`
	Command       string `hcl:"command,optional"`
	Restricted    bool   `hcl:"restricted,optional"`
	Bot           string `hcl:"bot,optional"`
	TimeLimitMs   int    `hcl:"time_limit_ms,optional"`
	MemoryLimitMB int    `hcl:"memory_limit_mb,optional"`
}

// BlindsLevel is one entry of the blinds schedule, keyed by the round
// it takes effect on.
type BlindsLevel struct {
	Round      int `hcl:"round"`
	SmallBlind int `hcl:"small_blind"`
	BigBlind   int `hcl:"big_blind"`
}

const (
	defaultTimeLimitMs   = 1000
	defaultMemoryLimitMB = 500
)

var knownBots = map[string]bool{
	"fold": true, "call": true, "random": true, "aggressive": true,
}

// Load parses and validates a tournament config file.
func Load(filename string) (*TournamentConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, &engine.ConfigurationError{Reason: fmt.Sprintf("config file %q does not exist", filename)}
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, &engine.ConfigurationError{Reason: fmt.Sprintf("parsing %q: %s", filename, diags.Error())}
	}

	var cfg TournamentConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, &engine.ConfigurationError{Reason: fmt.Sprintf("decoding %q: %s", filename, diags.Error())}
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *TournamentConfig) applyDefaults() {
	if c.Tournament.LogDir == "" {
		c.Tournament.LogDir = "."
	}
	for i := range c.Players {
		if c.Players[i].TimeLimitMs == 0 {
			c.Players[i].TimeLimitMs = defaultTimeLimitMs
		}
		if c.Players[i].MemoryLimitMB == 0 {
			c.Players[i].MemoryLimitMB = defaultMemoryLimitMB
		}
		if !c.Players[i].Restricted && c.Players[i].Bot == "" {
			c.Players[i].Bot = "call"
		}
	}
}

func (c *TournamentConfig) validate() error {
	if len(c.Players) < 2 {
		return &engine.ConfigurationError{Reason: "at least 2 player blocks are required"}
	}
	if c.Tournament.StartingStack <= 0 {
		return &engine.ConfigurationError{Reason: "tournament starting_stack must be positive"}
	}
	for _, p := range c.Players {
		if p.Restricted && p.Command == "" {
			return &engine.ConfigurationError{Reason: fmt.Sprintf("player %q is restricted but has no command", p.Name)}
		}
		if !p.Restricted && !knownBots[p.Bot] {
			return &engine.ConfigurationError{Reason: fmt.Sprintf("player %q has unknown bot %q", p.Name, p.Bot)}
		}
	}
	for _, level := range c.Blinds {
		if level.Round <= 0 {
			return &engine.ConfigurationError{Reason: "blinds_level round must be positive"}
		}
		if level.SmallBlind <= 0 || level.BigBlind <= 0 || level.SmallBlind >= level.BigBlind {
			return &engine.ConfigurationError{Reason: fmt.Sprintf("blinds_level round %d: requires 0 < small_blind < big_blind", level.Round)}
		}
	}
	return nil
}

// BlindsSchedule converts the decoded blind levels into the map shape
// the engine consumes.
func (c *TournamentConfig) BlindsSchedule() map[int]engine.BlindLevel {
	schedule := make(map[int]engine.BlindLevel, len(c.Blinds))
	for _, level := range c.Blinds {
		schedule[level.Round] = engine.BlindLevel{SmallBlind: level.SmallBlind, BigBlind: level.BigBlind}
	}
	return schedule
}

// PlayerNames returns the roster in file order.
func (c *TournamentConfig) PlayerNames() []string {
	names := make([]string, len(c.Players))
	for i, p := range c.Players {
		names[i] = p.Name
	}
	return names
}
