// Command pokerbotsim loads an HCL tournament config, seats either
// subprocess or in-process bots at the table, plays hands until one
// player remains, and prints a result summary. Grounded on the
// teacher's cmd/pokerforbots multi-command layout, narrowed to the one
// subcommand this module actually drives end to end.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/foldline/holdem-engine/internal/config"
	"github.com/foldline/holdem-engine/internal/engine"
	"github.com/foldline/holdem-engine/internal/harness"
	"github.com/foldline/holdem-engine/internal/tourney"
	"github.com/foldline/holdem-engine/sdk"
)

type CLI struct {
	Config    string `arg:"" help:"Path to the tournament HCL config file." type:"existingfile"`
	HandLimit int    `short:"n" help:"Stop after this many hands (0 = play until one player remains)."`
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	winStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	bustStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerbotsim"),
		kong.Description("Runs a bot-vs-bot No-Limit Hold'em tournament from an HCL config."),
		kong.UsageOnError(),
	)

	if err := run(cli); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		ctx.Exit(1)
	}
}

func run(cli CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	deciders := make(map[int]engine.Decider, len(cfg.Players))
	var closers []*harness.RestrictedHarness
	for i, p := range cfg.Players {
		if p.Restricted {
			h := harness.NewRestrictedHarness(strings.Fields(p.Command), msToDuration(p.TimeLimitMs), p.MemoryLimitMB, logger.With().Str("player", p.Name).Logger())
			deciders[i] = h
			closers = append(closers, h)
			continue
		}
		bot, err := builtinBot(p.Bot, cfg.Tournament.Seed+int64(i))
		if err != nil {
			return err
		}
		deciders[i] = &harness.UnrestrictedHarness{Bot: bot}
	}
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	result, err := tourney.Run(tourney.Config{
		Names:          cfg.PlayerNames(),
		StartingStack:  cfg.Tournament.StartingStack,
		Seed:           cfg.Tournament.Seed,
		BlindsSchedule: cfg.BlindsSchedule(),
		Deciders:       deciders,
		HandLimit:      cli.HandLimit,
		LogDir:         cfg.Tournament.LogDir,
	})
	if err != nil {
		return err
	}

	printSummary(cfg.PlayerNames(), result)
	return nil
}

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func builtinBot(name string, seed int64) (harness.Bot, error) {
	switch name {
	case "fold":
		return sdk.FoldBot{}, nil
	case "call":
		return sdk.CallBot{}, nil
	case "random":
		return sdk.NewRandomBot(seed), nil
	case "aggressive":
		return sdk.NewAggressiveBot(seed), nil
	default:
		return nil, fmt.Errorf("pokerbotsim: unknown bot %q", name)
	}
}

func printSummary(names []string, result *tourney.TournamentResult) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Tournament %s complete — %d hands played", result.RunID, result.HandsPlayed)))
	busted := make(map[int]bool, len(result.EliminationOrder))
	for _, seat := range result.EliminationOrder {
		busted[seat] = true
	}
	for seat, name := range names {
		stack := result.FinalStacks[seat]
		line := fmt.Sprintf("  %-16s %6d chips", name, stack)
		if busted[seat] {
			fmt.Println(bustStyle.Render(line + " (eliminated)"))
		} else {
			fmt.Println(winStyle.Render(line))
		}
	}
}
