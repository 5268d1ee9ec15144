// Package tourney runs a tournament's hands back to back across a
// single engine.Table until one player remains (or a hand limit is
// reached), persisting the illegal-move and showdown logs a bot
// operator reviews after the fact. Grounded on the cadence of the
// teacher's examples/play_game.py driver loop, rebuilt around the
// engine's exact Table/Decider contract instead of print statements.
package tourney

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/foldline/holdem-engine/internal/engine"
	"github.com/foldline/holdem-engine/internal/fileutil"
	"github.com/foldline/holdem-engine/internal/gameid"
	"github.com/foldline/holdem-engine/internal/phh"
)

// Config is everything tourney needs to seat a table and run it to
// completion.
type Config struct {
	Names          []string
	StartingStack  int
	Seed           int64
	BlindsSchedule map[int]engine.BlindLevel
	Deciders       map[int]engine.Decider

	// HandLimit caps the number of hands played, 0 means unlimited
	// (play until one player remains).
	HandLimit int

	// LogDir is where illegal_moves.log, showdown.log, and hands.phh
	// are written. Created if it doesn't exist.
	LogDir string
}

// HandSummary is one hand's contribution to the tournament's public
// record: the engine's result plus enough seat context to render it
// without re-deriving state from the table.
type HandSummary struct {
	RoundNumber int
	Result      *engine.HandResult
	Stacks      []int
}

// TournamentResult is the full account of a completed tournament.
type TournamentResult struct {
	RunID            string `json:"runId"`
	FinalStacks      []int  `json:"finalStacks"`
	EliminationOrder []int  `json:"eliminationOrder"`
	HandsPlayed      int    `json:"handsPlayed"`
	Hands            []HandSummary `json:"-"`
}

// Run seats a table per cfg and plays hands until one player remains
// or cfg.HandLimit is reached, whichever comes first. Every hand is
// appended to hands.phh in cfg.LogDir as it completes.
func Run(cfg Config) (*TournamentResult, error) {
	if cfg.LogDir == "" {
		cfg.LogDir = "."
	}
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, fmt.Errorf("tourney: creating log dir: %w", err)
	}

	illegalMovesFile, err := openLog(cfg.LogDir, "illegal_moves.log")
	if err != nil {
		return nil, err
	}
	defer illegalMovesFile.Close()

	showdownFile, err := openLog(cfg.LogDir, "showdown.log")
	if err != nil {
		return nil, err
	}
	defer showdownFile.Close()

	illegalMovesLogger := zerolog.New(illegalMovesFile).With().Timestamp().Logger()
	showdownLogger := zerolog.New(showdownFile).With().Timestamp().Logger()

	table, err := engine.NewTable(cfg.Names, cfg.StartingStack, cfg.BlindsSchedule, cfg.Seed, cfg.Deciders, illegalMovesLogger)
	if err != nil {
		return nil, err
	}

	handsFile, err := openLog(cfg.LogDir, "hands.phh")
	if err != nil {
		return nil, err
	}
	defer handsFile.Close()

	result := &TournamentResult{RunID: gameid.Generate()}

	for {
		if table.ActivePlayerCount() <= 1 {
			break
		}
		if cfg.HandLimit > 0 && result.HandsPlayed >= cfg.HandLimit {
			break
		}

		round := table.RoundNumber()
		small, big := table.CurrentBlinds()
		startingStacks := table.Stacks()

		handResult, err := table.PlayHand()
		if err != nil {
			return result, err
		}

		// Seats eliminated this hand are busted now and omitted by
		// HoleCards; they always reached showdown, so take theirs from
		// the showdown details.
		holeCards := table.HoleCards()
		if handResult.ShowdownDetails != nil {
			for seat, cards := range handResult.ShowdownDetails.HoleCards {
				holeCards[seat] = cards
			}
		}

		result.HandsPlayed++
		finishingStacks := table.Stacks()
		result.Hands = append(result.Hands, HandSummary{
			RoundNumber: round,
			Result:      handResult,
			Stacks:      append([]int(nil), finishingStacks...),
		})
		result.EliminationOrder = append(result.EliminationOrder, handResult.Eliminated...)

		logShowdown(showdownLogger, round, handResult)

		history := table.LastHandHistory()
		if history != nil {
			hh := phh.BuildHandHistory(history, table.Names(), holeCards, startingStacks, finishingStacks, small, big, round)
			if err := phh.Encode(handsFile, hh); err != nil {
				illegalMovesLogger.Warn().Err(err).Int("round", round).Msg("hand history encode failed")
			}
		}
	}

	result.FinalStacks = table.Stacks()

	if err := fileutil.WriteJSONAtomic(filepath.Join(cfg.LogDir, "result.json"), result, 0o644); err != nil {
		illegalMovesLogger.Warn().Err(err).Msg("result summary write failed")
	}

	return result, nil
}

func openLog(dir, name string) (*os.File, error) {
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("tourney: opening %s: %w", name, err)
	}
	return f, nil
}

func logShowdown(logger zerolog.Logger, round int, result *engine.HandResult) {
	event := logger.Info().Int("round", round).Bool("showdown", result.Showdown)
	for seat, share := range result.Winners {
		event = event.Int(fmt.Sprintf("winner_%d_chips", seat), share.ChipsWon)
	}
	if len(result.Eliminated) > 0 {
		event = event.Ints("eliminated", result.Eliminated)
	}
	event.Msg("hand complete")
}
