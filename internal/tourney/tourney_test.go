package tourney_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foldline/holdem-engine/internal/engine"
	"github.com/foldline/holdem-engine/internal/harness"
	"github.com/foldline/holdem-engine/internal/tourney"
	"github.com/foldline/holdem-engine/sdk"
)

func unrestricted(bot harness.Bot) engine.Decider {
	return &harness.UnrestrictedHarness{Bot: bot}
}

func TestRunPlaysUntilOnePlayerRemains(t *testing.T) {
	dir := t.TempDir()

	cfg := tourney.Config{
		Names:          []string{"folder", "caller"},
		StartingStack:  200,
		Seed:           7,
		BlindsSchedule: map[int]engine.BlindLevel{1: {SmallBlind: 10, BigBlind: 20}},
		Deciders: map[int]engine.Decider{
			0: unrestricted(sdk.FoldBot{}),
			1: unrestricted(sdk.CallBot{}),
		},
		LogDir: dir,
	}

	result, err := tourney.Run(cfg)
	require.NoError(t, err)
	require.NotEmpty(t, result.Hands)
	require.NotEmpty(t, result.RunID)
	require.Equal(t, 400, result.FinalStacks[0]+result.FinalStacks[1])
	require.Contains(t, result.EliminationOrder, 0)
}

func TestRunRespectsHandLimit(t *testing.T) {
	dir := t.TempDir()

	cfg := tourney.Config{
		Names:          []string{"alice", "bob"},
		StartingStack:  10000,
		Seed:           3,
		BlindsSchedule: map[int]engine.BlindLevel{1: {SmallBlind: 10, BigBlind: 20}},
		Deciders: map[int]engine.Decider{
			0: unrestricted(sdk.CallBot{}),
			1: unrestricted(sdk.CallBot{}),
		},
		HandLimit: 5,
		LogDir:    dir,
	}

	result, err := tourney.Run(cfg)
	require.NoError(t, err)
	require.Equal(t, 5, result.HandsPlayed)
	require.Len(t, result.Hands, 5)
}

func TestRunWritesLogFiles(t *testing.T) {
	dir := t.TempDir()

	cfg := tourney.Config{
		Names:          []string{"alice", "bob"},
		StartingStack:  500,
		Seed:           42,
		BlindsSchedule: map[int]engine.BlindLevel{1: {SmallBlind: 10, BigBlind: 20}},
		Deciders: map[int]engine.Decider{
			0: unrestricted(sdk.CallBot{}),
			1: unrestricted(sdk.FoldBot{}),
		},
		LogDir: dir,
	}

	_, err := tourney.Run(cfg)
	require.NoError(t, err)

	for _, name := range []string{"illegal_moves.log", "showdown.log", "hands.phh", "result.json"} {
		info, statErr := os.Stat(filepath.Join(dir, name))
		require.NoError(t, statErr, "expected %s to exist", name)
		require.False(t, info.IsDir())
	}
}

func TestRunConservesChipsAcrossThreeHandedPlay(t *testing.T) {
	dir := t.TempDir()

	cfg := tourney.Config{
		Names:          []string{"alice", "bob", "carol"},
		StartingStack:  300,
		Seed:           1,
		BlindsSchedule: map[int]engine.BlindLevel{1: {SmallBlind: 5, BigBlind: 10}},
		Deciders: map[int]engine.Decider{
			0: unrestricted(sdk.CallBot{}),
			1: unrestricted(sdk.CallBot{}),
			2: unrestricted(sdk.FoldBot{}),
		},
		HandLimit: 3,
		LogDir:    dir,
	}

	result, err := tourney.Run(cfg)
	require.NoError(t, err)
	require.Equal(t, 900, result.FinalStacks[0]+result.FinalStacks[1]+result.FinalStacks[2])
}
