package phh_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foldline/holdem-engine/internal/deck"
	"github.com/foldline/holdem-engine/internal/engine"
	"github.com/foldline/holdem-engine/internal/phh"
)

func card(s string) deck.Card {
	cards := deck.MustParseCards(s)
	return cards[0]
}

func TestBuildHandHistoryDealsHoleCardsForEverySeat(t *testing.T) {
	hand := &engine.HandRecord{
		RoundNumber: 1,
		PerStreet: map[engine.Street]*engine.StreetHistory{
			engine.Preflop: {
				Actions: []engine.Action{
					{PlayerIndex: 0, ActionType: engine.SmallBlind, Amount: 10},
					{PlayerIndex: 1, ActionType: engine.BigBlind, Amount: 20},
					{PlayerIndex: 0, ActionType: engine.Fold},
				},
			},
		},
	}
	holeCards := map[int][2]deck.Card{
		0: {card("Ah"), card("Kh")},
		1: {card("2c"), card("7d")},
	}

	hh := phh.BuildHandHistory(hand, []string{"alice", "bob"}, holeCards, []int{1000, 1000}, []int{990, 1010}, 10, 20, 1)

	require.Contains(t, hh.Actions, "d dh p1 AhKh")
	require.Contains(t, hh.Actions, "d dh p2 2c7d")
	require.Equal(t, []int{10, 20}, hh.BlindsOrStraddles)
	require.Equal(t, "hand-00001", hh.HandID)
}

func TestBuildHandHistoryOmitsBlindsAsActions(t *testing.T) {
	hand := &engine.HandRecord{
		PerStreet: map[engine.Street]*engine.StreetHistory{
			engine.Preflop: {
				Actions: []engine.Action{
					{PlayerIndex: 0, ActionType: engine.SmallBlind, Amount: 10},
					{PlayerIndex: 1, ActionType: engine.BigBlind, Amount: 20},
					{PlayerIndex: 0, ActionType: engine.Call, Amount: 10},
					{PlayerIndex: 1, ActionType: engine.Check},
				},
			},
		},
	}
	holeCards := map[int][2]deck.Card{
		0: {card("Ah"), card("Kh")},
		1: {card("2c"), card("7d")},
	}

	hh := phh.BuildHandHistory(hand, []string{"alice", "bob"}, holeCards, []int{1000, 1000}, []int{980, 1020}, 10, 20, 2)

	for _, a := range hh.Actions {
		require.False(t, strings.HasPrefix(a, "p1 sb"))
		require.False(t, strings.HasPrefix(a, "p2 bb"))
	}
	require.Contains(t, hh.Actions, "p1 cc")
	require.Contains(t, hh.Actions, "p2 cc")
}

func TestBuildHandHistoryRecordsBoardAndCumulativeRaises(t *testing.T) {
	hand := &engine.HandRecord{
		PerStreet: map[engine.Street]*engine.StreetHistory{
			engine.Preflop: {
				Actions: []engine.Action{
					{PlayerIndex: 0, ActionType: engine.SmallBlind, Amount: 10},
					{PlayerIndex: 1, ActionType: engine.BigBlind, Amount: 20},
					{PlayerIndex: 0, ActionType: engine.Call, Amount: 10},
					{PlayerIndex: 1, ActionType: engine.Check},
				},
			},
			engine.Flop: {
				CommunityCards: []deck.Card{card("2c"), card("7h"), card("9s")},
				Actions: []engine.Action{
					{PlayerIndex: 1, ActionType: engine.Bet, Amount: 40},
					{PlayerIndex: 0, ActionType: engine.Raise, Amount: 80},
					{PlayerIndex: 1, ActionType: engine.Fold},
				},
			},
		},
	}
	holeCards := map[int][2]deck.Card{
		0: {card("Ah"), card("Kh")},
		1: {card("2c"), card("7d")},
	}

	hh := phh.BuildHandHistory(hand, []string{"alice", "bob"}, holeCards, []int{1000, 1000}, []int{1040, 960}, 10, 20, 3)

	require.Contains(t, hh.Actions, "d db 2c7h9s")
	require.Contains(t, hh.Actions, "p2 cbr 40")
	require.Contains(t, hh.Actions, "p1 cbr 80")
	require.Contains(t, hh.Actions, "p2 f")
}
