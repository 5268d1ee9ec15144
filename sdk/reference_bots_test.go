package sdk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foldline/holdem-engine/internal/deck"
	"github.com/foldline/holdem-engine/internal/engine"
)

func TestFoldBotAlwaysFolds(t *testing.T) {
	var b FoldBot
	actionType, _ := b.GetAction(&engine.PublicGameState{}, [2]deck.Card{})
	require.Equal(t, engine.Fold, actionType)
}

func TestCallBotAlwaysCalls(t *testing.T) {
	var b CallBot
	actionType, _ := b.GetAction(&engine.PublicGameState{}, [2]deck.Card{})
	require.Equal(t, engine.Call, actionType)
}

func TestRandomBotIsDeterministicForASeed(t *testing.T) {
	state := &engine.PublicGameState{TotalPot: 30, MinimumRaiseAmount: 20}
	a := NewRandomBot(99)
	b := NewRandomBot(99)

	for i := 0; i < 10; i++ {
		at1, amt1 := a.GetAction(state, [2]deck.Card{})
		at2, amt2 := b.GetAction(state, [2]deck.Card{})
		require.Equal(t, at1, at2)
		require.Equal(t, amt1, amt2)
	}
}

func TestAggressiveBotRaisesPremiumHandsPreflop(t *testing.T) {
	b := NewAggressiveBot(1)
	state := &engine.PublicGameState{TotalPot: 30, MinimumRaiseAmount: 20}
	pocketAces := [2]deck.Card{
		{Rank: deck.Ace, Suit: deck.Spades},
		{Rank: deck.Ace, Suit: deck.Hearts},
	}
	actionType, amount := b.GetAction(state, pocketAces)
	require.Equal(t, engine.Raise, actionType)
	require.Greater(t, amount, 0)
}

func TestAggressiveBotCallsPostflop(t *testing.T) {
	b := NewAggressiveBot(1)
	state := &engine.PublicGameState{
		CommunityCards: deck.MustParseCards("2c7h9s"),
	}
	actionType, _ := b.GetAction(state, [2]deck.Card{
		{Rank: deck.Ace, Suit: deck.Spades},
		{Rank: deck.Ace, Suit: deck.Hearts},
	})
	require.Equal(t, engine.Call, actionType)
}
