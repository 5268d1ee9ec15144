package evaluator

import (
	"testing"

	"github.com/foldline/holdem-engine/internal/deck"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCardsCategories(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		expected HandCategory
	}{
		{"royal flush", "AsKsQsJsTs9h8h", StraightFlush},
		{"straight flush", "9s8s7s6s5s4h3h", StraightFlush},
		{"four of a kind", "AsAhAdAcKs2h3h", FourOfAKind},
		{"full house", "AsAhAdKsKh2h3h", FullHouse},
		{"flush", "AsKsQs8s6s4h3h", Flush},
		{"straight", "AsKhQdJcTs9h8h", Straight},
		{"wheel straight", "5s4h3d2cAh9s8d", Straight},
		{"three of a kind", "AsAhAdKs9c7h5h", ThreeOfAKind},
		{"two pair", "AsAhKdKs9c7h5h", TwoPair},
		{"one pair", "AsAhKdQs9c7h5h", Pair},
		{"high card", "AsKhQd9s7c5h3h", HighCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := deck.MustParseCards(tt.cards)
			rank, err := EvaluateCards(cards)
			require.NoError(t, err)
			require.Equal(t, tt.expected, rank.Category())
		})
	}
}

func TestEvaluateCardsTwoCardHands(t *testing.T) {
	pair, err := EvaluateCards(deck.MustParseCards("AsAh"))
	require.NoError(t, err)
	require.Equal(t, Pair, pair.Category())

	high, err := EvaluateCards(deck.MustParseCards("AsKh"))
	require.NoError(t, err)
	require.Equal(t, HighCard, high.Category())

	require.Equal(t, 1, pair.Compare(high))
}

func TestEvaluateCardsRejectsBadSize(t *testing.T) {
	_, err := EvaluateCards(deck.MustParseCards("As"))
	require.Error(t, err)

	_, err = EvaluateCards(deck.MustParseCards("AsKsQsJsTs9h8h7h"))
	require.Error(t, err)
}

func TestHandComparison(t *testing.T) {
	royal, err := EvaluateCards(deck.MustParseCards("AsKsQsJsTs9h8h"))
	require.NoError(t, err)
	quads, err := EvaluateCards(deck.MustParseCards("AsAhAdAcKs2h3h"))
	require.NoError(t, err)
	high, err := EvaluateCards(deck.MustParseCards("AsKhQd9s7c5h3h"))
	require.NoError(t, err)

	require.Equal(t, 1, royal.Compare(quads))
	require.Equal(t, 1, quads.Compare(high))
	require.Equal(t, -1, high.Compare(royal))
}

func TestDetermineWinnersSingleWinner(t *testing.T) {
	community := deck.MustParseCards("2h7d9cJsKd")
	holeCards := map[int][]deck.Card{
		0: deck.MustParseCards("AsAh"), // pair of aces
		1: deck.MustParseCards("2c3d"), // pair of twos with the board's 2h
	}

	winners, rank, err := DetermineWinners(holeCards, community, []int{0, 1})
	require.NoError(t, err)
	require.Equal(t, []int{0}, winners)
	require.Equal(t, Pair, rank.Category())
}

func TestDetermineWinnersFlushKickerBreaksTie(t *testing.T) {
	community := deck.MustParseCards("AsKs7s4s2h")
	holeCards := map[int][]deck.Card{
		0: deck.MustParseCards("QsJh"), // ace-high flush, queen kicker
		1: deck.MustParseCards("JsTh"), // ace-high flush, jack kicker
	}

	winners, rank, err := DetermineWinners(holeCards, community, []int{0, 1})
	require.NoError(t, err)
	require.Equal(t, []int{0}, winners)
	require.Equal(t, Flush, rank.Category())
}

func TestPairKickersBreakTie(t *testing.T) {
	community := deck.MustParseCards("KsKh9c4d2h")
	higherKicker, err := EvaluateCards(append(community, deck.MustParseCards("AdQc")...))
	require.NoError(t, err)
	lowerKicker, err := EvaluateCards(append(community, deck.MustParseCards("AdJc")...))
	require.NoError(t, err)

	require.Equal(t, Pair, higherKicker.Category())
	require.Equal(t, 1, higherKicker.Compare(lowerKicker))
}

func TestDetermineWinnersSplitPot(t *testing.T) {
	community := deck.MustParseCards("AsKsQsJsTs")
	holeCards := map[int][]deck.Card{
		0: deck.MustParseCards("2c3d"),
		1: deck.MustParseCards("4h5h"),
	}

	winners, rank, err := DetermineWinners(holeCards, community, []int{0, 1})
	require.NoError(t, err)
	require.ElementsMatch(t, []int{0, 1}, winners)
	require.Equal(t, StraightFlush, rank.Category())
}
