package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(42)))
	require.Equal(t, 52, d.Remaining())
	require.False(t, d.IsEmpty())
}

func TestDeckDeal(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(42)))
	c, err := d.Deal()
	require.NoError(t, err)
	require.GreaterOrEqual(t, int(c.Rank), int(Two))
	require.LessOrEqual(t, int(c.Rank), int(Ace))
	require.GreaterOrEqual(t, int(c.Suit), int(Clubs))
	require.LessOrEqual(t, int(c.Suit), int(Spades))
	require.Equal(t, 51, d.Remaining())
}

func TestDeckDealNExhaustion(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))
	_, err := d.DealN(52)
	require.NoError(t, err)
	require.True(t, d.IsEmpty())

	_, err = d.Deal()
	require.Error(t, err)
	var exhausted *ErrDeckExhausted
	require.ErrorAs(t, err, &exhausted)
}

func TestDeckDealNPartialLeavesStateUnchangedOnFailure(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(7)))
	_, _ = d.DealN(50)
	require.Equal(t, 2, d.Remaining())

	_, err := d.DealN(3)
	require.Error(t, err)
	require.Equal(t, 2, d.Remaining())
}

func TestDeckBurn(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(3)))
	require.NoError(t, d.Burn())
	require.Len(t, d.BurnedCards(), 1)
	require.Equal(t, 51, d.Remaining())
}

func TestDeckDeterministicWithSameSeed(t *testing.T) {
	d1 := NewDeck(rand.New(rand.NewSource(99)))
	d2 := NewDeck(rand.New(rand.NewSource(99)))

	cards1, err := d1.DealN(52)
	require.NoError(t, err)
	cards2, err := d2.DealN(52)
	require.NoError(t, err)
	require.Equal(t, cards1, cards2)
}

func TestDeckNoDuplicateCards(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(5)))
	cards, err := d.DealN(52)
	require.NoError(t, err)

	seen := make(map[Card]bool)
	for _, c := range cards {
		require.False(t, seen[c], "duplicate card dealt: %s", c)
		seen[c] = true
	}
	require.Len(t, seen, 52)
}
