package deck

import (
	"fmt"
	"math/rand"
)

// ErrDeckExhausted is returned when a deal is requested from a deck
// that has no cards left to give.
type ErrDeckExhausted struct {
	Requested int
	Remaining int
}

func (e *ErrDeckExhausted) Error() string {
	return fmt.Sprintf("deck exhausted: requested %d cards, %d remaining", e.Requested, e.Remaining)
}

// Deck is a shuffled 52-card deck dealt from the top. Shuffling is
// driven by an injected *rand.Rand so a hand can be replayed exactly
// from its seed.
type Deck struct {
	cards  []Card
	pos    int
	burned []Card
	rng    *rand.Rand
}

// NewDeck builds a freshly shuffled 52-card deck using rng for the
// shuffle. rng must not be nil; callers that want determinism pass a
// rand.New(rand.NewSource(seed)).
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	d.shuffle()
	return d
}

func (d *Deck) shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Remaining returns the number of cards left to deal.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.pos
}

// IsEmpty reports whether the deck has no cards left to deal.
func (d *Deck) IsEmpty() bool {
	return d.Remaining() == 0
}

// Deal removes and returns the top card of the deck.
func (d *Deck) Deal() (Card, error) {
	if d.IsEmpty() {
		return Card{}, &ErrDeckExhausted{Requested: 1, Remaining: 0}
	}
	c := d.cards[d.pos]
	d.pos++
	return c, nil
}

// DealN deals n cards in order. It returns an error, leaving the deck
// unmodified, if fewer than n cards remain.
func (d *Deck) DealN(n int) ([]Card, error) {
	if n > d.Remaining() {
		return nil, &ErrDeckExhausted{Requested: n, Remaining: d.Remaining()}
	}
	out := make([]Card, n)
	for i := 0; i < n; i++ {
		out[i] = d.cards[d.pos]
		d.pos++
	}
	return out, nil
}

// Burn removes the top card from play without returning it, recording
// it for diagnostic purposes only.
func (d *Deck) Burn() error {
	c, err := d.Deal()
	if err != nil {
		return err
	}
	d.burned = append(d.burned, c)
	return nil
}

// BurnedCards returns the cards removed via Burn, in burn order.
func (d *Deck) BurnedCards() []Card {
	return append([]Card(nil), d.burned...)
}
