package sdk

import (
	"math/rand"

	"github.com/foldline/holdem-engine/internal/deck"
	"github.com/foldline/holdem-engine/internal/engine"
)

// FoldBot declares fold every time; the engine applies that as a check
// when nothing is owed. It is the simplest possible Bot, useful as a
// losing baseline in fixtures.
type FoldBot struct{}

func (FoldBot) GetAction(state *engine.PublicGameState, holeCards [2]deck.Card) (engine.ActionType, int) {
	return engine.Fold, 0
}

// CallBot declares call every time; with nothing to call, the engine
// applies it as a zero-chip call. It never folds and never raises.
type CallBot struct{}

func (CallBot) GetAction(state *engine.PublicGameState, holeCards [2]deck.Card) (engine.ActionType, int) {
	return engine.Call, 0
}

// RandomBot picks uniformly among fold, check/call, and a pot-sized
// bet/raise, using an injected *rand.Rand so its behavior can be
// seeded for reproducible fixtures.
type RandomBot struct {
	Rand *rand.Rand
}

func NewRandomBot(seed int64) *RandomBot {
	return &RandomBot{Rand: rand.New(rand.NewSource(seed))}
}

func (b *RandomBot) GetAction(state *engine.PublicGameState, holeCards [2]deck.Card) (engine.ActionType, int) {
	switch b.Rand.Intn(3) {
	case 0:
		return engine.Fold, 0
	case 1:
		return engine.Call, 0
	default:
		return engine.Raise, max(state.TotalPot, state.MinimumRaiseAmount)
	}
}

// AggressiveBot raises preflop with any hand in the top quarter of
// starting-hand strength and calls everything else, using the
// percentile lookup table built from a published starting-hand chart.
type AggressiveBot struct {
	Rand      *rand.Rand
	threshold float64
}

func NewAggressiveBot(seed int64) *AggressiveBot {
	return &AggressiveBot{Rand: rand.New(rand.NewSource(seed)), threshold: 0.75}
}

func (b *AggressiveBot) GetAction(state *engine.PublicGameState, holeCards [2]deck.Card) (engine.ActionType, int) {
	if len(state.CommunityCards) == 0 {
		percentile := deck.GetHandPercentile(holeCards[:])
		if percentile >= b.threshold {
			return engine.Raise, max(state.MinimumRaiseAmount*2, state.TotalPot)
		}
		return engine.Call, 0
	}
	return engine.Call, 0
}
