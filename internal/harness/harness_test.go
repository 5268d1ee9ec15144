package harness

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/foldline/holdem-engine/internal/deck"
	"github.com/foldline/holdem-engine/internal/engine"
)

type stubBot struct {
	actionType engine.ActionType
	amount     int
}

func (b stubBot) GetAction(state *engine.PublicGameState, holeCards [2]deck.Card) (engine.ActionType, int) {
	return b.actionType, b.amount
}

func TestUnrestrictedHarnessCallsBotDirectly(t *testing.T) {
	h := &UnrestrictedHarness{Bot: stubBot{actionType: engine.Raise, amount: 40}}
	actionType, amount := h.Decide(0, &engine.PublicGameState{}, [2]deck.Card{})
	require.Equal(t, engine.Raise, actionType)
	require.Equal(t, 40, amount)
}

func TestFallbackActionChecksWhenNothingOwed(t *testing.T) {
	state := &engine.PublicGameState{
		PlayerPublicInfos: []engine.PlayerPublicInfo{
			{PlayerIndex: 0, CurrentBet: 20},
			{PlayerIndex: 1, CurrentBet: 20},
		},
	}
	require.Equal(t, engine.Check, fallbackAction(state, 0))
}

func TestFallbackActionFoldsWhenFacingABet(t *testing.T) {
	state := &engine.PublicGameState{
		PlayerPublicInfos: []engine.PlayerPublicInfo{
			{PlayerIndex: 0, CurrentBet: 20},
			{PlayerIndex: 1, CurrentBet: 60},
		},
	}
	require.Equal(t, engine.Fold, fallbackAction(state, 0))
}

func TestRestrictedHarnessFallsBackWhenCommandMissing(t *testing.T) {
	h := NewRestrictedHarness(nil, time.Second, 256, zerolog.Nop())
	h.Clock = quartz.NewMock(t)

	actionType, amount := h.Decide(0, &engine.PublicGameState{
		PlayerPublicInfos: []engine.PlayerPublicInfo{{PlayerIndex: 0, CurrentBet: 0}},
	}, [2]deck.Card{})

	require.Equal(t, engine.Check, actionType)
	require.Equal(t, 0, amount)
}

func TestRestrictedHarnessCloseBeforeSpawnIsNoOp(t *testing.T) {
	h := NewRestrictedHarness([]string{"cat"}, 2*time.Second, 256, zerolog.Nop())
	require.NotNil(t, h)
	h.Close() // no-op: never spawned
}
