package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReconcileSingleLevelPot(t *testing.T) {
	players := []*player{
		{seat: 0, handContribution: 100},
		{seat: 1, handContribution: 100},
	}
	pots := newPotLedger(players).reconcile()
	require.Len(t, pots, 1)
	require.Equal(t, 200, pots[0].Amount)
	require.ElementsMatch(t, []int{0, 1}, pots[0].EligiblePlayers)
}

func TestReconcileSidePotsByContributionLevel(t *testing.T) {
	players := []*player{
		{seat: 0, handContribution: 50},
		{seat: 1, handContribution: 150},
		{seat: 2, handContribution: 150},
	}
	pots := newPotLedger(players).reconcile()
	require.Len(t, pots, 2)
	require.Equal(t, 150, pots[0].Amount) // 50 * 3
	require.ElementsMatch(t, []int{0, 1, 2}, pots[0].EligiblePlayers)
	require.Equal(t, 200, pots[1].Amount) // 100 * 2
	require.ElementsMatch(t, []int{1, 2}, pots[1].EligiblePlayers)
}

func TestReconcileExcludesFoldedPlayersFromEligibility(t *testing.T) {
	players := []*player{
		{seat: 0, handContribution: 100, folded: true},
		{seat: 1, handContribution: 100},
		{seat: 2, handContribution: 100},
	}
	pots := newPotLedger(players).reconcile()
	require.Len(t, pots, 1)
	require.Equal(t, 300, pots[0].Amount)
	require.ElementsMatch(t, []int{1, 2}, pots[0].EligiblePlayers)
}

func TestRefundUncalledBetReturnsExcessOverSecondHighest(t *testing.T) {
	players := []*player{
		{seat: 0, stack: 0, currentBet: 500, handContribution: 500},
		{seat: 1, stack: 50, currentBet: 200, handContribution: 200, folded: true},
	}
	l := newPotLedger(players)
	l.refundUncalledBet()

	require.Equal(t, 200, players[0].currentBet)
	require.Equal(t, 200, players[0].handContribution)
	require.Equal(t, 300, players[0].stack)
}

func TestRefundUncalledBetNoOpWhenTiedAtHighest(t *testing.T) {
	players := []*player{
		{seat: 0, stack: 0, currentBet: 500, handContribution: 500},
		{seat: 1, stack: 0, currentBet: 500, handContribution: 500},
	}
	l := newPotLedger(players)
	l.refundUncalledBet()

	require.Equal(t, 500, players[0].currentBet)
	require.Equal(t, 500, players[1].currentBet)
}

func TestTotalContributedSumsAllPlayers(t *testing.T) {
	players := []*player{
		{seat: 0, handContribution: 30},
		{seat: 1, handContribution: 70},
	}
	require.Equal(t, 100, newPotLedger(players).totalContributed())
}
