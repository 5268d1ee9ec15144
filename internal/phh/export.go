package phh

import (
	"fmt"

	"github.com/foldline/holdem-engine/internal/deck"
	"github.com/foldline/holdem-engine/internal/engine"
)

// streetOrder is the sequence PHH expects dealing/action lines in.
var streetOrder = []engine.Street{engine.Preflop, engine.Flop, engine.Turn, engine.River}

// BuildHandHistory converts one completed hand into PHH form: hole
// cards dealt, every action with its street-cumulative bet size, and
// the board as it's revealed. Grounded on a bot-server's hand-history
// TOML export, adapted from its stored action-log strings to the
// engine's own HandRecord so no intermediate string vocabulary is
// needed.
func BuildHandHistory(hand *engine.HandRecord, names []string, holeCards map[int][2]deck.Card, startingStacks, finishingStacks []int, smallBlind, bigBlind, handID int) *HandHistory {
	n := len(names)
	antes := make([]int, n)
	blinds := make([]int, n)

	var actions []string
	for seat := 0; seat < n; seat++ {
		if cards, ok := holeCards[seat]; ok {
			actions = append(actions, fmt.Sprintf("d dh p%d %s%s", seat+1, cards[0].String(), cards[1].String()))
		}
	}

	streetTotal := make([]int, n)
	for _, street := range streetOrder {
		sh, ok := hand.PerStreet[street]
		if !ok {
			continue
		}
		if len(sh.CommunityCards) > 0 {
			actions = append(actions, fmt.Sprintf("d db %s", cardsString(sh.CommunityCards)))
		}
		if street != engine.Preflop {
			for seat := range streetTotal {
				streetTotal[seat] = 0
			}
		}
		for _, a := range sh.Actions {
			switch a.ActionType {
			case engine.SmallBlind:
				blinds[a.PlayerIndex] = a.Amount
				streetTotal[a.PlayerIndex] += a.Amount
				continue
			case engine.BigBlind:
				blinds[a.PlayerIndex] = a.Amount
				streetTotal[a.PlayerIndex] += a.Amount
				continue
			}
			streetTotal[a.PlayerIndex] += a.Amount
			if line, ok := FormatAction(a.PlayerIndex, a.ActionType, streetTotal[a.PlayerIndex]); ok {
				actions = append(actions, line)
			}
		}
	}

	return &HandHistory{
		Variant:           "NT",
		SeatCount:         n,
		Antes:             antes,
		BlindsOrStraddles: blinds,
		MinBet:            bigBlind,
		StartingStacks:    startingStacks,
		FinishingStacks:   finishingStacks,
		Actions:           actions,
		Players:           names,
		HandID:            fmt.Sprintf("hand-%05d", handID),
	}
}

func cardsString(cards []deck.Card) string {
	s := ""
	for _, c := range cards {
		s += c.String()
	}
	return s
}
