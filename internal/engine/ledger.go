package engine

import "sort"

// potLedger tracks cumulative per-player contributions for the hand
// and decomposes them into sealed pots on demand. Grounded on the
// ascending-contribution-level layering a bot-server's PotManager
// uses, adapted to this engine's exact refund-before-seal rule: an
// uncalled excess above the second-highest current-street bet is
// returned to its owner before any layer is sealed.
type potLedger struct {
	players []*player
}

func newPotLedger(players []*player) *potLedger {
	return &potLedger{players: players}
}

// refundUncalledBet returns the excess of the single highest
// currentBet over the second-highest to its owner's stack, reducing
// both currentBet and handContribution by that amount. It is a no-op
// unless exactly one active player's currentBet strictly exceeds
// every other currentBet.
func (l *potLedger) refundUncalledBet() {
	highest, secondHighest := -1, -1
	highestSeat := -1
	tiedAtHighest := 0

	for _, p := range l.players {
		if p.currentBet > highest {
			secondHighest = highest
			highest = p.currentBet
			highestSeat = p.seat
			tiedAtHighest = 1
		} else if p.currentBet == highest {
			tiedAtHighest++
		} else if p.currentBet > secondHighest {
			secondHighest = p.currentBet
		}
	}

	if tiedAtHighest != 1 || highestSeat < 0 || secondHighest < 0 {
		return
	}
	excess := highest - secondHighest
	if excess <= 0 {
		return
	}
	for _, p := range l.players {
		if p.seat == highestSeat {
			p.stack += excess
			p.currentBet -= excess
			p.handContribution -= excess
			return
		}
	}
}

// reconcile decomposes handContribution across all players into an
// ordered sequence of pots: group by ascending distinct contribution
// level; each layer's amount is its width times the number of
// players who reached that level; eligibility is players who reached
// the level and have not folded.
func (l *potLedger) reconcile() []Pot {
	levels := make([]int, 0, len(l.players))
	seen := make(map[int]bool)
	for _, p := range l.players {
		if p.handContribution > 0 && !seen[p.handContribution] {
			seen[p.handContribution] = true
			levels = append(levels, p.handContribution)
		}
	}
	sort.Ints(levels)

	var pots []Pot
	prev := 0
	for _, level := range levels {
		width := level - prev
		var atOrAbove, eligible []int
		for _, p := range l.players {
			if p.handContribution >= level {
				atOrAbove = append(atOrAbove, p.seat)
				if !p.folded {
					eligible = append(eligible, p.seat)
				}
			}
		}
		if len(eligible) > 0 {
			pots = append(pots, Pot{
				Amount:          width * len(atOrAbove),
				EligiblePlayers: eligible,
			})
		}
		prev = level
	}
	return pots
}

// totalContributed sums handContribution across all players; used for
// the chip-conservation invariant.
func (l *potLedger) totalContributed() int {
	total := 0
	for _, p := range l.players {
		total += p.handContribution
	}
	return total
}
