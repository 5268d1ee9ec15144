package evaluator

import "github.com/foldline/holdem-engine/internal/deck"

// Compare evaluates two card sets and reports which is stronger: 1 if
// a beats b, -1 if b beats a, 0 on an exact tie.
func Compare(a, b []deck.Card) (int, error) {
	ra, err := EvaluateCards(a)
	if err != nil {
		return 0, err
	}
	rb, err := EvaluateCards(b)
	if err != nil {
		return 0, err
	}
	return ra.Compare(rb), nil
}

// DetermineWinners evaluates holeCards[seat]+community for every seat
// in eligible and returns the subset of eligible seats holding the
// best hand, plus that hand's rank. Ties return every seat that
// matched the maximum.
func DetermineWinners(holeCards map[int][]deck.Card, community []deck.Card, eligible []int) ([]int, HandRank, error) {
	if len(eligible) == 0 {
		return nil, 0, nil
	}

	best := worstHandRank
	var winners []int

	for _, seat := range eligible {
		hole, ok := holeCards[seat]
		if !ok {
			continue
		}
		cards := make([]deck.Card, 0, len(hole)+len(community))
		cards = append(cards, hole...)
		cards = append(cards, community...)

		rank, err := EvaluateCards(cards)
		if err != nil {
			return nil, 0, err
		}

		switch {
		case rank < best:
			best = rank
			winners = winners[:0]
			winners = append(winners, seat)
		case rank == best:
			winners = append(winners, seat)
		}
	}

	return winners, best, nil
}
