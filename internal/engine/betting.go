package engine

// bettingRound tracks the state needed to decide when a street's
// betting is complete: the current bet to match, the minimum raise
// increment, who last raised, and whether the big blind has taken
// their preflop option. Grounded on a bot-server's BettingRound type,
// adapted for this engine's exact termination rule.
type bettingRound struct {
	currentBet         int
	minimumRaiseAmount int
	lastAggressor      int // seat, or -1 if no one has bet/raised this street
	bbOption           bool
	bbSeat             int
}

func newBettingRound(bigBlind, bbSeat int, isPreflop bool) *bettingRound {
	return &bettingRound{
		currentBet:         0,
		minimumRaiseAmount: bigBlind,
		lastAggressor:      -1,
		bbOption:           isPreflop,
		bbSeat:             bbSeat,
	}
}

// recordAction updates aggressor/min-raise tracking and, when the
// increment is a full raise, resets every other active player's
// acted-this-street flag so they get a fresh decision (the re-opening
// rule). An all-in for less than a full raise does neither.
func (b *bettingRound) recordAction(seat int, actionType ActionType, newCurrentBet int, raiseIncrement int, players []*player) {
	switch actionType {
	case Bet, Raise:
		b.currentBet = newCurrentBet
		b.minimumRaiseAmount = raiseIncrement
		b.lastAggressor = seat
		for _, p := range players {
			if p.seat != seat && p.canAct() {
				p.actedThisStreet = false
			}
		}
	case AllIn:
		if newCurrentBet > b.currentBet {
			fullRaise := raiseIncrement >= b.minimumRaiseAmount
			b.currentBet = newCurrentBet
			if fullRaise {
				b.minimumRaiseAmount = raiseIncrement
				b.lastAggressor = seat
				for _, p := range players {
					if p.seat != seat && p.canAct() {
						p.actedThisStreet = false
					}
				}
			}
		}
	}
	if seat == b.bbSeat {
		b.bbOption = false
	}
}

// isComplete reports whether every player still able to act has acted
// since the last raise and is matched to currentBet — with the
// preflop exception that the big blind must act at least once even
// if nobody raised.
func isComplete(players []*player, br *bettingRound) bool {
	activeCount := 0
	for _, p := range players {
		if p.isActive() {
			activeCount++
		}
	}
	if activeCount <= 1 {
		return true
	}

	if br.bbOption {
		return false
	}

	for _, p := range players {
		if !p.canAct() {
			continue
		}
		if !p.actedThisStreet {
			return false
		}
		if p.currentBet != br.currentBet {
			return false
		}
	}
	return true
}
