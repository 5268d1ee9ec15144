package engine

import "github.com/foldline/holdem-engine/internal/deck"

// runBettingRound drives one street's betting from its first actor
// until termination, invoking each eligible actor's Decider in turn.
func (t *Table) runBettingRound(street Street) error {
	br := newBettingRound(t.bigBlind, t.bbSeatThisHand, street == Preflop)
	if street == Preflop {
		br.currentBet = t.bigBlind
		br.lastAggressor = t.bbSeatThisHand
	}

	first := t.firstActor(street)
	if first < 0 {
		return nil // nobody left who can act
	}

	seat := first
	visited := 0
	n := len(t.players)

	for !isComplete(t.players, br) {
		p := t.players[seat]
		if !p.canAct() {
			seat = (seat + 1) % n
			visited++
			if visited > n*2 {
				break // defensive: nobody can act, avoid an infinite loop
			}
			continue
		}

		actionType, amount := t.requestDecision(p, street, br)
		t.applyAction(p, actionType, amount, br, street)
		p.actedThisStreet = true

		seat = t.nextSeat(seat)
		visited++
		if visited > n*200 {
			break // defensive backstop; isComplete should always terminate first
		}
	}

	return nil
}

// firstActor returns the seat that acts first on a street: preflop,
// the player after the big blind; postflop, the player after the
// button. Folded/busted/all-in seats are skipped.
func (t *Table) firstActor(street Street) int {
	start := t.bbSeatThisHand
	if street != Preflop {
		start = t.buttonPos
	}
	seat := t.nextSeat(start)
	n := len(t.players)
	for i := 0; i < n; i++ {
		if t.players[seat].canAct() {
			return seat
		}
		seat = t.nextSeat(seat)
	}
	return -1
}

func (t *Table) nextSeat(from int) int {
	return (from + 1) % len(t.players)
}

func (t *Table) requestDecision(p *player, street Street, br *bettingRound) (ActionType, int) {
	state := t.publicGameState(br.minimumRaiseAmount)
	decider := t.deciders[p.seat]
	return decider.Decide(p.seat, state, p.holeCards)
}

func (t *Table) applyAction(p *player, declared ActionType, declaredAmount int, br *bettingRound, street Street) {
	ctx := bettingContext{
		CurrentBet:         br.currentBet,
		MinimumRaiseAmount: br.minimumRaiseAmount,
		Stack:              p.stack,
		ActorCurrentBet:    p.currentBet,
	}
	c := validate(declared, declaredAmount, ctx)
	logCorrection(t.logger, t.roundNumber, street, p.seat, declared, declaredAmount, c)

	switch c.ActionType {
	case Fold:
		p.folded = true
		t.recordAction(street, Action{PlayerIndex: p.seat, ActionType: Fold})
		br.recordAction(p.seat, Fold, br.currentBet, 0, t.players)
	case Check:
		t.recordAction(street, Action{PlayerIndex: p.seat, ActionType: Check})
		br.recordAction(p.seat, Check, br.currentBet, 0, t.players)
	case Call:
		t.commit(p, c.Amount, Call, street)
		br.recordAction(p.seat, Call, p.currentBet, 0, t.players)
	case Bet:
		t.commit(p, c.Amount-p.currentBet, Bet, street)
		br.recordAction(p.seat, Bet, p.currentBet, c.Amount, t.players)
	case Raise:
		total := ctx.amountToCall() + c.Amount
		t.commit(p, total, Raise, street)
		br.recordAction(p.seat, Raise, p.currentBet, c.Amount, t.players)
	case AllIn:
		t.commit(p, c.Amount, AllIn, street)
		increment := p.currentBet - br.currentBet
		br.recordAction(p.seat, AllIn, p.currentBet, increment, t.players)
	}
}

// sealPotsForStreetEnd refunds any uncalled excess at the end of a
// street. Pots are not stored here; potLedger.reconcile recomputes them
// from cumulative hand contributions whenever they are needed.
func (t *Table) sealPotsForStreetEnd() {
	t.ledger.refundUncalledBet()
}

// publicGameState snapshots the table for a bot or an error report.
// minimumRaiseAmount is the caller's responsibility to supply: during
// an active betting round it's that round's live increment (which
// grows after each full raise), and between hands it's simply the big
// blind, the minimum any new round can open at.
func (t *Table) publicGameState(minimumRaiseAmount int) *PublicGameState {
	infos := make([]PlayerPublicInfo, len(t.players))
	for i, p := range t.players {
		infos[i] = p.publicInfo()
	}
	return (&PublicGameState{
		RoundNumber:           t.roundNumber,
		PlayerPublicInfos:     infos,
		ButtonPosition:        t.buttonPos,
		CommunityCards:        append([]deck.Card(nil), t.communityCards...),
		TotalPot:              t.ledger.totalContributed(),
		Pots:                  t.ledger.reconcile(),
		SmallBlind:            t.smallBlind,
		BigBlind:              t.bigBlind,
		BlindsSchedule:        t.blindsSchedule,
		MinimumRaiseAmount:    minimumRaiseAmount,
		CurrentHandHistory:    t.currentHand,
		PreviousHandHistories: t.previousHandHistories,
	}).Clone()
}
