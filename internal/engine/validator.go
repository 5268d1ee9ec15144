package engine

import "github.com/rs/zerolog"

// bettingContext is everything the validator needs to correct a
// declared action: the table's view of the actor plus the current
// street's betting state.
type bettingContext struct {
	CurrentBet         int // highest currentBet across all players this street
	MinimumRaiseAmount int
	Stack              int // actor's remaining stack
	ActorCurrentBet    int // actor's own currentBet this street
}

func (c bettingContext) amountToCall() int {
	toCall := c.CurrentBet - c.ActorCurrentBet
	if toCall < 0 {
		return 0
	}
	return toCall
}

// LegalActions is the predicate bundle a bot can consult to
// self-validate before declaring an action.
type LegalActions struct {
	CanCheck bool
	CanCall  bool
	CallAmount int
	CanBet   bool
	BetMin, BetMax int
	CanRaise bool
	RaiseMin, RaiseMax int
	CanFold  bool
}

// LegalActionsForSeat returns the legal-action bundle for seat given
// this public snapshot, so a bot can check what it's allowed to
// declare before acting instead of relying entirely on the engine to
// correct an illegal declaration after the fact.
func (s *PublicGameState) LegalActionsForSeat(seat int) LegalActions {
	ctx := bettingContext{MinimumRaiseAmount: s.MinimumRaiseAmount}
	for _, info := range s.PlayerPublicInfos {
		if info.CurrentBet > ctx.CurrentBet {
			ctx.CurrentBet = info.CurrentBet
		}
		if info.PlayerIndex == seat {
			ctx.Stack = info.Stack
			ctx.ActorCurrentBet = info.CurrentBet
		}
	}
	return legalActions(ctx)
}

// legalActions enumerates the legal-action set for a betting context.
func legalActions(ctx bettingContext) LegalActions {
	toCall := ctx.amountToCall()
	la := LegalActions{CanFold: true}

	if toCall == 0 {
		la.CanCheck = true
		if ctx.Stack > 0 {
			la.CanBet = true
			la.BetMin = min(ctx.MinimumRaiseAmount, ctx.Stack)
			la.BetMax = ctx.Stack
		}
		return la
	}

	la.CanCall = true
	la.CallAmount = min(toCall, ctx.Stack)

	if ctx.Stack > toCall {
		la.CanRaise = true
		la.RaiseMin = min(ctx.MinimumRaiseAmount, ctx.Stack-toCall)
		la.RaiseMax = ctx.Stack - toCall
	}
	return la
}

// correction is the validator's verdict: the legal action and amount
// to actually apply, plus whether it differs from what was declared.
type correction struct {
	ActionType ActionType
	Amount     int
	Corrected  bool
	Reason     string
}

// validate applies the engine's numbered correction rules, in order,
// to a bot's declared action. amount means: for raise, the raise
// increment added on top of the amount needed to call; for bet, the
// absolute street total; ignored for call/check/fold/all-in.
func validate(declared ActionType, amount int, ctx bettingContext) correction {
	toCall := ctx.amountToCall()
	la := legalActions(ctx)

	switch declared {
	case Fold, Check, Call, Bet, Raise, AllIn:
		// known type, fall through to the numbered rules below
	default:
		if toCall > 0 {
			return correction{ActionType: Fold, Corrected: true, Reason: "unknown action type with a bet to call"}
		}
		return correction{ActionType: Check, Corrected: true, Reason: "unknown action type with nothing to call"}
	}

	if declared == Fold && la.CanCheck {
		return correction{ActionType: Check, Corrected: true, Reason: "fold with nothing to call"}
	}

	if declared == Check && !la.CanCheck {
		return correction{ActionType: Fold, Corrected: true, Reason: "check facing a bet"}
	}

	if declared == Call {
		if ctx.Stack <= toCall {
			return correction{ActionType: AllIn, Amount: ctx.Stack, Corrected: ctx.Stack != toCall, Reason: "call exceeds stack"}
		}
		return correction{ActionType: Call, Amount: la.CallAmount}
	}

	declaredAmount := amount

	if declared == Bet && ctx.CurrentBet > 0 {
		// there's already a bet live; "bet" only makes sense as a
		// raise. If the actor can't afford a legal raise, fold.
		if ctx.Stack <= toCall {
			return correction{ActionType: Fold, Corrected: true, Reason: "cannot afford a legal raise"}
		}
		declared = Raise
	}

	if declared == Bet || declared == Raise {
		min := la.BetMin
		if declared == Raise {
			min = la.RaiseMin
		}

		corrected := false
		if amount < min {
			amount = min
			corrected = true
		}

		// "required" is the total chips the actor must commit this
		// street to make the action: a bet is already absolute; a
		// raise is toCall plus the declared increment on top.
		required := amount
		if declared == Raise {
			required = toCall + amount
		}

		if required >= ctx.Stack {
			return correction{ActionType: AllIn, Amount: ctx.Stack, Corrected: true, Reason: "bet/raise at or above stack"}
		}

		return correction{ActionType: declared, Amount: amount, Corrected: corrected || amount != declaredAmount, Reason: "minimum raise enforced"}
	}

	if declared == AllIn {
		return correction{ActionType: AllIn, Amount: ctx.Stack}
	}

	return correction{ActionType: Fold, Amount: 0, Corrected: true, Reason: "unreachable: defensive fallback"}
}

// logCorrection writes one illegal_moves.log entry. Never fails the
// round: a log-write failure is swallowed after being reported once.
func logCorrection(logger zerolog.Logger, roundNumber int, street Street, playerIndex int, declaredType ActionType, declaredAmount int, c correction) {
	if !c.Corrected {
		return
	}
	logger.Info().
		Int("round", roundNumber).
		Str("street", string(street)).
		Int("playerIndex", playerIndex).
		Str("declaredType", string(declaredType)).
		Int("declaredAmount", declaredAmount).
		Str("correctedType", string(c.ActionType)).
		Int("correctedAmount", c.Amount).
		Str("reason", c.Reason).
		Msg("illegal action corrected")
}
