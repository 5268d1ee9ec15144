package engine

import "github.com/foldline/holdem-engine/internal/deck"

// player is Table's private per-seat bookkeeping. Table never exposes
// this type directly; bots see only PlayerPublicInfo.
type player struct {
	seat      int
	name      string
	stack     int
	holeCards [2]deck.Card

	folded  bool
	busted  bool
	allIn   bool

	currentBet      int // chips committed on the current street
	handContribution int // cumulative chips committed this hand, all streets

	actedThisStreet bool
}

// isActive reports whether the player is still contesting the pot
// this hand (not folded, not busted).
func (p *player) isActive() bool {
	return !p.folded && !p.busted
}

// canAct reports whether the player still has a decision to make this
// street (active and not already all-in).
func (p *player) canAct() bool {
	return p.isActive() && !p.allIn
}

func (p *player) publicInfo() PlayerPublicInfo {
	return PlayerPublicInfo{
		PlayerIndex: p.seat,
		Stack:       p.stack,
		CurrentBet:  p.currentBet,
		Active:      p.isActive(),
		Busted:      p.busted,
		IsAllIn:     p.allIn,
	}
}
