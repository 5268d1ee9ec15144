// Package sdk is the public interface a tournament bot implements,
// plus a handful of reference bots used to exercise and demonstrate
// the engine. Grounded on a bot-server's Handler interface, narrowed
// from its multi-callback event stream (OnHandStart/OnActionRequest/
// OnStreetChange/...) to the single decision callback this engine's
// synchronous Table.PlayHand loop actually needs.
package sdk

import (
	"github.com/foldline/holdem-engine/internal/deck"
	"github.com/foldline/holdem-engine/internal/engine"
)

// Bot is the interface a tournament participant implements. It is
// handed a deep-copied, read-only snapshot of the public game state
// and its own two hole cards, and must return a declared action.
// Illegal or out-of-range declarations are corrected by the engine,
// not rejected — a Bot is free to play conservatively and let the
// engine clamp bets and raises to the legal range.
type Bot interface {
	GetAction(state *engine.PublicGameState, holeCards [2]deck.Card) (engine.ActionType, int)
}

// CloserBot is implemented by bots that hold resources (a log file, a
// network connection) that must be released when the tournament ends.
type CloserBot interface {
	Bot
	Close() error
}
