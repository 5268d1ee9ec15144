// Package engine drives a No-Limit Hold'em tournament hand by hand:
// blind posting, betting rounds, side-pot reconciliation, showdown,
// and elimination/button bookkeeping. It is grounded on the betting
// round, pot, and hand-state mechanics of a bot-vs-bot poker server,
// generalized and corrected against the exact side-pot and
// correction-rule semantics this engine targets.
package engine

import (
	"fmt"

	"github.com/foldline/holdem-engine/internal/deck"
)

// ActionType is one of the action verbs a bot or the engine itself
// may record.
type ActionType string

const (
	Fold       ActionType = "fold"
	Check      ActionType = "check"
	Call       ActionType = "call"
	Bet        ActionType = "bet"
	Raise      ActionType = "raise"
	AllIn      ActionType = "all-in"
	SmallBlind ActionType = "small_blind"
	BigBlind   ActionType = "big_blind"
)

// Action is one entry in a street's history: who acted, with what
// verb, and how many chips that action moved from the player's stack
// into the pot (0 for fold and check).
type Action struct {
	PlayerIndex int        `json:"playerIndex"`
	ActionType  ActionType `json:"actionType"`
	Amount      int        `json:"amount"`
}

// PlayerPublicInfo is everything about a seat visible to every bot.
type PlayerPublicInfo struct {
	PlayerIndex int  `json:"playerIndex"`
	Stack       int  `json:"stack"`
	CurrentBet  int  `json:"currentBet"`
	Active      bool `json:"active"`
	Busted      bool `json:"busted"`
	IsAllIn     bool `json:"isAllIn"`
}

// Pot is one sealed layer of the side-pot decomposition.
type Pot struct {
	Amount          int   `json:"amount"`
	EligiblePlayers []int `json:"eligiblePlayers"`
}

// Street identifies a betting round.
type Street string

const (
	Preflop  Street = "preflop"
	Flop     Street = "flop"
	Turn     Street = "turn"
	River    Street = "river"
	Showdown Street = "showdown"
)

// StreetHistory records the community cards revealed on a street (if
// any) and the ordered actions taken during it.
type StreetHistory struct {
	CommunityCards []deck.Card `json:"communityCards"`
	Actions        []Action    `json:"actions"`
}

// ShowdownDetails fully reveals every active player's hand at
// showdown, not just the winners.
type ShowdownDetails struct {
	Players   []int                  `json:"players"`
	Hands     map[int]string         `json:"hands"`
	HoleCards map[int][2]deck.Card   `json:"holeCards"`
}

// HandRecord is the complete account of one hand.
type HandRecord struct {
	RoundNumber     int                      `json:"roundNumber"`
	PerStreet       map[Street]*StreetHistory `json:"perStreet"`
	ShowdownDetails *ShowdownDetails          `json:"showdownDetails,omitempty"`
}

// WinnerShare is how much of a hand a given player won, and with what
// hand name ("uncontested" if the hand ended without a showdown).
type WinnerShare struct {
	HandName  string `json:"handName"`
	ChipsWon  int    `json:"chipsWon"`
}

// HandResult is the record returned by the tournament loop after each
// hand completes.
type HandResult struct {
	Winners              map[int]WinnerShare `json:"winners"`
	EligibleForShowdown  []int               `json:"eligibleForShowdown"`
	Showdown             bool                `json:"showdown"`
	ShowdownDetails      *ShowdownDetails    `json:"showdownDetails,omitempty"`
	Eliminated           []int               `json:"eliminated"`
}

// BlindLevel is one entry of a blinds schedule.
type BlindLevel struct {
	SmallBlind int
	BigBlind   int
}

// PublicGameState is the deep-copyable snapshot handed to a bot. It
// never contains another player's hole cards for the hand in play;
// previous hands' showdown details do carry the hole cards revealed at
// those showdowns.
type PublicGameState struct {
	RoundNumber           int                   `json:"roundNumber"`
	PlayerPublicInfos     []PlayerPublicInfo    `json:"playerPublicInfos"`
	ButtonPosition        int                   `json:"buttonPosition"`
	CommunityCards        []deck.Card           `json:"communityCards"`
	TotalPot              int                   `json:"totalPot"`
	Pots                  []Pot                 `json:"pots"`
	SmallBlind            int                   `json:"smallBlind"`
	BigBlind              int                   `json:"bigBlind"`
	BlindsSchedule        map[int]BlindLevel    `json:"blindsSchedule"`
	MinimumRaiseAmount    int                   `json:"minimumRaiseAmount"`
	CurrentHandHistory    *HandRecord           `json:"currentHandHistory"`
	PreviousHandHistories []*HandRecord         `json:"previousHandHistories"`
}

// Clone performs a full structural deep copy so a bot can never
// observe or mutate Table's memory through aliasing.
func (s *PublicGameState) Clone() *PublicGameState {
	if s == nil {
		return nil
	}
	clone := *s
	clone.PlayerPublicInfos = append([]PlayerPublicInfo(nil), s.PlayerPublicInfos...)
	clone.CommunityCards = append([]deck.Card(nil), s.CommunityCards...)
	clone.Pots = make([]Pot, len(s.Pots))
	for i, p := range s.Pots {
		clone.Pots[i] = Pot{Amount: p.Amount, EligiblePlayers: append([]int(nil), p.EligiblePlayers...)}
	}
	clone.BlindsSchedule = make(map[int]BlindLevel, len(s.BlindsSchedule))
	for k, v := range s.BlindsSchedule {
		clone.BlindsSchedule[k] = v
	}
	clone.CurrentHandHistory = cloneHandRecord(s.CurrentHandHistory)
	clone.PreviousHandHistories = make([]*HandRecord, len(s.PreviousHandHistories))
	for i, h := range s.PreviousHandHistories {
		clone.PreviousHandHistories[i] = cloneHandRecord(h)
	}
	return &clone
}

func cloneHandRecord(h *HandRecord) *HandRecord {
	if h == nil {
		return nil
	}
	clone := &HandRecord{RoundNumber: h.RoundNumber, PerStreet: make(map[Street]*StreetHistory, len(h.PerStreet))}
	for street, sh := range h.PerStreet {
		clone.PerStreet[street] = &StreetHistory{
			CommunityCards: append([]deck.Card(nil), sh.CommunityCards...),
			Actions:        append([]Action(nil), sh.Actions...),
		}
	}
	if h.ShowdownDetails != nil {
		sd := &ShowdownDetails{
			Players: append([]int(nil), h.ShowdownDetails.Players...),
			Hands:   make(map[int]string, len(h.ShowdownDetails.Hands)),
			HoleCards: make(map[int][2]deck.Card, len(h.ShowdownDetails.HoleCards)),
		}
		for k, v := range h.ShowdownDetails.Hands {
			sd.Hands[k] = v
		}
		for k, v := range h.ShowdownDetails.HoleCards {
			sd.HoleCards[k] = v
		}
		clone.ShowdownDetails = sd
	}
	return clone
}

// ConfigurationError reports a problem with tournament setup,
// detected before any hand runs.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// InvariantError reports an engine invariant violation — chip
// non-conservation, deck exhaustion, empty pot eligibility, or any
// other state that correct code should never reach. It halts the
// tournament.
type InvariantError struct {
	Reason   string
	Snapshot *PublicGameState
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("engine invariant violated: %s", e.Reason)
}
