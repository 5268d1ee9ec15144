package engine

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/rs/zerolog"

	"github.com/foldline/holdem-engine/internal/deck"
	"github.com/foldline/holdem-engine/internal/evaluator"
)

// Decider is how Table asks an actor for a decision. BotHarness
// implements this, deep-copying state and hole cards before handing
// them across whatever isolation boundary it enforces.
type Decider interface {
	Decide(seat int, state *PublicGameState, holeCards [2]deck.Card) (ActionType, int)
}

// Table is the hand/betting state machine: SETUP through FINALIZE,
// owning the deck, the ledger, and the hand history. Grounded on a
// bot-server's hand-state driver (deal, postBlinds, ProcessAction,
// NextStreet), rewritten around this engine's exact termination,
// side-pot, and refund rules.
type Table struct {
	players        []*player
	buttonPos      int
	roundNumber    int
	smallBlind     int
	bigBlind       int
	blindsSchedule map[int]BlindLevel

	tournamentRand *rand.Rand
	logger         zerolog.Logger
	deciders       map[int]Decider

	previousHandHistories []*HandRecord

	// per-hand state, valid only while a hand is in progress
	deck           *deck.Deck
	communityCards []deck.Card
	ledger         *potLedger
	currentHand    *HandRecord
	sbSeatThisHand int
	bbSeatThisHand int
}

// NewTable validates configuration and builds a Table ready to play
// its first hand. names must have at least 2 entries; startingStack
// must be positive; blindsSchedule should have an entry for round 1
// (without one, blindsLevelForRound falls back to blinds of 10/20).
func NewTable(names []string, startingStack int, blindsSchedule map[int]BlindLevel, seed int64, deciders map[int]Decider, logger zerolog.Logger) (*Table, error) {
	if len(names) < 2 {
		return nil, &ConfigurationError{Reason: "at least 2 players are required"}
	}
	if startingStack <= 0 {
		return nil, &ConfigurationError{Reason: "startingStack must be positive"}
	}
	for round, level := range blindsSchedule {
		if round <= 0 {
			return nil, &ConfigurationError{Reason: "blindsSchedule keys must be positive round numbers"}
		}
		if level.SmallBlind <= 0 || level.BigBlind <= 0 || level.SmallBlind >= level.BigBlind {
			return nil, &ConfigurationError{Reason: "blindsSchedule levels require 0 < small < big"}
		}
	}
	if len(deciders) != len(names) {
		return nil, &ConfigurationError{Reason: "every player needs a decider"}
	}

	players := make([]*player, len(names))
	for i, name := range names {
		players[i] = &player{seat: i, name: name, stack: startingStack}
	}

	level := blindsLevelForRound(blindsSchedule, 1)

	return &Table{
		players:        players,
		buttonPos:      0,
		roundNumber:    1,
		smallBlind:     level.SmallBlind,
		bigBlind:       level.BigBlind,
		blindsSchedule: blindsSchedule,
		tournamentRand: rand.New(rand.NewSource(seed)),
		logger:         logger,
		deciders:       deciders,
	}, nil
}

func blindsLevelForRound(schedule map[int]BlindLevel, round int) BlindLevel {
	best, bestRound := BlindLevel{SmallBlind: 10, BigBlind: 20}, 0
	for r, level := range schedule {
		if r <= round && r > bestRound {
			best, bestRound = level, r
		}
	}
	return best
}

// ActivePlayerCount returns the number of non-busted players.
func (t *Table) ActivePlayerCount() int {
	n := 0
	for _, p := range t.players {
		if !p.busted {
			n++
		}
	}
	return n
}

// PlayHand runs SETUP through FINALIZE for a single hand and returns
// its result.
func (t *Table) PlayHand() (*HandResult, error) {
	if err := t.setup(); err != nil {
		return nil, err
	}

	for _, street := range []Street{Preflop, Flop, Turn, River} {
		if t.activeNonBusted() <= 1 {
			break
		}
		if err := t.dealStreet(street); err != nil {
			return nil, err
		}
		if err := t.runBettingRound(street); err != nil {
			return nil, err
		}
		t.sealPotsForStreetEnd()
	}

	result, err := t.showdownAndFinalize()
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (t *Table) activeNonBusted() int {
	n := 0
	for _, p := range t.players {
		if p.isActive() {
			n++
		}
	}
	return n
}

// setup reseeds a fresh per-hand deck from the tournament PRNG (so a
// hand can be replayed in isolation from its seed), deals hole cards,
// and posts blinds.
func (t *Table) setup() error {
	for _, p := range t.players {
		p.folded = false
		p.allIn = false
		p.currentBet = 0
		p.handContribution = 0
		p.actedThisStreet = false
	}

	handSeed := t.tournamentRand.Int63()
	t.deck = deck.NewDeck(rand.New(rand.NewSource(handSeed)))
	t.communityCards = nil
	t.ledger = newPotLedger(t.players)
	t.currentHand = &HandRecord{RoundNumber: t.roundNumber, PerStreet: map[Street]*StreetHistory{}}

	order := t.seatsFrom(t.buttonPos)
	for _, seat := range order {
		p := t.players[seat]
		if p.busted {
			continue
		}
		cards, err := t.deck.DealN(2)
		if err != nil {
			return &InvariantError{Reason: "deck exhausted dealing hole cards"}
		}
		p.holeCards = [2]deck.Card{cards[0], cards[1]}
	}

	return t.postBlinds()
}

// seatsFrom returns every seat, busted or not, starting at start, in
// clockwise order; callers skip busted seats themselves.
func (t *Table) seatsFrom(start int) []int {
	var out []int
	n := len(t.players)
	for i := 0; i < n; i++ {
		out = append(out, (start+i)%n)
	}
	return out
}

func (t *Table) postBlinds() error {
	active := t.seatsFrom(t.buttonPos)
	var nonBusted []int
	for _, s := range active {
		if !t.players[s].busted {
			nonBusted = append(nonBusted, s)
		}
	}
	if len(nonBusted) < 2 {
		return &InvariantError{Reason: "fewer than 2 non-busted players at hand start"}
	}

	var sbSeat, bbSeat int
	if len(nonBusted) == 2 {
		// heads-up: the button posts the small blind.
		sbSeat, bbSeat = nonBusted[0], nonBusted[1]
	} else {
		sbSeat, bbSeat = nonBusted[1], nonBusted[2%len(nonBusted)]
	}

	t.commit(t.players[sbSeat], min(t.smallBlind, t.players[sbSeat].stack), SmallBlind, Preflop)
	t.commit(t.players[bbSeat], min(t.bigBlind, t.players[bbSeat].stack), BigBlind, Preflop)

	t.bbSeatThisHand = bbSeat
	t.sbSeatThisHand = sbSeat
	return nil
}

// commit moves chips from a player's stack into their current-street
// bet and hand contribution, recording the action in history.
func (t *Table) commit(p *player, amount int, actionType ActionType, street Street) {
	p.stack -= amount
	p.currentBet += amount
	p.handContribution += amount
	if p.stack == 0 {
		p.allIn = true
	}
	t.recordAction(street, Action{PlayerIndex: p.seat, ActionType: actionType, Amount: amount})
}

func (t *Table) recordAction(street Street, a Action) {
	sh := t.currentHand.PerStreet[street]
	if sh == nil {
		sh = &StreetHistory{}
		t.currentHand.PerStreet[street] = sh
	}
	sh.Actions = append(sh.Actions, a)
}

// dealStreet burns and deals the community cards for flop/turn/river,
// then resets every player's current-street bet for the new round of
// betting. Preflop needs none of this: blinds already set the
// opening currentBet values during setup.
func (t *Table) dealStreet(street Street) error {
	if street == Preflop {
		return nil
	}

	var n int
	switch street {
	case Flop:
		n = 3
	case Turn, River:
		n = 1
	}

	if err := t.deck.Burn(); err != nil {
		return &InvariantError{Reason: "deck exhausted on burn"}
	}
	cards, err := t.deck.DealN(n)
	if err != nil {
		return &InvariantError{Reason: "deck exhausted dealing community cards"}
	}
	t.communityCards = append(t.communityCards, cards...)
	t.currentHand.PerStreet[street] = &StreetHistory{CommunityCards: append([]deck.Card(nil), t.communityCards...)}

	for _, p := range t.players {
		p.currentBet = 0
		p.actedThisStreet = false
	}
	return nil
}

// PublicState returns a deep-copied snapshot of the table's public
// state, safe to hand to a caller outside the engine.
func (t *Table) PublicState() *PublicGameState {
	return t.publicGameState(t.bigBlind)
}

// Names returns every seat's name, in seat order, regardless of
// busted status.
func (t *Table) Names() []string {
	names := make([]string, len(t.players))
	for i, p := range t.players {
		names[i] = p.name
	}
	return names
}

// Stacks returns every seat's current stack, in seat order.
func (t *Table) Stacks() []int {
	stacks := make([]int, len(t.players))
	for i, p := range t.players {
		stacks[i] = p.stack
	}
	return stacks
}

// HoleCards returns the hole cards dealt this hand, keyed by seat, for
// every seat that was dealt in (busted players are omitted).
func (t *Table) HoleCards() map[int][2]deck.Card {
	cards := make(map[int][2]deck.Card)
	for _, p := range t.players {
		if !p.busted {
			cards[p.seat] = p.holeCards
		}
	}
	return cards
}

// RoundNumber returns the hand number about to be played. PlayHand
// increments it when a hand finishes, so right after PlayHand returns
// it is already the next hand's number.
func (t *Table) RoundNumber() int {
	return t.roundNumber
}

// CurrentBlinds returns the small and big blind in effect for the hand
// about to be played.
func (t *Table) CurrentBlinds() (small, big int) {
	return t.smallBlind, t.bigBlind
}

// LastHandHistory returns the most recently completed hand's full
// record, or nil if no hand has been played yet.
func (t *Table) LastHandHistory() *HandRecord {
	if len(t.previousHandHistories) == 0 {
		return nil
	}
	return t.previousHandHistories[len(t.previousHandHistories)-1]
}

// RemainingSeats returns the seat indices of every non-busted player.
func (t *Table) RemainingSeats() []int {
	var out []int
	for _, p := range t.players {
		if !p.busted {
			out = append(out, p.seat)
		}
	}
	return out
}

// showdownAndFinalize reveals hole cards where required, settles every
// sealed pot in order, advances the button, rolls blinds forward, and
// returns the hand's result.
func (t *Table) showdownAndFinalize() (*HandResult, error) {
	pots := t.ledger.reconcile()

	sealed := 0
	for _, pot := range pots {
		sealed += pot.Amount
	}
	if total := t.ledger.totalContributed(); sealed != total {
		return nil, &InvariantError{
			Reason:   fmt.Sprintf("pot reconciliation lost chips: sealed %d of %d contributed", sealed, total),
			Snapshot: t.publicGameState(t.bigBlind),
		}
	}

	var eligibleForShowdown []int
	for _, p := range t.players {
		if p.isActive() {
			eligibleForShowdown = append(eligibleForShowdown, p.seat)
		}
	}

	showdown := len(eligibleForShowdown) > 1
	winners := map[int]WinnerShare{}

	var details *ShowdownDetails
	if showdown {
		details = &ShowdownDetails{
			Players:   append([]int(nil), eligibleForShowdown...),
			Hands:     map[int]string{},
			HoleCards: map[int][2]deck.Card{},
		}
		for _, seat := range eligibleForShowdown {
			p := t.players[seat]
			details.HoleCards[seat] = p.holeCards
			cards := append([]deck.Card{p.holeCards[0], p.holeCards[1]}, t.communityCards...)
			rank, err := evaluator.EvaluateCards(cards)
			if err != nil {
				return nil, &InvariantError{Reason: "showdown hand evaluation failed: " + err.Error(), Snapshot: t.publicGameState(t.bigBlind)}
			}
			details.Hands[seat] = rank.String()
		}
		t.currentHand.ShowdownDetails = details
	}

	for _, pot := range pots {
		potWinners := pot.EligiblePlayers
		var handRank evaluator.HandRank
		if len(potWinners) > 1 {
			holeCards := make(map[int][]deck.Card, len(potWinners))
			for _, seat := range potWinners {
				holeCards[seat] = t.players[seat].holeCards[:]
			}
			ws, rank, err := evaluator.DetermineWinners(holeCards, t.communityCards, potWinners)
			if err != nil {
				return nil, &InvariantError{Reason: "pot settlement failed: " + err.Error(), Snapshot: t.publicGameState(t.bigBlind)}
			}
			potWinners, handRank = ws, rank
		}

		t.distributePot(pot.Amount, potWinners, winners, handRank, showdown)
	}

	var eliminated []int
	for _, p := range t.players {
		if !p.busted && p.stack == 0 {
			p.busted = true
			eliminated = append(eliminated, p.seat)
		}
	}

	t.previousHandHistories = append(t.previousHandHistories, t.currentHand)

	t.buttonPos = t.nextButton()
	t.roundNumber++
	level := blindsLevelForRound(t.blindsSchedule, t.roundNumber)
	t.smallBlind, t.bigBlind = level.SmallBlind, level.BigBlind

	return &HandResult{
		Winners:             winners,
		EligibleForShowdown: eligibleForShowdown,
		Showdown:            showdown,
		ShowdownDetails:     details,
		Eliminated:          eliminated,
	}, nil
}

// distributePot splits amount evenly across winners, giving any odd
// remainder chip-by-chip to the winners closest clockwise from the
// button, and records each winner's share.
func (t *Table) distributePot(amount int, potWinners []int, winners map[int]WinnerShare, handRank evaluator.HandRank, showdown bool) {
	if len(potWinners) == 0 || amount == 0 {
		return
	}

	share := amount / len(potWinners)
	remainder := amount % len(potWinners)

	ordered := t.orderByProximityToButton(potWinners)

	for i, seat := range ordered {
		chips := share
		if i < remainder {
			chips++
		}
		t.players[seat].stack += chips

		name := "uncontested"
		if showdown {
			rank, err := evaluator.EvaluateCards(append([]deck.Card{t.players[seat].holeCards[0], t.players[seat].holeCards[1]}, t.communityCards...))
			if err == nil {
				name = rank.String()
			} else {
				name = handRank.String()
			}
		}

		existing, ok := winners[seat]
		if ok {
			existing.ChipsWon += chips
			winners[seat] = existing
		} else {
			winners[seat] = WinnerShare{HandName: name, ChipsWon: chips}
		}
	}
}

// orderByProximityToButton orders seats starting from the seat
// immediately clockwise of the button, so odd-chip distribution
// favors winners closest clockwise from the button.
func (t *Table) orderByProximityToButton(seats []int) []int {
	n := len(t.players)
	rank := make(map[int]int, len(seats))
	for _, s := range seats {
		distance := s - t.buttonPos
		if distance <= 0 {
			distance += n
		}
		rank[s] = distance
	}
	ordered := append([]int(nil), seats...)
	sort.Slice(ordered, func(i, j int) bool { return rank[ordered[i]] < rank[ordered[j]] })
	return ordered
}

// nextButton advances the button to the next non-busted seat.
func (t *Table) nextButton() int {
	n := len(t.players)
	seat := t.nextSeat(t.buttonPos)
	for i := 0; i < n; i++ {
		if !t.players[seat].busted {
			return seat
		}
		seat = t.nextSeat(seat)
	}
	return t.buttonPos
}
