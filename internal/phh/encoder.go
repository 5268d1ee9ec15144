package phh

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/foldline/holdem-engine/internal/engine"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	// Use tabs for arrays to match human expectations
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// FormatAction converts one engine action into a PHH action line. It
// returns the formatted action along with a boolean indicating whether
// the action should be emitted (false for blind posts, which PHH
// records as antes/blinds_or_straddles rather than as actions).
func FormatAction(seat int, actionType engine.ActionType, totalBet int) (string, bool) {
	player := fmt.Sprintf("p%d", seat+1)
	switch actionType {
	case engine.Fold:
		return fmt.Sprintf("%s f", player), true
	case engine.Check, engine.Call:
		return fmt.Sprintf("%s cc", player), true
	case engine.Raise, engine.AllIn, engine.Bet:
		if totalBet <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", player, totalBet), true
	case engine.SmallBlind, engine.BigBlind:
		return "", false
	default:
		return fmt.Sprintf("# %s %s %d", player, actionType, totalBet), true
	}
}
