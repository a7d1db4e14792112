package phh

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a hand history in PHH TOML format
func Decode(r io.Reader) (*HandHistory, error) {
	var hand HandHistory
	if _, err := toml.NewDecoder(r).Decode(&hand); err != nil {
		return nil, fmt.Errorf("phh: %w", err)
	}
	return &hand, nil
}

// FormatAction converts the table action vocabulary to PHH action strings.
// It returns the formatted action along with a boolean indicating whether
// the action should be emitted (false for a raise with no amount).
// An all-in that does not raise should be passed as "call".
func FormatAction(seat int, action string, totalBet int) (string, bool) {
	p := player(seat)
	switch action {
	case "fold":
		return fmt.Sprintf("%s f", p), true
	case "check", "call":
		return fmt.Sprintf("%s cc", p), true
	case "raise", "allin", "bet":
		if totalBet <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", p, totalBet), true
	default:
		return fmt.Sprintf("# %s %s %d", p, action, totalBet), true
	}
}
