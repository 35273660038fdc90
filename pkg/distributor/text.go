package distributor

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Text is an optional scalar that distributors encode inconsistently:
// sometimes as a JSON string, sometimes as a number. Both decode to the
// literal text; null or an absent key leave Valid false.
type Text struct {
	Value string
	Valid bool
}

// NewText returns a valid Text holding s.
func NewText(s string) Text { return Text{Value: s, Valid: true} }

// UnmarshalJSON accepts a string, a number or null.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = Text{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = NewText(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("text: expected string or number, got %s", data)
		}
		*t = NewText(n.String())
		return nil
	}
}

// MarshalJSON encodes a valid Text as a string and an invalid one as null.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

// Or returns the value when valid, otherwise fallback.
func (t Text) Or(fallback string) string {
	if !t.Valid {
		return fallback
	}
	return t.Value
}
