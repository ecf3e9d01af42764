package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// CardID uniquely identifies a physical card within a deck
type CardID string

// Color is the colour printed on a card, or the active colour of the discard pile
type Color string

const (
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorWild   Color = "wild"
)

// BaseColors are the four colours a wild can be mapped to, in tie-break order
var BaseColors = [...]Color{ColorRed, ColorYellow, ColorGreen, ColorBlue}

// IsBase returns true for red, yellow, green and blue
func (c Color) IsBase() bool {
	switch c {
	case ColorRed, ColorYellow, ColorGreen, ColorBlue:
		return true
	}
	return false
}

// CardKind distinguishes numeric cards from the symbolic ones
type CardKind int

const (
	KindNumber CardKind = iota
	KindSkip
	KindReverse
	KindDrawTwo
	KindWild
	KindWildDrawFour
)

// CardValue is the face of a card: a number 0-9 or one of the action kinds.
// Number is only meaningful when Kind is KindNumber.
type CardValue struct {
	Kind   CardKind
	Number int
}

// Convenience values for the symbolic faces
var (
	Skip         = CardValue{Kind: KindSkip}
	Reverse      = CardValue{Kind: KindReverse}
	DrawTwo      = CardValue{Kind: KindDrawTwo}
	Wild         = CardValue{Kind: KindWild}
	WildDrawFour = CardValue{Kind: KindWildDrawFour}
)

// Number returns the numeric face n
func Number(n int) CardValue {
	return CardValue{Kind: KindNumber, Number: n}
}

// IsWild returns true for Wild and WildDrawFour
func (v CardValue) IsWild() bool {
	return v.Kind == KindWild || v.Kind == KindWildDrawFour
}

// IsAction returns true for Skip, Reverse, DrawTwo and WildDrawFour
func (v CardValue) IsAction() bool {
	switch v.Kind {
	case KindSkip, KindReverse, KindDrawTwo, KindWildDrawFour:
		return true
	}
	return false
}

// String returns the wire form used by clients ("7", "SKIP", "WILD_DRAW_FOUR", ...)
func (v CardValue) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.Itoa(v.Number)
	case KindSkip:
		return "SKIP"
	case KindReverse:
		return "REVERSE"
	case KindDrawTwo:
		return "DRAW_TWO"
	case KindWild:
		return "WILD"
	case KindWildDrawFour:
		return "WILD_DRAW_FOUR"
	default:
		return "UNKNOWN"
	}
}

// ParseCardValue parses the wire form of a card value
func ParseCardValue(s string) (CardValue, error) {
	switch s {
	case "SKIP":
		return Skip, nil
	case "REVERSE":
		return Reverse, nil
	case "DRAW_TWO":
		return DrawTwo, nil
	case "WILD":
		return Wild, nil
	case "WILD_DRAW_FOUR":
		return WildDrawFour, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 9 || len(s) != 1 {
		return CardValue{}, fmt.Errorf("invalid card value %q", s)
	}
	return Number(n), nil
}

// MarshalJSON encodes the value in its wire form
func (v CardValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes the wire form
func (v *CardValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCardValue(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Card is a single card. Two cards with the same colour and value are still
// distinct; compare by ID.
type Card struct {
	ID    CardID    `json:"id"`
	Color Color     `json:"color"`
	Value CardValue `json:"value"`
}

// String returns a short human-readable label, e.g. "red 7" or "WILD"
func (c Card) String() string {
	if c.Color == ColorWild {
		return c.Value.String()
	}
	return string(c.Color) + " " + c.Value.String()
}
