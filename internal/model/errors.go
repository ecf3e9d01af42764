package model

import (
	"errors"
	"fmt"
)

// Lookup errors
var (
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidMode    = errors.New("invalid game mode")
)

// Rule violations. Each is returned wrapped in a *RuleError.
var (
	ErrNotYourTurn            = errors.New("not your turn")
	ErrGameNotPlaying         = errors.New("game is not in playing state")
	ErrUnknownPlayer          = errors.New("unknown player")
	ErrPendingDrawUnresolved  = errors.New("pending draw penalty must be drawn first")
	ErrCardNotInHand          = errors.New("card not in hand")
	ErrIllegalPlay            = errors.New("card is not playable on the current discard")
	ErrMissingColorChoice     = errors.New("a colour choice is required for wild cards")
	ErrWildDrawFourRestricted = errors.New("wild draw four not allowed while holding the active colour")
	ErrEmptyDiscard           = errors.New("no discard pile to play on")
)

// RuleError is a caller-correctable rule violation. The game is left
// unmodified when one is returned.
type RuleError struct {
	Reason  error
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

func (e *RuleError) Unwrap() error {
	return e.Reason
}

// NewRuleError creates a RuleError with a formatted message
func NewRuleError(reason error, format string, args ...any) *RuleError {
	return &RuleError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// IsRuleError returns true if err is (or wraps) a rule violation
func IsRuleError(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}
