package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/unogame/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeInvalidMode            = "INVALID_MODE"
	CodeGameNotFound           = "GAME_NOT_FOUND"
	CodePlayerNotFound         = "PLAYER_NOT_FOUND"
	CodeNotYourTurn            = "NOT_YOUR_TURN"
	CodeGameNotPlaying         = "GAME_NOT_PLAYING"
	CodeUnknownPlayer          = "UNKNOWN_PLAYER"
	CodePendingDrawUnresolved  = "PENDING_DRAW_UNRESOLVED"
	CodeCardNotInHand          = "CARD_NOT_IN_HAND"
	CodeIllegalPlay            = "ILLEGAL_PLAY"
	CodeMissingColorChoice     = "MISSING_COLOR_CHOICE"
	CodeWildDrawFourRestricted = "WILD_DRAW_FOUR_RESTRICTED"
	CodeRuleViolation          = "RULE_VIOLATION"
	CodeInternalError          = "INTERNAL_ERROR"
)

var ruleCodes = []struct {
	reason error
	code   string
}{
	{model.ErrNotYourTurn, CodeNotYourTurn},
	{model.ErrGameNotPlaying, CodeGameNotPlaying},
	{model.ErrUnknownPlayer, CodeUnknownPlayer},
	{model.ErrPendingDrawUnresolved, CodePendingDrawUnresolved},
	{model.ErrCardNotInHand, CodeCardNotInHand},
	{model.ErrIllegalPlay, CodeIllegalPlay},
	{model.ErrEmptyDiscard, CodeIllegalPlay},
	{model.ErrMissingColorChoice, CodeMissingColorChoice},
	{model.ErrWildDrawFourRestricted, CodeWildDrawFourRestricted},
}

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Rule violations carry a user-facing message
	var re *model.RuleError
	if errors.As(err, &re) {
		code := CodeRuleViolation
		for _, rc := range ruleCodes {
			if errors.Is(re.Reason, rc.reason) {
				code = rc.code
				break
			}
		}
		return &httpError{http.StatusBadRequest, APIError{code, re.Message}}
	}

	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found."}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found."}}
	case errors.Is(err, model.ErrInvalidMode):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMode, "Mode must be one of singleplayer, vs_ai, local, multiplayer."}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
