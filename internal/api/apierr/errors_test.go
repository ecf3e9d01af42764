package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/unogame/internal/model"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not your turn", model.NewRuleError(model.ErrNotYourTurn, "Not your turn."), http.StatusBadRequest, CodeNotYourTurn, "Not your turn."},
		{"wrapped rule error", fmt.Errorf("play: %w", model.NewRuleError(model.ErrCardNotInHand, "Card not in your hand.")), http.StatusBadRequest, CodeCardNotInHand, "Card not in your hand."},
		{"pending draw", model.NewRuleError(model.ErrPendingDrawUnresolved, "Draw first."), http.StatusBadRequest, CodePendingDrawUnresolved, "Draw first."},
		{"wild draw four", model.NewRuleError(model.ErrWildDrawFourRestricted, "nope"), http.StatusBadRequest, CodeWildDrawFourRestricted, "nope"},
		{"empty discard", model.NewRuleError(model.ErrEmptyDiscard, "No discard."), http.StatusBadRequest, CodeIllegalPlay, "No discard."},
		{"unmapped rule", model.NewRuleError(errors.New("other"), "Other."), http.StatusBadRequest, CodeRuleViolation, "Other."},
		{"game not found", model.ErrGameNotFound, http.StatusNotFound, CodeGameNotFound, "Game not found."},
		{"player not found", model.ErrPlayerNotFound, http.StatusNotFound, CodePlayerNotFound, "Player not found."},
		{"invalid mode", fmt.Errorf("create: %w", model.ErrInvalidMode), http.StatusBadRequest, CodeInvalidMode, ""},
		{"invalid request", NewInvalidRequestError("bad body"), http.StatusBadRequest, CodeInvalidRequest, "bad body"},
		{"unknown", errors.New("redis down"), http.StatusInternalServerError, CodeInternalError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Error.Message)
			}
		})
	}
}
