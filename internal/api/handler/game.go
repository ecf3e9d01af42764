package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/unogame/internal/api/request"
	"github.com/mcoot/unogame/internal/api/response"
	"github.com/mcoot/unogame/internal/model"
	"github.com/mcoot/unogame/internal/services/session"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	store  *session.Store
	logger *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(store *session.Store, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		store:  store,
		logger: logger.With(slog.String("component", "game-handler")),
	}
}

// decodeBody decodes an optional JSON body. An empty body leaves dst as is.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return NewInvalidRequestError("invalid request body")
	}
	return nil
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.store.Create(r.Context(), req.GameMode())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, g)
}

// Get handles GET /api/v1/games/{id}?playerId=
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	req := request.ActionRequest{PlayerID: r.URL.Query().Get("playerId")}

	g, err := h.store.View(r.Context(), gameID(r), req.Player())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, g)
}

// Join handles POST /api/v1/games/{id}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinGameRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.store.Join(r.Context(), gameID(r), req.PlayerName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, g)
}

// Play handles POST /api/v1/games/{id}/play
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	var req request.PlayCardRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	g, err := h.store.Play(r.Context(), gameID(r), req.Player(), model.CardID(req.CardID), model.Color(req.ChosenColor))
	if err != nil {
		h.logRejected(r, req.Player(), err)
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, g)
}

// Draw handles POST /api/v1/games/{id}/draw
func (h *GameHandler) Draw(w http.ResponseWriter, r *http.Request) {
	var req request.ActionRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.store.Draw(r.Context(), gameID(r), req.Player())
	if err != nil {
		h.logRejected(r, req.Player(), err)
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, g)
}

// Pass handles POST /api/v1/games/{id}/pass
func (h *GameHandler) Pass(w http.ResponseWriter, r *http.Request) {
	var req request.ActionRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.store.Pass(r.Context(), gameID(r), req.Player())
	if err != nil {
		h.logRejected(r, req.Player(), err)
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, g)
}

// UpdateSettings handles PATCH /api/v1/games/{id}/settings
func (h *GameHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req request.SettingsPatchRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	g, err := h.store.PatchSettings(r.Context(), gameID(r), req.Patch())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, g)
}

// Restart handles POST /api/v1/games/{id}/restart
func (h *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	g, err := h.store.Restart(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, g)
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if err := h.store.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Deleted{GameID: string(id), Deleted: true})
}

func (h *GameHandler) logRejected(r *http.Request, playerID model.PlayerID, err error) {
	if !model.IsRuleError(err) {
		return
	}
	h.logger.Debug("action rejected",
		slog.String("game_id", string(gameID(r))),
		slog.String("player_id", string(playerID)),
		slog.String("reason", err.Error()),
	)
}
