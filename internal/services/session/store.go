package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/unogame/internal/dependencies/clock"
	"github.com/mcoot/unogame/internal/dependencies/random"
	"github.com/mcoot/unogame/internal/model"
	"github.com/mcoot/unogame/internal/services/game"
	"github.com/mcoot/unogame/internal/services/view"
	"github.com/mcoot/unogame/internal/storage"
)

// sweepConcurrency bounds how many sessions Sweep inspects at once
const sweepConcurrency = 8

// Store is the entry point for every game operation. It serialises
// operations on the same session while unrelated sessions proceed
// concurrently, and gives each session its own random source.
type Store struct {
	storage  storage.Storage
	engine   *game.Engine
	seeds    random.Random
	clock    clock.Clock
	defaults model.Settings
	logger   *slog.Logger

	mu    sync.Mutex
	locks map[model.GameID]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewStore creates a new Store. seeds only supplies the initial seed of
// each new session and is never used for gameplay.
func NewStore(
	store storage.Storage,
	engine *game.Engine,
	seeds random.Random,
	clk clock.Clock,
	defaults model.Settings,
	logger *slog.Logger,
) *Store {
	return &Store{
		storage:  store,
		engine:   engine,
		seeds:    seeds,
		clock:    clk,
		defaults: defaults,
		logger:   logger.With(slog.String("component", "session-store")),
		locks:    make(map[model.GameID]*sessionLock),
	}
}

// Create starts a new game in the given mode with the default settings
func (s *Store) Create(ctx context.Context, mode model.GameMode) (view.PublicView, error) {
	s.mu.Lock()
	seed := s.seeds.Uint64()
	s.mu.Unlock()

	rng := random.NewSeeded(seed)
	g, res, err := s.engine.NewGame(rng, mode, s.defaults)
	if err != nil {
		return view.PublicView{}, err
	}

	state, err := rng.MarshalBinary()
	if err != nil {
		return view.PublicView{}, err
	}
	v := view.Project(g, model.PrimaryPlayerID)
	sess := &model.Session{
		Game:         g,
		RandomState:  state,
		LastAccessAt: s.clock.Now(),
	}
	if err := s.storage.SaveSession(ctx, sess); err != nil {
		s.logger.Error("failed to save session",
			slog.String("game_id", string(g.ID)),
			slog.String("error", err.Error()),
		)
		return view.PublicView{}, err
	}

	s.logger.Info("session created",
		slog.String("game_id", string(g.ID)),
		slog.String("mode", string(mode)),
		slog.Int("automated_turns", len(res.Automated)),
	)
	return v, nil
}

// View returns the game as seen by playerID
func (s *Store) View(ctx context.Context, id model.GameID, playerID model.PlayerID) (view.PublicView, error) {
	v, _, err := s.update(ctx, id, playerID, func(*model.Game, random.Random) (game.Result, error) {
		return game.Result{}, nil
	})
	return v, err
}

// Play plays a card for playerID
func (s *Store) Play(ctx context.Context, id model.GameID, playerID model.PlayerID, cardID model.CardID, chosen model.Color) (view.PublicView, error) {
	v, _, err := s.update(ctx, id, playerID, func(g *model.Game, rng random.Random) (game.Result, error) {
		return s.engine.Play(g, rng, playerID, cardID, chosen)
	})
	return v, err
}

// Draw draws for playerID. The returned view names the card drawn, even
// when automated players have moved since.
func (s *Store) Draw(ctx context.Context, id model.GameID, playerID model.PlayerID) (view.PublicView, error) {
	v, res, err := s.update(ctx, id, playerID, func(g *model.Game, rng random.Random) (game.Result, error) {
		return s.engine.Draw(g, rng, playerID)
	})
	if err != nil {
		return view.PublicView{}, err
	}
	if res.Drawn != nil {
		drawn := string(res.Drawn.ID)
		v.LastDrawnCardID = &drawn
	}
	return v, nil
}

// Pass ends playerID's turn
func (s *Store) Pass(ctx context.Context, id model.GameID, playerID model.PlayerID) (view.PublicView, error) {
	v, _, err := s.update(ctx, id, playerID, func(g *model.Game, rng random.Random) (game.Result, error) {
		return s.engine.Pass(g, rng, playerID)
	})
	return v, err
}

// PatchSettings applies a partial settings update
func (s *Store) PatchSettings(ctx context.Context, id model.GameID, patch model.SettingsPatch) (view.PublicView, error) {
	v, _, err := s.update(ctx, id, model.PrimaryPlayerID, func(g *model.Game, rng random.Random) (game.Result, error) {
		return s.engine.UpdateSettings(g, rng, patch), nil
	})
	return v, err
}

// Restart deals a new round
func (s *Store) Restart(ctx context.Context, id model.GameID) (view.PublicView, error) {
	v, _, err := s.update(ctx, id, model.PrimaryPlayerID, func(g *model.Game, rng random.Random) (game.Result, error) {
		return s.engine.RestartRound(g, rng), nil
	})
	return v, err
}

// Join names the second seat. An empty name, or a game without a second
// seat, leaves the game as it is.
func (s *Store) Join(ctx context.Context, id model.GameID, name string) (view.PublicView, error) {
	v, _, err := s.update(ctx, id, model.PrimaryPlayerID, func(g *model.Game, _ random.Random) (game.Result, error) {
		if name == "" || len(g.Players) < 2 {
			return game.Result{}, nil
		}
		return game.Result{}, s.engine.RenamePlayer(g, g.Players[1].ID, name)
	})
	return v, err
}

// Delete removes a session
func (s *Store) Delete(ctx context.Context, id model.GameID) error {
	release := s.acquire(id)
	defer release()

	if _, err := s.storage.GetSession(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteSession(ctx, id); err != nil {
		return err
	}

	s.logger.Info("session deleted", slog.String("game_id", string(id)))
	return nil
}

// Sweep deletes sessions that have not been touched for longer than idleFor
// and returns how many were removed
func (s *Store) Sweep(ctx context.Context, idleFor time.Duration) (int, error) {
	ids, err := s.storage.ListSessionIDs(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := s.clock.Now().Add(-idleFor)
	var removed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			evicted, err := s.evictIfIdle(gctx, id, cutoff)
			if evicted {
				removed.Add(1)
			}
			return err
		})
	}
	err = g.Wait()

	if n := removed.Load(); n > 0 {
		s.logger.Info("idle sessions swept",
			slog.Int64("removed", n),
			slog.Int("remaining", len(ids)-int(n)),
		)
	}
	return int(removed.Load()), err
}

// RunSweeper calls Sweep every interval until ctx is cancelled
func (s *Store) RunSweeper(ctx context.Context, interval, idleFor time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx, idleFor); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error("session sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (s *Store) evictIfIdle(ctx context.Context, id model.GameID, cutoff time.Time) (bool, error) {
	release := s.acquire(id)
	defer release()

	sess, err := s.storage.GetSession(ctx, id)
	if errors.Is(err, model.ErrGameNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !sess.LastAccessAt.Before(cutoff) {
		return false, nil
	}
	if err := s.storage.DeleteSession(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// update runs fn on the session with the session locked, saves the game
// and the advanced random source, and projects the result for viewer
// before unlocking. Nothing is saved if fn fails.
func (s *Store) update(
	ctx context.Context,
	id model.GameID,
	viewer model.PlayerID,
	fn func(*model.Game, random.Random) (game.Result, error),
) (view.PublicView, game.Result, error) {
	release := s.acquire(id)
	defer release()

	sess, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return view.PublicView{}, game.Result{}, err
	}

	rng, err := random.Restore(sess.RandomState)
	if err != nil {
		return view.PublicView{}, game.Result{}, fmt.Errorf("restoring random source for %s: %w", id, err)
	}

	res, err := fn(sess.Game, rng)
	if err != nil {
		return view.PublicView{}, game.Result{}, err
	}

	state, err := rng.MarshalBinary()
	if err != nil {
		return view.PublicView{}, game.Result{}, err
	}
	sess.RandomState = state
	sess.LastAccessAt = s.clock.Now()

	if err := s.storage.SaveSession(ctx, sess); err != nil {
		s.logger.Error("failed to save session",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
		return view.PublicView{}, game.Result{}, err
	}

	if len(res.Automated) > 0 {
		s.logger.Debug("automated players moved",
			slog.String("game_id", string(id)),
			slog.Int("turns", len(res.Automated)),
			slog.String("status", string(sess.Game.Status)),
		)
	}
	return view.Project(sess.Game, viewer), res, nil
}

// acquire locks the session id and returns the matching unlock. Lock
// entries only live while someone holds or waits for them.
func (s *Store) acquire(id model.GameID) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}
