package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"github.com/mcoot/unogame/internal/dependencies/mocks"
	"github.com/mcoot/unogame/internal/dependencies/random"
	"github.com/mcoot/unogame/internal/model"
	"github.com/mcoot/unogame/internal/services/bot"
	"github.com/mcoot/unogame/internal/services/deck"
	"github.com/mcoot/unogame/internal/services/game"
	"github.com/mcoot/unogame/internal/services/view"
	"github.com/mcoot/unogame/internal/storage"
	"github.com/mcoot/unogame/internal/storage/memory"
	redisstorage "github.com/mcoot/unogame/internal/storage/redis"
	"github.com/mcoot/unogame/internal/testutil"
)

type StoreSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	storage *memory.Storage
	store   *Store
	ctx     context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.storage = memory.New()
	s.store = s.newStore(s.storage, 1)
	s.ctx = context.Background()
}

func (s *StoreSuite) newStore(backend storage.Storage, seed uint64) *Store {
	engine := game.NewEngine(s.clock, bot.NewGreedyStrategy(), testutil.NopLogger())
	return NewStore(backend, engine, random.NewSeeded(seed), s.clock, model.DefaultSettings(), testutil.NopLogger())
}

func (s *StoreSuite) cardCount(id model.GameID) int {
	sess, err := s.storage.GetSession(s.ctx, id)
	s.Require().NoError(err)
	return sess.Game.CardCount()
}

func (s *StoreSuite) TestCreateReturnsPrimaryView() {
	v, err := s.store.Create(s.ctx, model.ModeSingleplayer)
	s.Require().NoError(err)

	s.NotEmpty(v.GameID)
	s.Equal("playing", v.Status)
	s.Equal("p1", v.You.PlayerID)
	s.Require().Len(v.Players, 2)
	s.True(v.Players[0].IsYou)
	s.True(v.Players[1].IsAI)

	sess, err := s.storage.GetSession(s.ctx, model.GameID(v.GameID))
	s.Require().NoError(err)
	s.NotEmpty(sess.RandomState)
	s.Equal(s.clock.Now(), sess.LastAccessAt)
}

func (s *StoreSuite) TestCreateInvalidMode() {
	_, err := s.store.Create(s.ctx, "chess")
	s.ErrorIs(err, model.ErrInvalidMode)
}

func (s *StoreSuite) TestUnknownSession() {
	_, err := s.store.View(s.ctx, "missing", "p1")
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.store.Play(s.ctx, "missing", "p1", "c1", "")
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.store.Draw(s.ctx, "missing", "p1")
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.store.Pass(s.ctx, "missing", "p1")
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.store.Restart(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
	s.ErrorIs(s.store.Delete(s.ctx, "missing"), model.ErrGameNotFound)
}

func (s *StoreSuite) TestViewAsOtherPlayer() {
	created, err := s.store.Create(s.ctx, model.ModeLocal)
	s.Require().NoError(err)

	v, err := s.store.View(s.ctx, model.GameID(created.GameID), "p2")
	s.Require().NoError(err)
	s.Equal("p2", v.You.PlayerID)
	s.False(v.Players[0].IsYou)
	s.True(v.Players[1].IsYou)
	s.Len(v.You.Hand, v.Players[1].HandCount)
}

func (s *StoreSuite) TestViewUpdatesLastAccess() {
	created, err := s.store.Create(s.ctx, model.ModeLocal)
	s.Require().NoError(err)
	id := model.GameID(created.GameID)

	s.clock.Advance(time.Minute)
	_, err = s.store.View(s.ctx, id, "p1")
	s.Require().NoError(err)

	sess, err := s.storage.GetSession(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(s.clock.Now(), sess.LastAccessAt)
}

func (s *StoreSuite) TestRuleErrorsPassThrough() {
	created, err := s.store.Create(s.ctx, model.ModeLocal)
	s.Require().NoError(err)
	id := model.GameID(created.GameID)

	other := "p2"
	if created.CurrentPlayerIndex == 1 {
		other = "p1"
	}

	_, err = s.store.Pass(s.ctx, id, model.PlayerID(other))
	s.ErrorIs(err, model.ErrNotYourTurn)
	s.True(model.IsRuleError(err))
}

func (s *StoreSuite) TestPlayAndDrawThroughStore() {
	created, err := s.store.Create(s.ctx, model.ModeSingleplayer)
	s.Require().NoError(err)
	id := model.GameID(created.GameID)

	v := created
	for range 20 {
		if v.Status != "playing" {
			break
		}
		v = s.humanTurn(id, v)
		s.Equal(deck.Size, s.cardCount(id))
	}
}

// humanTurn plays the first card the store accepts, or draws
func (s *StoreSuite) humanTurn(id model.GameID, v view.PublicView) view.PublicView {
	if v.PendingDraw == 0 {
		for _, c := range v.You.Hand {
			next, err := s.store.Play(s.ctx, id, "p1", model.CardID(c.ID), model.ColorYellow)
			if err == nil {
				return next
			}
			s.Require().True(model.IsRuleError(err), "unexpected error %v", err)
		}
	}
	next, err := s.store.Draw(s.ctx, id, "p1")
	s.Require().NoError(err)
	return next
}

func (s *StoreSuite) TestPatchSettings() {
	created, err := s.store.Create(s.ctx, model.ModeLocal)
	s.Require().NoError(err)
	id := model.GameID(created.GameID)

	size, bad := 5, 0
	v, err := s.store.PatchSettings(s.ctx, id, model.SettingsPatch{HandSize: &size, ScoreLimit: &bad})
	s.Require().NoError(err)
	s.Equal(5, v.Settings.HandSize)
	s.Equal(500, v.Settings.ScoreLimit)
	s.Equal("Settings updated.", v.Message)

	v, err = s.store.Restart(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Round restarted.", v.Message)
	s.Equal(2, v.Round)
	for _, p := range v.Players {
		s.Equal(5, p.HandCount)
	}
}

func (s *StoreSuite) TestJoinRenamesSecondSeat() {
	created, err := s.store.Create(s.ctx, model.ModeLocal)
	s.Require().NoError(err)
	id := model.GameID(created.GameID)

	v, err := s.store.Join(s.ctx, id, "Alice")
	s.Require().NoError(err)
	s.Equal("Alice", v.Players[1].Name)

	v, err = s.store.Join(s.ctx, id, "")
	s.Require().NoError(err)
	s.Equal("Alice", v.Players[1].Name)
}

func (s *StoreSuite) TestJoinWithoutSecondSeat() {
	store := NewStore(s.storage, game.NewEngine(s.clock, bot.NewGreedyStrategy(), testutil.NopLogger()),
		random.NewSeeded(3), s.clock, model.Settings{HandSize: 7, ScoreLimit: 500}, testutil.NopLogger())

	created, err := store.Create(s.ctx, model.ModeSingleplayer)
	s.Require().NoError(err)
	s.Require().Len(created.Players, 1)

	v, err := store.Join(s.ctx, model.GameID(created.GameID), "Alice")
	s.Require().NoError(err)
	s.Equal("You", v.Players[0].Name)
}

func (s *StoreSuite) TestDelete() {
	created, err := s.store.Create(s.ctx, model.ModeLocal)
	s.Require().NoError(err)
	id := model.GameID(created.GameID)

	s.Require().NoError(s.store.Delete(s.ctx, id))
	_, err = s.store.View(s.ctx, id, "p1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StoreSuite) TestSweepRemovesIdleSessions() {
	stale, err := s.store.Create(s.ctx, model.ModeLocal)
	s.Require().NoError(err)
	fresh, err := s.store.Create(s.ctx, model.ModeLocal)
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)
	_, err = s.store.View(s.ctx, model.GameID(fresh.GameID), "p1")
	s.Require().NoError(err)

	removed, err := s.store.Sweep(s.ctx, time.Hour)
	s.Require().NoError(err)
	s.Equal(1, removed)

	_, err = s.store.View(s.ctx, model.GameID(stale.GameID), "p1")
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.store.View(s.ctx, model.GameID(fresh.GameID), "p1")
	s.NoError(err)
}

func (s *StoreSuite) TestSessionsHaveDistinctIDs() {
	seen := make(map[string]bool)
	for range 10 {
		v, err := s.store.Create(s.ctx, model.ModeLocal)
		s.Require().NoError(err)
		s.False(seen[v.GameID])
		seen[v.GameID] = true
	}
}

func (s *StoreSuite) TestScriptedSessionsAreDeterministic() {
	run := func(backend storage.Storage) view.PublicView {
		store := s.newStore(backend, 77)
		created, err := store.Create(s.ctx, model.ModeSingleplayer)
		s.Require().NoError(err)
		id := model.GameID(created.GameID)

		v := created
		for range 25 {
			if v.Status != "playing" {
				v, err = store.Restart(s.ctx, id)
				s.Require().NoError(err)
				continue
			}
			v, err = store.Draw(s.ctx, id, "p1")
			s.Require().NoError(err)
		}
		return v
	}

	mini := miniredis.RunT(s.T())
	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	defer client.Close()

	// The redis run restores the random source from its snapshot on every call
	fromMemory := run(memory.New())
	fromRedis := run(redisstorage.NewWithClient(client, redisstorage.DefaultConfig()))
	s.Equal(fromMemory, fromRedis)
	s.Equal(run(memory.New()), fromMemory)
}

func (s *StoreSuite) TestConcurrentActionsOnOneSession() {
	created, err := s.store.Create(s.ctx, model.ModeLocal)
	s.Require().NoError(err)
	id := model.GameID(created.GameID)

	var g errgroup.Group
	for i := range 40 {
		player := model.PlayerID(fmt.Sprintf("p%d", i%2+1))
		g.Go(func() error {
			_, err := s.store.Draw(s.ctx, id, player)
			if err != nil && !model.IsRuleError(err) {
				return err
			}
			_, err = s.store.View(s.ctx, id, player)
			return err
		})
	}
	s.Require().NoError(g.Wait())

	s.Equal(deck.Size, s.cardCount(id))
	s.Empty(s.store.locks)
}

// Run with -race: views are projected while the session is still locked
func (s *StoreSuite) TestConcurrentDrawsReturnConsistentViews() {
	created, err := s.store.Create(s.ctx, model.ModeLocal)
	s.Require().NoError(err)
	id := model.GameID(created.GameID)

	views := make([]view.PublicView, 60)
	var g errgroup.Group
	for i := range views {
		player := model.PlayerID(fmt.Sprintf("p%d", i%2+1))
		g.Go(func() error {
			v, err := s.store.Draw(s.ctx, id, player)
			if model.IsRuleError(err) {
				return nil
			}
			views[i] = v
			return err
		})
	}
	s.Require().NoError(g.Wait())

	drawn := 0
	for _, v := range views {
		if v.GameID == "" {
			continue
		}
		drawn++
		var you view.Player
		for _, p := range v.Players {
			if p.IsYou {
				you = p
			}
		}
		s.Equal(you.HandCount, len(v.You.Hand))

		s.Require().NotNil(v.LastDrawnCardID)
		held := v.DiscardTop != nil && v.DiscardTop.ID == *v.LastDrawnCardID
		for _, c := range v.You.Hand {
			held = held || c.ID == *v.LastDrawnCardID
		}
		s.True(held, "drawn card %s is neither held nor on top", *v.LastDrawnCardID)
	}
	s.Positive(drawn)
	s.Equal(deck.Size, s.cardCount(id))
	s.Empty(s.store.locks)
}

func (s *StoreSuite) TestDrawReportsDrawnCard() {
	created, err := s.store.Create(s.ctx, model.ModeLocal)
	s.Require().NoError(err)
	id := model.GameID(created.GameID)

	player := created.Players[created.CurrentPlayerIndex].ID
	v, err := s.store.Draw(s.ctx, id, model.PlayerID(player))
	s.Require().NoError(err)
	s.Require().NotNil(v.LastDrawnCardID)

	sess, err := s.storage.GetSession(s.ctx, id)
	s.Require().NoError(err)
	drawer := sess.Game.GetPlayer(model.PlayerID(player))
	top, _ := sess.Game.TopDiscard()
	s.True(drawer.FindCard(model.CardID(*v.LastDrawnCardID)) >= 0 || top.ID == model.CardID(*v.LastDrawnCardID))
}

func (s *StoreSuite) TestConcurrentCreates() {
	var g errgroup.Group
	for range 20 {
		g.Go(func() error {
			_, err := s.store.Create(s.ctx, model.ModeSingleplayer)
			return err
		})
	}
	s.Require().NoError(g.Wait())

	ids, err := s.storage.ListSessionIDs(s.ctx)
	s.Require().NoError(err)
	s.Len(ids, 20)
}
