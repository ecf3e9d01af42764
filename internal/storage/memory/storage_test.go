package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/unogame/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func newSession(id model.GameID) *model.Session {
	return &model.Session{
		Game: &model.Game{
			ID:       id,
			Status:   model.GameStatusPlaying,
			Settings: model.DefaultSettings(),
		},
		RandomState:  []byte{1, 2, 3},
		LastAccessAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := newSession("game-1")
	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	got, err := s.storage.GetSession(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(session, got)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestSaveSessionOverwrites() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, newSession("game-1")))

	updated := newSession("game-1")
	updated.Game.Round = 3
	s.Require().NoError(s.storage.SaveSession(s.ctx, updated))

	got, err := s.storage.GetSession(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(3, got.Game.Round)
}

func (s *StorageSuite) TestDeleteSession() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, newSession("game-1")))

	err := s.storage.DeleteSession(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)

	// Deleting again is not an error
	s.NoError(s.storage.DeleteSession(s.ctx, "game-1"))
}

func (s *StorageSuite) TestListSessionIDs() {
	ids, err := s.storage.ListSessionIDs(s.ctx)
	s.Require().NoError(err)
	s.Empty(ids)

	s.Require().NoError(s.storage.SaveSession(s.ctx, newSession("game-1")))
	s.Require().NoError(s.storage.SaveSession(s.ctx, newSession("game-2")))

	ids, err = s.storage.ListSessionIDs(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]model.GameID{"game-1", "game-2"}, ids)
}
