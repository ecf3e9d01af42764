package storage

import (
	"context"

	"github.com/mcoot/unogame/internal/model"
)

// Storage defines the interface for session persistence. Implementations
// need not serialise access to a single session; callers do that.
type Storage interface {
	SaveSession(ctx context.Context, session *model.Session) error
	// GetSession returns model.ErrGameNotFound for an unknown id
	GetSession(ctx context.Context, id model.GameID) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.GameID) error
	ListSessionIDs(ctx context.Context) ([]model.GameID, error)
}
