package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
)

// HistoryRepository defines persistence operations for the rolling
// relationship memory. One record per client, never deleted.
type HistoryRepository interface {
	// Find returns nil, nil when no history exists yet for the client
	Find(ctx context.Context, clientID uuid.UUID) (*entities.ClientRelationshipHistory, error)
	Save(ctx context.Context, history *entities.ClientRelationshipHistory) error
}
