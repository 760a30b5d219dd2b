package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
)

// QueueRepository defines persistence operations for transcript queues
type QueueRepository interface {
	// Find returns nil, nil when no queue exists yet for the client
	Find(ctx context.Context, clientID uuid.UUID) (*entities.ClientTranscriptQueue, error)
	Save(ctx context.Context, queue *entities.ClientTranscriptQueue) error
	// MarkProcessed records the last-processed timestamp without touching
	// the transcript window
	MarkProcessed(ctx context.Context, clientID uuid.UUID, at time.Time) error
}
