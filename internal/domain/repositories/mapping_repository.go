package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
)

// MappingRepository defines persistence operations for client meeting mappings
type MappingRepository interface {
	Find(ctx context.Context, clientID uuid.UUID) (*entities.ClientMeetingMapping, error)
	Save(ctx context.Context, mapping *entities.ClientMeetingMapping) error
	ListAll(ctx context.Context) ([]*entities.ClientMeetingMapping, error)
}
