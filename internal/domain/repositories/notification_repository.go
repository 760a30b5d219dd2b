package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
)

// NotificationPrefsRepository defines persistence for notification preferences
type NotificationPrefsRepository interface {
	// Find returns nil, nil when no preferences are configured for the client
	Find(ctx context.Context, clientID uuid.UUID) (*entities.NotificationPreferences, error)
	Save(ctx context.Context, prefs *entities.NotificationPreferences) error
}
