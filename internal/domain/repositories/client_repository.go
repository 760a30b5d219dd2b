package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
)

// ClientRepository defines persistence operations for client profiles
type ClientRepository interface {
	Create(ctx context.Context, client *entities.ClientProfile) error
	Update(ctx context.Context, client *entities.ClientProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ClientProfile, error)
	List(ctx context.Context) ([]*entities.ClientProfile, error)
}
