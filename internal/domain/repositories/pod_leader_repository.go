package repositories

import (
	"context"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
)

// PodLeaderRepository defines persistence for pod leader profiles
type PodLeaderRepository interface {
	Find(ctx context.Context, userID string) (*entities.PodLeaderProfile, error)
	FindByEmail(ctx context.Context, email string) (*entities.PodLeaderProfile, error)
	Save(ctx context.Context, profile *entities.PodLeaderProfile) error
}
