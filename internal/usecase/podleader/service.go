package podleader

import (
	"context"

	"go.uber.org/zap"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	"github.com/clientwatch-team/clientwatch/internal/domain/repositories"
)

// ProfileFields carries the mutable pod leader fields. Nil means keep.
type ProfileFields struct {
	Name               *string
	Pod                *string
	PersonalitySummary *string
}

// Service manages pod leader profiles
type Service interface {
	// Get returns the profile for the given user, creating a stub from the
	// token identity on first access
	Get(ctx context.Context, userID, email string) (*entities.PodLeaderProfile, error)

	// Update applies profile changes for the given user
	Update(ctx context.Context, userID, email string, fields ProfileFields) (*entities.PodLeaderProfile, error)
}

type podLeaderService struct {
	repo   repositories.PodLeaderRepository
	logger *zap.Logger
}

// NewService constructs the pod leader service
func NewService(repo repositories.PodLeaderRepository, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &podLeaderService{repo: repo, logger: logger}
}

func (s *podLeaderService) Get(ctx context.Context, userID, email string) (*entities.PodLeaderProfile, error) {
	profile, err := s.repo.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &entities.PodLeaderProfile{ID: userID, Email: email}
	}
	return profile, nil
}

func (s *podLeaderService) Update(ctx context.Context, userID, email string, fields ProfileFields) (*entities.PodLeaderProfile, error) {
	profile, err := s.Get(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	if fields.Name != nil {
		profile.Name = *fields.Name
	}
	if fields.Pod != nil {
		profile.Pod = *fields.Pod
	}
	if fields.PersonalitySummary != nil {
		profile.PersonalitySummary = *fields.PersonalitySummary
	}

	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, err
	}
	s.logger.Info("🧩 pod leader profile updated", zap.String("user_id", userID))
	return profile, nil
}
