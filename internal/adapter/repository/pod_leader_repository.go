package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	"github.com/clientwatch-team/clientwatch/internal/domain/repositories"
)

type podLeaderRepository struct {
	db *gorm.DB
}

// NewPodLeaderRepository creates a new pod leader profile repository
func NewPodLeaderRepository(db *gorm.DB) repositories.PodLeaderRepository {
	return &podLeaderRepository{db: db}
}

func (r *podLeaderRepository) Find(ctx context.Context, userID string) (*entities.PodLeaderProfile, error) {
	var profile entities.PodLeaderProfile
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *podLeaderRepository) FindByEmail(ctx context.Context, email string) (*entities.PodLeaderProfile, error) {
	var profile entities.PodLeaderProfile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *podLeaderRepository) Save(ctx context.Context, profile *entities.PodLeaderProfile) error {
	if profile == nil {
		return errors.New("profile cannot be nil")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(profile).Error
}
