package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	"github.com/clientwatch-team/clientwatch/internal/domain/repositories"
)

type mappingRepository struct {
	db *gorm.DB
}

// NewMappingRepository creates a new client meeting mapping repository
func NewMappingRepository(db *gorm.DB) repositories.MappingRepository {
	return &mappingRepository{db: db}
}

func (r *mappingRepository) Find(ctx context.Context, clientID uuid.UUID) (*entities.ClientMeetingMapping, error) {
	var mapping entities.ClientMeetingMapping
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&mapping).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mapping, nil
}

func (r *mappingRepository) Save(ctx context.Context, mapping *entities.ClientMeetingMapping) error {
	if mapping == nil {
		return errors.New("mapping cannot be nil")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}},
			UpdateAll: true,
		}).
		Create(mapping).Error
}

func (r *mappingRepository) ListAll(ctx context.Context) ([]*entities.ClientMeetingMapping, error) {
	var mappings []*entities.ClientMeetingMapping
	if err := r.db.WithContext(ctx).Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}
