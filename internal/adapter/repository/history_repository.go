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

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new relationship history repository
func NewHistoryRepository(db *gorm.DB) repositories.HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Find(ctx context.Context, clientID uuid.UUID) (*entities.ClientRelationshipHistory, error) {
	var history entities.ClientRelationshipHistory
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&history).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &history, nil
}

func (r *historyRepository) Save(ctx context.Context, history *entities.ClientRelationshipHistory) error {
	if history == nil {
		return errors.New("history cannot be nil")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}},
			UpdateAll: true,
		}).
		Create(history).Error
}
