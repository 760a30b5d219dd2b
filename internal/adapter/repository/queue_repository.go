package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	"github.com/clientwatch-team/clientwatch/internal/domain/repositories"
)

type queueRepository struct {
	db *gorm.DB
}

// NewQueueRepository creates a new transcript queue repository
func NewQueueRepository(db *gorm.DB) repositories.QueueRepository {
	return &queueRepository{db: db}
}

func (r *queueRepository) Find(ctx context.Context, clientID uuid.UUID) (*entities.ClientTranscriptQueue, error) {
	var queue entities.ClientTranscriptQueue
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&queue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &queue, nil
}

func (r *queueRepository) Save(ctx context.Context, queue *entities.ClientTranscriptQueue) error {
	if queue == nil {
		return errors.New("queue cannot be nil")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}},
			UpdateAll: true,
		}).
		Create(queue).Error
}

func (r *queueRepository) MarkProcessed(ctx context.Context, clientID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.ClientTranscriptQueue{}).
		Where("client_id = ?", clientID).
		Update("last_processed", at).Error
}
