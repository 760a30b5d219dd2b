package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	"github.com/clientwatch-team/clientwatch/internal/domain/repositories"
)

type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis record repository
func NewAnalysisRepository(db *gorm.DB) repositories.AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(ctx context.Context, record *entities.AnalysisRecord) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *analysisRepository) Update(ctx context.Context, record *entities.AnalysisRecord) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *analysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.AnalysisRecord, error) {
	var record entities.AnalysisRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *analysisRepository) ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*entities.AnalysisRecord, error) {
	var records []*entities.AnalysisRecord
	q := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("date desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *analysisRepository) CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.AnalysisRecord{}).
		Where("client_id = ?", clientID).
		Count(&count).Error
	return count, err
}
