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

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification preferences repository
func NewNotificationRepository(db *gorm.DB) repositories.NotificationPrefsRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Find(ctx context.Context, clientID uuid.UUID) (*entities.NotificationPreferences, error) {
	var prefs entities.NotificationPreferences
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&prefs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prefs, nil
}

func (r *notificationRepository) Save(ctx context.Context, prefs *entities.NotificationPreferences) error {
	if prefs == nil {
		return errors.New("preferences cannot be nil")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}},
			UpdateAll: true,
		}).
		Create(prefs).Error
}
