package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	"github.com/clientwatch-team/clientwatch/internal/domain/repositories"
)

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client profile repository
func NewClientRepository(db *gorm.DB) repositories.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *entities.ClientProfile) error {
	if client == nil {
		return errors.New("client cannot be nil")
	}
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) Update(ctx context.Context, client *entities.ClientProfile) error {
	if client == nil {
		return errors.New("client cannot be nil")
	}
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ClientProfile, error) {
	var client entities.ClientProfile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context) ([]*entities.ClientProfile, error) {
	var clients []*entities.ClientProfile
	if err := r.db.WithContext(ctx).Order("name asc").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}
