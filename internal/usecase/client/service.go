package client

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	"github.com/clientwatch-team/clientwatch/internal/domain/repositories"
	usecaseErrors "github.com/clientwatch-team/clientwatch/internal/usecase/errors"
)

// ListCache caches client list reads between requests
type ListCache interface {
	GetClientList(ctx context.Context, ownerID string) ([]*entities.ClientProfile, error)
	SetClientList(ctx context.Context, ownerID string, clients []*entities.ClientProfile) error
	InvalidateClientList(ctx context.Context, ownerID string) error
}

// UpdateFields carries the mutable client profile fields. Nil means keep.
type UpdateFields struct {
	Name         *string
	Pod          *string
	MonthlySpend *string
	Duration     *string
	Notes        *string
}

// Service manages client profiles and their per-client settings
type Service interface {
	Create(ctx context.Context, ownerID string, profile *entities.ClientProfile) (*entities.ClientProfile, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.ClientProfile, error)
	List(ctx context.Context, ownerID string) ([]*entities.ClientProfile, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*entities.ClientProfile, error)

	GetMapping(ctx context.Context, clientID uuid.UUID) (*entities.ClientMeetingMapping, error)
	SaveMapping(ctx context.Context, mapping *entities.ClientMeetingMapping) error

	GetNotificationPrefs(ctx context.Context, clientID uuid.UUID) (*entities.NotificationPreferences, error)
	SaveNotificationPrefs(ctx context.Context, prefs *entities.NotificationPreferences) error
}

type clientService struct {
	clientRepo  repositories.ClientRepository
	mappingRepo repositories.MappingRepository
	prefsRepo   repositories.NotificationPrefsRepository
	cache       ListCache
	logger      *zap.Logger
}

// NewService constructs the client service
func NewService(
	clientRepo repositories.ClientRepository,
	mappingRepo repositories.MappingRepository,
	prefsRepo repositories.NotificationPrefsRepository,
	cache ListCache,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &clientService{
		clientRepo:  clientRepo,
		mappingRepo: mappingRepo,
		prefsRepo:   prefsRepo,
		cache:       cache,
		logger:      logger,
	}
}

func (s *clientService) Create(ctx context.Context, ownerID string, profile *entities.ClientProfile) (*entities.ClientProfile, error) {
	if profile.Name == "" {
		return nil, usecaseErrors.ErrInvalidInput
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.OwnerID = ownerID

	if err := s.clientRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	s.invalidate(ctx, ownerID)

	s.logger.Info("👤 client created",
		zap.String("client_id", profile.ID.String()),
		zap.String("name", profile.Name),
	)
	return profile, nil
}

func (s *clientService) Get(ctx context.Context, id uuid.UUID) (*entities.ClientProfile, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, usecaseErrors.ErrClientNotFound
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context, ownerID string) ([]*entities.ClientProfile, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetClientList(ctx, ownerID); err == nil && cached != nil {
			return cached, nil
		}
	}

	// Dashboard read path degrades to an empty list on store failure.
	all, err := s.clientRepo.List(ctx)
	if err != nil {
		s.logger.Warn("client list read failed, serving empty", zap.Error(err))
		return []*entities.ClientProfile{}, nil
	}

	clients := all
	if ownerID != "" {
		clients = make([]*entities.ClientProfile, 0, len(all))
		for _, c := range all {
			if c.OwnerID == ownerID {
				clients = append(clients, c)
			}
		}
	}

	if s.cache != nil {
		if err := s.cache.SetClientList(ctx, ownerID, clients); err != nil {
			s.logger.Warn("client list cache write failed", zap.Error(err))
		}
	}
	return clients, nil
}

func (s *clientService) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*entities.ClientProfile, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields.Name != nil {
		if *fields.Name == "" {
			return nil, usecaseErrors.ErrInvalidInput
		}
		client.Name = *fields.Name
	}
	if fields.Pod != nil {
		client.Pod = *fields.Pod
	}
	if fields.MonthlySpend != nil {
		client.MonthlySpend = *fields.MonthlySpend
	}
	if fields.Duration != nil {
		client.Duration = *fields.Duration
	}
	if fields.Notes != nil {
		client.Notes = *fields.Notes
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	s.invalidate(ctx, client.OwnerID)
	return client, nil
}

func (s *clientService) GetMapping(ctx context.Context, clientID uuid.UUID) (*entities.ClientMeetingMapping, error) {
	if _, err := s.Get(ctx, clientID); err != nil {
		return nil, err
	}
	return s.mappingRepo.Find(ctx, clientID)
}

func (s *clientService) SaveMapping(ctx context.Context, mapping *entities.ClientMeetingMapping) error {
	if _, err := s.Get(ctx, mapping.ClientID); err != nil {
		return err
	}
	if err := s.mappingRepo.Save(ctx, mapping); err != nil {
		return err
	}
	s.logger.Info("🔗 client mapping updated",
		zap.String("client_id", mapping.ClientID.String()),
		zap.Int("participant_emails", len(mapping.ParticipantEmails)),
		zap.Bool("title_pattern", mapping.TitlePattern != ""),
	)
	return nil
}

func (s *clientService) GetNotificationPrefs(ctx context.Context, clientID uuid.UUID) (*entities.NotificationPreferences, error) {
	if _, err := s.Get(ctx, clientID); err != nil {
		return nil, err
	}
	return s.prefsRepo.Find(ctx, clientID)
}

func (s *clientService) SaveNotificationPrefs(ctx context.Context, prefs *entities.NotificationPreferences) error {
	if _, err := s.Get(ctx, prefs.ClientID); err != nil {
		return err
	}
	return s.prefsRepo.Save(ctx, prefs)
}

func (s *clientService) invalidate(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateClientList(ctx, ownerID); err != nil {
		s.logger.Warn("client list cache invalidation failed", zap.Error(err))
	}
	// The unscoped list is cached under the empty owner key.
	if ownerID != "" {
		if err := s.cache.InvalidateClientList(ctx, ""); err != nil {
			s.logger.Warn("client list cache invalidation failed", zap.Error(err))
		}
	}
}
