package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	"github.com/clientwatch-team/clientwatch/internal/domain/repositories"
	usecaseErrors "github.com/clientwatch-team/clientwatch/internal/usecase/errors"
)

// Service manages the per-client transcript window
type Service interface {
	// AppendTranscript adds a transcript to the client's window, creating
	// the window on first ingest, and returns the updated state
	AppendTranscript(ctx context.Context, clientID uuid.UUID, entry entities.TranscriptEntry) (*entities.ClientTranscriptQueue, error)

	// Get returns the client's window, or nil when nothing was ingested yet
	Get(ctx context.Context, clientID uuid.UUID) (*entities.ClientTranscriptQueue, error)

	// SetAutoAnalysis toggles automatic analysis for the client
	SetAutoAnalysis(ctx context.Context, clientID uuid.UUID, enabled bool) error

	// MarkProcessed stamps the window after a completed analysis run
	MarkProcessed(ctx context.Context, clientID uuid.UUID, at time.Time) error
}

type queueService struct {
	queueRepo repositories.QueueRepository
	logger    *zap.Logger
}

// NewService constructs the queue service
func NewService(queueRepo repositories.QueueRepository, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &queueService{queueRepo: queueRepo, logger: logger}
}

func (s *queueService) AppendTranscript(ctx context.Context, clientID uuid.UUID, entry entities.TranscriptEntry) (*entities.ClientTranscriptQueue, error) {
	if entry.Transcript == "" {
		return nil, usecaseErrors.ErrEmptyTranscript
	}
	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now().UTC()
	}
	if entry.MeetingDate.IsZero() {
		entry.MeetingDate = entry.AddedAt
	}

	q, err := s.queueRepo.Find(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		q = entities.NewClientTranscriptQueue(clientID)
	}

	q.Append(entry)

	if err := s.queueRepo.Save(ctx, q); err != nil {
		return nil, err
	}

	s.logger.Info("📥 transcript queued",
		zap.String("client_id", clientID.String()),
		zap.String("meeting_id", entry.FathomMeetingID),
		zap.Int("window_size", len(q.Transcripts)),
		zap.Bool("ready", q.IsReady()),
	)

	return q, nil
}

func (s *queueService) Get(ctx context.Context, clientID uuid.UUID) (*entities.ClientTranscriptQueue, error) {
	return s.queueRepo.Find(ctx, clientID)
}

func (s *queueService) SetAutoAnalysis(ctx context.Context, clientID uuid.UUID, enabled bool) error {
	q, err := s.queueRepo.Find(ctx, clientID)
	if err != nil {
		return err
	}
	if q == nil {
		q = entities.NewClientTranscriptQueue(clientID)
	}
	q.AutoAnalysisEnabled = enabled
	return s.queueRepo.Save(ctx, q)
}

func (s *queueService) MarkProcessed(ctx context.Context, clientID uuid.UUID, at time.Time) error {
	return s.queueRepo.MarkProcessed(ctx, clientID, at)
}
