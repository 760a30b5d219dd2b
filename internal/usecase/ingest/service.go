package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	"github.com/clientwatch-team/clientwatch/internal/domain/repositories"
	"github.com/clientwatch-team/clientwatch/internal/infrastructure/external/fathom"
	"github.com/clientwatch-team/clientwatch/internal/infrastructure/external/notify"
	"github.com/clientwatch-team/clientwatch/internal/usecase/analysis"
	"github.com/clientwatch-team/clientwatch/internal/usecase/queue"
	"github.com/clientwatch-team/clientwatch/pkg/ai"
	"github.com/clientwatch-team/clientwatch/pkg/background"
)

// WebhookMeeting is the meeting block of a Fathom webhook event
type WebhookMeeting struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	MeetingTitle       string     `json:"meeting_title,omitempty"`
	URL                string     `json:"url"`
	ShareURL           string     `json:"share_url"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	ScheduledStartTime *time.Time `json:"scheduled_start_time,omitempty"`
	Participants       []string   `json:"participants,omitempty"`
	Transcript         string     `json:"transcript,omitempty"`
	Summary            string     `json:"summary,omitempty"`
}

// WebhookPayload is a Fathom meeting-completed event
type WebhookPayload struct {
	Meeting   WebhookMeeting `json:"meeting"`
	EventType string         `json:"event_type"`
	Timestamp string         `json:"timestamp"`
}

// Outcome classifies what the pipeline did with an event
type Outcome string

const (
	OutcomeQueued              Outcome = "queued"
	OutcomeSkippedUnmapped     Outcome = "skipped_unmapped"
	OutcomeSkippedNoTranscript Outcome = "skipped_no_transcript"
)

// Result reports the pipeline outcome for one event
type Result struct {
	Outcome             Outcome   `json:"outcome"`
	ClientID            uuid.UUID `json:"client_id,omitempty"`
	WindowSize          int       `json:"window_size,omitempty"`
	WindowReady         bool      `json:"window_ready"`
	AutoAnalysisStarted bool      `json:"auto_analysis_started"`
}

// FathomAPI is the slice of the Fathom client the pipeline needs
type FathomAPI interface {
	ListMeetings(ctx context.Context, createdAfter time.Time, includeTranscript bool) ([]fathom.Meeting, error)
	GetTranscript(ctx context.Context, recordingID int64) (string, error)
}

// Archive stores raw webhook payloads for replay
type Archive interface {
	Store(ctx context.Context, meetingID string, payload []byte) (string, error)
}

// SyncMarker persists the watermark between scheduled backfills
type SyncMarker interface {
	GetLastSync(ctx context.Context) (time.Time, error)
	SetLastSync(ctx context.Context, at time.Time) error
}

// Service is the webhook-to-queue ingest pipeline
type Service interface {
	// VerifySignature checks the webhook HMAC over the raw body
	VerifySignature(payload []byte, signature string) bool

	// HandleWebhook resolves, queues and possibly triggers analysis for
	// one meeting-completed event
	HandleWebhook(ctx context.Context, payload []byte) (*Result, error)

	// SyncSince backfills meetings created after the given time via the
	// Fathom API, returning how many transcripts were queued
	SyncSince(ctx context.Context, since time.Time) (int, error)

	// RunScheduledSync backfills from the stored watermark and advances it
	RunScheduledSync(ctx context.Context) error
}

type ingestService struct {
	mappingRepo   repositories.MappingRepository
	prefsRepo     repositories.NotificationPrefsRepository
	clientRepo    repositories.ClientRepository
	queueSvc      queue.Service
	analysisSvc   analysis.Service
	fathomAPI     FathomAPI
	archive       Archive
	marker        SyncMarker
	notifier      notify.Notifier
	runner        *background.Runner
	webhookSecret string
	logger        *zap.Logger
}

// NewService constructs the ingest pipeline
func NewService(
	mappingRepo repositories.MappingRepository,
	prefsRepo repositories.NotificationPrefsRepository,
	clientRepo repositories.ClientRepository,
	queueSvc queue.Service,
	analysisSvc analysis.Service,
	fathomAPI FathomAPI,
	archive Archive,
	marker SyncMarker,
	notifier notify.Notifier,
	runner *background.Runner,
	webhookSecret string,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if runner == nil {
		runner = background.NewRunner(logger)
	}
	return &ingestService{
		mappingRepo:   mappingRepo,
		prefsRepo:     prefsRepo,
		clientRepo:    clientRepo,
		queueSvc:      queueSvc,
		analysisSvc:   analysisSvc,
		fathomAPI:     fathomAPI,
		archive:       archive,
		marker:        marker,
		notifier:      notifier,
		runner:        runner,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

func (s *ingestService) VerifySignature(payload []byte, signature string) bool {
	return ai.VerifyFathomSignature(s.webhookSecret, payload, signature)
}

func (s *ingestService) HandleWebhook(ctx context.Context, payload []byte) (*Result, error) {
	var event WebhookPayload
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("malformed webhook payload: %w", err)
	}
	meeting := event.Meeting

	s.logger.Info("📨 fathom webhook received",
		zap.String("meeting_id", meeting.ID),
		zap.String("title", meeting.Title),
	)

	clientID, matched, err := s.resolveClient(ctx, meeting)
	if err != nil {
		return nil, err
	}
	if !matched {
		s.logger.Info("no client mapping matched, skipping",
			zap.String("meeting_id", meeting.ID),
		)
		return &Result{Outcome: OutcomeSkippedUnmapped}, nil
	}

	transcript := meeting.Transcript
	if transcript == "" {
		transcript, err = s.fetchTranscript(ctx, meeting.ID)
		if err != nil {
			return nil, fmt.Errorf("transcript fetch failed: %w", err)
		}
	}
	if transcript == "" {
		s.logger.Info("meeting has no transcript, skipping",
			zap.String("meeting_id", meeting.ID),
			zap.String("client_id", clientID.String()),
		)
		return &Result{Outcome: OutcomeSkippedNoTranscript, ClientID: clientID}, nil
	}

	// Archive is best effort. Losing a replay copy is not worth losing the
	// transcript.
	if s.archive != nil {
		if _, err := s.archive.Store(ctx, meeting.ID, payload); err != nil {
			s.logger.Warn("webhook archive failed",
				zap.String("meeting_id", meeting.ID),
				zap.Error(err),
			)
		}
	}

	return s.enqueue(ctx, clientID, meeting, transcript)
}

func (s *ingestService) SyncSince(ctx context.Context, since time.Time) (int, error) {
	meetings, err := s.fathomAPI.ListMeetings(ctx, since, true)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, m := range meetings {
		wm := WebhookMeeting{
			ID:           strconv.FormatInt(m.RecordingID, 10),
			Title:        m.Title,
			MeetingTitle: m.MeetingTitle,
			URL:          m.URL,
			Transcript:   fathom.FlattenTranscript(m.Transcript),
			Participants: inviteeEmails(m.Invitees),
		}
		if !m.CreatedAt.IsZero() {
			created := m.CreatedAt
			wm.CreatedAt = &created
		}
		if !m.ScheduledStartTime.IsZero() {
			scheduled := m.ScheduledStartTime
			wm.ScheduledStartTime = &scheduled
		}

		clientID, matched, err := s.resolveClient(ctx, wm)
		if err != nil {
			return queued, err
		}
		if !matched || wm.Transcript == "" {
			continue
		}

		if _, err := s.enqueue(ctx, clientID, wm, wm.Transcript); err != nil {
			s.logger.Warn("sync enqueue failed",
				zap.String("meeting_id", wm.ID),
				zap.Error(err),
			)
			continue
		}
		queued++
	}

	s.logger.Info("🔄 fathom sync complete",
		zap.Time("since", since),
		zap.Int("meetings_seen", len(meetings)),
		zap.Int("queued", queued),
	)

	return queued, nil
}

func (s *ingestService) RunScheduledSync(ctx context.Context) error {
	since, err := s.marker.GetLastSync(ctx)
	if err != nil {
		return err
	}
	if since.IsZero() {
		since = time.Now().Add(-24 * time.Hour)
	}

	started := time.Now().UTC()
	if _, err := s.SyncSince(ctx, since); err != nil {
		return err
	}
	return s.marker.SetLastSync(ctx, started)
}

// resolveClient matches a meeting to a client using the configured
// mappings, in order: participant email, title pattern, meeting-id
// allowlist. First strategy with a hit wins.
func (s *ingestService) resolveClient(ctx context.Context, meeting WebhookMeeting) (uuid.UUID, bool, error) {
	mappings, err := s.mappingRepo.ListAll(ctx)
	if err != nil {
		return uuid.Nil, false, err
	}

	for _, m := range mappings {
		if m.MatchesParticipant(meeting.Participants) {
			return m.ClientID, true, nil
		}
	}

	title := meeting.Title
	if title == "" {
		title = meeting.MeetingTitle
	}
	for _, m := range mappings {
		if m.MatchesTitle(title) {
			return m.ClientID, true, nil
		}
	}

	for _, m := range mappings {
		if m.MatchesMeetingID(meeting.ID) {
			return m.ClientID, true, nil
		}
	}

	return uuid.Nil, false, nil
}

func (s *ingestService) fetchTranscript(ctx context.Context, meetingID string) (string, error) {
	recordingID, err := strconv.ParseInt(meetingID, 10, 64)
	if err != nil {
		// Not an API recording id; nothing to fetch.
		return "", nil
	}
	return s.fathomAPI.GetTranscript(ctx, recordingID)
}

func (s *ingestService) enqueue(ctx context.Context, clientID uuid.UUID, meeting WebhookMeeting, transcript string) (*Result, error) {
	entry := entities.TranscriptEntry{
		FathomMeetingID: meeting.ID,
		Transcript:      transcript,
		MeetingDate:     meetingDate(meeting),
		MeetingTitle:    meetingTitle(meeting),
		AddedAt:         time.Now().UTC(),
	}

	q, err := s.queueSvc.AppendTranscript(ctx, clientID, entry)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Outcome:     OutcomeQueued,
		ClientID:    clientID,
		WindowSize:  len(q.Transcripts),
		WindowReady: q.IsReady(),
	}

	s.runner.Go(ctx, "transcript-received-note", func(taskCtx context.Context) error {
		return s.announceTranscript(taskCtx, clientID, entry.MeetingTitle)
	})

	if q.IsReady() {
		result.AutoAnalysisStarted = true
		s.runner.Go(ctx, "auto-analysis", func(taskCtx context.Context) error {
			_, err := s.analysisSvc.RunAuto(taskCtx, clientID)
			return err
		})
	}

	return result, nil
}

func (s *ingestService) announceTranscript(ctx context.Context, clientID uuid.UUID, meetingTitle string) error {
	prefs, err := s.prefsRepo.Find(ctx, clientID)
	if err != nil {
		return err
	}
	if prefs == nil || !prefs.NotifyOnNewTranscript {
		return nil
	}
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil || client == nil {
		return err
	}
	return s.notifier.NotifyTranscriptReceived(ctx, prefs, client.Name, meetingTitle)
}

func inviteeEmails(invitees []fathom.Invitee) []string {
	emails := make([]string, 0, len(invitees))
	for _, inv := range invitees {
		if inv.Email != "" {
			emails = append(emails, inv.Email)
		}
	}
	return emails
}

func meetingDate(m WebhookMeeting) time.Time {
	if m.CreatedAt != nil && !m.CreatedAt.IsZero() {
		return *m.CreatedAt
	}
	if m.ScheduledStartTime != nil && !m.ScheduledStartTime.IsZero() {
		return *m.ScheduledStartTime
	}
	return time.Now().UTC()
}

func meetingTitle(m WebhookMeeting) string {
	if m.Title != "" {
		return m.Title
	}
	if m.MeetingTitle != "" {
		return m.MeetingTitle
	}
	return "Untitled Meeting"
}
