package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	"github.com/clientwatch-team/clientwatch/internal/domain/repositories"
	"github.com/clientwatch-team/clientwatch/internal/infrastructure/external/notify"
	usecaseErrors "github.com/clientwatch-team/clientwatch/internal/usecase/errors"
	"github.com/clientwatch-team/clientwatch/internal/usecase/history"
	"github.com/clientwatch-team/clientwatch/pkg/background"
)

// RunOptions carries the optional inputs of a manual run
type RunOptions struct {
	// Context is free-form background the pod leader typed for this run
	Context string
}

// Service orchestrates analysis runs end to end: gather inputs, call the
// analyzer, persist, then fan out history and notification updates.
type Service interface {
	// Run executes a manual analysis for a client's current window
	Run(ctx context.Context, clientID uuid.UUID, ownerID string, opts RunOptions) (*entities.AnalysisRecord, error)

	// RunAuto executes an automatic run after ingest filled the window.
	// Returns nil, nil when the window was already processed or auto
	// analysis is disabled.
	RunAuto(ctx context.Context, clientID uuid.UUID) (*entities.AnalysisRecord, error)

	// Rerun re-executes an analysis with pod leader feedback, replacing
	// the stored result in place
	Rerun(ctx context.Context, analysisID uuid.UUID, feedback entities.AnalysisFeedback) (*entities.AnalysisRecord, error)

	// AppendTranscripts re-runs an analysis with extra context transcripts
	AppendTranscripts(ctx context.Context, analysisID uuid.UUID, transcripts []string) (*entities.AnalysisRecord, error)

	// FollowUp answers a question about a finished analysis
	FollowUp(ctx context.Context, analysisID uuid.UUID, chat []ChatMessage, question string) (string, error)

	// Get returns one analysis record
	Get(ctx context.Context, analysisID uuid.UUID) (*entities.AnalysisRecord, error)

	// ListByClient returns a client's analyses, newest first
	ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*entities.AnalysisRecord, error)
}

type analysisService struct {
	analysisRepo  repositories.AnalysisRepository
	clientRepo    repositories.ClientRepository
	queueRepo     repositories.QueueRepository
	podLeaderRepo repositories.PodLeaderRepository
	prefsRepo     repositories.NotificationPrefsRepository
	historySvc    history.Service
	analyzer      Analyzer
	notifier      notify.Notifier
	runner        *background.Runner
	dashboardURL  string
	logger        *zap.Logger
}

// NewService constructs the analysis orchestrator
func NewService(
	analysisRepo repositories.AnalysisRepository,
	clientRepo repositories.ClientRepository,
	queueRepo repositories.QueueRepository,
	podLeaderRepo repositories.PodLeaderRepository,
	prefsRepo repositories.NotificationPrefsRepository,
	historySvc history.Service,
	analyzer Analyzer,
	notifier notify.Notifier,
	runner *background.Runner,
	dashboardURL string,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if runner == nil {
		runner = background.NewRunner(logger)
	}
	return &analysisService{
		analysisRepo:  analysisRepo,
		clientRepo:    clientRepo,
		queueRepo:     queueRepo,
		podLeaderRepo: podLeaderRepo,
		prefsRepo:     prefsRepo,
		historySvc:    historySvc,
		analyzer:      analyzer,
		notifier:      notifier,
		runner:        runner,
		dashboardURL:  dashboardURL,
		logger:        logger,
	}
}

func (s *analysisService) Run(ctx context.Context, clientID uuid.UUID, ownerID string, opts RunOptions) (*entities.AnalysisRecord, error) {
	client, q, err := s.loadClientAndQueue(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(q.Transcripts) < entities.QueueWindowSize {
		return nil, usecaseErrors.ErrQueueNotReady
	}
	if ownerID == "" {
		ownerID = client.OwnerID
	}

	data, err := s.buildTranscriptData(ctx, client, q, ownerID, opts.Context)
	if err != nil {
		return nil, err
	}

	return s.execute(ctx, client, ownerID, data, true)
}

func (s *analysisService) RunAuto(ctx context.Context, clientID uuid.UUID) (*entities.AnalysisRecord, error) {
	client, q, err := s.loadClientAndQueue(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !q.IsReady() {
		return nil, nil
	}
	// Skip when nothing new arrived since the last processed run. Keeps
	// replayed webhooks from burning analyzer calls.
	if q.LastProcessed != nil && !q.NewestAddedAt().After(*q.LastProcessed) {
		s.logger.Info("auto analysis skipped, window already processed",
			zap.String("client_id", clientID.String()),
		)
		return nil, nil
	}

	data, err := s.buildTranscriptData(ctx, client, q, client.OwnerID, "")
	if err != nil {
		return nil, err
	}

	return s.execute(ctx, client, client.OwnerID, data, true)
}

func (s *analysisService) Rerun(ctx context.Context, analysisID uuid.UUID, feedback entities.AnalysisFeedback) (*entities.AnalysisRecord, error) {
	record, err := s.analysisRepo.FindByID(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, usecaseErrors.ErrAnalysisNotFound
	}

	data := record.TranscriptData.Data()
	data.Feedback = &feedback

	return s.reanalyze(ctx, record, data)
}

func (s *analysisService) AppendTranscripts(ctx context.Context, analysisID uuid.UUID, transcripts []string) (*entities.AnalysisRecord, error) {
	if len(transcripts) == 0 {
		return nil, usecaseErrors.ErrInvalidInput
	}
	record, err := s.analysisRepo.FindByID(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, usecaseErrors.ErrAnalysisNotFound
	}

	data := record.TranscriptData.Data()
	data.AdditionalTranscripts = append(data.AdditionalTranscripts, transcripts...)

	return s.reanalyze(ctx, record, data)
}

func (s *analysisService) FollowUp(ctx context.Context, analysisID uuid.UUID, chat []ChatMessage, question string) (string, error) {
	if question == "" {
		return "", usecaseErrors.ErrInvalidInput
	}
	record, err := s.analysisRepo.FindByID(ctx, analysisID)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", usecaseErrors.ErrAnalysisNotFound
	}
	if !s.analyzer.IsConfigured() {
		return "", usecaseErrors.ErrAnalyzerNotConfigured
	}

	return s.analyzer.FollowUp(ctx, record.TranscriptData.Data(), record.Result.Data(), chat, question)
}

func (s *analysisService) Get(ctx context.Context, analysisID uuid.UUID) (*entities.AnalysisRecord, error) {
	record, err := s.analysisRepo.FindByID(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, usecaseErrors.ErrAnalysisNotFound
	}
	return record, nil
}

func (s *analysisService) ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*entities.AnalysisRecord, error) {
	return s.analysisRepo.ListByClient(ctx, clientID, limit)
}

func (s *analysisService) loadClientAndQueue(ctx context.Context, clientID uuid.UUID) (*entities.ClientProfile, *entities.ClientTranscriptQueue, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return nil, nil, usecaseErrors.ErrClientNotFound
	}

	q, err := s.queueRepo.Find(ctx, clientID)
	if err != nil {
		return nil, nil, err
	}
	if q == nil {
		return nil, nil, usecaseErrors.ErrQueueNotReady
	}
	return client, q, nil
}

func (s *analysisService) buildTranscriptData(ctx context.Context, client *entities.ClientProfile, q *entities.ClientTranscriptQueue, ownerID, extraContext string) (entities.TranscriptData, error) {
	data := entities.TranscriptData{
		Oldest:  q.BySequence(entities.SequenceOldest),
		Middle:  q.BySequence(entities.SequenceMiddle),
		Recent:  q.BySequence(entities.SequenceRecent),
		Context: extraContext,
		ClientProfile: &entities.ClientContext{
			Name:         client.Name,
			MonthlySpend: client.MonthlySpend,
			Duration:     client.Duration,
			Notes:        client.Notes,
		},
	}

	hc, err := s.historySvc.BuildContext(ctx, client.ID)
	if err != nil {
		return data, err
	}
	data.HistoricalContext = hc

	if ownerID != "" {
		leader, err := s.podLeaderRepo.Find(ctx, ownerID)
		if err != nil {
			return data, err
		}
		if leader != nil {
			data.PersonalitySummary = leader.PersonalitySummary
		}
	}

	return data, nil
}

// execute runs the analyzer and persists a fresh record. History and
// notifications are folded in detached from the caller so a slow Slack
// webhook or summary compression never delays the response.
func (s *analysisService) execute(ctx context.Context, client *entities.ClientProfile, ownerID string, data entities.TranscriptData, markProcessed bool) (*entities.AnalysisRecord, error) {
	if !s.analyzer.IsConfigured() {
		return nil, usecaseErrors.ErrAnalyzerNotConfigured
	}

	started := time.Now()
	result, err := s.analyzer.Analyze(ctx, data)
	if err != nil {
		s.logger.Error("analysis run failed",
			zap.String("client_id", client.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrAnalysisFailed, err)
	}

	record := entities.NewAnalysisRecord(client.ID, ownerID, *result, data)
	if err := s.analysisRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	if markProcessed {
		if err := s.queueRepo.MarkProcessed(ctx, client.ID, record.Date); err != nil {
			s.logger.Warn("failed to stamp queue as processed",
				zap.String("client_id", client.ID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("✅ analysis complete",
		zap.String("client_id", client.ID.String()),
		zap.String("analysis_id", record.ID.String()),
		zap.String("trajectory", result.BottomLine.Trajectory),
		zap.String("churn_risk", result.BottomLine.ChurnRisk),
		zap.Duration("elapsed", time.Since(started)),
	)

	s.runner.Go(ctx, "history-update", func(taskCtx context.Context) error {
		_, err := s.historySvc.Update(taskCtx, client.ID, client.Name, *result, record.Date)
		return err
	})

	s.runner.Go(ctx, "notify-pod-leader", func(taskCtx context.Context) error {
		return s.sendAlert(taskCtx, client, result)
	})

	return record, nil
}

// reanalyze replaces an existing record's result in place, keeping its id
// and position in the client's timeline
func (s *analysisService) reanalyze(ctx context.Context, record *entities.AnalysisRecord, data entities.TranscriptData) (*entities.AnalysisRecord, error) {
	if !s.analyzer.IsConfigured() {
		return nil, usecaseErrors.ErrAnalyzerNotConfigured
	}

	result, err := s.analyzer.Analyze(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrAnalysisFailed, err)
	}

	record.Result = datatypes.NewJSONType(*result)
	record.TranscriptData = datatypes.NewJSONType(data)
	if err := s.analysisRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("🔁 analysis replaced",
		zap.String("analysis_id", record.ID.String()),
		zap.String("trajectory", result.BottomLine.Trajectory),
	)

	client, err := s.clientRepo.FindByID(ctx, record.ClientID)
	if err != nil || client == nil {
		s.logger.Warn("client lookup failed after replace, skipping history rework",
			zap.String("client_id", record.ClientID.String()),
			zap.Error(err),
		)
		return record, nil
	}

	s.runner.Go(ctx, "history-rework", func(taskCtx context.Context) error {
		_, err := s.historySvc.Rework(taskCtx, client.ID, client.Name, *result, record.Date)
		return err
	})

	s.runner.Go(ctx, "notify-pod-leader", func(taskCtx context.Context) error {
		return s.sendAlert(taskCtx, client, result)
	})

	return record, nil
}

func (s *analysisService) sendAlert(ctx context.Context, client *entities.ClientProfile, result *entities.AnalysisResult) error {
	prefs, err := s.prefsRepo.Find(ctx, client.ID)
	if err != nil {
		return err
	}
	if prefs == nil {
		return nil
	}

	alert := notify.AnalysisAlert{
		ClientName: client.Name,
		Trajectory: result.BottomLine.Trajectory,
		ChurnRisk:  result.BottomLine.ChurnRisk,
	}
	if s.dashboardURL != "" {
		alert.DashboardURL = fmt.Sprintf("%s/clients/%s", s.dashboardURL, client.ID)
	}
	return s.notifier.NotifyPodLeader(ctx, prefs, alert)
}
