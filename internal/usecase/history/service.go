package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	"github.com/clientwatch-team/clientwatch/internal/domain/repositories"
)

const dateLayout = "2006-01-02"

// trendWindow is how many recent trajectory points feed the trend label
const trendWindow = 5

// Compressor regenerates the cumulative summary from the previous summary
// plus the newest analysis
type Compressor interface {
	Compress(ctx context.Context, existingSummary string, result entities.AnalysisResult, clientName string) (string, error)
}

// Service maintains the rolling relationship memory per client
type Service interface {
	// Get returns the client's history, or nil when no analysis ran yet
	Get(ctx context.Context, clientID uuid.UUID) (*entities.ClientRelationshipHistory, error)

	// BuildContext renders the history into the analyzer's input shape.
	// Returns nil when no history exists.
	BuildContext(ctx context.Context, clientID uuid.UUID) (*entities.HistoricalContext, error)

	// Update folds one completed analysis into the history
	Update(ctx context.Context, clientID uuid.UUID, clientName string, result entities.AnalysisResult, analysisDate time.Time) (*entities.ClientRelationshipHistory, error)

	// Rework refreshes the history after an analysis was replaced in
	// place. The latest trajectory point and cumulative summary are
	// regenerated; the meeting counter stays put.
	Rework(ctx context.Context, clientID uuid.UUID, clientName string, result entities.AnalysisResult, analysisDate time.Time) (*entities.ClientRelationshipHistory, error)

	// TrendLabel summarizes the recent trajectory direction
	TrendLabel(h *entities.ClientRelationshipHistory) string
}

type historyService struct {
	historyRepo repositories.HistoryRepository
	compressor  Compressor
	logger      *zap.Logger
}

// NewService constructs the history service
func NewService(historyRepo repositories.HistoryRepository, compressor Compressor, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &historyService{
		historyRepo: historyRepo,
		compressor:  compressor,
		logger:      logger,
	}
}

func (s *historyService) Get(ctx context.Context, clientID uuid.UUID) (*entities.ClientRelationshipHistory, error) {
	return s.historyRepo.Find(ctx, clientID)
}

func (s *historyService) BuildContext(ctx context.Context, clientID uuid.UUID) (*entities.HistoricalContext, error) {
	h, err := s.historyRepo.Find(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, nil
	}

	moments := make([]string, 0, len(h.KeyMoments))
	for _, m := range h.KeyMoments {
		moments = append(moments, fmt.Sprintf("%s: %q (%s)", m.Date, m.Quote, m.Significance))
	}

	return &entities.HistoricalContext{
		CumulativeSummary:     h.CumulativeSummary,
		TotalPreviousMeetings: h.TotalMeetingsAnalyzed,
		TrajectoryTrend:       s.TrendLabel(h),
		KeyHistoricalMoments:  moments,
	}, nil
}

func (s *historyService) Update(ctx context.Context, clientID uuid.UUID, clientName string, result entities.AnalysisResult, analysisDate time.Time) (*entities.ClientRelationshipHistory, error) {
	h, err := s.historyRepo.Find(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		h = &entities.ClientRelationshipHistory{
			ClientID:          clientID,
			FirstAnalysisDate: analysisDate,
		}
	}

	date := analysisDate.UTC().Format(dateLayout)

	h.TotalMeetingsAnalyzed++
	h.LastAnalysisDate = analysisDate

	h.TrajectoryHistory = append(h.TrajectoryHistory, entities.TrajectoryPoint{
		Date:       date,
		Trajectory: result.BottomLine.Trajectory,
		ChurnRisk:  result.BottomLine.ChurnRisk,
		Confidence: result.BottomLine.ClientConfidence,
	})
	h.TrajectoryHistory = trimTrajectory(h.TrajectoryHistory, entities.MaxTrajectoryPoints)

	h.KeyMoments = append(h.KeyMoments, pickKeyMoments(result, date)...)
	h.KeyMoments = trimMoments(h.KeyMoments, entities.MaxKeyMoments)

	mergeParticipants(h, result.CommunicationStyles, date)

	summary, err := s.compressor.Compress(ctx, h.CumulativeSummary, result, clientName)
	if err != nil {
		s.logger.Warn("summary compression failed, using fallback",
			zap.String("client_id", clientID.String()),
			zap.Error(err),
		)
		summary = fallbackSummary(h, result)
	}
	h.CumulativeSummary = summary

	if err := s.historyRepo.Save(ctx, h); err != nil {
		return nil, err
	}

	s.logger.Info("🧠 relationship history updated",
		zap.String("client_id", clientID.String()),
		zap.Int("total_meetings", h.TotalMeetingsAnalyzed),
		zap.Int("key_moments", len(h.KeyMoments)),
	)

	return h, nil
}

func (s *historyService) Rework(ctx context.Context, clientID uuid.UUID, clientName string, result entities.AnalysisResult, analysisDate time.Time) (*entities.ClientRelationshipHistory, error) {
	h, err := s.historyRepo.Find(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		// the original run never made it into the history, fold it in fully
		return s.Update(ctx, clientID, clientName, result, analysisDate)
	}

	point := entities.TrajectoryPoint{
		Date:       analysisDate.UTC().Format(dateLayout),
		Trajectory: result.BottomLine.Trajectory,
		ChurnRisk:  result.BottomLine.ChurnRisk,
		Confidence: result.BottomLine.ClientConfidence,
	}
	if n := len(h.TrajectoryHistory); n > 0 {
		h.TrajectoryHistory[n-1] = point
	} else {
		h.TrajectoryHistory = append(h.TrajectoryHistory, point)
	}

	summary, err := s.compressor.Compress(ctx, h.CumulativeSummary, result, clientName)
	if err != nil {
		s.logger.Warn("summary compression failed, using fallback",
			zap.String("client_id", clientID.String()),
			zap.Error(err),
		)
		summary = fallbackSummary(h, result)
	}
	h.CumulativeSummary = summary

	if err := s.historyRepo.Save(ctx, h); err != nil {
		return nil, err
	}

	s.logger.Info("🧠 relationship history reworked",
		zap.String("client_id", clientID.String()),
		zap.Int("total_meetings", h.TotalMeetingsAnalyzed),
	)

	return h, nil
}

// TrendLabel summarizes the recent trajectory direction from the last few
// points, e.g. "Stable → Declining over 4 analyses"
func (s *historyService) TrendLabel(h *entities.ClientRelationshipHistory) string {
	if h == nil || len(h.TrajectoryHistory) < 2 {
		return "First analysis"
	}
	points := h.RecentTrajectory(trendWindow)
	first := points[0]
	last := points[len(points)-1]
	return fmt.Sprintf("%s → %s over %d analyses", first.Trajectory, last.Trajectory, len(points))
}

// pickKeyMoments selects up to MaxNewMomentsPerUpdate critical moments from
// the result, preferring high-confidence reads
func pickKeyMoments(result entities.AnalysisResult, date string) []entities.KeyMoment {
	moments := make([]entities.KeyMoment, 0, entities.MaxNewMomentsPerUpdate)

	add := func(confidence string) {
		for _, cm := range result.CriticalMoments {
			if len(moments) >= entities.MaxNewMomentsPerUpdate {
				return
			}
			if cm.Confidence != confidence || cm.Quote == "" {
				continue
			}
			moments = append(moments, entities.KeyMoment{
				Date:         date,
				Quote:        cm.Quote,
				Significance: cm.DeepMeaning,
				Sentiment:    momentSentiment(cm, result.BottomLine.Trajectory),
			})
		}
	}
	add("High")
	add("Medium")
	add("Low")

	return moments
}

func momentSentiment(cm entities.CriticalMoment, trajectory string) string {
	switch cm.Type {
	case "trust", "financial":
		return "negative"
	}
	switch trajectory {
	case entities.TrajectoryStrengthening:
		return "positive"
	case entities.TrajectoryDeclining, entities.TrajectoryCritical:
		return "negative"
	}
	return "neutral"
}

// mergeParticipants folds new communication styles into the tracked
// profiles, matching participants case-insensitively by name
func mergeParticipants(h *entities.ClientRelationshipHistory, styles []entities.CommunicationStyle, date string) {
	for _, cs := range styles {
		if cs.Participant == "" {
			continue
		}

		idx := -1
		for i := range h.ParticipantProfiles {
			if strings.EqualFold(h.ParticipantProfiles[i].Name, cs.Participant) {
				idx = i
				break
			}
		}
		if idx < 0 {
			h.ParticipantProfiles = append(h.ParticipantProfiles, entities.ParticipantProfile{
				Name: cs.Participant,
			})
			idx = len(h.ParticipantProfiles) - 1
		}

		p := &h.ParticipantProfiles[idx]
		p.CurrentStyle = cs.Style
		p.Notes = cs.Evolution
		p.StyleHistory = append(p.StyleHistory, entities.StylePoint{Date: date, Style: cs.Style})
		if len(p.StyleHistory) > entities.MaxStylePoints {
			p.StyleHistory = p.StyleHistory[len(p.StyleHistory)-entities.MaxStylePoints:]
		}
	}
}

func trimTrajectory(points []entities.TrajectoryPoint, max int) []entities.TrajectoryPoint {
	if len(points) <= max {
		return points
	}
	return points[len(points)-max:]
}

func trimMoments(moments []entities.KeyMoment, max int) []entities.KeyMoment {
	if len(moments) <= max {
		return moments
	}
	return moments[len(moments)-max:]
}

// fallbackSummary produces a deterministic one-line summary when the
// compressor is unavailable, so history updates never block on the model
func fallbackSummary(h *entities.ClientRelationshipHistory, result entities.AnalysisResult) string {
	line := fmt.Sprintf("Analyzed %d meetings through %s. Current trajectory: %s, churn risk: %s.",
		h.TotalMeetingsAnalyzed,
		h.LastAnalysisDate.UTC().Format(dateLayout),
		result.BottomLine.Trajectory,
		result.BottomLine.ChurnRisk,
	)
	if going := result.BottomLine.WhatsReallyGoingOn; going != "" {
		line += " " + going
	}
	return line
}
