package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
)

// Service fans an alert out to every channel the pod leader has enabled.
// A failure on one channel does not block the others.
type Service struct {
	slack  *SlackSender
	email  *EmailSender
	logger *zap.Logger
}

// NewService creates the notifier
func NewService(slack *SlackSender, email *EmailSender, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{slack: slack, email: email, logger: logger}
}

// NotifyPodLeader sends the alert over Slack and email per preferences.
// Returns the first error encountered after attempting all channels.
func (s *Service) NotifyPodLeader(ctx context.Context, prefs *entities.NotificationPreferences, alert AnalysisAlert) error {
	if prefs == nil || !prefs.NotifyOnAutoAnalysis {
		return nil
	}

	var firstErr error

	if prefs.SlackWebhookURL != "" {
		if err := s.slack.Send(ctx, prefs.SlackWebhookURL, alert); err != nil {
			s.logger.Warn("slack notification failed",
				zap.String("client", alert.ClientName),
				zap.Error(err),
			)
			firstErr = err
		}
	}

	if prefs.PodLeaderEmail != "" && s.email.IsConfigured() {
		subject := fmt.Sprintf("New Analysis Ready: %s", alert.ClientName)
		if err := s.email.Send(ctx, prefs.PodLeaderEmail, subject, AlertBody(alert)); err != nil {
			s.logger.Warn("email notification failed",
				zap.String("client", alert.ClientName),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// NotifyTranscriptReceived posts a short Slack note when a transcript lands
// in a client's window, for pod leaders who opted in
func (s *Service) NotifyTranscriptReceived(ctx context.Context, prefs *entities.NotificationPreferences, clientName, meetingTitle string) error {
	if prefs == nil || !prefs.NotifyOnNewTranscript || prefs.SlackWebhookURL == "" {
		return nil
	}
	return s.slack.SendText(ctx, prefs.SlackWebhookURL,
		fmt.Sprintf("📄 New transcript received for *%s*: %s", clientName, meetingTitle))
}
