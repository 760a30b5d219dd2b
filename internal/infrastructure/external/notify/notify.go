package notify

import (
	"context"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
)

// AnalysisAlert carries the fields surfaced in pod leader notifications
type AnalysisAlert struct {
	ClientName   string
	Trajectory   string
	ChurnRisk    string
	DashboardURL string
}

// Notifier delivers analysis alerts to pod leaders over their configured channels
type Notifier interface {
	NotifyPodLeader(ctx context.Context, prefs *entities.NotificationPreferences, alert AnalysisAlert) error

	// NotifyTranscriptReceived announces a freshly ingested transcript.
	// Only sent when the per-client preference opts in.
	NotifyTranscriptReceived(ctx context.Context, prefs *entities.NotificationPreferences, clientName, meetingTitle string) error
}
