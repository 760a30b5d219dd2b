package entities

import (
	"time"

	"github.com/google/uuid"
)

// NotificationPreferences selects where and when churn alerts are delivered
type NotificationPreferences struct {
	ClientID              uuid.UUID `json:"client_id" gorm:"type:uuid;primary_key"`
	PodLeaderEmail        string    `json:"pod_leader_email,omitempty" gorm:"type:varchar(255)"`
	SlackWebhookURL       string    `json:"slack_webhook_url,omitempty" gorm:"type:text"`
	NotifyOnNewTranscript bool      `json:"notify_on_new_transcript" gorm:"default:false"`
	NotifyOnAutoAnalysis  bool      `json:"notify_on_auto_analysis" gorm:"default:true"`
	CreatedAt             time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt             time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for NotificationPreferences
func (NotificationPreferences) TableName() string {
	return "notification_preferences"
}
