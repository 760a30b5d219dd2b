package entities

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ClientMeetingMapping holds the rules used to associate inbound Fathom
// meetings with a client. Resolution precedence is participant email,
// then title pattern, then explicit meeting-id allowlist.
type ClientMeetingMapping struct {
	ClientID          uuid.UUID `json:"client_id" gorm:"type:uuid;primary_key"`
	ParticipantEmails []string  `json:"participant_emails" gorm:"type:jsonb;serializer:json"`
	TitlePattern      string    `json:"title_pattern,omitempty" gorm:"type:varchar(500)"`
	FathomMeetingIDs  []string  `json:"fathom_meeting_ids" gorm:"type:jsonb;serializer:json"`
	AutoDetect        bool      `json:"auto_detect" gorm:"default:false"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for ClientMeetingMapping
func (ClientMeetingMapping) TableName() string {
	return "client_mappings"
}

// MatchesParticipant reports whether any of the given emails is configured
func (m *ClientMeetingMapping) MatchesParticipant(emails []string) bool {
	for _, configured := range m.ParticipantEmails {
		for _, email := range emails {
			if strings.EqualFold(configured, email) {
				return true
			}
		}
	}
	return false
}

// MatchesTitle reports whether the meeting title matches the configured
// pattern, case-insensitively. An invalid or empty pattern never matches.
func (m *ClientMeetingMapping) MatchesTitle(title string) bool {
	if m.TitlePattern == "" || title == "" {
		return false
	}
	re, err := regexp.Compile("(?i)" + m.TitlePattern)
	if err != nil {
		return false
	}
	return re.MatchString(title)
}

// MatchesMeetingID reports whether the meeting id is on the allowlist
func (m *ClientMeetingMapping) MatchesMeetingID(meetingID string) bool {
	for _, id := range m.FathomMeetingIDs {
		if id == meetingID {
			return true
		}
	}
	return false
}
