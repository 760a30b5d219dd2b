package entities

import "time"

// PodLeaderProfile holds a pod leader's personality summary used for
// blind-spot commentary in analyses. Keyed by the identity provider's user id.
type PodLeaderProfile struct {
	ID                 string    `json:"id" gorm:"type:varchar(255);primary_key"`
	Name               string    `json:"name" gorm:"type:varchar(255)"`
	Email              string    `json:"email" gorm:"type:varchar(255);index"`
	Pod                string    `json:"pod,omitempty" gorm:"type:varchar(100)"`
	PersonalitySummary string    `json:"personality_summary,omitempty" gorm:"type:text"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for PodLeaderProfile
func (PodLeaderProfile) TableName() string {
	return "pod_leaders"
}
