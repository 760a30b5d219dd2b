package entities

import (
	"time"

	"github.com/google/uuid"
)

// ClientProfile represents an agency client tracked by a pod
type ClientProfile struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID      string    `json:"owner_id" gorm:"type:varchar(255);index"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Pod          string    `json:"pod,omitempty" gorm:"type:varchar(100)"`
	MonthlySpend string    `json:"monthly_spend,omitempty" gorm:"type:varchar(100)"`
	Duration     string    `json:"duration,omitempty" gorm:"type:varchar(100)"`
	Notes        string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for ClientProfile
func (ClientProfile) TableName() string {
	return "clients"
}

// NewClientProfile creates a new ClientProfile entity
func NewClientProfile(ownerID, name string) *ClientProfile {
	return &ClientProfile{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Name:    name,
	}
}
