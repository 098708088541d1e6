package model

import "time"

// IncidentStatus 事件状态枚举，统一小写存储
type IncidentStatus string

const (
	IncidentStatusPending  IncidentStatus = "pending"
	IncidentStatusActive   IncidentStatus = "active"
	IncidentStatusInReview IncidentStatus = "in_review"
	IncidentStatusResolved IncidentStatus = "resolved"
)

// ValidIncidentStatus 校验状态取值是否合法
func ValidIncidentStatus(s IncidentStatus) bool {
	switch s {
	case IncidentStatusPending, IncidentStatusActive, IncidentStatusInReview, IncidentStatusResolved:
		return true
	default:
		return false
	}
}

// Incident 上报的安全事件
type Incident struct {
	BaseModel
	PublicID        int64          `gorm:"uniqueIndex;not null" json:"public_id"`
	TouristPublicID int64          `gorm:"not null;index:idx_incidents_tourist" json:"tourist_id"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	Status          IncidentStatus `gorm:"type:varchar(16);not null;default:'pending';index:idx_incidents_status" json:"status"`
	Latitude        float64        `gorm:"type:double precision;not null;default:0" json:"latitude"`
	Longitude       float64        `gorm:"type:double precision;not null;default:0" json:"longitude"`
	ResolvedAt      *time.Time     `gorm:"type:timestamptz" json:"resolved_at,omitempty"`
}

func (Incident) TableName() string {
	return "incidents"
}
