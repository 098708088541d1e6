package model

import "time"

// RestrictedZone 操作员标定的限制区域，读多写少
type RestrictedZone struct {
	BaseModel
	PublicID    int64      `gorm:"uniqueIndex;not null" json:"public_id"`
	Name        string     `gorm:"type:varchar(128);not null" json:"name"`
	Description string     `gorm:"type:text;not null;default:''" json:"description"`
	Severity    int        `gorm:"not null;default:3" json:"severity"` // 1~5
	CenterLat   float64    `gorm:"type:double precision;not null" json:"center_lat"`
	CenterLng   float64    `gorm:"type:double precision;not null" json:"center_lng"`
	RadiusM     float64    `gorm:"type:double precision;not null" json:"radius_m"`
	ExpiresAt   *time.Time `gorm:"type:timestamptz;index:idx_restricted_zones_expires_at" json:"expires_at,omitempty"`
	Active      bool       `gorm:"not null;default:true;index:idx_restricted_zones_active" json:"active"`
}

func (RestrictedZone) TableName() string {
	return "restricted_zones"
}
