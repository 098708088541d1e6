package model

import "time"

// LocationLog 位置上报记录，只追加，从不修改
type LocationLog struct {
	BaseModel
	PublicID        int64   `gorm:"uniqueIndex;not null" json:"public_id"`
	TouristPublicID int64   `gorm:"not null;index:idx_location_logs_tourist" json:"tourist_id"`
	Latitude        float64 `gorm:"type:double precision;not null" json:"latitude"`
	Longitude       float64 `gorm:"type:double precision;not null" json:"longitude"`
	// 可选字段，上报端没有就是零值，归并时原样透传
	Accuracy float64 `gorm:"type:double precision;not null;default:0" json:"accuracy,omitempty"`
	Address  string  `gorm:"type:varchar(255);not null;default:''" json:"address,omitempty"`

	InRestrictedZone bool      `gorm:"not null;default:false" json:"in_restricted_zone"`
	RecordedAt       time.Time `gorm:"type:timestamptz;not null;index:idx_location_logs_recorded_at" json:"recorded_at"`
}

func (LocationLog) TableName() string {
	return "location_logs"
}
