package model

import "time"

// SosType SOS 告警类型枚举
type SosType string

const (
	SosTypeMedical    SosType = "medical"
	SosTypeLost       SosType = "lost"
	SosTypeHarassment SosType = "harassment"
	SosTypeGeneral    SosType = "general"
)

// ValidSosType 校验告警类型是否合法
func ValidSosType(t SosType) bool {
	switch t {
	case SosTypeMedical, SosTypeLost, SosTypeHarassment, SosTypeGeneral:
		return true
	default:
		return false
	}
}

// SosAlert 高优先级求救信号，只能标记已读 / 已处理
type SosAlert struct {
	BaseModel
	PublicID        int64      `gorm:"uniqueIndex;not null" json:"public_id"`
	TouristPublicID int64      `gorm:"not null;index:idx_sos_alerts_tourist" json:"tourist_id"`
	Type            SosType    `gorm:"type:varchar(16);not null" json:"type"`
	Message         string     `gorm:"type:text;not null;default:''" json:"message"`
	Severity        int        `gorm:"not null;default:3" json:"severity"` // 1~5
	Latitude        float64    `gorm:"type:double precision;not null;default:0" json:"latitude"`
	Longitude       float64    `gorm:"type:double precision;not null;default:0" json:"longitude"`
	IsRead          bool       `gorm:"not null;default:false;index:idx_sos_alerts_is_read" json:"is_read"`
	ResolvedAt      *time.Time `gorm:"type:timestamptz" json:"resolved_at,omitempty"`
}

func (SosAlert) TableName() string {
	return "sos_alerts"
}
