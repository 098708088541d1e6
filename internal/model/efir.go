package model

import "time"

// EFirStatus 电子报案单状态枚举，统一小写存储
type EFirStatus string

const (
	EFirStatusPending  EFirStatus = "pending"
	EFirStatusFiled    EFirStatus = "filed"
	EFirStatusResolved EFirStatus = "resolved"
)

// ValidEFirStatus 校验状态取值是否合法
func ValidEFirStatus(s EFirStatus) bool {
	switch s {
	case EFirStatusPending, EFirStatusFiled, EFirStatusResolved:
		return true
	default:
		return false
	}
}

// EFir 电子报案单，状态只能向前推进 pending -> filed -> resolved
type EFir struct {
	BaseModel
	PublicID        int64      `gorm:"uniqueIndex;not null" json:"public_id"`
	TouristPublicID int64      `gorm:"not null;index:idx_efirs_tourist" json:"tourist_id"`
	Reason          string     `gorm:"type:text;not null" json:"reason"`
	Status          EFirStatus `gorm:"type:varchar(16);not null;default:'pending';index:idx_efirs_status" json:"status"`
	GeneratedAt     time.Time  `gorm:"type:timestamptz;not null;default:now()" json:"generated_at"`
	FiledAt         *time.Time `gorm:"type:timestamptz" json:"filed_at,omitempty"`
	ResolvedAt      *time.Time `gorm:"type:timestamptz" json:"resolved_at,omitempty"`
}

func (EFir) TableName() string {
	return "efirs"
}
