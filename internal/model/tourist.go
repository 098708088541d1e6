package model

// TouristStatus 游客状态枚举
type TouristStatus string

const (
	TouristStatusActive   TouristStatus = "active"   // 在监控范围内
	TouristStatusDeparted TouristStatus = "departed" // 已离开，不再参与大屏归并
)

// Tourist 游客档案
type Tourist struct {
	BaseModel
	PublicID     int64         `gorm:"uniqueIndex;not null" json:"public_id"`
	Name         string        `gorm:"type:varchar(128);not null" json:"name"`
	Nationality  string        `gorm:"type:varchar(64);not null;default:''" json:"nationality"`
	DocumentType string        `gorm:"type:varchar(32);not null" json:"document_type"` // passport / national_id 等
	// 证件号密文 + 哈希，哈希用于唯一性校验
	DocumentCipher string  `gorm:"type:text;not null" json:"-"`
	DocumentHash   *string `gorm:"uniqueIndex;type:char(64)" json:"-"`
	MedicalInfo    string  `gorm:"type:text;not null;default:''" json:"medical_info"`

	EmergencyContact EmergencyContact `gorm:"type:jsonb;default:'{}'" json:"emergency_contact"`

	Status TouristStatus `gorm:"type:varchar(16);not null;default:'active';index:idx_tourists_status" json:"status"`
}

func (Tourist) TableName() string {
	return "tourists"
}
