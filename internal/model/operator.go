package model

// OperatorRole 操作员角色枚举
type OperatorRole string

const (
	OperatorRoleAdmin     OperatorRole = "admin"     // 管理员
	OperatorRoleResponder OperatorRole = "responder" // 应急响应人员
)

// Operator 监控大屏操作员账号
type Operator struct {
	BaseModel
	PublicID     int64        `gorm:"uniqueIndex;not null" json:"public_id"`
	Email        string       `gorm:"uniqueIndex;type:varchar(255);not null" json:"email"`
	PasswordHash string       `gorm:"type:varchar(128);not null" json:"-"` // bcrypt hash，不对外暴露
	DisplayName  string       `gorm:"type:varchar(64);not null;default:''" json:"display_name"`
	Role         OperatorRole `gorm:"type:varchar(16);not null;default:'responder'" json:"role"`
	Disabled     bool         `gorm:"not null;default:false" json:"disabled"`
}

func (Operator) TableName() string {
	return "operators"
}
