package dto

import "time"

// ========== E-FIR 相关 DTO ==========

// CreateEFirRequest 生成电子报案单请求
type CreateEFirRequest struct {
	TouristID string `json:"tourist_id" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// EFirItem 电子报案单列表项
type EFirItem struct {
	ID          string     `json:"id"`
	TouristID   string     `json:"tourist_id"`
	TouristName string     `json:"tourist_name"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	GeneratedAt time.Time  `json:"generated_at"`
	FiledAt     *time.Time `json:"filed_at,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}
