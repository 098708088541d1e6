package dto

import "time"

// ========== Incident 相关 DTO ==========

// CreateIncidentRequest 上报事件请求
type CreateIncidentRequest struct {
	TouristID   string  `json:"tourist_id" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// UpdateIncidentStatusRequest 更新事件状态请求
type UpdateIncidentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// IncidentItem 事件列表项
type IncidentItem struct {
	ID          string     `json:"id"`
	TouristID   string     `json:"tourist_id"`
	TouristName string     `json:"tourist_name"` // 游客已删除时为 "Unknown Tourist"
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}
