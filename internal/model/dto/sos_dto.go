package dto

import "time"

// ========== SOS 相关 DTO ==========

// CreateSosAlertRequest SOS 告警上报请求
type CreateSosAlertRequest struct {
	TouristID string  `json:"tourist_id" binding:"required"`
	Type      string  `json:"type" binding:"required"` // medical / lost / harassment / general
	Message   string  `json:"message"`
	Severity  int     `json:"severity"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SosAlertItem SOS 告警列表项
type SosAlertItem struct {
	ID          string     `json:"id"`
	TouristID   string     `json:"tourist_id"`
	TouristName string     `json:"tourist_name"`
	Type        string     `json:"type"`
	Message     string     `json:"message"`
	Severity    int        `json:"severity"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	IsRead      bool       `json:"is_read"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}
