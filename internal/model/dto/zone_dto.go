package dto

import "time"

// ========== RestrictedZone 相关 DTO ==========

// CreateZoneRequest 标定限制区域请求
type CreateZoneRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Severity    int        `json:"severity"`
	CenterLat   float64    `json:"center_lat"`
	CenterLng   float64    `json:"center_lng"`
	RadiusM     float64    `json:"radius_m" binding:"required"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// UpdateZoneRequest 修改限制区域请求，所有字段可选
type UpdateZoneRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Severity    *int       `json:"severity"`
	CenterLat   *float64   `json:"center_lat"`
	CenterLng   *float64   `json:"center_lng"`
	RadiusM     *float64   `json:"radius_m"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// ZoneItem 限制区域列表项
type ZoneItem struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Severity    int        `json:"severity"`
	CenterLat   float64    `json:"center_lat"`
	CenterLng   float64    `json:"center_lng"`
	RadiusM     float64    `json:"radius_m"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
}
