package dto

import "time"

// ========== Location 相关 DTO ==========

// IngestLocationRequest 位置上报请求
type IngestLocationRequest struct {
	TouristID        string    `json:"tourist_id" binding:"required"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Accuracy         float64   `json:"accuracy"`
	Address          string    `json:"address"`
	InRestrictedZone bool      `json:"in_restricted_zone"`
	RecordedAt       time.Time `json:"recorded_at"`
}

// LocationItem 位置记录项
type LocationItem struct {
	ID               string    `json:"id"`
	TouristID        string    `json:"tourist_id"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Accuracy         float64   `json:"accuracy,omitempty"`
	Address          string    `json:"address,omitempty"`
	InRestrictedZone bool      `json:"in_restricted_zone"`
	RecordedAt       time.Time `json:"recorded_at"`
}

// LatestPositionItem 归并后的最新位置，附带安全分类
type LatestPositionItem struct {
	TouristID        string    `json:"tourist_id"`
	TouristName      string    `json:"tourist_name"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Address          string    `json:"address,omitempty"`
	InRestrictedZone bool      `json:"in_restricted_zone"`
	RecordedAt       time.Time `json:"recorded_at"`
	Classification   string    `json:"classification"` // safe / stale / restricted
}
