package dto

import "time"

// ========== Tourist 相关 DTO ==========

// CreateTouristRequest 登记游客请求
type CreateTouristRequest struct {
	Name         string                  `json:"name" binding:"required"`
	Nationality  string                  `json:"nationality"`
	DocumentType string                  `json:"document_type" binding:"required"`
	Document     string                  `json:"document" binding:"required"`
	MedicalInfo  string                  `json:"medical_info"`
	Contact      EmergencyContactRequest `json:"emergency_contact" binding:"required"`
}

// EmergencyContactRequest 紧急联系人请求体
type EmergencyContactRequest struct {
	DisplayName  string `json:"display_name" binding:"required"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone" binding:"required"`
}

// UpdateTouristStatusRequest 更新游客状态请求
type UpdateTouristStatusRequest struct {
	Status string `json:"status" binding:"required"` // active / departed
}

// TouristItem 游客列表项，证件号与联系人电话脱敏返回
type TouristItem struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Nationality    string    `json:"nationality"`
	DocumentType   string    `json:"document_type"`
	DocumentMasked string    `json:"document_masked"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// TouristDetail 游客详情，附带最新位置
type TouristDetail struct {
	TouristItem
	MedicalInfo      string                `json:"medical_info"`
	EmergencyContact EmergencyContactItem  `json:"emergency_contact"`
	LatestPosition   *LatestPositionItem   `json:"latest_position,omitempty"`
	Counts           TouristRelationCounts `json:"counts"`
}

// EmergencyContactItem 紧急联系人展示项，电话脱敏
type EmergencyContactItem struct {
	DisplayName  string `json:"display_name"`
	Relationship string `json:"relationship"`
	PhoneMasked  string `json:"phone_masked"`
}

// TouristRelationCounts 游客关联记录数量
type TouristRelationCounts struct {
	Incidents int64 `json:"incidents"`
	SosAlerts int64 `json:"sos_alerts"`
	EFirs     int64 `json:"efirs"`
}
