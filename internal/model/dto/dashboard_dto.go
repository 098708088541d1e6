package dto

import "time"

// ========== Dashboard 相关 DTO ==========

// OverviewResponse 大屏总览统计，内存聚合后缓存
type OverviewResponse struct {
	ActiveTourists    int64            `json:"active_tourists"`
	IncidentsByStatus map[string]int64 `json:"incidents_by_status"`
	UnreadSosAlerts   int64            `json:"unread_sos_alerts"`
	SosBySeverity     map[string]int64 `json:"sos_by_severity"`
	EFirsByStatus     map[string]int64 `json:"efirs_by_status"`
	ActiveZones       int64            `json:"active_zones"`
	SafeCount         int              `json:"safe_count"`
	StaleCount        int              `json:"stale_count"`
	RestrictedCount   int              `json:"restricted_count"`
	GeneratedAt       time.Time        `json:"generated_at"`
}
