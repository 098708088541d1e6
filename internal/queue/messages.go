package queue

import "time"

// ChangeOp 变更操作类型
type ChangeOp string

const (
	ChangeOpInsert ChangeOp = "insert"
	ChangeOpUpdate ChangeOp = "update"
	ChangeOpDelete ChangeOp = "delete"
)

// 大屏实时刷新关注的表名，routing key 就是表名
const (
	TableIncidents       = "incidents"
	TableSosAlerts       = "sos_alerts"
	TableLocationLogs    = "location_logs"
	TableEFirs           = "efirs"
	TableRestrictedZones = "restricted_zones"
	TableTourists        = "tourists"
)

// WatchedTables 可订阅的表集合
var WatchedTables = map[string]bool{
	TableIncidents:       true,
	TableSosAlerts:       true,
	TableLocationLogs:    true,
	TableEFirs:           true,
	TableRestrictedZones: true,
	TableTourists:        true,
}

// ChangeEvent 写操作成功后发出的变更事件，只用于触发全量重拉，不携带行数据
type ChangeEvent struct {
	Table       string    `json:"table"`
	Op          ChangeOp  `json:"op"`
	RowPublicID int64     `json:"row_public_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// SosNotifyMessage SOS 联系人通知任务
type SosNotifyMessage struct {
	MessageID       string `json:"message_id"` // 消息唯一ID，用于幂等性检查
	AlertPublicID   int64  `json:"alert_public_id"`
	TouristPublicID int64  `json:"tourist_public_id"`
	Reason          string `json:"reason"` // resolved_notify / escalation
	ScheduledAt     string `json:"scheduled_at"`
}
