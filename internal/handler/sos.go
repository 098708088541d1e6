package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"TourWatch/internal/model/dto"
	"TourWatch/internal/service"
	"TourWatch/pkg/response"
)

// CreateSosAlert SOS 告警上报
// POST /v1/sos-alerts
func CreateSosAlert(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateSosAlertRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Sos().Create(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListSosAlerts SOS 告警列表，unread_only=true 只看未读
// GET /v1/sos-alerts
func ListSosAlerts(ctx context.Context, c *app.RequestContext) {
	unreadOnly := false
	if raw := c.Query("unread_only"); raw != "" {
		unreadOnly, _ = strconv.ParseBool(raw)
	}

	// SOS 没有 status 字段，status query 作用在告警类型上
	result, err := service.Sos().List(ctx, unreadOnly, listOptions(c))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// MarkSosRead 标记告警已读
// POST /v1/sos-alerts/:alert_id/read
func MarkSosRead(ctx context.Context, c *app.RequestContext) {
	alertID, ok := parseIDParam(ctx, c, "alert_id")
	if !ok {
		return
	}

	if err := service.Sos().MarkRead(ctx, alertID); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"read": true})
}

// ResolveSosAlert 了结告警并触发联系人通知
// POST /v1/sos-alerts/:alert_id/resolve
func ResolveSosAlert(ctx context.Context, c *app.RequestContext) {
	alertID, ok := parseIDParam(ctx, c, "alert_id")
	if !ok {
		return
	}

	if err := service.Sos().Resolve(ctx, alertID); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"resolved": true})
}
