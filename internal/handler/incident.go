package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"TourWatch/internal/model/dto"
	"TourWatch/internal/service"
	"TourWatch/pkg/response"
)

// CreateIncident 上报事件
// POST /v1/incidents
func CreateIncident(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateIncidentRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Incident().Create(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListIncidents 事件列表
// GET /v1/incidents
func ListIncidents(ctx context.Context, c *app.RequestContext) {
	result, err := service.Incident().List(ctx, listOptions(c))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetIncident 事件详情
// GET /v1/incidents/:incident_id
func GetIncident(ctx context.Context, c *app.RequestContext) {
	incidentID, ok := parseIDParam(ctx, c, "incident_id")
	if !ok {
		return
	}

	result, err := service.Incident().Get(ctx, incidentID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// UpdateIncidentStatus 更新事件状态，resolved 为终态
// PATCH /v1/incidents/:incident_id/status
func UpdateIncidentStatus(ctx context.Context, c *app.RequestContext) {
	incidentID, ok := parseIDParam(ctx, c, "incident_id")
	if !ok {
		return
	}

	var req dto.UpdateIncidentStatusRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Incident().UpdateStatus(ctx, incidentID, req.Status)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
