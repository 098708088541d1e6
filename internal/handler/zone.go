package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"TourWatch/internal/model/dto"
	"TourWatch/internal/service"
	"TourWatch/pkg/response"
)

// CreateZone 标定限制区域
// POST /v1/zones
func CreateZone(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateZoneRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Zone().Create(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListZones 限制区域列表，active_only=true 只看在用区域
// GET /v1/zones
func ListZones(ctx context.Context, c *app.RequestContext) {
	activeOnly := false
	if raw := c.Query("active_only"); raw != "" {
		activeOnly, _ = strconv.ParseBool(raw)
	}

	result, err := service.Zone().List(ctx, activeOnly, listOptions(c))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// UpdateZone 修改限制区域，已过期的区域不允许再改
// PATCH /v1/zones/:zone_id
func UpdateZone(ctx context.Context, c *app.RequestContext) {
	zoneID, ok := parseIDParam(ctx, c, "zone_id")
	if !ok {
		return
	}

	var req dto.UpdateZoneRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Zone().Update(ctx, zoneID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// DeactivateZone 下线限制区域
// POST /v1/zones/:zone_id/deactivate
func DeactivateZone(ctx context.Context, c *app.RequestContext) {
	zoneID, ok := parseIDParam(ctx, c, "zone_id")
	if !ok {
		return
	}

	if err := service.Zone().Deactivate(ctx, zoneID); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"deactivated": true})
}
