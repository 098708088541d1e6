package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"TourWatch/internal/model/dto"
	"TourWatch/internal/service"
	"TourWatch/pkg/response"
)

// CreateTourist 登记游客
// POST /v1/tourists
func CreateTourist(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateTouristRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Tourist().Create(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListTourists 游客列表
// GET /v1/tourists
func ListTourists(ctx context.Context, c *app.RequestContext) {
	result, err := service.Tourist().List(ctx, listOptions(c))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetTourist 游客详情
// GET /v1/tourists/:tourist_id
func GetTourist(ctx context.Context, c *app.RequestContext) {
	touristID, err := service.ParseTouristID(c.Param("tourist_id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	result, err := service.Tourist().Get(ctx, touristID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// UpdateTouristStatus 更新游客状态 active / departed
// PATCH /v1/tourists/:tourist_id/status
func UpdateTouristStatus(ctx context.Context, c *app.RequestContext) {
	touristID, err := service.ParseTouristID(c.Param("tourist_id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.UpdateTouristStatusRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Tourist().UpdateStatus(ctx, touristID, req.Status); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"updated": true})
}
