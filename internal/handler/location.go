package handler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"TourWatch/internal/model/dto"
	"TourWatch/internal/service"
	"TourWatch/pkg/response"
)

// IngestLocation 位置上报
// POST /v1/locations
func IngestLocation(ctx context.Context, c *app.RequestContext) {
	var req dto.IngestLocationRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Location().Ingest(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListTouristLocations 单个游客的轨迹记录
// GET /v1/tourists/:tourist_id/locations
func ListTouristLocations(ctx context.Context, c *app.RequestContext) {
	touristID, err := service.ParseTouristID(c.Param("tourist_id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	// 默认取最近 24 小时，最多 500 条
	since := time.Now().Add(-24 * time.Hour)
	if raw := c.Query("since"); raw != "" {
		parsed, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			response.BindError(ctx, c, fmt.Errorf("invalid since: %q", raw))
			return
		}
		since = parsed
	} else if hours, convErr := strconv.Atoi(c.Query("hours")); convErr == nil && hours > 0 {
		since = time.Now().Add(-time.Duration(hours) * time.Hour)
	}
	limit := 500
	if l, convErr := strconv.Atoi(c.Query("limit")); convErr == nil && l > 0 && l < limit {
		limit = l
	}

	result, err := service.Location().ListByTourist(ctx, touristID, since, limit)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListLatestPositions 地图大屏的最新位置归并视图
// GET /v1/locations/latest
func ListLatestPositions(ctx context.Context, c *app.RequestContext) {
	result, err := service.Location().LatestPositions(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
