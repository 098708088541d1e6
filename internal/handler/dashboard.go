package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"TourWatch/internal/service"
	"TourWatch/pkg/response"
)

// GetOverview 大屏总览统计
// GET /v1/dashboard/overview
func GetOverview(ctx context.Context, c *app.RequestContext) {
	result, err := service.Dashboard().Overview(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
