package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"TourWatch/internal/model/dto"
	"TourWatch/internal/service"
	"TourWatch/pkg/response"
)

// CreateEFir 生成电子报案单
// POST /v1/efirs
func CreateEFir(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateEFirRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.EFir().Create(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListEFirs 报案单列表
// GET /v1/efirs
func ListEFirs(ctx context.Context, c *app.RequestContext) {
	result, err := service.EFir().List(ctx, listOptions(c))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// FileEFir 提交报案单 pending -> filed
// POST /v1/efirs/:efir_id/file
func FileEFir(ctx context.Context, c *app.RequestContext) {
	efirID, ok := parseIDParam(ctx, c, "efir_id")
	if !ok {
		return
	}

	result, err := service.EFir().File(ctx, efirID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ResolveEFir 了结报案单 filed -> resolved
// POST /v1/efirs/:efir_id/resolve
func ResolveEFir(ctx context.Context, c *app.RequestContext) {
	efirID, ok := parseIDParam(ctx, c, "efir_id")
	if !ok {
		return
	}

	result, err := service.EFir().Resolve(ctx, efirID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
