package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"TourWatch/internal/middleware"
	"TourWatch/internal/model/dto"
	"TourWatch/internal/service"
	pkgerrors "TourWatch/pkg/errors"
	"TourWatch/pkg/response"
)

// Login 操作员登录
// POST /v1/auth/login
func Login(ctx context.Context, c *app.RequestContext) {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Auth().Login(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// RefreshToken 刷新访问令牌
// POST /v1/auth/token/refresh
func RefreshToken(ctx context.Context, c *app.RequestContext) {
	var req dto.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Auth().RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// Logout 登出，当前 access token 进入黑名单
// POST /v1/auth/logout
func Logout(ctx context.Context, c *app.RequestContext) {
	operatorID, ok := middleware.GetOperatorID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	raw := middleware.ExtractRawToken(c)
	if raw == "" {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	if err := service.Auth().Logout(ctx, raw, operatorID); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"logged_out": true})
}

// Me 当前操作员信息
// GET /v1/auth/me
func Me(ctx context.Context, c *app.RequestContext) {
	raw, ok := middleware.GetOperatorID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	operatorID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	result, err := service.Auth().Me(ctx, operatorID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
