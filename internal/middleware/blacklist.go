package middleware

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"TourWatch/internal/cache"
	"TourWatch/pkg/errors"
	"TourWatch/pkg/logger"
	"TourWatch/pkg/response"
)

// ExtractRawToken 按 AuthMiddleware 的 TokenLookup 顺序取原始 token
func ExtractRawToken(c *app.RequestContext) string {
	auth := string(c.GetHeader("Authorization"))
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if token := c.Query("token"); token != "" {
		return token
	}
	if cookie := string(c.Cookie("jwt")); cookie != "" {
		return cookie
	}
	return ""
}

// TokenBlacklistMiddleware 拦截已登出的 access token，挂在 AuthMiddleware 之后。
// redis 查询失败时放行，登出失效晚一点比整站不可用好。
func TokenBlacklistMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		raw := ExtractRawToken(c)
		if raw == "" {
			c.Next(ctx)
			return
		}

		blacklisted, err := cache.IsAccessTokenBlacklisted(ctx, raw)
		if err != nil {
			logger.Logger.Warn("Failed to check token blacklist", zap.Error(err))
			c.Next(ctx)
			return
		}

		if blacklisted {
			c.Abort()
			response.Error(ctx, c, errors.Unauthorized)
			return
		}

		c.Next(ctx)
	}
}
