package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"TourWatch/internal/handler"
	"TourWatch/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	v1 := h.Group("/v1")

	// 认证相关路由
	auth := v1.Group("/auth")
	{
		auth.POST("/login", middleware.AuthRateLimitMiddleware(), handler.Login)
		auth.POST("/token/refresh", middleware.AuthRateLimitMiddleware(), handler.RefreshToken)
		auth.GET("/me", middleware.AuthMiddleware(), middleware.TokenBlacklistMiddleware(), handler.Me)
		auth.POST("/logout", middleware.AuthMiddleware(), handler.Logout)
	}

	// 游客档案路由
	tourists := v1.Group("/tourists")
	tourists.Use(middleware.AuthMiddleware(), middleware.TokenBlacklistMiddleware(), middleware.GeneralRateLimitMiddleware())
	{
		tourists.POST("", handler.CreateTourist)
		tourists.GET("", handler.ListTourists)
		tourists.GET("/:tourist_id", handler.GetTourist)
		tourists.PATCH("/:tourist_id/status", handler.UpdateTouristStatus)
		tourists.GET("/:tourist_id/locations", handler.ListTouristLocations)
	}

	// 位置上报路由
	locations := v1.Group("/locations")
	locations.Use(middleware.AuthMiddleware(), middleware.TokenBlacklistMiddleware())
	{
		locations.POST("", middleware.IngestRateLimitMiddleware(), handler.IngestLocation)
		locations.GET("/latest", handler.ListLatestPositions)
	}

	// 事件路由
	incidents := v1.Group("/incidents")
	incidents.Use(middleware.AuthMiddleware(), middleware.TokenBlacklistMiddleware(), middleware.GeneralRateLimitMiddleware())
	{
		incidents.POST("", handler.CreateIncident)
		incidents.GET("", handler.ListIncidents)
		incidents.GET("/:incident_id", handler.GetIncident)
		incidents.PATCH("/:incident_id/status", handler.UpdateIncidentStatus)
	}

	// SOS 告警路由
	sosAlerts := v1.Group("/sos-alerts")
	sosAlerts.Use(middleware.AuthMiddleware(), middleware.TokenBlacklistMiddleware(), middleware.GeneralRateLimitMiddleware())
	{
		sosAlerts.POST("", handler.CreateSosAlert)
		sosAlerts.GET("", handler.ListSosAlerts)
		sosAlerts.POST("/:alert_id/read", handler.MarkSosRead)
		sosAlerts.POST("/:alert_id/resolve", handler.ResolveSosAlert)
	}

	// 电子报案单路由
	efirs := v1.Group("/efirs")
	efirs.Use(middleware.AuthMiddleware(), middleware.TokenBlacklistMiddleware(), middleware.GeneralRateLimitMiddleware())
	{
		efirs.POST("", handler.CreateEFir)
		efirs.GET("", handler.ListEFirs)
		efirs.POST("/:efir_id/file", handler.FileEFir)
		efirs.POST("/:efir_id/resolve", handler.ResolveEFir)
	}

	// 限制区域路由
	zones := v1.Group("/zones")
	zones.Use(middleware.AuthMiddleware(), middleware.TokenBlacklistMiddleware(), middleware.GeneralRateLimitMiddleware())
	{
		zones.POST("", handler.CreateZone)
		zones.GET("", handler.ListZones)
		zones.PATCH("/:zone_id", handler.UpdateZone)
		zones.POST("/:zone_id/deactivate", handler.DeactivateZone)
	}

	// 大屏路由
	dashboard := v1.Group("/dashboard")
	{
		dashboard.GET("/overview", middleware.AuthMiddleware(), middleware.TokenBlacklistMiddleware(), handler.GetOverview)
		// websocket 通过 query token 鉴权，AuthMiddleware 的 TokenLookup 里已带 query: token
		dashboard.GET("/ws", middleware.AuthMiddleware(), handler.DashboardWS)
	}
}
