package handler

import (
	"context"
	"encoding/json"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
	"github.com/hertz-contrib/websocket"
	"go.uber.org/zap"

	"TourWatch/internal/queue"
	"TourWatch/internal/realtime"
	"TourWatch/pkg/logger"
)

var (
	realtimeHub *realtime.Hub

	upgrader = websocket.HertzUpgrader{
		// 大屏前端和后端不同源，Origin 校验交给网关层
		CheckOrigin: func(c *app.RequestContext) bool { return true },
	}
)

// InitRealtime 注入实时刷新控制器，server 启动时调用
func InitRealtime(hub *realtime.Hub) {
	realtimeHub = hub
}

// wsCommand 客户端控制帧
// {"subscribe": "incidents"} / {"unsubscribe": "incidents"}
type wsCommand struct {
	Subscribe   string `json:"subscribe"`
	Unsubscribe string `json:"unsubscribe"`
}

type wsError struct {
	Error string `json:"error"`
	Table string `json:"table,omitempty"`
}

// DashboardWS 大屏实时刷新通道
// GET /v1/dashboard/ws
func DashboardWS(ctx context.Context, c *app.RequestContext) {
	if realtimeHub == nil {
		c.AbortWithStatus(503)
		return
	}

	err := upgrader.Upgrade(c, func(conn *websocket.Conn) {
		client := realtime.NewClient(uuid.NewString(), 8)
		defer realtimeHub.Disconnect(client)

		logger.Logger.Info("Dashboard client connected",
			zap.String("client_id", client.ID),
		)

		done := make(chan struct{})
		defer close(done)

		// 写循环：快照推送
		go func() {
			for {
				select {
				case snapshot := <-client.Send():
					if err := conn.WriteJSON(snapshot); err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		// 读循环：订阅控制帧
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				logger.Logger.Info("Dashboard client disconnected",
					zap.String("client_id", client.ID),
				)
				return
			}

			var cmd wsCommand
			if err := json.Unmarshal(payload, &cmd); err != nil {
				_ = conn.WriteJSON(wsError{Error: "invalid command"})
				continue
			}

			switch {
			case cmd.Subscribe != "":
				if !queue.WatchedTables[cmd.Subscribe] {
					_ = conn.WriteJSON(wsError{Error: "unknown table", Table: cmd.Subscribe})
					continue
				}
				if err := realtimeHub.Subscribe(client, cmd.Subscribe); err != nil {
					logger.Logger.Error("Failed to subscribe table",
						zap.String("client_id", client.ID),
						zap.String("table", cmd.Subscribe),
						zap.Error(err),
					)
					_ = conn.WriteJSON(wsError{Error: "subscribe failed", Table: cmd.Subscribe})
				}
			case cmd.Unsubscribe != "":
				realtimeHub.Unsubscribe(client, cmd.Unsubscribe)
			default:
				_ = conn.WriteJSON(wsError{Error: "invalid command"})
			}
		}
	})
	if err != nil {
		logger.Logger.Error("Failed to upgrade websocket", zap.Error(err))
	}
}
