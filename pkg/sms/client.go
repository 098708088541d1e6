package sms

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"TourWatch/config"
	"TourWatch/pkg/logger"
)

// SendResponse 短信发送响应
type SendResponse struct {
	MessageID  string // 服务商返回的 MessageID（阿里云 BizId）
	StatusCode string // 服务商返回的状态码（如 "OK", "isv.BUSINESS_LIMIT_CONTROL"）
	Code       string // 业务状态码
	Message    string // 错误消息（如果有）
	RequestID  string // 请求ID
	Provider   string // 服务提供商（"aliyun" / "mock"）
	Template   string // 模板代码（用于监控）
}

// Client SMS 客户端接口
type Client interface {
	// SendSingle 发送单条短信
	// phone: 手机号
	// signName: 短信签名名称
	// templateCode: 模板代码
	// templateParam: 模板参数（JSON 字符串）
	SendSingle(ctx context.Context, phone, signName, templateCode, templateParam string) (*SendResponse, error)
}

var (
	smsClient Client
	smsOnce   sync.Once
	smsErr    error
)

// Init 初始化 SMS 客户端
func Init() error {
	smsOnce.Do(func() {
		cfg := config.Cfg

		switch cfg.SMSProvider {
		case "aliyun":
			smsClient, smsErr = NewAliyunClient()
		case "mock":
			smsClient = NewMockClient()
		default:
			smsErr = fmt.Errorf("unsupported SMS provider: %s", cfg.SMSProvider)
		}

		if smsErr != nil {
			logger.Logger.Error("Failed to initialize SMS client", zap.Error(smsErr))
			return
		}

		logger.Logger.Info("SMS client initialized successfully",
			zap.String("provider", cfg.SMSProvider),
		)
	})

	return smsErr
}

func GetClient() Client {
	if smsClient == nil {
		panic("SMS client not initialized, call sms.Init() first")
	}
	return smsClient
}

// SetClient 注入自定义客户端，仅供测试使用
func SetClient(c Client) {
	smsClient = c
}

func SendSingle(ctx context.Context, phone, signName, templateCode, templateParam string) (*SendResponse, error) {
	return GetClient().SendSingle(ctx, phone, signName, templateCode, templateParam)
}
