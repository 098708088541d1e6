package sms

import (
	"context"
	"encoding/json"
	"fmt"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	openapiutil "github.com/alibabacloud-go/openapi-util/service"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	credential "github.com/aliyun/credentials-go/credentials"
	"go.uber.org/zap"

	"TourWatch/pkg/errors"
	"TourWatch/pkg/logger"
)

type AliyunClient struct {
	client *openapi.Client
}

// NewAliyunClient 创建阿里云 SMS 客户端
// 使用环境变量自动获取 AccessKey 和 SecretKey
// 需要设置环境变量：ALIBABA_CLOUD_ACCESS_KEY_ID 和 ALIBABA_CLOUD_ACCESS_KEY_SECRET
func NewAliyunClient() (*AliyunClient, error) {
	// 使用环境变量或配置文件自动获取凭据
	// 凭据配置方式请参见：https://help.aliyun.com/document_detail/378661.html
	cred, err := credential.NewCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create aliyun credential: %w", err)
	}

	openapiConfig := &openapi.Config{
		Credential: cred,
		Endpoint:   tea.String("dysmsapi.aliyuncs.com"),
	}

	client, err := openapi.NewClient(openapiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create aliyun client: %w", err)
	}

	return &AliyunClient{
		client: client,
	}, nil
}

// createApiInfo 创建 API 信息
func (c *AliyunClient) createApiInfo(action string) *openapi.Params {
	return &openapi.Params{
		Action:      tea.String(action),
		Version:     tea.String("2017-05-25"),
		Protocol:    tea.String("HTTPS"),
		Method:      tea.String("POST"),
		AuthType:    tea.String("AK"),
		Style:       tea.String("RPC"),
		Pathname:    tea.String("/"),
		ReqBodyType: tea.String("json"),
		BodyType:    tea.String("json"),
	}
}

// SendSingle 发送单条短信
func (c *AliyunClient) SendSingle(ctx context.Context, phone, signName, templateCode, templateParam string) (*SendResponse, error) {
	if signName == "" {
		return nil, errors.ErrSignNameRequired
	}
	if templateCode == "" {
		return nil, errors.ErrTemplateCodeRequired
	}

	params := c.createApiInfo("SendSms")

	queries := map[string]interface{}{
		"PhoneNumbers":  tea.String(phone),
		"SignName":      tea.String(signName),
		"TemplateCode":  tea.String(templateCode),
		"TemplateParam": tea.String(templateParam),
	}

	runtime := &util.RuntimeOptions{}
	request := &openapi.OpenApiRequest{
		Query: openapiutil.Query(queries),
	}

	resp, err := c.client.CallApi(params, request, runtime)
	if err != nil {
		logger.Logger.Error("Failed to send SMS",
			zap.String("phone", phone),
			zap.String("template", templateCode),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send SMS: %w", err)
	}

	// 检查 HTTP 状态码
	if resp["statusCode"] != nil {
		statusCode, err := parseStatusCode(resp["statusCode"])
		if err != nil {
			return nil, err
		}
		if statusCode != 200 {
			body := resp["body"]
			logger.Logger.Error("SMS API returned error",
				zap.Int("statusCode", statusCode),
				zap.Any("body", body),
			)
			return nil, fmt.Errorf("SMS API error: statusCode=%d", statusCode)
		}
	}

	response := &SendResponse{
		Provider: "aliyun",
		Template: templateCode,
	}

	if resp["body"] != nil {
		bodyBytes, err := json.Marshal(resp["body"])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response body: %w", err)
		}

		var bodyMap map[string]interface{}
		if err := json.Unmarshal(bodyBytes, &bodyMap); err == nil {
			if bizID, ok := bodyMap["BizId"].(string); ok {
				response.MessageID = bizID
			}

			if code, ok := bodyMap["Code"].(string); ok {
				response.Code = code
				response.StatusCode = code
			}
			if msg, ok := bodyMap["Message"].(string); ok {
				response.Message = msg
			}

			if requestID, ok := bodyMap["RequestId"].(string); ok {
				response.RequestID = requestID
			}

			if response.Code != "OK" {
				logger.Logger.Error("SMS send failed",
					zap.String("code", response.Code),
					zap.String("message", response.Message),
					zap.String("phone", phone),
					zap.String("request_id", response.RequestID),
				)

				// 配置类错误重试也不会成功，直接跳过
				if isNonRetryableError(response.Code) {
					return nil, &errors.SkipMessageError{
						Reason: fmt.Sprintf("SMS configuration error: %s - %s", response.Code, response.Message),
					}
				}

				return nil, fmt.Errorf("SMS send failed: %s - %s", response.Code, response.Message)
			}
		}
	}

	logger.Logger.Debug("SMS sent successfully",
		zap.String("phone", phone),
		zap.String("template", templateCode),
		zap.String("message_id", response.MessageID),
	)

	return response, nil
}

// parseStatusCode 阿里云 SDK 的 statusCode 可能是 int 或 float64
func parseStatusCode(v interface{}) (int, error) {
	switch code := v.(type) {
	case int:
		return code, nil
	case int64:
		return int(code), nil
	case float64:
		return int(code), nil
	default:
		return 0, fmt.Errorf("unexpected statusCode type: %T", v)
	}
}

// isNonRetryableError 判断是否为不可重试的错误码（签名、模板、参数配置问题）
func isNonRetryableError(code string) bool {
	switch code {
	case "isv.SMS_SIGNATURE_ILLEGAL",
		"isv.SMS_TEMPLATE_ILLEGAL",
		"isv.TEMPLATE_MISSING_PARAMETERS",
		"isv.TEMPLATE_PARAMS_ILLEGAL",
		"isv.INVALID_PARAMETERS",
		"isv.MOBILE_NUMBER_ILLEGAL",
		"isv.BLACK_KEY_CONTROL_LIMIT":
		return true
	default:
		return false
	}
}
