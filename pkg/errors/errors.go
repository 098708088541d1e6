package errors

import "errors"

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 认证相关错误。
var (
	InvalidCredentials = Definition{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password"}
	Unauthorized       = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	TooManyRequests    = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests"}
	OperatorDisabled   = Definition{Code: "OPERATOR_DISABLED", Message: "Operator account disabled"}
)

// 游客模块错误。
var (
	TouristNotFound           = Definition{Code: "TOURIST_NOT_FOUND", Message: "Tourist not found"}
	InvalidTouristID          = Definition{Code: "INVALID_TOURIST_ID", Message: "Invalid tourist ID format"}
	DocumentAlreadyRegistered = Definition{Code: "DOCUMENT_ALREADY_REGISTERED", Message: "Document already registered"}
)

// 事件模块错误。
var (
	IncidentNotFound      = Definition{Code: "INCIDENT_NOT_FOUND", Message: "Incident not found"}
	IncidentStatusInvalid = Definition{Code: "INCIDENT_STATUS_INVALID", Message: "Invalid incident status"}
	IncidentResolved      = Definition{Code: "INCIDENT_RESOLVED", Message: "Incident already resolved"}
)

// SOS 模块错误。
var (
	SosAlertNotFound   = Definition{Code: "SOS_ALERT_NOT_FOUND", Message: "SOS alert not found"}
	SosTypeInvalid     = Definition{Code: "SOS_TYPE_INVALID", Message: "Invalid SOS alert type"}
	SosAlreadyResolved = Definition{Code: "SOS_ALREADY_RESOLVED", Message: "SOS alert already resolved"}
)

// E-FIR 模块错误。
var (
	EFirNotFound          = Definition{Code: "EFIR_NOT_FOUND", Message: "E-FIR not found"}
	EFirTransitionInvalid = Definition{Code: "EFIR_TRANSITION_INVALID", Message: "E-FIR status can only move forward"}
	EFirStatusInvalid     = Definition{Code: "EFIR_STATUS_INVALID", Message: "Invalid E-FIR status"}
)

// 限制区域模块错误。
var (
	ZoneNotFound = Definition{Code: "ZONE_NOT_FOUND", Message: "Restricted zone not found"}
	ZoneExpired  = Definition{Code: "ZONE_EXPIRED", Message: "Restricted zone already expired"}
)

// 列表视图错误。
var (
	SortKeyInvalid = Definition{Code: "SORT_KEY_INVALID", Message: "Invalid sort key"}
)

// token 相关的哨兵错误。
var (
	ErrTokenGeneratorNotInitialized = errors.New("token generator not initialized")
	ErrUnexpectedSigningMethod      = errors.New("unexpected signing method")
	ErrInvalidToken                 = errors.New("invalid token")
	ErrInvalidTokenClaims           = errors.New("invalid token claims")
	ErrInvalidTokenType             = errors.New("invalid token type")
	ErrUserIDNotFound               = errors.New("user id not found in claims")
)

// 短信相关的哨兵错误。
var (
	ErrSignNameRequired     = errors.New("sms sign name is required")
	ErrTemplateCodeRequired = errors.New("sms template code is required")
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	InvalidCredentials.Code:        InvalidCredentials,
	Unauthorized.Code:              Unauthorized,
	TooManyRequests.Code:           TooManyRequests,
	OperatorDisabled.Code:          OperatorDisabled,
	TouristNotFound.Code:           TouristNotFound,
	InvalidTouristID.Code:          InvalidTouristID,
	DocumentAlreadyRegistered.Code: DocumentAlreadyRegistered,
	IncidentNotFound.Code:          IncidentNotFound,
	IncidentStatusInvalid.Code:     IncidentStatusInvalid,
	IncidentResolved.Code:          IncidentResolved,
	SosAlertNotFound.Code:          SosAlertNotFound,
	SosTypeInvalid.Code:            SosTypeInvalid,
	SosAlreadyResolved.Code:        SosAlreadyResolved,
	EFirNotFound.Code:              EFirNotFound,
	EFirTransitionInvalid.Code:     EFirTransitionInvalid,
	EFirStatusInvalid.Code:         EFirStatusInvalid,
	ZoneNotFound.Code:              ZoneNotFound,
	ZoneExpired.Code:               ZoneExpired,
	SortKeyInvalid.Code:            SortKeyInvalid,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

// SkipMessageError 消费者遇到不可重试消息时返回，ack 掉而不重新入队
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "skip message: " + e.Reason
}

// IsSkipMessageError 判断错误链上是否存在 SkipMessageError
func IsSkipMessageError(err error) bool {
	var skip *SkipMessageError
	return errors.As(err, &skip)
}
