package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// EmergencyContact 紧急联系人（存储在 tourists.emergency_contact JSONB 中）
type EmergencyContact struct {
	DisplayName       string `json:"display_name"`
	Relationship      string `json:"relationship"`
	PhoneCipherBase64 string `json:"phone_cipher_base64"` // AES-GCM 密文，base64 编码
	PhoneHash         string `json:"phone_hash"`
}

func (c EmergencyContact) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *EmergencyContact) Scan(value interface{}) error {
	if value == nil {
		*c = EmergencyContact{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal emergency contact value")
	}

	return json.Unmarshal(bytes, c)
}
