package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncryptDecryptSensitive(t *testing.T) {
	plain := "P1234567"

	encoded, err := EncryptSensitive(plain)
	assert.NoError(t, err)
	assert.NotEqual(t, plain, encoded)

	decrypted, err := DecryptSensitive(encoded)
	assert.NoError(t, err)
	assert.Equal(t, plain, decrypted)

	// 同一明文两次加密 nonce 不同，密文不能相等
	encoded2, err := EncryptSensitive(plain)
	assert.NoError(t, err)
	assert.NotEqual(t, encoded, encoded2)

	// 篡改的密文必须解不开
	_, err = DecryptSensitive("not-base64!!")
	assert.Error(t, err)
	_, err = DecryptSensitive("YWJj") // 合法 base64 但比 nonce 还短
	assert.Error(t, err)
}

func TestMaskDocument(t *testing.T) {
	assert.Equal(t, "****5678", MaskDocument("12345678"))
	assert.Equal(t, "***", MaskDocument("123"))
	assert.Equal(t, "", MaskDocument(""))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "+91********21", MaskPhone("+919876543221"))
	assert.Equal(t, "138******01", MaskPhone("13800000001"))
	assert.Equal(t, "*****", MaskPhone("12345"))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+919876543221"))
	assert.True(t, ValidatePhone("13800000001"))
	assert.False(t, ValidatePhone("12-34"))
	assert.False(t, ValidatePhone("123"))
	assert.False(t, ValidatePhone(""))
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(27.03, 88.26))
	assert.True(t, ValidateCoordinates(-90, 180))
	assert.False(t, ValidateCoordinates(90.1, 0))
	assert.False(t, ValidateCoordinates(0, -180.5))
}
