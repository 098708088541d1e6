package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"TourWatch/config"
)

// 证件号加盐 hash 后存储，用于唯一性校验，避免彩虹表攻击，盐 + ":" + document

func HashDocument(document string) string {
	key := config.Cfg.SecretHashSalt

	sum := sha256.Sum256([]byte(key + ":" + document))

	return hex.EncodeToString(sum[:])
}
