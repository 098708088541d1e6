package utils

import "strings"

// MaskDocument 证件号脱敏，仅保留末 4 位
func MaskDocument(document string) string {
	if len(document) <= 4 {
		return strings.Repeat("*", len(document))
	}
	return strings.Repeat("*", len(document)-4) + document[len(document)-4:]
}

// MaskPhone 手机号脱敏，保留前 3 位和末 2 位
func MaskPhone(phone string) string {
	if len(phone) <= 5 {
		return strings.Repeat("*", len(phone))
	}
	return phone[:3] + strings.Repeat("*", len(phone)-5) + phone[len(phone)-2:]
}
