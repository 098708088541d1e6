package utils

import (
	"regexp"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// ValidatePhone 校验国际格式手机号（可带 + 前缀，7~15 位数字）
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateCoordinates 校验经纬度范围
func ValidateCoordinates(lat, lng float64) bool {
	if lat < -90 || lat > 90 {
		return false
	}
	if lng < -180 || lng > 180 {
		return false
	}
	return true
}
