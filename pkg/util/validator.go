package util

import (
	"regexp"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail 验证邮箱格式是否正确
// email: 待验证的邮箱字符串
// 返回值: 如果邮箱格式正确返回true，否则返回false
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
