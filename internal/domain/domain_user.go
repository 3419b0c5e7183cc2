package domain

import "time"

// User 用户领域模型
type User struct {
	UID          int64
	Email        string
	Username     string
	Password     string
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasEmail 判断用户是否有邮箱
func (u *User) HasEmail() bool {
	return u.Email != ""
}

// HasRefreshToken 判断用户是否持有有效的刷新凭证
func (u *User) HasRefreshToken() bool {
	return u.RefreshToken != ""
}
