// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/solenote/note-keeper-service/pkg/timex"

// UserCreateRequest User registration request parameters
// 用户注册请求参数
type UserCreateRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"` // User email // 用户邮件
	Username string `json:"username" form:"username" binding:"required"` // User name // 用户名
	Password string `json:"password" form:"password" binding:"required"` // User password // 用户密码
}

// UserLoginRequest User login request parameters
// 用户登录请求参数
type UserLoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"` // Username // 用户名
	Password string `json:"password" form:"password" binding:"required"` // Password // 密码
}

// UserTokenRefreshRequest Request parameters for rotating the token pair
// 刷新令牌对的请求参数
type UserTokenRefreshRequest struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken" binding:"required"` // Refresh token // 刷新令牌
}

// ---------------- DTO / Response ----------------

// UserDTO User data transfer object
// UserDTO 用户数据传输对象
type UserDTO struct {
	UID       int64      `json:"uid"`       // User ID (primary key) // 用户唯一标识（主键）
	Email     string     `json:"email"`     // Email address // 邮件地址
	Username  string     `json:"username"`  // Username // 用户名
	UpdatedAt timex.Time `json:"updatedAt"` // Last updated time // 最后更新时间
	CreatedAt timex.Time `json:"createdAt"` // Account created time // 账号创建时间
}

// UserTokenDTO Token pair issued on login or refresh
// 登录或刷新时签发的令牌对
type UserTokenDTO struct {
	UID          int64  `json:"uid"`          // User ID // 用户唯一标识
	Username     string `json:"username"`     // Username // 用户名
	Token        string `json:"token"`        // Access token // 访问令牌
	RefreshToken string `json:"refreshToken"` // Refresh token // 刷新令牌
}
