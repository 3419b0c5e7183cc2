// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/solenote/note-keeper-service/pkg/timex"

// TagDTO Tag data transfer object
// TagDTO 标签数据传输对象
type TagDTO struct {
	ID        int64      `json:"id"`        // Tag ID // 标签唯一标识
	Name      string     `json:"name"`      // Tag name // 标签名
	UpdatedAt timex.Time `json:"updatedAt"` // Last updated time // 最后更新时间
	CreatedAt timex.Time `json:"createdAt"` // Created time // 创建时间
}

// TagCreateRequest Request parameters for creating a tag
// 创建标签的请求参数
type TagCreateRequest struct {
	Name string `json:"name" form:"name" binding:"required"` // Tag name // 标签名
}

// TagUpdateRequest Request parameters for renaming a tag
// 重命名标签的请求参数
type TagUpdateRequest struct {
	Name string `json:"name" form:"name" binding:"required"` // Tag name // 标签名
}
