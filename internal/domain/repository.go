// Package domain 定义领域模型和接口
package domain

import (
	"context"
	"time"
)

// NoteRepository 笔记仓储接口
type NoteRepository interface {
	// GetByID 根据ID获取笔记
	GetByID(ctx context.Context, id, uid int64) (*Note, error)

	// Create 创建笔记
	Create(ctx context.Context, note *Note) (*Note, error)

	// Update 更新笔记全部可变字段
	Update(ctx context.Context, note *Note) (*Note, error)

	// Delete 物理删除笔记
	Delete(ctx context.Context, id, uid int64) error

	// List 获取用户的笔记列表
	// 返回顺序：置顶优先，其余按 SortOrder 升序
	List(ctx context.Context, uid int64, filter *NoteFilter) ([]*Note, error)

	// UpdateSortOrder 更新单条笔记的排序值
	// 作用域限定为 (id, uid)，不属于该用户的 ID 不产生任何更新
	UpdateSortOrder(ctx context.Context, sortOrder int, id, uid int64) error

	// ListDueReminders 获取提醒已到期且未通知的笔记（跨全部用户）
	ListDueReminders(ctx context.Context, now time.Time) ([]*Note, error)

	// SetNotified 标记笔记的提醒已送达
	SetNotified(ctx context.Context, id int64) error
}

// TagRepository 标签仓储接口
type TagRepository interface {
	// GetByID 根据ID获取标签，不校验归属
	GetByID(ctx context.Context, id int64) (*Tag, error)

	// GetByName 根据名称获取用户的标签
	GetByName(ctx context.Context, name string, uid int64) (*Tag, error)

	// Create 创建标签
	Create(ctx context.Context, tag *Tag) (*Tag, error)

	// Update 更新标签
	Update(ctx context.Context, tag *Tag) (*Tag, error)

	// Delete 删除标签
	Delete(ctx context.Context, id, uid int64) error

	// List 获取用户的全部标签
	List(ctx context.Context, uid int64) ([]*Tag, error)
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUsername 根据用户名获取用户
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// UpdateRefreshToken 更新用户持有的刷新凭证，旧凭证随之失效
	UpdateRefreshToken(ctx context.Context, refreshToken string, uid int64) error
}
