package domain

import "time"

// Tag 标签领域模型
type Tag struct {
	ID        int64
	UID       int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy 判断标签是否属于指定用户
func (t *Tag) IsOwnedBy(uid int64) bool {
	return t.UID == uid
}
