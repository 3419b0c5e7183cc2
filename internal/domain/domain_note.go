// Package domain 定义领域模型和接口
package domain

import (
	"time"
)

// DefaultNoteColor 笔记默认颜色
const DefaultNoteColor = "#ffffff"

// Note 笔记领域模型
type Note struct {
	ID           int64
	UID          int64
	Title        string
	Content      string
	Color        string
	Tags         []string
	Checklist    []ChecklistItem
	IsArchived   bool
	IsPinned     bool
	SortOrder    int
	ReminderTime *time.Time
	Notified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ChecklistItem 笔记内嵌的清单项
type ChecklistItem struct {
	ID   string `json:"id"`
	Item string `json:"item"`
	Done bool   `json:"done"`
}

// NoteFilter 笔记列表过滤条件
// 零值字段不参与过滤
type NoteFilter struct {
	Title    string
	Tag      string
	Archived *bool
	Done     *bool
}

// HasReminder 判断笔记是否设置了提醒
func (n *Note) HasReminder() bool {
	return n.ReminderTime != nil
}

// ReminderDue 判断提醒是否已到期且未通知
func (n *Note) ReminderDue(now time.Time) bool {
	return n.ReminderTime != nil && !n.Notified && !n.ReminderTime.After(now)
}

// FindChecklistItem 根据 ID 查找清单项，返回下标，未找到时返回 -1
func (n *Note) FindChecklistItem(itemID string) int {
	for i := range n.Checklist {
		if n.Checklist[i].ID == itemID {
			return i
		}
	}
	return -1
}

// HasDoneItem 判断清单中是否存在指定完成状态的条目
func (n *Note) HasDoneItem(done bool) bool {
	for i := range n.Checklist {
		if n.Checklist[i].Done == done {
			return true
		}
	}
	return false
}

// HasTag 判断笔记是否带有指定标签
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
