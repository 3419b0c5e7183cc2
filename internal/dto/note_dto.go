// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/solenote/note-keeper-service/pkg/timex"
)

// ChecklistItemDTO Checklist entry embedded in a note
// ChecklistItemDTO 笔记内嵌的清单项
type ChecklistItemDTO struct {
	ID   string `json:"id"`   // Item ID // 清单项标识
	Item string `json:"item"` // Item text // 清单项内容
	Done bool   `json:"done"` // Completion state // 完成状态
}

// NoteDTO Note data transfer object
// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID           int64              `json:"id"`                     // Note ID // 笔记唯一标识
	Title        string             `json:"title"`                  // Title // 标题
	Content      string             `json:"content"`                // Body text // 正文
	Color        string             `json:"color"`                  // Display color // 显示颜色
	Tags         []string           `json:"tags"`                   // Tag names // 标签名列表
	Checklist    []ChecklistItemDTO `json:"checklist"`              // Checklist entries // 清单项
	IsArchived   bool               `json:"isArchived"`             // Archived flag // 归档标记
	IsPinned     bool               `json:"isPinned"`               // Pinned flag // 置顶标记
	SortOrder    int                `json:"sortOrder"`              // Manual sort position // 手动排序值
	ReminderTime timex.Time         `json:"reminderTime,omitempty"` // Reminder time // 提醒时间
	Notified     bool               `json:"notified"`               // Reminder delivered // 提醒已送达
	UpdatedAt    timex.Time         `json:"updatedAt"`              // Last updated time // 最后更新时间
	CreatedAt    timex.Time         `json:"createdAt"`              // Created time // 创建时间
}

// NoteCreateRequest Request parameters for creating a note
// 创建笔记的请求参数
type NoteCreateRequest struct {
	Title     string             `json:"title" form:"title" binding:"required"` // Title // 标题
	Content   string             `json:"content" form:"content"`                // Body text // 正文
	Color     string             `json:"color" form:"color"`                    // Display color // 显示颜色
	Tags      []string           `json:"tags" form:"tags"`                      // Tag names // 标签名列表
	Checklist []ChecklistItemSet `json:"checklist" form:"checklist"`            // Initial checklist // 初始清单
	IsPinned  bool               `json:"isPinned" form:"isPinned"`              // Pinned flag // 置顶标记
}

// ChecklistItemSet Checklist entry as submitted by the client
// 客户端提交的清单项
type ChecklistItemSet struct {
	Item string `json:"item" form:"item" binding:"required"` // Item text // 清单项内容
	Done bool   `json:"done" form:"done"`                    // Completion state // 完成状态
}

// NoteUpdateRequest Request parameters for replacing a note's editable fields
// 更新笔记可编辑字段的请求参数
type NoteUpdateRequest struct {
	Title    string   `json:"title" form:"title" binding:"required"` // Title // 标题
	Content  string   `json:"content" form:"content"`                // Body text // 正文
	Color    string   `json:"color" form:"color"`                    // Display color // 显示颜色
	Tags     []string `json:"tags" form:"tags"`                      // Tag names // 标签名列表
	IsPinned *bool    `json:"isPinned" form:"isPinned"`              // Pinned flag // 置顶标记
}

// NoteListRequest Query parameters for listing notes
// 获取笔记列表的查询参数
type NoteListRequest struct {
	Title    string `json:"title" form:"title"`       // Title substring // 标题模糊匹配
	Tag      string `json:"tag" form:"tag"`           // Tag name // 标签名
	Archived *bool  `json:"archived" form:"archived"` // Archived flag // 归档过滤
	Done     *bool  `json:"done" form:"done"`         // Checklist completion // 清单完成状态过滤
}

// NoteReorderRequest Request parameters for reordering notes
// 调整笔记顺序的请求参数
type NoteReorderRequest struct {
	NoteIDs []int64 `json:"noteIds" form:"noteIds" binding:"required,min=1"` // Note IDs in desired order // 期望顺序的笔记 ID 列表
}

// NoteReminderRequest Request parameters for setting or clearing a reminder
// 设置或清除提醒的请求参数
type NoteReminderRequest struct {
	ReminderTime string `json:"reminder" form:"reminder"` // Reminder time, empty clears // 提醒时间，空值表示清除
}

// ChecklistAddRequest Request parameters for appending a checklist entry
// 追加清单项的请求参数
type ChecklistAddRequest struct {
	Item string `json:"item" form:"item" binding:"required"` // Item text // 清单项内容
	Done bool   `json:"done" form:"done"`                    // Completion state // 完成状态
}

// ChecklistToggleRequest Request parameters for setting a checklist entry state
// 设置清单项完成状态的请求参数
type ChecklistToggleRequest struct {
	Done *bool `json:"done" form:"done"` // Target state, nil toggles // 目标状态，空值表示取反
}
