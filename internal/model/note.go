package model

import (
	"database/sql/driver"
	"fmt"

	"github.com/solenote/note-keeper-service/pkg/timex"

	"github.com/bytedance/sonic"
)

const TableNameNote = "note"

// StringList 以 JSON 存储的字符串数组列
type StringList []string

// Value 实现 driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := sonic.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported column type %T for StringList", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return sonic.Unmarshal(data, (*[]string)(l))
}

// ChecklistEntry 清单项的存储形态
type ChecklistEntry struct {
	ID   string `json:"id"`
	Item string `json:"item"`
	Done bool   `json:"done"`
}

// ChecklistEntries 以 JSON 存储的清单列
type ChecklistEntries []ChecklistEntry

// Value 实现 driver.Valuer
func (c ChecklistEntries) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := sonic.Marshal([]ChecklistEntry(c))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner
func (c *ChecklistEntries) Scan(value any) error {
	if value == nil {
		*c = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported column type %T for ChecklistEntries", value)
	}
	if len(data) == 0 {
		*c = nil
		return nil
	}
	return sonic.Unmarshal(data, (*[]ChecklistEntry)(c))
}

// Note mapped from table <note>
type Note struct {
	ID           int64            `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UID          int64            `gorm:"column:uid;not null;index:idx_uid_sort,priority:1" json:"uid" form:"uid"`
	Title        string           `gorm:"column:title;not null" json:"title" form:"title"`
	Content      string           `gorm:"column:content" json:"content" form:"content"`
	Color        string           `gorm:"column:color;default:#ffffff" json:"color" form:"color"`
	Tags         StringList       `gorm:"column:tags;type:text" json:"tags" form:"tags"`
	Checklist    ChecklistEntries `gorm:"column:checklist;type:text" json:"checklist" form:"checklist"`
	IsArchived   bool             `gorm:"column:is_archived;default:false;index" json:"isArchived" form:"isArchived"`
	IsPinned     bool             `gorm:"column:is_pinned;default:false" json:"isPinned" form:"isPinned"`
	SortOrder    int              `gorm:"column:sort_order;default:0;index:idx_uid_sort,priority:2" json:"sortOrder" form:"sortOrder"`
	ReminderTime timex.Time       `gorm:"column:reminder_time;type:datetime;default:NULL" json:"reminderTime" form:"reminderTime"`
	Notified     bool             `gorm:"column:notified;default:false;index" json:"notified" form:"notified"`
	CreatedAt    timex.Time       `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt    timex.Time       `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
