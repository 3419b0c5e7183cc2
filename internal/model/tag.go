package model

import (
	"github.com/solenote/note-keeper-service/pkg/timex"
)

const TableNameTag = "tag"

// Tag mapped from table <tag>
type Tag struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UID       int64      `gorm:"column:uid;not null;uniqueIndex:idx_uid_name,priority:1" json:"uid" form:"uid"`
	Name      string     `gorm:"column:name;not null;uniqueIndex:idx_uid_name,priority:2" json:"name" form:"name"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Tag's table name
func (*Tag) TableName() string {
	return TableNameTag
}
