package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Note":
		return db.AutoMigrate(Note{})

	case "Tag":
		return db.AutoMigrate(Tag{})

	case "User":
		return db.AutoMigrate(User{})
	}
	return nil
}

// AutoMigrateAll 迁移全部数据表
func AutoMigrateAll(db *gorm.DB) error {
	for _, key := range []string{"Note", "Tag", "User"} {
		if err := AutoMigrate(db, key); err != nil {
			return err
		}
	}
	return nil
}
