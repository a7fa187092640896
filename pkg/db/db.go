package db

import (
	"fmt"

	"go-group-chat/internal/model"
	"go-group-chat/pkg/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// 初始化数据库连接
func InitDB() error {
	var err error
	// TranslateError让唯一索引冲突统一映射为gorm.ErrDuplicatedKey
	DB, err = gorm.Open(mysql.Open(config.GlobalConfig.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return migrate()
}

// InitTestDB 使用内存sqlite，供测试使用
func InitTestDB() error {
	var err error
	DB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to open test database: %w", err)
	}

	return migrate()
}

// 自动迁移模式
func migrate() error {
	err := DB.AutoMigrate(
		&model.User{},
		&model.UserImage{},
		&model.Group{},
		&model.GroupMember{},
		&model.SentRequest{},
		&model.Message{},
		&model.MessageFile{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
