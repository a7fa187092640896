package model

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"type:varchar(15);uniqueIndex" json:"code"` // 与群组共用同一套生成规则
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	GroupID   uint           `gorm:"not null;index" json:"group_id"`
	Content   string         `gorm:"type:text" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Group Group `gorm:"foreignKey:GroupID" json:"-"`
	// 删除消息时级联删除附件记录
	Files []MessageFile `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"files"`
}

// MessageFile 消息附件，删除记录时同时清理磁盘文件
type MessageFile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID uint      `gorm:"not null;index" json:"message_id"`
	Name      string    `gorm:"type:varchar(255)" json:"name"` // 原始文件名
	Path      string    `gorm:"type:varchar(255);not null" json:"path"`
	CreatedAt time.Time `json:"created_at"`
}
