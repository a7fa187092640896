package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"` // bcrypt哈希，永不返回
	Phone     string `gorm:"type:varchar(20)" json:"phone"`
	Avatar    string `gorm:"type:varchar(255)" json:"avatar"`
	Email     string `gorm:"type:varchar(255)" json:"email"`
	Bio       string `gorm:"type:text" json:"bio"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 删除用户时级联删除图片和入群申请
	Images       []UserImage   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	SentRequests []SentRequest `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserImage 用户上传的图片，删除记录时同时清理磁盘文件
type UserImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Path      string    `gorm:"type:varchar(255);not null" json:"path"`
	CreatedAt time.Time `json:"created_at"`
}
