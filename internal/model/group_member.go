package model

import "time"

type GroupMember struct {
	// 复合主键保证每个(用户,群组)最多一条成员记录
	GroupID  uint      `gorm:"primaryKey;autoIncrement:false" json:"group_id"`
	UserID   uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	IsAdmin  bool      `gorm:"default:false" json:"is_admin"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	Group Group `gorm:"foreignKey:GroupID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}
