package model

import "time"

// 入群申请状态。Status为nil表示待处理。
const (
	RequestAccepted = 1
	RequestRejected = 2
)

// SentRequest 用户发起的入群申请。
// 申请通过删除记录来终结：删除前状态为Accepted时产生普通成员资格，
// 其他状态删除后无任何副作用。
type SentRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	GroupID   uint      `gorm:"not null;index" json:"group_id"`
	Status    *int      `json:"status"` // nil表示待处理
	CreatedAt time.Time `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Group Group `gorm:"foreignKey:GroupID" json:"-"`
}
