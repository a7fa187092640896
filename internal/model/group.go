package model

import (
	"time"

	"gorm.io/gorm"
)

type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"type:varchar(15);uniqueIndex" json:"code"` // 唯一加群码，首次保存时生成，之后不变
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Image       string    `gorm:"type:varchar(255)" json:"image"`
	Description string    `gorm:"type:text" json:"description"`
	AuthorID    *uint     `gorm:"index" json:"author_id"` // 删除作者时置空而不是级联
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"-"`
	// 群组之间的自引用关联
	Linked   []*Group      `gorm:"many2many:group_links" json:"-"`
	Members  []GroupMember `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
	Messages []Message     `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
}
