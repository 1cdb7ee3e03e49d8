package models

import (
	"time"

	"gorm.io/gorm"
)

// Feedback 用户评价（管理员审核后展示）
type Feedback struct {
	ID         uint           `gorm:"primarykey" json:"id"`                   // 主键
	UserID     uint           `gorm:"index;not null" json:"user_id"`          // 用户ID
	Rating     int            `gorm:"not null" json:"rating"`                 // 评分（1..5）
	Comment    string         `gorm:"type:text" json:"comment"`               // 评价内容
	IsApproved bool           `gorm:"default:false;index" json:"is_approved"` // 是否审核通过
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                             // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"` // 关联用户
}

// TableName 指定表名
func (Feedback) TableName() string {
	return "feedbacks"
}
