package models

import (
	"time"

	"gorm.io/gorm"
)

// Advertisement 推广位（卖家提交，管理员审核上线）
type Advertisement struct {
	ID          uint           `gorm:"primarykey" json:"id"`                    // 主键
	SellerID    uint           `gorm:"index;not null" json:"seller_id"`         // 卖家ID
	MedicineID  uint           `gorm:"index;not null" json:"medicine_id"`       // 关联药品ID
	Title       string         `gorm:"not null" json:"title"`                   // 标题
	Description string         `gorm:"type:text" json:"description"`            // 描述
	Image       string         `gorm:"type:varchar(500);not null" json:"image"` // 主图
	IsActive    bool           `gorm:"default:false;index" json:"is_active"`    // 是否上线（需审核）
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`       // 排序
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除

	Medicine *Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"` // 关联药品
}

// TableName 指定表名
func (Advertisement) TableName() string {
	return "advertisements"
}
