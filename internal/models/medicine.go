package models

import (
	"time"

	"gorm.io/gorm"
)

// Medicine 药品表
type Medicine struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                     // 主键
	SellerID        uint           `gorm:"not null;index" json:"seller_id"`                          // 卖家ID
	CategoryID      uint           `gorm:"not null;index" json:"category_id"`                        // 分类ID
	Slug            string         `gorm:"uniqueIndex;not null" json:"slug"`                         // 唯一标识
	Name            string         `gorm:"not null;index" json:"name"`                               // 药品名称
	GenericName     string         `gorm:"type:varchar(200)" json:"generic_name"`                    // 通用名
	Brand           string         `gorm:"type:varchar(200);index" json:"brand"`                     // 品牌/厂商
	Description     string         `gorm:"type:text" json:"description"`                             // 描述
	Image           string         `gorm:"type:varchar(500)" json:"image"`                           // 主图地址
	Images          StringArray    `gorm:"type:json" json:"images"`                                  // 图片数组
	Formulations    MoneyMap       `gorm:"type:json;not null" json:"formulations"`                   // 剂型单价映射
	DiscountPercent int            `gorm:"not null;default:0" json:"discount_percent"`               // 折扣百分比（0-100）
	IsActive        bool           `gorm:"default:true;index" json:"is_active"`                      // 是否上架
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`                        // 排序权重
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Medicine) TableName() string {
	return "medicines"
}
