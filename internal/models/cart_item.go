package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车项。
// 同一用户内以（药品, 剂型）为合并键，数量约束 1..100。
type CartItem struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                                          // 主键
	UserID          uint           `gorm:"not null;uniqueIndex:idx_cart_user_medicine_formulation" json:"user_id"`       // 用户ID
	MedicineID      uint           `gorm:"not null;uniqueIndex:idx_cart_user_medicine_formulation" json:"medicine_id"`   // 药品ID
	FormulationType string         `gorm:"type:varchar(20);not null;uniqueIndex:idx_cart_user_medicine_formulation" json:"formulation_type"` // 剂型
	Quantity        int            `gorm:"not null" json:"quantity"`                                                      // 数量
	UnitPrice       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`                       // 加入时的单价快照
	Name            string         `gorm:"not null" json:"name"`                                                          // 名称快照
	Image           string         `gorm:"type:varchar(500)" json:"image"`                                                // 图片快照
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                                       // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                                       // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                                // 软删除时间

	Medicine *Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"` // 关联药品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

// LineTotal 该行小计（单价 × 数量）
func (i CartItem) LineTotal() Money {
	return NewMoneyFromDecimal(i.UnitPrice.Decimal.Mul(intToDecimal(i.Quantity)))
}
