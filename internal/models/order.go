package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                   // 主键
	OrderNo       string         `gorm:"uniqueIndex;not null" json:"order_no"`                   // 订单编号
	UserID        uint           `gorm:"index;not null" json:"user_id"`                          // 用户ID
	Email         string         `gorm:"index;not null" json:"email"`                            // 下单邮箱
	BillingName   string         `gorm:"type:varchar(200);not null" json:"billing_name"`         // 收件人姓名
	Address       string         `gorm:"type:varchar(500);not null" json:"address"`              // 收货地址
	City          string         `gorm:"type:varchar(120);not null" json:"city"`                 // 城市
	Phone         string         `gorm:"type:varchar(40);not null" json:"phone"`                 // 联系电话
	Status        string         `gorm:"index;not null" json:"status"`                           // 订单状态
	Currency      string         `gorm:"not null" json:"currency"`                               // 币种
	AmountPaid    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount_paid"` // 应付/实付金额
	PaymentType   string         `gorm:"type:varchar(40);not null" json:"payment_type"`          // 支付方式（Card / Cash on Delivery）
	TransactionID string         `gorm:"type:varchar(120);index" json:"transaction_id"`          // 交易号（卡支付为网关单号，COD 为 COD- 前缀）
	ClientIP      string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`            // 下单客户端IP
	PlacedAt      time.Time      `gorm:"index" json:"placed_at"`                                 // 下单时间
	PaidAt        *time.Time     `gorm:"index" json:"paid_at"`                                   // 支付时间
	CanceledAt    *time.Time     `gorm:"index" json:"canceled_at"`                               // 取消时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
