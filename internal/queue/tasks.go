package queue

import (
	"encoding/json"

	"github.com/pharmanext/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail 订单状态邮件通知任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskCartReapStale 过期购物车清理任务
	TaskCartReapStale = constants.TaskCartReapStale
)

// OrderStatusEmailPayload 订单状态邮件任务载荷
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// CartReapStalePayload 过期购物车清理任务载荷
type CartReapStalePayload struct {
	StaleDays int `json:"stale_days"`
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewCartReapStaleTask 创建过期购物车清理任务
func NewCartReapStaleTask(payload CartReapStalePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCartReapStale, body), nil
}
