package worker

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pharmanext/internal/constants"
	"github.com/pharmanext/internal/logger"
	"github.com/pharmanext/internal/provider"
	"github.com/pharmanext/internal/queue"
	"github.com/pharmanext/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskCartReapStale, c.handleCartReapStale)
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	receiverEmail := strings.TrimSpace(order.Email)
	if receiverEmail == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_status_email_skip_email_service_nil", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	input := service.OrderStatusEmailInput{
		OrderNo:     order.OrderNo,
		Status:      status,
		Amount:      order.AmountPaid,
		Currency:    order.Currency,
		PaymentType: order.PaymentType,
	}
	if err := c.EmailService.SendOrderStatusEmail(receiverEmail, input); err != nil {
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiverEmail,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleCartReapStale(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_cart_reap_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CartReapStalePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_cart_reap_unmarshal_failed", "error", err)
		return err
	}
	staleDays := payload.StaleDays
	if staleDays <= 0 {
		staleDays = constants.CartStaleDays
	}
	if c.CartService == nil {
		logger.Warnw("worker_cart_reap_skip_cart_service_nil")
		return nil
	}
	removed, err := c.CartService.ReapStale(staleDays)
	if err != nil {
		logger.Warnw("worker_cart_reap_failed", "stale_days", staleDays, "error", err)
		return err
	}
	if removed > 0 {
		logger.Infow("worker_cart_reap_done", "stale_days", staleDays, "removed", removed)
	}

	// 排队下一轮清理
	if c.QueueClient != nil && c.QueueClient.Enabled() {
		if err := c.QueueClient.EnqueueCartReapStale(queue.CartReapStalePayload{StaleDays: staleDays}, 24*time.Hour); err != nil {
			logger.Warnw("worker_cart_reap_reschedule_failed", "error", err)
		}
	}
	return nil
}
