package service

import (
	"strings"
	"time"

	"github.com/pharmanext/internal/constants"
	"github.com/pharmanext/internal/logger"
	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/queue"
	"github.com/pharmanext/internal/repository"
)

// allowedOrderTransitions 订单状态允许的流转
var allowedOrderTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusPaid:     true,
		constants.OrderStatusCanceled: true,
	},
	constants.OrderStatusPaid: {
		constants.OrderStatusShipped: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
	},
}

// IsOrderTransitionAllowed 判断订单状态流转是否允许
func IsOrderTransitionAllowed(from, to string) bool {
	return allowedOrderTransitions[from][to]
}

// OrderService 订单服务
type OrderService struct {
	repo        repository.OrderRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(repo repository.OrderRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{repo: repo, queueClient: queueClient}
}

// GetUserOrder 获取用户自己的订单详情
func (s *OrderService) GetUserOrder(orderID uint, userID uint) (*models.Order, error) {
	order, err := s.repo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// GetUserOrderByNo 根据订单编号获取用户订单
func (s *OrderService) GetUserOrderByNo(orderNo string, userID uint) (*models.Order, error) {
	order, err := s.repo.GetByOrderNoAndUser(strings.TrimSpace(orderNo), userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListUserOrders 用户订单列表
func (s *OrderService) ListUserOrders(userID uint, status string, page, pageSize int) ([]models.Order, int64, error) {
	return s.repo.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   strings.TrimSpace(status),
	})
}

// GetAdminOrder 获取后台订单详情
func (s *OrderService) GetAdminOrder(orderID uint) (*models.Order, error) {
	order, err := s.repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListAdminOrders 后台订单列表
func (s *OrderService) ListAdminOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.repo.ListAdmin(filter)
}

// UpdateStatus 更新订单状态。
// 只允许 pending→paid/canceled、paid→shipped、shipped→delivered，
// 流转成功后异步发送状态通知邮件。
func (s *OrderService) UpdateStatus(orderID uint, toStatus string) (*models.Order, error) {
	toStatus = strings.TrimSpace(toStatus)

	order, err := s.repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if !IsOrderTransitionAllowed(order.Status, toStatus) {
		return nil, ErrOrderStatusInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{}
	switch toStatus {
	case constants.OrderStatusPaid:
		updates["paid_at"] = now
	case constants.OrderStatusCanceled:
		updates["canceled_at"] = now
	}

	if err := s.repo.UpdateStatus(orderID, toStatus, updates); err != nil {
		return nil, err
	}

	order.Status = toStatus
	switch toStatus {
	case constants.OrderStatusPaid:
		order.PaidAt = &now
	case constants.OrderStatusCanceled:
		order.CanceledAt = &now
	}

	s.enqueueStatusEmail(order.ID, toStatus)
	return order, nil
}

// MarkPaidByGatewayEvent 按网关回调将订单标记为已支付。
// 订单不存在或已离开待支付态时直接忽略，回调可安全重放。
func (s *OrderService) MarkPaidByGatewayEvent(orderNo string, transactionID string, paidAt time.Time) error {
	order, err := s.repo.GetByOrderNo(strings.TrimSpace(orderNo))
	if err != nil {
		return err
	}
	if order == nil {
		logger.Warnw("网关回调指向未知订单", "order_no", orderNo)
		return nil
	}
	if order.Status != constants.OrderStatusPending {
		return nil
	}

	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	updates := map[string]interface{}{"paid_at": paidAt}
	if strings.TrimSpace(transactionID) != "" {
		updates["transaction_id"] = strings.TrimSpace(transactionID)
	}
	if err := s.repo.UpdateStatus(order.ID, constants.OrderStatusPaid, updates); err != nil {
		return err
	}

	s.enqueueStatusEmail(order.ID, constants.OrderStatusPaid)
	return nil
}

// enqueueStatusEmail 有收件邮箱时入队状态通知邮件
func (s *OrderService) enqueueStatusEmail(orderID uint, status string) {
	if s.queueClient == nil {
		return
	}
	email, err := s.repo.ResolveReceiverEmailByOrderID(orderID)
	if err != nil {
		logger.Errorw("解析订单收件邮箱失败", "order_id", orderID, "error", err)
		return
	}
	if email == "" {
		return
	}
	payload := queue.OrderStatusEmailPayload{OrderID: orderID, Status: status}
	if err := s.queueClient.EnqueueOrderStatusEmail(payload); err != nil {
		logger.Errorw("订单状态邮件任务入队失败", "order_id", orderID, "status", status, "error", err)
	}
}
