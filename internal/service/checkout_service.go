package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pharmanext/internal/config"
	"github.com/pharmanext/internal/constants"
	"github.com/pharmanext/internal/logger"
	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/payment/stripe"
	"github.com/pharmanext/internal/queue"
	"github.com/pharmanext/internal/repository"

	"gorm.io/gorm"
)

// checkoutTransitions 结账状态机允许的流转
var checkoutTransitions = map[string]map[string]bool{
	constants.CheckoutStateIdle: {
		constants.CheckoutStateValidating: true,
	},
	constants.CheckoutStateValidating: {
		constants.CheckoutStateConfirmingIntent: true,
		constants.CheckoutStateSubmitting:       true,
		constants.CheckoutStateFailed:           true,
	},
	constants.CheckoutStateConfirmingIntent: {
		constants.CheckoutStateProcessing: true,
		constants.CheckoutStateFailed:     true,
	},
	constants.CheckoutStateProcessing: {
		constants.CheckoutStateSubmitting: true,
		constants.CheckoutStateFailed:     true,
	},
	constants.CheckoutStateSubmitting: {
		constants.CheckoutStateSucceeded: true,
		constants.CheckoutStateFailed:    true,
	},
}

// IsCheckoutTransitionAllowed 判断结账状态流转是否允许
func IsCheckoutTransitionAllowed(from, to string) bool {
	return checkoutTransitions[from][to]
}

// checkoutRun 单次结账的状态跟踪
type checkoutRun struct {
	state string
}

func newCheckoutRun() *checkoutRun {
	return &checkoutRun{state: constants.CheckoutStateIdle}
}

func (r *checkoutRun) advance(to string) error {
	if !IsCheckoutTransitionAllowed(r.state, to) {
		return fmt.Errorf("checkout state %s cannot advance to %s", r.state, to)
	}
	r.state = to
	return nil
}

func (r *checkoutRun) fail() {
	if r.state != constants.CheckoutStateSucceeded {
		r.state = constants.CheckoutStateFailed
	}
}

// CardPaymentGateway 卡支付网关
type CardPaymentGateway interface {
	CreateIntent(ctx context.Context, input stripe.CreateIntentInput) (*stripe.IntentResult, error)
}

// StripeCardGateway 基于 Stripe 的卡支付网关实现
type StripeCardGateway struct {
	cfg stripe.Config
}

// NewStripeCardGateway 创建 Stripe 卡支付网关
func NewStripeCardGateway(cfg config.StripeConfig) *StripeCardGateway {
	gatewayCfg := stripe.Config{
		SecretKey:     cfg.SecretKey,
		APIBaseURL:    cfg.APIBase,
		TimeoutMS:     cfg.TimeoutMS,
		WebhookSecret: cfg.WebhookSecret,
	}
	gatewayCfg.Normalize()
	return &StripeCardGateway{cfg: gatewayCfg}
}

// CreateIntent 创建并确认支付意图
func (g *StripeCardGateway) CreateIntent(ctx context.Context, input stripe.CreateIntentInput) (*stripe.IntentResult, error) {
	return stripe.CreateIntent(ctx, &g.cfg, input)
}

// CheckoutService 结账服务
type CheckoutService struct {
	db             *gorm.DB
	cfg            *config.Config
	cartService    *CartService
	cartRepo       repository.CartRepository
	orderRepo      repository.OrderRepository
	settingService *SettingService
	gateway        CardPaymentGateway
	queueClient    *queue.Client
}

// NewCheckoutService 创建结账服务
func NewCheckoutService(
	db *gorm.DB,
	cfg *config.Config,
	cartService *CartService,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	settingService *SettingService,
	gateway CardPaymentGateway,
	queueClient *queue.Client,
) *CheckoutService {
	return &CheckoutService{
		db:             db,
		cfg:            cfg,
		cartService:    cartService,
		cartRepo:       cartRepo,
		orderRepo:      orderRepo,
		settingService: settingService,
		gateway:        gateway,
		queueClient:    queueClient,
	}
}

// PlaceOrderInput 下单输入
type PlaceOrderInput struct {
	UserID          uint
	Email           string
	BillingName     string
	Address         string
	City            string
	Phone           string
	PaymentType     string
	PaymentMethodID string
	ClientIP        string
}

// PlaceOrderResult 下单结果
type PlaceOrderResult struct {
	Order         *models.Order
	CheckoutState string
}

// PlaceOrder 执行一次完整结账。
// 校验失败不落库；卡支付先确认支付意图，成功后订单直接记为已支付；
// 货到付款生成 COD- 交易号并保持待支付。订单与购物车清空同事务提交。
func (s *CheckoutService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderResult, error) {
	run := newCheckoutRun()
	if err := run.advance(constants.CheckoutStateValidating); err != nil {
		return nil, err
	}

	order, items, err := s.prepareOrder(ctx, run, input)
	if err != nil {
		run.fail()
		return &PlaceOrderResult{CheckoutState: run.state}, err
	}

	if err := run.advance(constants.CheckoutStateSubmitting); err != nil {
		run.fail()
		return &PlaceOrderResult{CheckoutState: run.state}, err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order, items); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).ClearByUser(input.UserID)
	}); err != nil {
		run.fail()
		logger.Errorw("提交订单失败", "user_id", input.UserID, "order_no", order.OrderNo, "error", err)
		return &PlaceOrderResult{CheckoutState: run.state}, ErrOrderCreateFailed
	}

	if err := run.advance(constants.CheckoutStateSucceeded); err != nil {
		return &PlaceOrderResult{Order: order, CheckoutState: run.state}, err
	}

	s.enqueueOrderStatusEmail(order)

	return &PlaceOrderResult{Order: order, CheckoutState: run.state}, nil
}

// prepareOrder 校验输入、结算购物车并按支付方式构造订单。
// 返回前不做任何持久化写入。
func (s *CheckoutService) prepareOrder(ctx context.Context, run *checkoutRun, input PlaceOrderInput) (*models.Order, []models.OrderItem, error) {
	if err := validateBillingInfo(input); err != nil {
		return nil, nil, err
	}

	paymentType := strings.TrimSpace(input.PaymentType)
	switch paymentType {
	case constants.PaymentTypeCard, constants.PaymentTypeCOD:
	default:
		return nil, nil, ErrPaymentTypeInvalid
	}
	if paymentType == constants.PaymentTypeCard && strings.TrimSpace(input.PaymentMethodID) == "" {
		return nil, nil, ErrPaymentMethodMissing
	}

	summary, err := s.cartService.ListByUser(input.UserID)
	if err != nil {
		return nil, nil, err
	}
	if len(summary.Items) == 0 {
		return nil, nil, ErrCartEmpty
	}

	currency := s.resolveCurrency()
	orderNo, err := s.generateOrderNo()
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:     orderNo,
		UserID:      input.UserID,
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		BillingName: strings.TrimSpace(input.BillingName),
		Address:     strings.TrimSpace(input.Address),
		City:        strings.TrimSpace(input.City),
		Phone:       strings.TrimSpace(input.Phone),
		Currency:    currency,
		AmountPaid:  summary.TotalPrice,
		PaymentType: paymentType,
		ClientIP:    strings.TrimSpace(input.ClientIP),
		PlacedAt:    now,
	}

	switch paymentType {
	case constants.PaymentTypeCard:
		if err := run.advance(constants.CheckoutStateConfirmingIntent); err != nil {
			return nil, nil, err
		}
		intent, err := s.confirmCardPayment(ctx, order, input.PaymentMethodID)
		if err != nil {
			return nil, nil, err
		}
		if err := run.advance(constants.CheckoutStateProcessing); err != nil {
			return nil, nil, err
		}
		order.Status = constants.OrderStatusPaid
		order.TransactionID = intent.IntentID
		paidAt := now
		order.PaidAt = &paidAt
	case constants.PaymentTypeCOD:
		suffix, err := randomNumericCode(10)
		if err != nil {
			return nil, nil, err
		}
		order.Status = constants.OrderStatusPending
		order.TransactionID = constants.CODTransactionPrefix + suffix
	}

	items := make([]models.OrderItem, 0, len(summary.Items))
	for _, line := range summary.Items {
		items = append(items, models.OrderItem{
			MedicineID:      line.MedicineID,
			Name:            line.Name,
			FormulationType: line.FormulationType,
			UnitPrice:       line.UnitPrice,
			Quantity:        line.Quantity,
			TotalPrice:      line.LineTotal,
		})
	}
	return order, items, nil
}

// confirmCardPayment 调用卡支付网关确认支付意图
func (s *CheckoutService) confirmCardPayment(ctx context.Context, order *models.Order, paymentMethodID string) (*stripe.IntentResult, error) {
	if s.gateway == nil {
		return nil, ErrPaymentGatewayError
	}

	intent, err := s.gateway.CreateIntent(ctx, stripe.CreateIntentInput{
		OrderNo:         order.OrderNo,
		Amount:          order.AmountPaid.Decimal.StringFixed(2),
		Currency:        order.Currency,
		PaymentMethodID: strings.TrimSpace(paymentMethodID),
		Description:     "Pharmacy order " + order.OrderNo,
		ReceiptEmail:    order.Email,
	})
	if err != nil {
		if errors.Is(err, stripe.ErrPaymentDeclined) {
			return nil, ErrPaymentDeclined
		}
		logger.Errorw("卡支付网关请求失败", "order_no", order.OrderNo, "error", err)
		return nil, ErrPaymentGatewayError
	}
	if intent.Status == "failed" {
		return nil, ErrPaymentDeclined
	}
	return intent, nil
}

func (s *CheckoutService) resolveCurrency() string {
	fallback := constants.DefaultCurrency
	if s.cfg != nil && strings.TrimSpace(s.cfg.Order.Currency) != "" {
		fallback = strings.ToUpper(strings.TrimSpace(s.cfg.Order.Currency))
	}
	if s.settingService == nil {
		return fallback
	}
	currency, err := s.settingService.GetSiteCurrency(fallback)
	if err != nil {
		logger.Warnw("读取站点币种失败，使用回退值", "fallback", fallback, "error", err)
		return fallback
	}
	return currency
}

// generateOrderNo 生成订单编号：前缀 + 时间戳 + 6 位随机数字
func (s *CheckoutService) generateOrderNo() (string, error) {
	prefix := "PH"
	if s.cfg != nil && strings.TrimSpace(s.cfg.Order.NoPrefix) != "" {
		prefix = strings.TrimSpace(s.cfg.Order.NoPrefix)
	}
	suffix, err := randomNumericCode(6)
	if err != nil {
		return "", err
	}
	return prefix + time.Now().Format("20060102150405") + suffix, nil
}

func (s *CheckoutService) enqueueOrderStatusEmail(order *models.Order) {
	if s.queueClient == nil || order == nil {
		return
	}
	payload := queue.OrderStatusEmailPayload{OrderID: order.ID, Status: order.Status}
	if err := s.queueClient.EnqueueOrderStatusEmail(payload); err != nil {
		logger.Errorw("订单状态邮件任务入队失败", "order_id", order.ID, "status", order.Status, "error", err)
	}
}

func validateBillingInfo(input PlaceOrderInput) error {
	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrBillingInfoInvalid
	}
	for _, field := range []string{input.BillingName, input.Address, input.City, input.Phone} {
		if strings.TrimSpace(field) == "" {
			return ErrBillingInfoInvalid
		}
	}
	return nil
}
