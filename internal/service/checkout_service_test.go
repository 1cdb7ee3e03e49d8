package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pharmanext/internal/config"
	"github.com/pharmanext/internal/constants"
	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/payment/stripe"
	"github.com/pharmanext/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type fakeCardGateway struct {
	lastInput stripe.CreateIntentInput
	result    *stripe.IntentResult
	err       error
	calls     int
}

func (f *fakeCardGateway) CreateIntent(_ context.Context, input stripe.CreateIntentInput) (*stripe.IntentResult, error) {
	f.calls++
	f.lastInput = input
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func setupCheckoutServiceTest(t *testing.T, gateway CardPaymentGateway) (*CheckoutService, *CartService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{}, &models.Medicine{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.Setting{}, &models.User{},
	); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}

	cartRepo := repository.NewCartRepository(db)
	medicineRepo := repository.NewMedicineRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	settingService := NewSettingService(repository.NewSettingRepository(db))
	cartService := NewCartService(cartRepo, medicineRepo)

	cfg := &config.Config{Order: config.OrderConfig{NoPrefix: "PH", Currency: "USD"}}
	checkout := NewCheckoutService(db, cfg, cartService, cartRepo, orderRepo, settingService, gateway, nil)
	return checkout, cartService, db
}

func seedCheckoutCart(t *testing.T, cartService *CartService, db *gorm.DB, userID uint) {
	t.Helper()

	category := models.Category{Slug: "pain-relief", Name: "Pain Relief"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("写入测试分类失败: %v", err)
	}
	medicine := models.Medicine{
		SellerID:   1,
		CategoryID: category.ID,
		Slug:       "paracetamol-500",
		Name:       "Paracetamol",
		Formulations: models.MoneyMap{
			"tablet": models.NewMoneyFromFloat(40),
		},
		IsActive: true,
	}
	if err := db.Create(&medicine).Error; err != nil {
		t.Fatalf("写入测试药品失败: %v", err)
	}
	if _, err := cartService.AddItem(UpsertCartItemInput{
		UserID: userID, MedicineID: medicine.ID, Quantity: 2, FormulationType: "tablet",
	}); err != nil {
		t.Fatalf("加入购物车失败: %v", err)
	}
}

func validPlaceOrderInput(userID uint, paymentType string) PlaceOrderInput {
	return PlaceOrderInput{
		UserID:      userID,
		Email:       "buyer@example.com",
		BillingName: "Test Buyer",
		Address:     "1 Main Street",
		City:        "Springfield",
		Phone:       "555-0100",
		PaymentType: paymentType,
	}
}

func TestPlaceOrderCODCreatesPendingOrderAndClearsCart(t *testing.T) {
	checkout, cartService, db := setupCheckoutServiceTest(t, nil)
	seedCheckoutCart(t, cartService, db, 1)

	result, err := checkout.PlaceOrder(context.Background(), validPlaceOrderInput(1, constants.PaymentTypeCOD))
	if err != nil {
		t.Fatalf("货到付款下单失败: %v", err)
	}
	if result.CheckoutState != constants.CheckoutStateSucceeded {
		t.Fatalf("结账终态应为 succeeded，实际 %s", result.CheckoutState)
	}

	order := result.Order
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("货到付款订单应为待支付，实际 %s", order.Status)
	}
	if !strings.HasPrefix(order.TransactionID, constants.CODTransactionPrefix) {
		t.Fatalf("货到付款交易号应带 COD- 前缀，实际 %s", order.TransactionID)
	}
	if order.PaidAt != nil {
		t.Fatalf("待支付订单不应有支付时间")
	}
	if got := order.AmountPaid.String(); got != "80.00" {
		t.Fatalf("订单金额应为 80.00，实际 %s", got)
	}
	if !strings.HasPrefix(order.OrderNo, "PH") {
		t.Fatalf("订单编号应带配置前缀，实际 %s", order.OrderNo)
	}

	var itemCount int64
	if err := db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error; err != nil {
		t.Fatalf("查询订单项失败: %v", err)
	}
	if itemCount != 1 {
		t.Fatalf("订单项数量应为 1，实际 %d", itemCount)
	}

	summary, err := cartService.ListByUser(1)
	if err != nil {
		t.Fatalf("查询购物车失败: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("下单后购物车应被清空，剩余 %d 项", len(summary.Items))
	}
}

func TestPlaceOrderCardMarksPaidWithIntentID(t *testing.T) {
	gateway := &fakeCardGateway{result: &stripe.IntentResult{IntentID: "pi_test_123", Status: "success"}}
	checkout, cartService, db := setupCheckoutServiceTest(t, gateway)
	seedCheckoutCart(t, cartService, db, 1)

	input := validPlaceOrderInput(1, constants.PaymentTypeCard)
	input.PaymentMethodID = "pm_test_visa"

	result, err := checkout.PlaceOrder(context.Background(), input)
	if err != nil {
		t.Fatalf("卡支付下单失败: %v", err)
	}

	order := result.Order
	if order.Status != constants.OrderStatusPaid {
		t.Fatalf("卡支付订单应为已支付，实际 %s", order.Status)
	}
	if order.TransactionID != "pi_test_123" {
		t.Fatalf("交易号应为支付意图 ID，实际 %s", order.TransactionID)
	}
	if order.PaidAt == nil {
		t.Fatalf("已支付订单应记录支付时间")
	}
	if gateway.calls != 1 {
		t.Fatalf("网关应被调用一次，实际 %d", gateway.calls)
	}
	if gateway.lastInput.OrderNo != order.OrderNo {
		t.Fatalf("网关请求应携带订单编号")
	}
	if gateway.lastInput.Currency != "USD" {
		t.Fatalf("网关请求币种应为 USD，实际 %s", gateway.lastInput.Currency)
	}
	if gateway.lastInput.Amount != "80.00" {
		t.Fatalf("网关请求金额应为 80.00，实际 %s", gateway.lastInput.Amount)
	}
}

func TestPlaceOrderCardDeclineWritesNothing(t *testing.T) {
	gateway := &fakeCardGateway{err: stripe.ErrPaymentDeclined}
	checkout, cartService, db := setupCheckoutServiceTest(t, gateway)
	seedCheckoutCart(t, cartService, db, 1)

	input := validPlaceOrderInput(1, constants.PaymentTypeCard)
	input.PaymentMethodID = "pm_test_declined"

	result, err := checkout.PlaceOrder(context.Background(), input)
	if !errors.Is(err, ErrPaymentDeclined) {
		t.Fatalf("拒付应返回 ErrPaymentDeclined，实际 %v", err)
	}
	if result.CheckoutState != constants.CheckoutStateFailed {
		t.Fatalf("拒付后结账终态应为 failed，实际 %s", result.CheckoutState)
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("查询订单失败: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("拒付不应写入订单，实际 %d", orderCount)
	}

	summary, err := cartService.ListByUser(1)
	if err != nil {
		t.Fatalf("查询购物车失败: %v", err)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("拒付后购物车应保留，实际 %d 项", len(summary.Items))
	}
}

func TestPlaceOrderValidationFailuresWriteNothing(t *testing.T) {
	checkout, cartService, db := setupCheckoutServiceTest(t, nil)
	seedCheckoutCart(t, cartService, db, 1)

	cases := []struct {
		name    string
		mutate  func(*PlaceOrderInput)
		wantErr error
	}{
		{"缺少收件人", func(in *PlaceOrderInput) { in.BillingName = " " }, ErrBillingInfoInvalid},
		{"缺少地址", func(in *PlaceOrderInput) { in.Address = "" }, ErrBillingInfoInvalid},
		{"邮箱非法", func(in *PlaceOrderInput) { in.Email = "not-an-email" }, ErrBillingInfoInvalid},
		{"支付方式非法", func(in *PlaceOrderInput) { in.PaymentType = "Wire" }, ErrPaymentTypeInvalid},
		{"卡支付缺支付方式 ID", func(in *PlaceOrderInput) {
			in.PaymentType = constants.PaymentTypeCard
			in.PaymentMethodID = ""
		}, ErrPaymentMethodMissing},
	}

	for _, tc := range cases {
		input := validPlaceOrderInput(1, constants.PaymentTypeCOD)
		tc.mutate(&input)
		result, err := checkout.PlaceOrder(context.Background(), input)
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: 期望 %v，实际 %v", tc.name, tc.wantErr, err)
		}
		if result.CheckoutState != constants.CheckoutStateFailed {
			t.Fatalf("%s: 结账终态应为 failed，实际 %s", tc.name, result.CheckoutState)
		}
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("查询订单失败: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("校验失败不应写入订单，实际 %d", orderCount)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	checkout, _, _ := setupCheckoutServiceTest(t, nil)

	_, err := checkout.PlaceOrder(context.Background(), validPlaceOrderInput(1, constants.PaymentTypeCOD))
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("空购物车应返回 ErrCartEmpty，实际 %v", err)
	}
}

func TestCheckoutTransitions(t *testing.T) {
	allowed := [][2]string{
		{constants.CheckoutStateIdle, constants.CheckoutStateValidating},
		{constants.CheckoutStateValidating, constants.CheckoutStateConfirmingIntent},
		{constants.CheckoutStateValidating, constants.CheckoutStateSubmitting},
		{constants.CheckoutStateConfirmingIntent, constants.CheckoutStateProcessing},
		{constants.CheckoutStateProcessing, constants.CheckoutStateSubmitting},
		{constants.CheckoutStateSubmitting, constants.CheckoutStateSucceeded},
		{constants.CheckoutStateSubmitting, constants.CheckoutStateFailed},
	}
	for _, pair := range allowed {
		if !IsCheckoutTransitionAllowed(pair[0], pair[1]) {
			t.Fatalf("%s -> %s 应被允许", pair[0], pair[1])
		}
	}

	denied := [][2]string{
		{constants.CheckoutStateIdle, constants.CheckoutStateSubmitting},
		{constants.CheckoutStateSucceeded, constants.CheckoutStateValidating},
		{constants.CheckoutStateFailed, constants.CheckoutStateSucceeded},
		{constants.CheckoutStateConfirmingIntent, constants.CheckoutStateSucceeded},
	}
	for _, pair := range denied {
		if IsCheckoutTransitionAllowed(pair[0], pair[1]) {
			t.Fatalf("%s -> %s 不应被允许", pair[0], pair[1])
		}
	}
}
