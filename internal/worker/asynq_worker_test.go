package worker

import (
	"context"
	"testing"
	"time"

	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/provider"
	"github.com/pharmanext/internal/queue"
	"github.com/pharmanext/internal/repository"
	"github.com/pharmanext/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.CartItem{}, &models.Medicine{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}

	cartRepo := repository.NewCartRepository(db)
	medicineRepo := repository.NewMedicineRepository(db)
	container := &provider.Container{
		OrderRepo:   repository.NewOrderRepository(db),
		CartRepo:    cartRepo,
		CartService: service.NewCartService(cartRepo, medicineRepo),
	}
	return NewConsumer(container), db
}

func TestHandleOrderStatusEmailInvalidPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task := asynq.NewTask(queue.TaskOrderStatusEmail, []byte("not-json"))
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err == nil {
		t.Fatalf("非法载荷应返回错误")
	}

	task = asynq.NewTask(queue.TaskOrderStatusEmail, []byte(`{"order_id":0}`))
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("空订单 ID 应跳过: %v", err)
	}

	task = asynq.NewTask(queue.TaskOrderStatusEmail, []byte(`{"order_id":999}`))
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("不存在的订单应跳过: %v", err)
	}
}

func TestHandleCartReapStaleRemovesOldItems(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	old := models.CartItem{
		UserID:          1,
		MedicineID:      1,
		FormulationType: "tablet",
		Quantity:        2,
		UnitPrice:       models.NewMoneyFromFloat(40),
		Name:            "Paracetamol",
	}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("写入测试购物车项失败: %v", err)
	}
	stale := time.Now().AddDate(0, 0, -60)
	if err := db.Model(&models.CartItem{}).Where("id = ?", old.ID).Update("updated_at", stale).Error; err != nil {
		t.Fatalf("更新测试时间失败: %v", err)
	}

	task := asynq.NewTask(queue.TaskCartReapStale, []byte(`{"stale_days":30}`))
	if err := consumer.handleCartReapStale(context.Background(), task); err != nil {
		t.Fatalf("清理任务执行失败: %v", err)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Count(&count).Error; err != nil {
		t.Fatalf("统计购物车项失败: %v", err)
	}
	if count != 0 {
		t.Fatalf("过期购物车项应被清理, 剩余 %d", count)
	}
}
