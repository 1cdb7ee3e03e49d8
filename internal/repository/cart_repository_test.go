package repository

import (
	"testing"
	"time"

	"github.com/pharmanext/internal/constants"
	"github.com/pharmanext/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) (*GormCartRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Medicine{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate cart tables failed: %v", err)
	}
	return NewCartRepository(db), db
}

func newCartItem(userID, medicineID uint, formulation string, quantity int, unitPrice float64) *models.CartItem {
	now := time.Now()
	return &models.CartItem{
		UserID:          userID,
		MedicineID:      medicineID,
		FormulationType: formulation,
		Quantity:        quantity,
		UnitPrice:       models.NewMoneyFromFloat(unitPrice),
		Name:            "Napa Extra",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestCartUpsertMergesOnSameKey(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)

	if err := repo.Upsert(newCartItem(1, 10, constants.FormulationTablet, 2, 40)); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := repo.Upsert(newCartItem(1, 10, constants.FormulationTablet, 5, 40)); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	// 不同剂型是独立的行
	if err := repo.Upsert(newCartItem(1, 10, constants.FormulationSyrup, 1, 25)); err != nil {
		t.Fatalf("syrup upsert failed: %v", err)
	}

	items, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(items))
	}

	tablet, err := repo.GetByKey(1, 10, constants.FormulationTablet)
	if err != nil {
		t.Fatalf("get by key failed: %v", err)
	}
	if tablet == nil || tablet.Quantity != 5 {
		t.Fatalf("expected tablet row with quantity 5, got %+v", tablet)
	}
}

func TestCartDeleteByKeyAndClear(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)

	if err := repo.Upsert(newCartItem(1, 10, constants.FormulationTablet, 2, 40)); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := repo.Upsert(newCartItem(1, 11, constants.FormulationCapsule, 3, 60)); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	// 删除不存在的键不报错
	if err := repo.DeleteByKey(1, 99, constants.FormulationTablet); err != nil {
		t.Fatalf("delete missing key failed: %v", err)
	}

	if err := repo.DeleteByKey(1, 10, constants.FormulationTablet); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	items, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 row after delete, got %d", len(items))
	}

	if err := repo.ClearByUser(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	items, err = repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list after clear failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d rows", len(items))
	}
}

func TestCartDeleteStale(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)

	stale := newCartItem(1, 10, constants.FormulationTablet, 2, 40)
	stale.UpdatedAt = time.Now().Add(-40 * 24 * time.Hour)
	if err := db.Create(stale).Error; err != nil {
		t.Fatalf("create stale row failed: %v", err)
	}
	if err := repo.Upsert(newCartItem(1, 11, constants.FormulationSyrup, 1, 25)); err != nil {
		t.Fatalf("upsert fresh row failed: %v", err)
	}

	deleted, err := repo.DeleteStale(time.Now().Add(-30 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("delete stale failed: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 stale row deleted, got %d", deleted)
	}

	items, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].MedicineID != 11 {
		t.Fatalf("expected only the fresh row to remain, got %+v", items)
	}
}
