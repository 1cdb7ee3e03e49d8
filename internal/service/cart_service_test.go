package service

import (
	"errors"
	"testing"

	"github.com/pharmanext/internal/constants"
	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Medicine{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate tables failed: %v", err)
	}
	svc := NewCartService(repository.NewCartRepository(db), repository.NewMedicineRepository(db))
	return svc, db
}

func seedMedicine(t *testing.T, db *gorm.DB, id uint, name string, formulations map[string]float64, discountPercent int) {
	t.Helper()
	prices := models.MoneyMap{}
	for formulation, price := range formulations {
		prices[formulation] = models.NewMoneyFromFloat(price)
	}
	medicine := &models.Medicine{
		ID:              id,
		SellerID:        1,
		CategoryID:      1,
		Slug:            name,
		Name:            name,
		Formulations:    prices,
		DiscountPercent: discountPercent,
		IsActive:        true,
	}
	if err := db.Create(medicine).Error; err != nil {
		t.Fatalf("seed medicine failed: %v", err)
	}
}

func TestCartAddItemMergesByMedicineAndFormulation(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedMedicine(t, db, 10, "napa-extra", map[string]float64{
		constants.FormulationTablet: 40,
		constants.FormulationSyrup:  25,
	}, 0)

	summary, err := svc.AddItem(UpsertCartItemInput{UserID: 1, MedicineID: 10, Quantity: 2, FormulationType: constants.FormulationTablet})
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if len(summary.Items) != 1 || summary.TotalQuantity != 2 {
		t.Fatalf("unexpected summary after first add: %+v", summary)
	}

	summary, err = svc.AddItem(UpsertCartItemInput{UserID: 1, MedicineID: 10, Quantity: 3, FormulationType: constants.FormulationTablet})
	if err != nil {
		t.Fatalf("merge add failed: %v", err)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("expected merged row, got %d rows", len(summary.Items))
	}
	if summary.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", summary.Items[0].Quantity)
	}

	// 不同剂型是独立行
	summary, err = svc.AddItem(UpsertCartItemInput{UserID: 1, MedicineID: 10, Quantity: 1, FormulationType: constants.FormulationSyrup})
	if err != nil {
		t.Fatalf("syrup add failed: %v", err)
	}
	if len(summary.Items) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(summary.Items))
	}
}

func TestCartQuantityClampAndRejection(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedMedicine(t, db, 11, "seclo", map[string]float64{constants.FormulationCapsule: 8}, 0)

	if _, err := svc.AddItem(UpsertCartItemInput{UserID: 1, MedicineID: 11, Quantity: 0, FormulationType: constants.FormulationCapsule}); !errors.Is(err, ErrInvalidCartItem) {
		t.Fatalf("expected ErrInvalidCartItem for zero quantity, got %v", err)
	}
	if _, err := svc.AddItem(UpsertCartItemInput{UserID: 1, MedicineID: 11, Quantity: -3, FormulationType: constants.FormulationCapsule}); !errors.Is(err, ErrInvalidCartItem) {
		t.Fatalf("expected ErrInvalidCartItem for negative quantity, got %v", err)
	}

	summary, err := svc.AddItem(UpsertCartItemInput{UserID: 1, MedicineID: 11, Quantity: 500, FormulationType: constants.FormulationCapsule})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if summary.Items[0].Quantity != constants.CartQuantityMax {
		t.Fatalf("expected clamp to %d, got %d", constants.CartQuantityMax, summary.Items[0].Quantity)
	}

	// 合并后仍不超过上限
	summary, err = svc.AddItem(UpsertCartItemInput{UserID: 1, MedicineID: 11, Quantity: 10, FormulationType: constants.FormulationCapsule})
	if err != nil {
		t.Fatalf("merge add failed: %v", err)
	}
	if summary.Items[0].Quantity != constants.CartQuantityMax {
		t.Fatalf("expected clamp to stay at %d, got %d", constants.CartQuantityMax, summary.Items[0].Quantity)
	}
}

func TestCartSetQuantityClampsZeroToMin(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedMedicine(t, db, 14, "deslor", map[string]float64{constants.FormulationTablet: 6}, 0)

	if _, err := svc.AddItem(UpsertCartItemInput{UserID: 1, MedicineID: 14, Quantity: 5, FormulationType: constants.FormulationTablet}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	summary, err := svc.SetItemQuantity(UpsertCartItemInput{UserID: 1, MedicineID: 14, Quantity: 0, FormulationType: constants.FormulationTablet})
	if err != nil {
		t.Fatalf("set quantity 0 failed: %v", err)
	}
	if summary.Items[0].Quantity != constants.CartQuantityMin {
		t.Fatalf("expected quantity clamped to %d, got %d", constants.CartQuantityMin, summary.Items[0].Quantity)
	}

	summary, err = svc.SetItemQuantity(UpsertCartItemInput{UserID: 1, MedicineID: 14, Quantity: 500, FormulationType: constants.FormulationTablet})
	if err != nil {
		t.Fatalf("set quantity 500 failed: %v", err)
	}
	if summary.Items[0].Quantity != constants.CartQuantityMax {
		t.Fatalf("expected quantity clamped to %d, got %d", constants.CartQuantityMax, summary.Items[0].Quantity)
	}
}

func TestCartSetQuantityMissingRowIsNoop(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedMedicine(t, db, 15, "rolac", map[string]float64{constants.FormulationTablet: 9}, 0)

	summary, err := svc.SetItemQuantity(UpsertCartItemInput{UserID: 1, MedicineID: 15, Quantity: 3, FormulationType: constants.FormulationTablet})
	if err != nil {
		t.Fatalf("set quantity on missing row failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("expected no row created, got %d", len(summary.Items))
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cart table untouched, got %d rows", count)
	}
}

func TestCartInvalidFormulation(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedMedicine(t, db, 12, "monas", map[string]float64{constants.FormulationTablet: 17}, 0)

	if _, err := svc.AddItem(UpsertCartItemInput{UserID: 1, MedicineID: 12, Quantity: 1, FormulationType: "powder"}); !errors.Is(err, ErrFormulationInvalid) {
		t.Fatalf("expected ErrFormulationInvalid for unknown type, got %v", err)
	}
	if _, err := svc.AddItem(UpsertCartItemInput{UserID: 1, MedicineID: 12, Quantity: 1, FormulationType: constants.FormulationSyrup}); !errors.Is(err, ErrFormulationInvalid) {
		t.Fatalf("expected ErrFormulationInvalid for missing formulation, got %v", err)
	}
}

func TestCartDiscountedUnitPriceSnapshot(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedMedicine(t, db, 13, "maxpro", map[string]float64{constants.FormulationTablet: 100}, 25)

	summary, err := svc.AddItem(UpsertCartItemInput{UserID: 1, MedicineID: 13, Quantity: 2, FormulationType: constants.FormulationTablet})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if got := summary.Items[0].UnitPrice.String(); got != "75" && got != "75.00" {
		t.Fatalf("expected discounted unit price 75, got %s", got)
	}
	if got := summary.TotalPrice.String(); got != "150" && got != "150.00" {
		t.Fatalf("expected total 150, got %s", got)
	}
}

func TestCartDerivedTotalsAcrossMutations(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedMedicine(t, db, 20, "napa", map[string]float64{constants.FormulationTablet: 40}, 0)
	seedMedicine(t, db, 21, "ace-syrup", map[string]float64{constants.FormulationSyrup: 50}, 0)

	summary, err := svc.AddItem(UpsertCartItemInput{UserID: 7, MedicineID: 20, Quantity: 2, FormulationType: constants.FormulationTablet})
	if err != nil {
		t.Fatalf("step 1 failed: %v", err)
	}
	if summary.TotalPrice.String() != "80.00" {
		t.Fatalf("step 1: expected total 80.00, got %s", summary.TotalPrice)
	}

	summary, err = svc.AddItem(UpsertCartItemInput{UserID: 7, MedicineID: 20, Quantity: 4, FormulationType: constants.FormulationTablet})
	if err != nil {
		t.Fatalf("step 2 failed: %v", err)
	}
	if summary.TotalPrice.String() != "240.00" {
		t.Fatalf("step 2: expected total 240.00, got %s", summary.TotalPrice)
	}

	summary, err = svc.AddItem(UpsertCartItemInput{UserID: 7, MedicineID: 21, Quantity: 3, FormulationType: constants.FormulationSyrup})
	if err != nil {
		t.Fatalf("step 3 failed: %v", err)
	}
	if summary.TotalQuantity != 9 || summary.TotalPrice.String() != "390.00" {
		t.Fatalf("step 3: expected qty 9 total 390.00, got %d %s", summary.TotalQuantity, summary.TotalPrice)
	}

	summary, err = svc.RemoveItem(7, 20, constants.FormulationTablet)
	if err != nil {
		t.Fatalf("step 4 failed: %v", err)
	}
	if summary.TotalQuantity != 3 || summary.TotalPrice.String() != "150.00" {
		t.Fatalf("step 4: expected qty 3 total 150.00, got %d %s", summary.TotalQuantity, summary.TotalPrice)
	}
}

func TestCartRemoveMissingItemIsNoop(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedMedicine(t, db, 30, "filmet", map[string]float64{constants.FormulationTablet: 12}, 0)

	summary, err := svc.RemoveItem(1, 30, constants.FormulationTablet)
	if err != nil {
		t.Fatalf("remove missing item failed: %v", err)
	}
	if len(summary.Items) != 0 || summary.TotalQuantity != 0 {
		t.Fatalf("expected empty cart, got %+v", summary)
	}
}

func TestCartClear(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedMedicine(t, db, 40, "losectil", map[string]float64{constants.FormulationCapsule: 7}, 0)

	if _, err := svc.AddItem(UpsertCartItemInput{UserID: 2, MedicineID: 40, Quantity: 3, FormulationType: constants.FormulationCapsule}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Clear(2); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	summary, err := svc.ListByUser(2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %d items", len(summary.Items))
	}
}

func TestCartListDropsInactiveMedicine(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedMedicine(t, db, 50, "flexi", map[string]float64{constants.FormulationTablet: 15}, 0)

	if _, err := svc.AddItem(UpsertCartItemInput{UserID: 3, MedicineID: 50, Quantity: 1, FormulationType: constants.FormulationTablet}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := db.Model(&models.Medicine{}).Where("id = ?", 50).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	summary, err := svc.ListByUser(3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("expected inactive medicine to be dropped, got %d items", len(summary.Items))
	}
}
