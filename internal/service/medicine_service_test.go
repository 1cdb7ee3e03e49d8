package service

import (
	"errors"
	"testing"

	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupMedicineServiceTest(t *testing.T) (*MedicineService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Medicine{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}

	return NewMedicineService(repository.NewMedicineRepository(db)), db
}

func seedBrowseMedicines(t *testing.T, db *gorm.DB) {
	t.Helper()

	categories := []models.Category{
		{Slug: "pain-relief", Name: "Pain Relief"},
		{Slug: "antibiotics", Name: "Antibiotics"},
	}
	for i := range categories {
		if err := db.Create(&categories[i]).Error; err != nil {
			t.Fatalf("写入测试分类失败: %v", err)
		}
	}

	medicines := []models.Medicine{
		{
			SellerID: 1, CategoryID: categories[0].ID, Slug: "paracetamol-500",
			Name: "Paracetamol", GenericName: "Acetaminophen", Brand: "Calpol",
			Formulations: models.MoneyMap{"tablet": models.NewMoneyFromFloat(5)},
			IsActive:     true,
		},
		{
			SellerID: 1, CategoryID: categories[0].ID, Slug: "paracetamol-extra",
			Name: "Paracetamol Extra", GenericName: "Acetaminophen", Brand: "Panadol",
			Formulations: models.MoneyMap{"tablet": models.NewMoneyFromFloat(8)},
			IsActive:     true,
		},
		{
			SellerID: 1, CategoryID: categories[1].ID, Slug: "amoxicillin-250",
			Name: "Amoxicillin", GenericName: "Amoxicillin", Brand: "Amoxil",
			Formulations: models.MoneyMap{"capsule": models.NewMoneyFromFloat(12), "syrup": models.NewMoneyFromFloat(3)},
			IsActive:     true,
		},
		{
			SellerID: 1, CategoryID: categories[1].ID, Slug: "old-paracetamol",
			Name: "Compound Paracetamol", GenericName: "Acetaminophen", Brand: "Generic",
			Formulations: models.MoneyMap{"tablet": models.NewMoneyFromFloat(2)},
			IsActive:     true,
		},
	}
	for i := range medicines {
		if err := db.Create(&medicines[i]).Error; err != nil {
			t.Fatalf("写入测试药品失败: %v", err)
		}
	}
	// IsActive 带 default:true，Create 会跳过零值，下架行需显式更新
	if err := db.Model(&models.Medicine{}).Where("slug = ?", "old-paracetamol").Update("is_active", false).Error; err != nil {
		t.Fatalf("下架测试药品失败: %v", err)
	}
}

func TestBrowseSearchBoostsExactThenPrefix(t *testing.T) {
	service, db := setupMedicineServiceTest(t)
	seedBrowseMedicines(t, db)

	items, total, err := service.Browse(BrowseMedicinesParams{Search: "paracetamol", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("检索失败: %v", err)
	}
	if total != 2 {
		t.Fatalf("命中数量应为 2（下架条目不可见），实际 %d", total)
	}
	if items[0].Name != "Paracetamol" {
		t.Fatalf("完全一致命中应排第一，实际 %s", items[0].Name)
	}
	if items[1].Name != "Paracetamol Extra" {
		t.Fatalf("前缀命中应排第二，实际 %s", items[1].Name)
	}
}

func TestBrowseSearchBoostOverridesSortKey(t *testing.T) {
	service, db := setupMedicineServiceTest(t)

	category := models.Category{Slug: "pain-relief", Name: "Pain Relief"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("写入测试分类失败: %v", err)
	}
	medicines := []models.Medicine{
		{
			SellerID: 1, CategoryID: category.ID, Slug: "napa",
			Name:         "Napa",
			Formulations: models.MoneyMap{"tablet": models.NewMoneyFromFloat(10)},
			IsActive:     true,
		},
		{
			SellerID: 1, CategoryID: category.ID, Slug: "napa-extend",
			Name:         "Napa Extend",
			Formulations: models.MoneyMap{"tablet": models.NewMoneyFromFloat(2)},
			IsActive:     true,
		},
	}
	for i := range medicines {
		if err := db.Create(&medicines[i]).Error; err != nil {
			t.Fatalf("写入测试药品失败: %v", err)
		}
	}

	// 价格升序会把便宜的前缀命中排前，但完全一致命中必须保持第一
	items, _, err := service.Browse(BrowseMedicinesParams{Search: "napa", SortBy: "price", SortDir: "asc"})
	if err != nil {
		t.Fatalf("检索失败: %v", err)
	}
	if items[0].Name != "Napa" {
		t.Fatalf("完全一致命中应压过排序字段排第一，实际 %s", items[0].Name)
	}
	if items[1].Name != "Napa Extend" {
		t.Fatalf("前缀命中应排第二，实际 %s", items[1].Name)
	}
}

func TestBrowseSearchMatchesCategoryName(t *testing.T) {
	service, db := setupMedicineServiceTest(t)
	seedBrowseMedicines(t, db)

	items, total, err := service.Browse(BrowseMedicinesParams{Search: "antibiotics"})
	if err != nil {
		t.Fatalf("检索失败: %v", err)
	}
	if total != 1 || items[0].Name != "Amoxicillin" {
		t.Fatalf("应通过分类名命中 1 条，实际 total=%d", total)
	}
}

func TestBrowseSearchMatchesGenericAndBrand(t *testing.T) {
	service, db := setupMedicineServiceTest(t)
	seedBrowseMedicines(t, db)

	items, total, err := service.Browse(BrowseMedicinesParams{Search: "panadol"})
	if err != nil {
		t.Fatalf("检索失败: %v", err)
	}
	if total != 1 || items[0].Name != "Paracetamol Extra" {
		t.Fatalf("应通过品牌命中 1 条，实际 total=%d", total)
	}

	_, total, err = service.Browse(BrowseMedicinesParams{Search: "acetaminophen"})
	if err != nil {
		t.Fatalf("检索失败: %v", err)
	}
	if total != 2 {
		t.Fatalf("应通过通用名命中 2 条，实际 %d", total)
	}
}

func TestBrowseSortByLowestPrice(t *testing.T) {
	service, db := setupMedicineServiceTest(t)
	seedBrowseMedicines(t, db)

	items, _, err := service.Browse(BrowseMedicinesParams{SortBy: "price", SortDir: "asc"})
	if err != nil {
		t.Fatalf("检索失败: %v", err)
	}
	// Amoxicillin 最低剂型价 3，排在 5 和 8 之前
	if items[0].Name != "Amoxicillin" {
		t.Fatalf("最低剂型价应排第一，实际 %s", items[0].Name)
	}

	items, _, err = service.Browse(BrowseMedicinesParams{SortBy: "price", SortDir: "desc"})
	if err != nil {
		t.Fatalf("检索失败: %v", err)
	}
	if items[0].Name != "Paracetamol Extra" {
		t.Fatalf("降序时最高价应排第一，实际 %s", items[0].Name)
	}
}

func TestBrowsePagination(t *testing.T) {
	service, db := setupMedicineServiceTest(t)
	seedBrowseMedicines(t, db)

	items, total, err := service.Browse(BrowseMedicinesParams{SortBy: "name", Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("检索失败: %v", err)
	}
	if total != 3 {
		t.Fatalf("上架总数应为 3，实际 %d", total)
	}
	if len(items) != 1 {
		t.Fatalf("第二页应剩 1 条，实际 %d", len(items))
	}

	items, _, err = service.Browse(BrowseMedicinesParams{Page: 9, PageSize: 10})
	if err != nil {
		t.Fatalf("检索失败: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("越界页应返回空列表，实际 %d 条", len(items))
	}
}

func TestCreateMedicineValidation(t *testing.T) {
	service, db := setupMedicineServiceTest(t)

	category := models.Category{Slug: "pain-relief", Name: "Pain Relief"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("写入测试分类失败: %v", err)
	}

	base := CreateMedicineInput{
		SellerID:   1,
		CategoryID: category.ID,
		Slug:       "ibuprofen-200",
		Name:       "Ibuprofen",
		Formulations: map[string]decimal.Decimal{
			"tablet": decimal.NewFromInt(6),
		},
	}

	if _, err := service.Create(base); err != nil {
		t.Fatalf("创建药品失败: %v", err)
	}

	dup := base
	dup.Name = "Ibuprofen Duplicate"
	if _, err := service.Create(dup); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("重复 slug 应返回 ErrSlugExists，实际 %v", err)
	}

	badType := base
	badType.Slug = "ibuprofen-gel"
	badType.Formulations = map[string]decimal.Decimal{"gel": decimal.NewFromInt(6)}
	if _, err := service.Create(badType); !errors.Is(err, ErrFormulationInvalid) {
		t.Fatalf("未知剂型应返回 ErrFormulationInvalid，实际 %v", err)
	}

	badPrice := base
	badPrice.Slug = "ibuprofen-free"
	badPrice.Formulations = map[string]decimal.Decimal{"tablet": decimal.Zero}
	if _, err := service.Create(badPrice); !errors.Is(err, ErrMedicinePriceInvalid) {
		t.Fatalf("非正价格应返回 ErrMedicinePriceInvalid，实际 %v", err)
	}

	badDiscount := base
	badDiscount.Slug = "ibuprofen-discount"
	badDiscount.DiscountPercent = 120
	if _, err := service.Create(badDiscount); !errors.Is(err, ErrDiscountInvalid) {
		t.Fatalf("折扣超界应返回 ErrDiscountInvalid，实际 %v", err)
	}
}

func TestUpdateMedicineSellerScope(t *testing.T) {
	service, db := setupMedicineServiceTest(t)

	category := models.Category{Slug: "pain-relief", Name: "Pain Relief"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("写入测试分类失败: %v", err)
	}

	created, err := service.Create(CreateMedicineInput{
		SellerID:   7,
		CategoryID: category.ID,
		Slug:       "aspirin-100",
		Name:       "Aspirin",
		Formulations: map[string]decimal.Decimal{
			"tablet": decimal.NewFromInt(4),
		},
	})
	if err != nil {
		t.Fatalf("创建药品失败: %v", err)
	}

	update := CreateMedicineInput{
		SellerID:   9,
		CategoryID: category.ID,
		Slug:       "aspirin-100",
		Name:       "Aspirin",
		Formulations: map[string]decimal.Decimal{
			"tablet": decimal.NewFromInt(5),
		},
	}
	if _, err := service.Update(created.ID, update); !errors.Is(err, ErrSellerMismatch) {
		t.Fatalf("越权更新应返回 ErrSellerMismatch，实际 %v", err)
	}

	update.SellerID = 7
	updated, err := service.Update(created.ID, update)
	if err != nil {
		t.Fatalf("本人更新失败: %v", err)
	}
	if got := updated.Formulations["tablet"].String(); got != "5.00" {
		t.Fatalf("更新后价格应为 5.00，实际 %s", got)
	}

	if err := service.Delete(created.ID, 9); !errors.Is(err, ErrSellerMismatch) {
		t.Fatalf("越权删除应返回 ErrSellerMismatch，实际 %v", err)
	}
	if err := service.Delete(created.ID, 7); err != nil {
		t.Fatalf("本人删除失败: %v", err)
	}
	if _, err := service.GetManagedByID(created.ID, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("删除后查询应返回 ErrNotFound，实际 %v", err)
	}
}
