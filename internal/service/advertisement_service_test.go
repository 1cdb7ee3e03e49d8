package service

import (
	"errors"
	"testing"

	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAdvertisementServiceTest(t *testing.T) (*AdvertisementService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Medicine{}, &models.Advertisement{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}

	service := NewAdvertisementService(
		repository.NewAdvertisementRepository(db),
		repository.NewMedicineRepository(db),
	)
	return service, db
}

func seedAdMedicine(t *testing.T, db *gorm.DB, sellerID uint, active bool) *models.Medicine {
	t.Helper()

	category := models.Category{Name: "Pain Relief", Slug: "pain-relief"}
	if err := db.FirstOrCreate(&category, models.Category{Slug: "pain-relief"}).Error; err != nil {
		t.Fatalf("写入测试分类失败: %v", err)
	}
	medicine := models.Medicine{
		SellerID:   sellerID,
		CategoryID: category.ID,
		Slug:       "ad-target-" + map[bool]string{true: "active", false: "inactive"}[active],
		Name:       "Paracetamol",
		Formulations: models.MoneyMap{
			"tablet": models.NewMoneyFromFloat(5),
		},
		IsActive: true,
	}
	if err := db.Create(&medicine).Error; err != nil {
		t.Fatalf("写入测试药品失败: %v", err)
	}
	// IsActive 带 default:true，Create 会跳过零值，下架指向需显式更新
	if !active {
		if err := db.Model(&models.Medicine{}).Where("id = ?", medicine.ID).Update("is_active", false).Error; err != nil {
			t.Fatalf("下架测试药品失败: %v", err)
		}
		medicine.IsActive = false
	}
	return &medicine
}

func TestAdvertisementCreateRequiresApproval(t *testing.T) {
	service, db := setupAdvertisementServiceTest(t)
	medicine := seedAdMedicine(t, db, 7, true)

	ad, err := service.Create(AdvertisementInput{
		SellerID: 7, MedicineID: medicine.ID, Title: "Summer Sale", Image: "https://cdn.test/ad.png",
	})
	if err != nil {
		t.Fatalf("提交推广位失败: %v", err)
	}
	if ad.IsActive {
		t.Fatalf("新推广位应为待审核状态")
	}

	active, err := service.ListActive()
	if err != nil {
		t.Fatalf("查询店面推广位失败: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("未审核推广位不应出现在店面，实际 %d 条", len(active))
	}

	if _, err := service.SetApproval(ad.ID, true); err != nil {
		t.Fatalf("审核上线失败: %v", err)
	}
	active, err = service.ListActive()
	if err != nil {
		t.Fatalf("查询店面推广位失败: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("审核后店面应有 1 条推广位，实际 %d", len(active))
	}
}

func TestAdvertisementTargetValidation(t *testing.T) {
	service, db := setupAdvertisementServiceTest(t)
	inactive := seedAdMedicine(t, db, 7, false)
	othersActive := seedAdMedicine(t, db, 9, true)

	if _, err := service.Create(AdvertisementInput{
		SellerID: 7, MedicineID: inactive.ID, Title: "Bad", Image: "x",
	}); !errors.Is(err, ErrAdTargetInvalid) {
		t.Fatalf("下架药品应返回 ErrAdTargetInvalid，实际 %v", err)
	}

	if _, err := service.Create(AdvertisementInput{
		SellerID: 7, MedicineID: othersActive.ID, Title: "Bad", Image: "x",
	}); !errors.Is(err, ErrAdTargetInvalid) {
		t.Fatalf("他人药品应返回 ErrAdTargetInvalid，实际 %v", err)
	}

	if _, err := service.Create(AdvertisementInput{
		SellerID: 7, MedicineID: 99999, Title: "Bad", Image: "x",
	}); !errors.Is(err, ErrAdTargetInvalid) {
		t.Fatalf("不存在药品应返回 ErrAdTargetInvalid，实际 %v", err)
	}
}

func TestAdvertisementSellerScopeAndReapproval(t *testing.T) {
	service, db := setupAdvertisementServiceTest(t)
	medicine := seedAdMedicine(t, db, 7, true)

	ad, err := service.Create(AdvertisementInput{
		SellerID: 7, MedicineID: medicine.ID, Title: "Summer Sale", Image: "x",
	})
	if err != nil {
		t.Fatalf("提交推广位失败: %v", err)
	}
	if _, err := service.SetApproval(ad.ID, true); err != nil {
		t.Fatalf("审核上线失败: %v", err)
	}

	if _, err := service.Update(ad.ID, AdvertisementInput{
		SellerID: 9, MedicineID: medicine.ID, Title: "Hijack", Image: "x",
	}); !errors.Is(err, ErrSellerMismatch) {
		t.Fatalf("越权更新应返回 ErrSellerMismatch，实际 %v", err)
	}

	updated, err := service.Update(ad.ID, AdvertisementInput{
		SellerID: 7, MedicineID: medicine.ID, Title: "Summer Sale v2", Image: "x",
	})
	if err != nil {
		t.Fatalf("本人更新失败: %v", err)
	}
	if updated.IsActive {
		t.Fatalf("卖家编辑后应回到待审核状态")
	}

	if err := service.Delete(ad.ID, 9); !errors.Is(err, ErrSellerMismatch) {
		t.Fatalf("越权删除应返回 ErrSellerMismatch，实际 %v", err)
	}
	if err := service.Delete(ad.ID, 7); err != nil {
		t.Fatalf("本人删除失败: %v", err)
	}
}
