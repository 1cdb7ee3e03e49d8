package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCategoryServiceTest(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Medicine{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}

	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func TestCategoryCreateRejectsDuplicateSlug(t *testing.T) {
	service, _ := setupCategoryServiceTest(t)

	if _, err := service.Create(CategoryInput{Slug: "pain-relief", Name: "Pain Relief"}); err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	if _, err := service.Create(CategoryInput{Slug: "pain-relief", Name: "Duplicate"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("重复 slug 应返回 ErrSlugExists，实际 %v", err)
	}
}

func TestCategoryUpdateKeepsOwnSlug(t *testing.T) {
	service, _ := setupCategoryServiceTest(t)

	created, err := service.Create(CategoryInput{Slug: "pain-relief", Name: "Pain Relief"})
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}

	id := fmt.Sprintf("%d", created.ID)
	updated, err := service.Update(id, CategoryInput{Slug: "pain-relief", Name: "Pain Relief Updated"})
	if err != nil {
		t.Fatalf("保留自身 slug 的更新失败: %v", err)
	}
	if updated.Name != "Pain Relief Updated" {
		t.Fatalf("名称应已更新，实际 %s", updated.Name)
	}
}

func TestCategoryDeleteBlockedWhenInUse(t *testing.T) {
	service, db := setupCategoryServiceTest(t)

	created, err := service.Create(CategoryInput{Slug: "pain-relief", Name: "Pain Relief"})
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}

	medicine := models.Medicine{
		SellerID: 1, CategoryID: created.ID, Slug: "paracetamol-500", Name: "Paracetamol",
		Formulations: models.MoneyMap{"tablet": models.NewMoneyFromFloat(5)},
		IsActive:     true,
	}
	if err := db.Create(&medicine).Error; err != nil {
		t.Fatalf("写入测试药品失败: %v", err)
	}

	id := fmt.Sprintf("%d", created.ID)
	if err := service.Delete(id); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("挂有药品的分类应返回 ErrCategoryInUse，实际 %v", err)
	}

	if err := db.Delete(&medicine).Error; err != nil {
		t.Fatalf("删除测试药品失败: %v", err)
	}
	if err := service.Delete(id); err != nil {
		t.Fatalf("空分类删除失败: %v", err)
	}
	if _, err := service.GetByID(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("删除后查询应返回 ErrNotFound，实际 %v", err)
	}
}
