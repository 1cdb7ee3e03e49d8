package repository

import (
	"errors"

	"github.com/pharmanext/internal/models"

	"gorm.io/gorm"
)

// MedicineRepository 药品数据访问接口
type MedicineRepository interface {
	List(filter MedicineListFilter) ([]models.Medicine, int64, error)
	ListActive(categoryID string) ([]models.Medicine, error)
	GetByID(id uint) (*models.Medicine, error)
	GetBySlug(slug string) (*models.Medicine, error)
	Create(medicine *models.Medicine) error
	Update(medicine *models.Medicine) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
}

// GormMedicineRepository GORM 实现
type GormMedicineRepository struct {
	db *gorm.DB
}

// NewMedicineRepository 创建药品仓库
func NewMedicineRepository(db *gorm.DB) *GormMedicineRepository {
	return &GormMedicineRepository{db: db}
}

// List 药品列表（后台/卖家）
func (r *GormMedicineRepository) List(filter MedicineListFilter) ([]models.Medicine, int64, error) {
	query := r.db.Model(&models.Medicine{})

	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SellerID != 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR generic_name LIKE ? OR brand LIKE ? OR slug LIKE ?", like, like, like, like)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithCategory {
		query = query.Preload("Category")
	}
	query = applyPagination(query.Order("sort_order DESC, id DESC"), filter.Page, filter.PageSize)

	var medicines []models.Medicine
	if err := query.Find(&medicines).Error; err != nil {
		return nil, 0, err
	}
	return medicines, total, nil
}

// ListActive 上架药品全量列表（店面浏览在内存中过滤与排序）
func (r *GormMedicineRepository) ListActive(categoryID string) ([]models.Medicine, error) {
	query := r.db.Preload("Category").Where("is_active = ?", true)
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	var medicines []models.Medicine
	if err := query.Order("sort_order DESC, id ASC").Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

// GetByID 根据 ID 获取药品
func (r *GormMedicineRepository) GetByID(id uint) (*models.Medicine, error) {
	var medicine models.Medicine
	if err := r.db.Preload("Category").First(&medicine, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medicine, nil
}

// GetBySlug 根据 slug 获取药品
func (r *GormMedicineRepository) GetBySlug(slug string) (*models.Medicine, error) {
	var medicine models.Medicine
	if err := r.db.Preload("Category").Where("slug = ?", slug).First(&medicine).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medicine, nil
}

// Create 创建药品
func (r *GormMedicineRepository) Create(medicine *models.Medicine) error {
	return r.db.Create(medicine).Error
}

// Update 更新药品
func (r *GormMedicineRepository) Update(medicine *models.Medicine) error {
	return r.db.Save(medicine).Error
}

// Delete 删除药品
func (r *GormMedicineRepository) Delete(id uint) error {
	return r.db.Delete(&models.Medicine{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormMedicineRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Medicine{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
