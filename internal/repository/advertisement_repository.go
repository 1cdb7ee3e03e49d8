package repository

import (
	"errors"

	"github.com/pharmanext/internal/models"

	"gorm.io/gorm"
)

// AdvertisementRepository 推广位数据访问接口
type AdvertisementRepository interface {
	List(filter AdvertisementListFilter) ([]models.Advertisement, int64, error)
	ListActive() ([]models.Advertisement, error)
	GetByID(id uint) (*models.Advertisement, error)
	Create(ad *models.Advertisement) error
	Update(ad *models.Advertisement) error
	Delete(id uint) error
}

// GormAdvertisementRepository GORM 实现
type GormAdvertisementRepository struct {
	db *gorm.DB
}

// NewAdvertisementRepository 创建推广位仓库
func NewAdvertisementRepository(db *gorm.DB) *GormAdvertisementRepository {
	return &GormAdvertisementRepository{db: db}
}

// List 推广位列表（后台/卖家）
func (r *GormAdvertisementRepository) List(filter AdvertisementListFilter) ([]models.Advertisement, int64, error) {
	query := r.db.Model(&models.Advertisement{})

	if filter.SellerID != 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ads []models.Advertisement
	query = applyPagination(query.Preload("Medicine").Order("sort_order DESC, id DESC"), filter.Page, filter.PageSize)
	if err := query.Find(&ads).Error; err != nil {
		return nil, 0, err
	}
	return ads, total, nil
}

// ListActive 上线推广位
func (r *GormAdvertisementRepository) ListActive() ([]models.Advertisement, error) {
	var ads []models.Advertisement
	if err := r.db.Preload("Medicine").
		Where("is_active = ?", true).
		Order("sort_order DESC, id DESC").
		Find(&ads).Error; err != nil {
		return nil, err
	}
	return ads, nil
}

// GetByID 根据 ID 获取推广位
func (r *GormAdvertisementRepository) GetByID(id uint) (*models.Advertisement, error) {
	var ad models.Advertisement
	if err := r.db.Preload("Medicine").First(&ad, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ad, nil
}

// Create 创建推广位
func (r *GormAdvertisementRepository) Create(ad *models.Advertisement) error {
	return r.db.Create(ad).Error
}

// Update 更新推广位
func (r *GormAdvertisementRepository) Update(ad *models.Advertisement) error {
	return r.db.Save(ad).Error
}

// Delete 删除推广位
func (r *GormAdvertisementRepository) Delete(id uint) error {
	return r.db.Delete(&models.Advertisement{}, id).Error
}
