package repository

import (
	"errors"
	"time"

	"github.com/pharmanext/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口。
// 每次变更都落库，购物车在会话之间保持。
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	GetByKey(userID, medicineID uint, formulationType string) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	DeleteByKey(userID, medicineID uint, formulationType string) error
	ClearByUser(userID uint) error
	DeleteStale(before time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 获取用户购物车项
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Medicine").Where("user_id = ?", userID).Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByKey 按（用户, 药品, 剂型）获取购物车项
func (r *GormCartRepository) GetByKey(userID, medicineID uint, formulationType string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("user_id = ? AND medicine_id = ? AND formulation_type = ?", userID, medicineID, formulationType).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Upsert 添加或更新购物车项
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	var existing models.CartItem
	err := r.db.Where("user_id = ? AND medicine_id = ? AND formulation_type = ?",
		item.UserID, item.MedicineID, item.FormulationType).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"quantity":   item.Quantity,
		"unit_price": item.UnitPrice,
		"updated_at": item.UpdatedAt,
	}
	return r.db.Model(&existing).Updates(updates).Error
}

// DeleteByKey 删除购物车项
func (r *GormCartRepository) DeleteByKey(userID, medicineID uint, formulationType string) error {
	return r.db.Where("user_id = ? AND medicine_id = ? AND formulation_type = ?", userID, medicineID, formulationType).
		Delete(&models.CartItem{}).Error
}

// ClearByUser 清空购物车
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// DeleteStale 删除指定时间之前未再变动的购物车项，返回删除行数
func (r *GormCartRepository) DeleteStale(before time.Time) (int64, error) {
	result := r.db.Where("updated_at < ?", before).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}
