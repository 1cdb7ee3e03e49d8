package repository

import (
	"errors"

	"github.com/pharmanext/internal/models"

	"gorm.io/gorm"
)

// FeedbackRepository 评价数据访问接口
type FeedbackRepository interface {
	List(filter FeedbackListFilter) ([]models.Feedback, int64, error)
	ListApproved(minRating int) ([]models.Feedback, error)
	GetByID(id uint) (*models.Feedback, error)
	Create(feedback *models.Feedback) error
	Update(feedback *models.Feedback) error
	Delete(id uint) error
}

// GormFeedbackRepository GORM 实现
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository 创建评价仓库
func NewFeedbackRepository(db *gorm.DB) *GormFeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

// List 评价列表
func (r *GormFeedbackRepository) List(filter FeedbackListFilter) ([]models.Feedback, int64, error) {
	query := r.db.Model(&models.Feedback{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.OnlyApproved {
		query = query.Where("is_approved = ?", true)
	}
	if filter.MinRating > 0 {
		query = query.Where("rating >= ?", filter.MinRating)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var feedbacks []models.Feedback
	query = applyPagination(query.Preload("User").Order("created_at DESC, id DESC"), filter.Page, filter.PageSize)
	if err := query.Find(&feedbacks).Error; err != nil {
		return nil, 0, err
	}
	return feedbacks, total, nil
}

// ListApproved 审核通过的评价
func (r *GormFeedbackRepository) ListApproved(minRating int) ([]models.Feedback, error) {
	query := r.db.Preload("User").Where("is_approved = ?", true)
	if minRating > 0 {
		query = query.Where("rating >= ?", minRating)
	}
	var feedbacks []models.Feedback
	if err := query.Order("rating DESC, created_at DESC").Find(&feedbacks).Error; err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// GetByID 根据 ID 获取评价
func (r *GormFeedbackRepository) GetByID(id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.Preload("User").First(&feedback, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}

// Create 创建评价
func (r *GormFeedbackRepository) Create(feedback *models.Feedback) error {
	return r.db.Create(feedback).Error
}

// Update 更新评价
func (r *GormFeedbackRepository) Update(feedback *models.Feedback) error {
	return r.db.Save(feedback).Error
}

// Delete 删除评价
func (r *GormFeedbackRepository) Delete(id uint) error {
	return r.db.Delete(&models.Feedback{}, id).Error
}
