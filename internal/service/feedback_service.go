package service

import (
	"strings"

	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/repository"
)

// FeedbackService 用户评价服务。
// 评价提交后默认待审核，审核通过才在店面展示。
type FeedbackService struct {
	repo repository.FeedbackRepository
}

// NewFeedbackService 创建评价服务
func NewFeedbackService(repo repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// ListApproved 店面评价列表
func (s *FeedbackService) ListApproved(minRating int) ([]models.Feedback, error) {
	return s.repo.ListApproved(minRating)
}

// List 后台评价列表
func (s *FeedbackService) List(filter repository.FeedbackListFilter) ([]models.Feedback, int64, error) {
	return s.repo.List(filter)
}

// Submit 用户提交评价
func (s *FeedbackService) Submit(userID uint, rating int, comment string) (*models.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrRatingInvalid
	}

	feedback := models.Feedback{
		UserID:     userID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
		IsApproved: false,
	}
	if err := s.repo.Create(&feedback); err != nil {
		return nil, err
	}
	return &feedback, nil
}

// SetApproval 管理员审核评价
func (s *FeedbackService) SetApproval(id uint, isApproved bool) (*models.Feedback, error) {
	feedback, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if feedback == nil {
		return nil, ErrNotFound
	}

	feedback.IsApproved = isApproved
	if err := s.repo.Update(feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// Delete 删除评价
func (s *FeedbackService) Delete(id uint) error {
	feedback, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if feedback == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
