package service

import (
	"errors"
	"testing"

	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupFeedbackServiceTest(t *testing.T) *FeedbackService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Feedback{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}

	return NewFeedbackService(repository.NewFeedbackRepository(db))
}

func TestFeedbackRatingBounds(t *testing.T) {
	service := setupFeedbackServiceTest(t)

	for _, rating := range []int{0, -1, 6} {
		if _, err := service.Submit(1, rating, "bad rating"); !errors.Is(err, ErrRatingInvalid) {
			t.Fatalf("评分 %d 应返回 ErrRatingInvalid，实际 %v", rating, err)
		}
	}

	for _, rating := range []int{1, 5} {
		if _, err := service.Submit(1, rating, "ok"); err != nil {
			t.Fatalf("评分 %d 提交失败: %v", rating, err)
		}
	}
}

func TestFeedbackApprovalFlow(t *testing.T) {
	service := setupFeedbackServiceTest(t)

	feedback, err := service.Submit(1, 5, "Great service")
	if err != nil {
		t.Fatalf("提交评价失败: %v", err)
	}
	if feedback.IsApproved {
		t.Fatalf("新评价应为待审核状态")
	}

	approved, err := service.ListApproved(0)
	if err != nil {
		t.Fatalf("查询店面评价失败: %v", err)
	}
	if len(approved) != 0 {
		t.Fatalf("未审核评价不应展示，实际 %d 条", len(approved))
	}

	if _, err := service.SetApproval(feedback.ID, true); err != nil {
		t.Fatalf("审核评价失败: %v", err)
	}
	approved, err = service.ListApproved(0)
	if err != nil {
		t.Fatalf("查询店面评价失败: %v", err)
	}
	if len(approved) != 1 {
		t.Fatalf("审核后应展示 1 条评价，实际 %d", len(approved))
	}

	low, err := service.Submit(2, 2, "meh")
	if err != nil {
		t.Fatalf("提交评价失败: %v", err)
	}
	if _, err := service.SetApproval(low.ID, true); err != nil {
		t.Fatalf("审核评价失败: %v", err)
	}
	highOnly, err := service.ListApproved(4)
	if err != nil {
		t.Fatalf("查询店面评价失败: %v", err)
	}
	if len(highOnly) != 1 {
		t.Fatalf("最低评分过滤后应剩 1 条，实际 %d", len(highOnly))
	}

	if _, err := service.SetApproval(99999, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("不存在评价应返回 ErrNotFound，实际 %v", err)
	}
	if err := service.Delete(feedback.ID); err != nil {
		t.Fatalf("删除评价失败: %v", err)
	}
}
