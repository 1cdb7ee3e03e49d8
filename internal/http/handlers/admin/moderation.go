package admin

import (
	"strconv"

	"github.com/pharmanext/internal/http/handlers/shared"
	"github.com/pharmanext/internal/http/response"
	"github.com/pharmanext/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAdvertisements 管理端推广位列表，含未审核项
func (h *Handler) ListAdvertisements(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		v := raw == "true" || raw == "1"
		isActive = &v
	}

	ads, total, err := h.AdvertisementService.List(0, isActive, page, pageSize)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to list advertisements", err)
		return
	}

	response.SuccessWithPage(c, ads, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

type approvalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// SetAdvertisementApproval 审核推广位
func (h *Handler) SetAdvertisementApproval(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid advertisement id", err)
		return
	}

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	ad, err := h.AdvertisementService.SetApproval(uint(id), *req.Approved)
	if err != nil {
		respondWithMappedError(c, err, advertisementErrorRules, response.CodeInternal, "failed to update advertisement")
		return
	}
	response.Success(c, ad)
}

// DeleteAdvertisement 管理端删除推广位
func (h *Handler) DeleteAdvertisement(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid advertisement id", err)
		return
	}

	if err := h.AdvertisementService.Delete(uint(id), 0); err != nil {
		respondWithMappedError(c, err, advertisementErrorRules, response.CodeInternal, "failed to delete advertisement")
		return
	}
	response.Success(c, nil)
}

// ListFeedbacks 管理端评价列表，含未审核项
func (h *Handler) ListFeedbacks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	minRating, _ := strconv.Atoi(c.Query("min_rating"))
	feedbacks, total, err := h.FeedbackService.List(repository.FeedbackListFilter{
		Page:      page,
		PageSize:  pageSize,
		MinRating: minRating,
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to list feedbacks", err)
		return
	}

	response.SuccessWithPage(c, feedbacks, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// SetFeedbackApproval 审核评价
func (h *Handler) SetFeedbackApproval(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid feedback id", err)
		return
	}

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	feedback, err := h.FeedbackService.SetApproval(uint(id), *req.Approved)
	if err != nil {
		respondWithMappedError(c, err, feedbackErrorRules, response.CodeInternal, "failed to update feedback")
		return
	}
	response.Success(c, feedback)
}

// DeleteFeedback 删除评价
func (h *Handler) DeleteFeedback(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid feedback id", err)
		return
	}

	if err := h.FeedbackService.Delete(uint(id)); err != nil {
		respondWithMappedError(c, err, feedbackErrorRules, response.CodeInternal, "failed to delete feedback")
		return
	}
	response.Success(c, nil)
}
