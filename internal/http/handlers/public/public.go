package public

import (
	"errors"
	"strconv"

	"github.com/pharmanext/internal/http/handlers/shared"
	"github.com/pharmanext/internal/http/response"
	"github.com/pharmanext/internal/service"

	"github.com/gin-gonic/gin"
)

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

// GetSiteConfig 站点公开配置
func (h *Handler) GetSiteConfig(c *gin.Context) {
	config, err := h.SettingService.GetSiteConfig(map[string]interface{}{})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load site config", err)
		return
	}
	response.Success(c, config)
}

// ListCategories 店面分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to list categories", err)
		return
	}
	response.Success(c, categories)
}

// GetCategory 分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.CategoryService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			shared.RespondError(c, response.CodeNotFound, "category not found", nil)
			return
		}
		shared.RespondError(c, response.CodeInternal, "failed to load category", err)
		return
	}
	response.Success(c, category)
}

// ListAdvertisements 店面推广位列表（仅审核通过）
func (h *Handler) ListAdvertisements(c *gin.Context) {
	ads, err := h.AdvertisementService.ListActive()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to list advertisements", err)
		return
	}
	response.Success(c, ads)
}

// ListFeedbacks 店面评价列表（仅审核通过）
func (h *Handler) ListFeedbacks(c *gin.Context) {
	minRating, _ := strconv.Atoi(c.DefaultQuery("min_rating", "0"))
	feedbacks, err := h.FeedbackService.ListApproved(minRating)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to list feedbacks", err)
		return
	}
	response.Success(c, feedbacks)
}

type submitFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// SubmitFeedback 用户提交评价
func (h *Handler) SubmitFeedback(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req submitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	feedback, err := h.FeedbackService.Submit(userID, req.Rating, req.Comment)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrRatingInvalid, code: response.CodeBadRequest, msg: "rating must be between 1 and 5"},
		}, response.CodeInternal, "failed to submit feedback")
		return
	}
	response.Success(c, feedback)
}
