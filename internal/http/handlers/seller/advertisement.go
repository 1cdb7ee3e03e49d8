package seller

import (
	"strconv"

	"github.com/pharmanext/internal/http/handlers/shared"
	"github.com/pharmanext/internal/http/response"
	"github.com/pharmanext/internal/service"

	"github.com/gin-gonic/gin"
)

type advertisementRequest struct {
	MedicineID  uint   `json:"medicine_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	SortOrder   int    `json:"sort_order"`
}

func (r advertisementRequest) toInput(sellerID uint) service.AdvertisementInput {
	return service.AdvertisementInput{
		SellerID:    sellerID,
		MedicineID:  r.MedicineID,
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		SortOrder:   r.SortOrder,
	}
}

// ListAdvertisements 商户推广位列表
func (h *Handler) ListAdvertisements(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	ads, total, err := h.AdvertisementService.List(sellerID, nil, page, pageSize)
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

// CreateAdvertisement 商户创建推广位，待管理员审核后展示
func (h *Handler) CreateAdvertisement(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	var req advertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	ad, err := h.AdvertisementService.Create(req.toInput(sellerID))
	if err != nil {
		respondWithMappedError(c, err, advertisementErrorRules, response.CodeInternal, "failed to create advertisement")
		return
	}
	response.Success(c, ad)
}

// UpdateAdvertisement 商户更新推广位，修改后重新进入审核
func (h *Handler) UpdateAdvertisement(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid advertisement id", err)
		return
	}

	var req advertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	ad, err := h.AdvertisementService.Update(uint(id), req.toInput(sellerID))
	if err != nil {
		respondWithMappedError(c, err, advertisementErrorRules, response.CodeInternal, "failed to update advertisement")
		return
	}
	response.Success(c, ad)
}

// DeleteAdvertisement 商户删除推广位
func (h *Handler) DeleteAdvertisement(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid advertisement id", err)
		return
	}

	if err := h.AdvertisementService.Delete(uint(id), sellerID); err != nil {
		respondWithMappedError(c, err, advertisementErrorRules, response.CodeInternal, "failed to delete advertisement")
		return
	}
	response.Success(c, nil)
}
