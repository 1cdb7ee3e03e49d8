package seller

import (
	"strconv"

	"github.com/pharmanext/internal/http/handlers/shared"
	"github.com/pharmanext/internal/http/response"
	"github.com/pharmanext/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type medicineRequest struct {
	CategoryID      uint                       `json:"category_id" binding:"required"`
	Slug            string                     `json:"slug" binding:"required"`
	Name            string                     `json:"name" binding:"required"`
	GenericName     string                     `json:"generic_name"`
	Brand           string                     `json:"brand"`
	Description     string                     `json:"description"`
	Image           string                     `json:"image"`
	Images          []string                   `json:"images"`
	Formulations    map[string]decimal.Decimal `json:"formulations" binding:"required"`
	DiscountPercent int                        `json:"discount_percent"`
	IsActive        *bool                      `json:"is_active"`
	SortOrder       int                        `json:"sort_order"`
}

func (r medicineRequest) toInput(sellerID uint) service.CreateMedicineInput {
	return service.CreateMedicineInput{
		SellerID:        sellerID,
		CategoryID:      r.CategoryID,
		Slug:            r.Slug,
		Name:            r.Name,
		GenericName:     r.GenericName,
		Brand:           r.Brand,
		Description:     r.Description,
		Image:           r.Image,
		Images:          r.Images,
		Formulations:    r.Formulations,
		DiscountPercent: r.DiscountPercent,
		IsActive:        r.IsActive,
		SortOrder:       r.SortOrder,
	}
}

// ListMedicines 商户药品列表
func (h *Handler) ListMedicines(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	medicines, total, err := h.MedicineService.ListManaged(sellerID, c.Query("category_id"), c.Query("search"), page, pageSize)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to list medicines", err)
		return
	}

	response.SuccessWithPage(c, medicines, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetMedicine 商户药品详情
func (h *Handler) GetMedicine(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid medicine id", err)
		return
	}

	medicine, err := h.MedicineService.GetManagedByID(uint(id), sellerID)
	if err != nil {
		respondWithMappedError(c, err, medicineErrorRules, response.CodeInternal, "failed to load medicine")
		return
	}
	response.Success(c, medicine)
}

// CreateMedicine 商户创建药品
func (h *Handler) CreateMedicine(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	var req medicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	medicine, err := h.MedicineService.Create(req.toInput(sellerID))
	if err != nil {
		respondWithMappedError(c, err, medicineErrorRules, response.CodeInternal, "failed to create medicine")
		return
	}
	response.Success(c, medicine)
}

// UpdateMedicine 商户更新药品
func (h *Handler) UpdateMedicine(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid medicine id", err)
		return
	}

	var req medicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	medicine, err := h.MedicineService.Update(uint(id), req.toInput(sellerID))
	if err != nil {
		respondWithMappedError(c, err, medicineErrorRules, response.CodeInternal, "failed to update medicine")
		return
	}
	response.Success(c, medicine)
}

// DeleteMedicine 商户删除药品
func (h *Handler) DeleteMedicine(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid medicine id", err)
		return
	}

	if err := h.MedicineService.Delete(uint(id), sellerID); err != nil {
		respondWithMappedError(c, err, medicineErrorRules, response.CodeInternal, "failed to delete medicine")
		return
	}
	response.Success(c, nil)
}
