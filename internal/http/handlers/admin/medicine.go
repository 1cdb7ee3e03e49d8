package admin

import (
	"strconv"

	"github.com/pharmanext/internal/http/handlers/shared"
	"github.com/pharmanext/internal/http/response"
	"github.com/pharmanext/internal/service"

	"github.com/gin-gonic/gin"
)

var medicineErrorRules = []mappedHandlerError{
	{target: service.ErrMedicineNameRequired, code: response.CodeBadRequest, msg: "medicine name is required"},
	{target: service.ErrSlugExists, code: response.CodeBadRequest, msg: "slug is already in use"},
	{target: service.ErrFormulationInvalid, code: response.CodeBadRequest, msg: "formulation type is invalid"},
	{target: service.ErrMedicinePriceInvalid, code: response.CodeBadRequest, msg: "formulation price must be positive"},
	{target: service.ErrDiscountInvalid, code: response.CodeBadRequest, msg: "discount percent must be between 0 and 100"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "medicine not found"},
}

// ListMedicines 管理端药品列表，跨商户
func (h *Handler) ListMedicines(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	medicines, total, err := h.MedicineService.ListManaged(0, c.Query("category_id"), c.Query("search"), page, pageSize)
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

// GetMedicine 管理端药品详情
func (h *Handler) GetMedicine(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid medicine id", err)
		return
	}

	medicine, err := h.MedicineService.GetManagedByID(uint(id), 0)
	if err != nil {
		respondWithMappedError(c, err, medicineErrorRules, response.CodeInternal, "failed to load medicine")
		return
	}
	response.Success(c, medicine)
}

// DeleteMedicine 管理端删除药品，跨商户
func (h *Handler) DeleteMedicine(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid medicine id", err)
		return
	}

	if err := h.MedicineService.Delete(uint(id), 0); err != nil {
		respondWithMappedError(c, err, medicineErrorRules, response.CodeInternal, "failed to delete medicine")
		return
	}
	response.Success(c, nil)
}
