package public

import (
	"errors"
	"strconv"

	"github.com/pharmanext/internal/http/handlers/shared"
	"github.com/pharmanext/internal/http/response"
	"github.com/pharmanext/internal/service"

	"github.com/gin-gonic/gin"
)

// ListMedicines 店面药品列表（过滤 / 排序 / 分页）
func (h *Handler) ListMedicines(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	medicines, total, err := h.MedicineService.Browse(service.BrowseMedicinesParams{
		CategoryID: c.Query("category_id"),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortDir:    c.Query("sort_dir"),
		Page:       page,
		PageSize:   pageSize,
	})
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

// GetMedicine 店面药品详情
func (h *Handler) GetMedicine(c *gin.Context) {
	medicine, err := h.MedicineService.GetPublicBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			shared.RespondError(c, response.CodeNotFound, "medicine not found", nil)
			return
		}
		shared.RespondError(c, response.CodeInternal, "failed to load medicine", err)
		return
	}
	response.Success(c, medicine)
}
