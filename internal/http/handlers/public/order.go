package public

import (
	"errors"
	"strconv"

	"github.com/pharmanext/internal/http/handlers/shared"
	"github.com/pharmanext/internal/http/response"
	"github.com/pharmanext/internal/service"

	"github.com/gin-gonic/gin"
)

// ListMyOrders 当前用户订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListUserOrders(userID, c.Query("status"), page, pageSize)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to list orders", err)
		return
	}

	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetMyOrder 当前用户订单详情
func (h *Handler) GetMyOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid order id", err)
		return
	}

	order, err := h.OrderService.GetUserOrder(uint(orderID), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			shared.RespondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		shared.RespondError(c, response.CodeInternal, "failed to load order", err)
		return
	}
	response.Success(c, order)
}

// DownloadInvoice 下载订单发票 PDF
func (h *Handler) DownloadInvoice(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid order id", err)
		return
	}

	data, filename, err := h.InvoiceService.BuildForUser(uint(orderID), userID)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceOrderMissing) {
			shared.RespondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		shared.RespondError(c, response.CodeInternal, "failed to build invoice", err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "application/pdf", data)
}
