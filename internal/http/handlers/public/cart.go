package public

import (
	"strconv"

	"github.com/pharmanext/internal/http/handlers/shared"
	"github.com/pharmanext/internal/http/response"
	"github.com/pharmanext/internal/service"

	"github.com/gin-gonic/gin"
)

type cartItemRequest struct {
	MedicineID      uint   `json:"medicine_id" binding:"required"`
	Quantity        int    `json:"quantity" binding:"required"`
	FormulationType string `json:"formulation_type" binding:"required"`
}

// updateCartItemRequest 数量不带 required：0 是合法输入，由服务层截断
type updateCartItemRequest struct {
	MedicineID      uint   `json:"medicine_id" binding:"required"`
	Quantity        int    `json:"quantity"`
	FormulationType string `json:"formulation_type" binding:"required"`
}

// GetCart 获取当前用户购物车
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	summary, err := h.CartService.ListByUser(userID)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load cart", err)
		return
	}
	response.Success(c, summary)
}

// AddCartItem 加入购物车（同药品同剂型合并数量）
func (h *Handler) AddCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	summary, err := h.CartService.AddItem(service.UpsertCartItemInput{
		UserID:          userID,
		MedicineID:      req.MedicineID,
		Quantity:        req.Quantity,
		FormulationType: req.FormulationType,
	})
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to add cart item")
		return
	}
	response.Success(c, summary)
}

// UpdateCartItem 覆盖设置购物车条目数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	summary, err := h.CartService.SetItemQuantity(service.UpsertCartItemInput{
		UserID:          userID,
		MedicineID:      req.MedicineID,
		Quantity:        req.Quantity,
		FormulationType: req.FormulationType,
	})
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to update cart item")
		return
	}
	response.Success(c, summary)
}

// RemoveCartItem 移除购物车条目
func (h *Handler) RemoveCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	medicineID, err := strconv.ParseUint(c.Param("medicineId"), 10, 64)
	if err != nil || medicineID == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid medicine id", err)
		return
	}

	summary, err := h.CartService.RemoveItem(userID, uint(medicineID), c.Query("formulation_type"))
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to remove cart item")
		return
	}
	response.Success(c, summary)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(userID); err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to clear cart", err)
		return
	}
	response.Success(c, nil)
}
