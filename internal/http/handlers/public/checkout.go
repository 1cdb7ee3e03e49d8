package public

import (
	"github.com/pharmanext/internal/http/handlers/shared"
	"github.com/pharmanext/internal/http/response"
	"github.com/pharmanext/internal/service"

	"github.com/gin-gonic/gin"
)

type placeOrderRequest struct {
	Email           string `json:"email" binding:"required"`
	BillingName     string `json:"billing_name" binding:"required"`
	Address         string `json:"address" binding:"required"`
	City            string `json:"city" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	PaymentType     string `json:"payment_type" binding:"required"`
	PaymentMethodID string `json:"payment_method_id"`
}

type placeOrderData struct {
	Order         interface{} `json:"order"`
	CheckoutState string      `json:"checkout_state"`
}

// PlaceOrder 结账下单
func (h *Handler) PlaceOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	result, err := h.CheckoutService.PlaceOrder(c.Request.Context(), service.PlaceOrderInput{
		UserID:          userID,
		Email:           req.Email,
		BillingName:     req.BillingName,
		Address:         req.Address,
		City:            req.City,
		Phone:           req.Phone,
		PaymentType:     req.PaymentType,
		PaymentMethodID: req.PaymentMethodID,
		ClientIP:        c.ClientIP(),
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, placeOrderData{Order: result.Order, CheckoutState: result.CheckoutState})
}
