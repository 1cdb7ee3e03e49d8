package public

import (
	"io"
	"time"

	"github.com/pharmanext/internal/logger"
	"github.com/pharmanext/internal/payment/stripe"

	"github.com/gin-gonic/gin"
)

// StripeWebhook 接收 Stripe 支付回调，校验签名后同步订单状态。
// 回调处理是幂等的，重放事件不会覆盖已记录的交易号。
func (h *Handler) StripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logger.Warnw("读取 Stripe 回调请求体失败", "error", err)
		c.String(400, "invalid body")
		return
	}

	stripeCfg := stripe.Config{
		SecretKey:     h.Config.Payment.Stripe.SecretKey,
		APIBaseURL:    h.Config.Payment.Stripe.APIBase,
		TimeoutMS:     h.Config.Payment.Stripe.TimeoutMS,
		WebhookSecret: h.Config.Payment.Stripe.WebhookSecret,
	}
	stripeCfg.Normalize()

	headers := map[string]string{
		"Stripe-Signature": c.GetHeader("Stripe-Signature"),
	}
	result, err := stripe.VerifyAndParseWebhook(&stripeCfg, headers, body, time.Now())
	if err != nil {
		logger.Warnw("Stripe 回调签名校验失败", "error", err)
		c.String(400, "signature verification failed")
		return
	}

	if result.Status == "success" && result.OrderNo != "" {
		paidAt := time.Now()
		if result.PaidAt != nil {
			paidAt = *result.PaidAt
		}
		if err := h.OrderService.MarkPaidByGatewayEvent(result.OrderNo, result.IntentID, paidAt); err != nil {
			logger.Errorw("处理 Stripe 支付成功事件失败", "order_no", result.OrderNo, "error", err)
			c.String(500, "failed")
			return
		}
	}

	c.String(200, "ok")
}
