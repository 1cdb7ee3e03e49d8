package public

import (
	"github.com/pharmanext/internal/http/handlers/shared"
	"github.com/pharmanext/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptchaSetting 返回对外公开的验证码配置
func (h *Handler) GetCaptchaSetting(c *gin.Context) {
	setting, err := h.CaptchaService.GetPublicSetting()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load captcha setting", err)
		return
	}
	response.Success(c, setting)
}

// GenerateCaptcha 生成图形验证码挑战
func (h *Handler) GenerateCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to generate captcha", err)
		return
	}
	response.Success(c, challenge)
}
