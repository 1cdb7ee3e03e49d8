package admin

import (
	"errors"

	"github.com/pharmanext/internal/constants"
	"github.com/pharmanext/internal/http/handlers/shared"
	"github.com/pharmanext/internal/http/response"
	"github.com/pharmanext/internal/service"

	"github.com/gin-gonic/gin"
)

// GetSiteConfig 获取站点配置
func (h *Handler) GetSiteConfig(c *gin.Context) {
	cfg, err := h.SettingService.GetSiteConfig(map[string]interface{}{})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load site config", err)
		return
	}
	response.Success(c, cfg)
}

// UpdateSiteConfig 更新站点配置
func (h *Handler) UpdateSiteConfig(c *gin.Context) {
	var value map[string]interface{}
	if err := c.ShouldBindJSON(&value); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	updated, err := h.SettingService.Update(constants.SettingKeySiteConfig, value)
	if err != nil {
		if errors.Is(err, service.ErrSettingKeyInvalid) {
			shared.RespondError(c, response.CodeBadRequest, "setting key is not supported", nil)
			return
		}
		shared.RespondError(c, response.CodeInternal, "failed to update site config", err)
		return
	}
	response.Success(c, updated)
}

// GetCaptchaSetting 获取验证码设置
func (h *Handler) GetCaptchaSetting(c *gin.Context) {
	setting, err := h.SettingService.GetCaptchaSetting(h.Config.Captcha)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to load captcha setting", err)
		return
	}
	response.Success(c, setting)
}

// PatchCaptchaSetting 更新验证码设置并失效本地缓存
func (h *Handler) PatchCaptchaSetting(c *gin.Context) {
	var patch service.CaptchaSettingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	setting, err := h.SettingService.PatchCaptchaSetting(h.Config.Captcha, patch)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to update captcha setting", err)
		return
	}
	h.CaptchaService.InvalidateCache()
	response.Success(c, setting)
}
