package public

import (
	"github.com/pharmanext/internal/constants"
	"github.com/pharmanext/internal/http/handlers/shared"
	"github.com/pharmanext/internal/http/response"
	"github.com/pharmanext/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
	Code        string `json:"code"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

type loginRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	RememberMe  bool   `json:"remember_me"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

type sendVerifyCodeRequest struct {
	Email   string `json:"email" binding:"required"`
	Purpose string `json:"purpose" binding:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	PhotoURL    *string `json:"photo_url"`
}

type authTokenData struct {
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expires_at"`
	User      interface{} `json:"user"`
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.CaptchaService.Verify(constants.CaptchaSceneRegister, service.CaptchaVerifyPayload{
		CaptchaID:   req.CaptchaID,
		CaptchaCode: req.CaptchaCode,
	}); err != nil {
		respondWithMappedError(c, err, authCommonErrorRules, response.CodeBadRequest, "captcha verification failed")
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Code:        req.Code,
	})
	if err != nil {
		respondWithMappedError(c, err,
			concatMappedHandlerErrors(authCommonErrorRules, registerErrorRules),
			response.CodeInternal, "registration failed")
		return
	}

	response.Success(c, authTokenData{Token: token, ExpiresAt: expiresAt.Unix(), User: user})
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.CaptchaService.Verify(constants.CaptchaSceneLogin, service.CaptchaVerifyPayload{
		CaptchaID:   req.CaptchaID,
		CaptchaCode: req.CaptchaCode,
	}); err != nil {
		respondWithMappedError(c, err, authCommonErrorRules, response.CodeBadRequest, "captcha verification failed")
		return
	}

	user, token, expiresAt, err := h.UserAuthService.LoginWithRememberMe(req.Email, req.Password, req.RememberMe)
	if err != nil {
		respondWithMappedError(c, err, authCommonErrorRules, response.CodeUnauthorized, "login failed")
		return
	}

	response.Success(c, authTokenData{Token: token, ExpiresAt: expiresAt.Unix(), User: user})
}

// SendVerifyCode 发送邮箱验证码（注册 / 重置密码）
func (h *Handler) SendVerifyCode(c *gin.Context) {
	var req sendVerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.UserAuthService.SendVerifyCode(req.Email, req.Purpose); err != nil {
		respondWithMappedError(c, err,
			concatMappedHandlerErrors(authCommonErrorRules, verifyCodeErrorRules),
			response.CodeInternal, "failed to send verify code")
		return
	}
	response.Success(c, nil)
}

// ResetPassword 通过邮箱验证码重置密码
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.UserAuthService.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		respondWithMappedError(c, err,
			concatMappedHandlerErrors(authCommonErrorRules, registerErrorRules, verifyCodeErrorRules),
			response.CodeInternal, "password reset failed")
		return
	}
	response.Success(c, nil)
}

// ChangePassword 登录态修改密码
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.UserAuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err,
			concatMappedHandlerErrors(authCommonErrorRules, []mappedHandlerError{
				{target: service.ErrInvalidPassword, code: response.CodeBadRequest, msg: "old password is incorrect"},
			}),
			response.CodeInternal, "password change failed")
		return
	}
	response.Success(c, nil)
}

// GetProfile 获取当前用户资料
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserAuthService.GetUserByID(userID)
	if err != nil || user == nil {
		shared.RespondError(c, response.CodeNotFound, "user not found", err)
		return
	}
	response.Success(c, user)
}

// UpdateProfile 更新当前用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(userID, req.DisplayName, req.PhotoURL)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrProfileEmpty, code: response.CodeBadRequest, msg: "nothing to update"},
			{target: service.ErrNotFound, code: response.CodeNotFound, msg: "user not found"},
		}, response.CodeInternal, "profile update failed")
		return
	}
	response.Success(c, user)
}

// GetUserRole 根据邮箱查询用户角色
func (h *Handler) GetUserRole(c *gin.Context) {
	role, err := h.UserAuthService.GetRoleByEmail(c.Param("email"))
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrNotFound, code: response.CodeNotFound, msg: "user not found"},
		}, response.CodeInternal, "role lookup failed")
		return
	}
	response.Success(c, gin.H{"email": c.Param("email"), "role": role})
}
