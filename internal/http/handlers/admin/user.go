package admin

import (
	"strconv"

	"github.com/pharmanext/internal/http/handlers/shared"
	"github.com/pharmanext/internal/http/response"
	"github.com/pharmanext/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListUsers 管理端用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	users, total, err := h.UserAdminService.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("keyword"),
		Role:     c.Query("role"),
		Status:   c.Query("status"),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to list users", err)
		return
	}

	response.SuccessWithPage(c, users, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetUser 管理端用户详情
func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid user id", err)
		return
	}

	user, err := h.UserAdminService.GetByID(uint(id))
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, response.CodeInternal, "failed to load user")
		return
	}
	response.Success(c, user)
}

type setUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SetUserRole 调整用户角色，降级会吊销已签发的令牌
func (h *Handler) SetUserRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid user id", err)
		return
	}

	var req setUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, err := h.UserAdminService.SetRole(uint(id), req.Role)
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, response.CodeInternal, "failed to set role")
		return
	}
	response.Success(c, user)
}

type setUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetUserStatus 启用/禁用用户，禁用会吊销已签发的令牌
func (h *Handler) SetUserStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid user id", err)
		return
	}

	var req setUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, err := h.UserAdminService.SetStatus(uint(id), req.Status)
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, response.CodeInternal, "failed to set status")
		return
	}
	response.Success(c, user)
}

type batchSetUserStatusRequest struct {
	IDs    []uint `json:"ids" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// BatchSetUserStatus 批量启用/禁用用户
func (h *Handler) BatchSetUserStatus(c *gin.Context) {
	var req batchSetUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.UserAdminService.BatchSetStatus(req.IDs, req.Status); err != nil {
		respondWithMappedError(c, err, userErrorRules, response.CodeInternal, "failed to update users")
		return
	}
	response.Success(c, nil)
}
