package admin

import (
	"errors"
	"strconv"

	"github.com/pharmanext/internal/authz"
	"github.com/pharmanext/internal/http/handlers/shared"
	"github.com/pharmanext/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListRoles 角色列表
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to list roles", err)
		return
	}
	response.Success(c, roles)
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

// CreateRole 创建角色
func (h *Handler) CreateRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondAuthzError(c, err, "failed to create role")
		return
	}
	response.Success(c, gin.H{"role": role})
}

// DeleteRole 删除角色，内置角色不可删除
func (h *Handler) DeleteRole(c *gin.Context) {
	if err := h.AuthzService.DeleteRole(c.Param("role")); err != nil {
		respondAuthzError(c, err, "failed to delete role")
		return
	}
	response.Success(c, nil)
}

// GetRolePolicies 角色策略列表
func (h *Handler) GetRolePolicies(c *gin.Context) {
	policies, err := h.AuthzService.GetRolePolicies(c.Param("role"))
	if err != nil {
		respondAuthzError(c, err, "failed to list role policies")
		return
	}
	response.Success(c, policies)
}

type rolePolicyRequest struct {
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// GrantRolePolicy 为角色授予策略
func (h *Handler) GrantRolePolicy(c *gin.Context) {
	var req rolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.AuthzService.GrantRolePolicy(c.Param("role"), req.Object, req.Action); err != nil {
		respondAuthzError(c, err, "failed to grant policy")
		return
	}
	response.Success(c, nil)
}

// RevokeRolePolicy 回收角色策略
func (h *Handler) RevokeRolePolicy(c *gin.Context) {
	var req rolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.AuthzService.RevokeRolePolicy(c.Param("role"), req.Object, req.Action); err != nil {
		respondAuthzError(c, err, "failed to revoke policy")
		return
	}
	response.Success(c, nil)
}

// GetUserRoles 查询用户持有的角色
func (h *Handler) GetUserRoles(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid user id", err)
		return
	}

	roles, err := h.AuthzService.GetUserRoles(uint(id))
	if err != nil {
		respondAuthzError(c, err, "failed to list user roles")
		return
	}
	response.Success(c, roles)
}

type setUserRolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}

// SetUserRoles 覆盖用户的授权角色集合
func (h *Handler) SetUserRoles(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid user id", err)
		return
	}

	var req setUserRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.AuthzService.SetUserRoles(uint(id), req.Roles); err != nil {
		respondAuthzError(c, err, "failed to set user roles")
		return
	}
	response.Success(c, nil)
}

func respondAuthzError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, authz.ErrRoleNameInvalid):
		shared.RespondError(c, response.CodeBadRequest, "role name is invalid", nil)
	case errors.Is(err, authz.ErrRoleImmutable):
		shared.RespondError(c, response.CodeBadRequest, "builtin role cannot be deleted", nil)
	case errors.Is(err, authz.ErrPolicyInvalid):
		shared.RespondError(c, response.CodeBadRequest, "policy object or action is invalid", nil)
	default:
		shared.RespondError(c, response.CodeInternal, fallbackMsg, err)
	}
}
