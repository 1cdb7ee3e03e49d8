package service

import (
	"context"
	"time"

	"github.com/pharmanext/internal/cache"
	"github.com/pharmanext/internal/constants"
	"github.com/pharmanext/internal/logger"
	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/repository"
)

// UserAdminService 后台用户管理服务
type UserAdminService struct {
	repo repository.UserRepository
}

// NewUserAdminService 创建后台用户管理服务
func NewUserAdminService(repo repository.UserRepository) *UserAdminService {
	return &UserAdminService{repo: repo}
}

// List 用户列表
func (s *UserAdminService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.repo.List(filter)
}

// GetByID 用户详情
func (s *UserAdminService) GetByID(id uint) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// SetRole 调整用户角色，旧 Token 全部失效
func (s *UserAdminService) SetRole(id uint, roleValue string) (*models.User, error) {
	role, ok := models.ParseRole(roleValue)
	if !ok {
		return nil, ErrRoleInvalid
	}

	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}

	now := time.Now()
	user.Role = role
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	s.refreshAuthState(user)
	return user, nil
}

// SetStatus 启用/禁用单个用户，禁用同时吊销其在线 Token
func (s *UserAdminService) SetStatus(id uint, status string) (*models.User, error) {
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		return nil, ErrUserStatusInvalid
	}

	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user.Status == status {
		return user, nil
	}

	user.Status = status
	if status == constants.UserStatusDisabled {
		now := time.Now()
		user.TokenVersion++
		user.TokenInvalidBefore = &now
	}
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	s.refreshAuthState(user)
	return user, nil
}

// BatchSetStatus 批量启用/禁用用户
func (s *UserAdminService) BatchSetStatus(ids []uint, status string) error {
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		return ErrUserStatusInvalid
	}
	if len(ids) == 0 {
		return nil
	}

	if err := s.repo.BatchUpdateStatus(ids, status); err != nil {
		return err
	}

	users, err := s.repo.ListByIDs(ids)
	if err != nil {
		logger.Errorw("批量更新后刷新用户缓存失败", "error", err)
		return nil
	}
	for i := range users {
		s.refreshAuthState(&users[i])
	}
	return nil
}

func (s *UserAdminService) refreshAuthState(user *models.User) {
	if !cache.Enabled() {
		return
	}
	if err := cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user)); err != nil {
		logger.Warnw("刷新用户鉴权缓存失败", "user_id", user.ID, "error", err)
	}
}
