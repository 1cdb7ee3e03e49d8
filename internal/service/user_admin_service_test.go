package service

import (
	"errors"
	"testing"

	"github.com/pharmanext/internal/constants"
	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupUserAdminServiceTest(t *testing.T) (*UserAdminService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}

	return NewUserAdminService(repository.NewUserRepository(db)), db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("写入测试用户失败: %v", err)
	}
	return &user
}

func TestSetRolePromotesAndRevokesTokens(t *testing.T) {
	service, db := setupUserAdminServiceTest(t)
	user := seedUser(t, db, "seller@example.com", models.RoleUser)

	updated, err := service.SetRole(user.ID, "seller")
	if err != nil {
		t.Fatalf("调整角色失败: %v", err)
	}
	if updated.Role != models.RoleSeller {
		t.Fatalf("角色应为 seller，实际 %s", updated.Role)
	}
	if updated.TokenVersion != user.TokenVersion+1 || updated.TokenInvalidBefore == nil {
		t.Fatalf("调整角色应吊销旧 Token")
	}

	if _, err := service.SetRole(user.ID, "superuser"); !errors.Is(err, ErrRoleInvalid) {
		t.Fatalf("未知角色应返回 ErrRoleInvalid，实际 %v", err)
	}

	// 相同角色为幂等操作，不再递增 Token 版本
	again, err := service.SetRole(user.ID, "seller")
	if err != nil {
		t.Fatalf("重复调整角色失败: %v", err)
	}
	if again.TokenVersion != updated.TokenVersion {
		t.Fatalf("相同角色不应递增 Token 版本")
	}
}

func TestSetStatusDisableRevokesTokens(t *testing.T) {
	service, db := setupUserAdminServiceTest(t)
	user := seedUser(t, db, "user@example.com", models.RoleUser)

	disabled, err := service.SetStatus(user.ID, constants.UserStatusDisabled)
	if err != nil {
		t.Fatalf("禁用用户失败: %v", err)
	}
	if disabled.Status != constants.UserStatusDisabled || disabled.TokenInvalidBefore == nil {
		t.Fatalf("禁用应更新状态并吊销 Token")
	}

	enabled, err := service.SetStatus(user.ID, constants.UserStatusActive)
	if err != nil {
		t.Fatalf("启用用户失败: %v", err)
	}
	if enabled.Status != constants.UserStatusActive {
		t.Fatalf("启用后状态应为 active，实际 %s", enabled.Status)
	}

	if _, err := service.SetStatus(user.ID, "frozen"); !errors.Is(err, ErrUserStatusInvalid) {
		t.Fatalf("未知状态应返回 ErrUserStatusInvalid，实际 %v", err)
	}
}

func TestBatchSetStatus(t *testing.T) {
	service, db := setupUserAdminServiceTest(t)
	first := seedUser(t, db, "a@example.com", models.RoleUser)
	second := seedUser(t, db, "b@example.com", models.RoleUser)

	if err := service.BatchSetStatus([]uint{first.ID, second.ID}, constants.UserStatusDisabled); err != nil {
		t.Fatalf("批量禁用失败: %v", err)
	}

	var count int64
	if err := db.Model(&models.User{}).Where("status = ?", constants.UserStatusDisabled).Count(&count).Error; err != nil {
		t.Fatalf("查询用户失败: %v", err)
	}
	if count != 2 {
		t.Fatalf("两个用户都应被禁用，实际 %d", count)
	}

	if err := service.BatchSetStatus(nil, constants.UserStatusActive); err != nil {
		t.Fatalf("空列表应为 no-op，实际 %v", err)
	}
	if err := service.BatchSetStatus([]uint{first.ID}, "frozen"); !errors.Is(err, ErrUserStatusInvalid) {
		t.Fatalf("未知状态应返回 ErrUserStatusInvalid，实际 %v", err)
	}
}
