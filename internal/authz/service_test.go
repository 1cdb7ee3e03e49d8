package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pharmanext/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceUserWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("seller", "/seller/medicines/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetUserRoles(1, []string{"seller"}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}

	allow, err := svc.EnforceUser(1, "/api/v1/seller/medicines/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceUser(1, "/api/v1/seller/medicines/42", "POST")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetUserRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("seller", "/seller/medicines", "GET"); err != nil {
		t.Fatalf("grant seller policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("admin", "/admin/orders", "GET"); err != nil {
		t.Fatalf("grant admin policy failed: %v", err)
	}

	if err := svc.SetUserRoles(2, []string{"seller"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	roles, err := svc.GetUserRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:seller" {
		t.Fatalf("roles want [role:seller], got=%v", roles)
	}

	if err := svc.SetUserRoles(2, []string{"admin"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err = svc.GetUserRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:admin" {
		t.Fatalf("roles want [role:admin], got=%v", roles)
	}

	allow, err := svc.EnforceUser(2, "/seller/medicines", "GET")
	if err != nil {
		t.Fatalf("enforce old role failed: %v", err)
	}
	if allow {
		t.Fatalf("expected old role permission removed")
	}

	allow, err = svc.EnforceUser(2, "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce new role failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected new role permission granted")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "admin/orders", want: "/admin/orders"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	wantRoles := map[string]bool{
		"role:user":   true,
		"role:seller": true,
		"role:admin":  true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}

	// seller 继承 user 的店面权限，但拿不到 admin 后台
	allow, err := svc.EnforceAccountRole(models.RoleSeller, "/cart/items", "POST")
	if err != nil {
		t.Fatalf("enforce inherited user failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected seller to inherit user permission")
	}

	allow, err = svc.EnforceAccountRole(models.RoleSeller, "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce seller on admin failed: %v", err)
	}
	if allow {
		t.Fatalf("expected seller denied on admin surface")
	}

	allow, err = svc.EnforceAccountRole(models.RoleAdmin, "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce admin failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected admin allowed on admin surface")
	}

	allow, err = svc.EnforceAccountRole(models.RoleAdmin, "/seller/medicines", "POST")
	if err != nil {
		t.Fatalf("enforce admin on seller failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected admin to inherit seller surface")
	}

	allow, err = svc.EnforceAccountRole(models.RoleUser, "/seller/medicines", "GET")
	if err != nil {
		t.Fatalf("enforce user on seller failed: %v", err)
	}
	if allow {
		t.Fatalf("expected user denied on seller surface")
	}
}
