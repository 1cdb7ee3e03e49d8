package models

import "strings"

// Role 用户角色（封闭枚举：user / seller / admin）
type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ParseRole 解析角色字符串，未知角色返回 false
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleUser:
		return RoleUser, true
	case RoleSeller:
		return RoleSeller, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Valid 角色是否合法
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleSeller, RoleAdmin:
		return true
	default:
		return false
	}
}

// String 返回角色字符串
func (r Role) String() string {
	return string(r)
}

// CanSell 是否具备卖家操作资格
func (r Role) CanSell() bool {
	switch r {
	case RoleSeller, RoleAdmin:
		return true
	case RoleUser:
		return false
	default:
		return false
	}
}
