package repository

import "time"

// MedicineListFilter 查询药品列表的过滤条件
type MedicineListFilter struct {
	Page         int
	PageSize     int
	CategoryID   string
	SellerID     uint
	Search       string
	OnlyActive   bool
	WithCategory bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	Email       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Role        string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// AdvertisementListFilter 查询推广位列表的过滤条件
type AdvertisementListFilter struct {
	Page       int
	PageSize   int
	SellerID   uint
	IsActive   *bool
	OnlyActive bool
}

// FeedbackListFilter 查询评价列表的过滤条件
type FeedbackListFilter struct {
	Page         int
	PageSize     int
	UserID       uint
	OnlyApproved bool
	MinRating    int
}
