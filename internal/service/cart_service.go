package service

import (
	"strings"
	"time"

	"github.com/pharmanext/internal/constants"
	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	MedicineID      uint             `json:"medicine_id"`
	FormulationType string           `json:"formulation_type"`
	Quantity        int              `json:"quantity"`
	UnitPrice       models.Money     `json:"unit_price"`
	LineTotal       models.Money     `json:"line_total"`
	Name            string           `json:"name"`
	Image           string           `json:"image"`
	Medicine        *models.Medicine `json:"medicine,omitempty"`
}

// CartSummary 购物车汇总。
// 总数量与总金额由当前项逐行推导，不单独存储。
type CartSummary struct {
	Items         []CartItemDetail `json:"items"`
	TotalQuantity int              `json:"total_quantity"`
	TotalPrice    models.Money     `json:"total_price"`
}

// UpsertCartItemInput 购物车更新输入
type UpsertCartItemInput struct {
	UserID          uint
	MedicineID      uint
	Quantity        int
	FormulationType string
}

// CartService 购物车服务
type CartService struct {
	cartRepo     repository.CartRepository
	medicineRepo repository.MedicineRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, medicineRepo repository.MedicineRepository) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		medicineRepo: medicineRepo,
	}
}

// ListByUser 获取用户购物车，下架药品的残留项顺带清除
func (s *CartService) ListByUser(userID uint) (*CartSummary, error) {
	if userID == 0 {
		return nil, ErrInvalidCartItem
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{Items: make([]CartItemDetail, 0, len(items))}
	total := decimal.Zero
	for _, item := range items {
		medicine := item.Medicine
		if medicine == nil || medicine.ID == 0 {
			m, err := s.medicineRepo.GetByID(item.MedicineID)
			if err != nil {
				return nil, err
			}
			medicine = m
		}
		if medicine == nil || !medicine.IsActive {
			_ = s.cartRepo.DeleteByKey(userID, item.MedicineID, item.FormulationType)
			continue
		}

		lineTotal := item.LineTotal()
		summary.Items = append(summary.Items, CartItemDetail{
			MedicineID:      item.MedicineID,
			FormulationType: item.FormulationType,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			LineTotal:       lineTotal,
			Name:            item.Name,
			Image:           item.Image,
			Medicine:        medicine,
		})
		summary.TotalQuantity += item.Quantity
		total = total.Add(lineTotal.Decimal)
	}
	summary.TotalPrice = models.NewMoneyFromDecimal(total)
	return summary, nil
}

// AddItem 添加购物车项。
// 同（药品, 剂型）的已有项合并数量，合并后超出上限按上限截断。
func (s *CartService) AddItem(input UpsertCartItemInput) (*CartSummary, error) {
	if input.UserID == 0 || input.MedicineID == 0 || input.Quantity < constants.CartQuantityMin {
		return nil, ErrInvalidCartItem
	}
	medicine, unitPrice, formulationType, err := s.resolveCartMedicine(input.MedicineID, input.FormulationType)
	if err != nil {
		return nil, err
	}

	quantity := input.Quantity
	existing, err := s.cartRepo.GetByKey(input.UserID, input.MedicineID, formulationType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		quantity += existing.Quantity
	}
	quantity = clampCartQuantity(quantity)

	if err := s.upsertCartItem(input.UserID, medicine, formulationType, quantity, unitPrice); err != nil {
		return nil, err
	}
	return s.ListByUser(input.UserID)
}

// SetItemQuantity 覆盖购物车项数量。
// 数量截断进 1..100；目标项不存在时不做任何修改，直接返回当前购物车。
func (s *CartService) SetItemQuantity(input UpsertCartItemInput) (*CartSummary, error) {
	if input.UserID == 0 || input.MedicineID == 0 {
		return nil, ErrInvalidCartItem
	}
	medicine, unitPrice, formulationType, err := s.resolveCartMedicine(input.MedicineID, input.FormulationType)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.GetByKey(input.UserID, input.MedicineID, formulationType)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return s.ListByUser(input.UserID)
	}

	quantity := clampCartQuantity(input.Quantity)
	if err := s.upsertCartItem(input.UserID, medicine, formulationType, quantity, unitPrice); err != nil {
		return nil, err
	}
	return s.ListByUser(input.UserID)
}

// RemoveItem 删除购物车项，项不存在时视为已删除
func (s *CartService) RemoveItem(userID, medicineID uint, formulationType string) (*CartSummary, error) {
	if userID == 0 || medicineID == 0 {
		return nil, ErrInvalidCartItem
	}
	formulationType = normalizeFormulationType(formulationType)
	if formulationType == "" {
		return nil, ErrFormulationInvalid
	}
	if err := s.cartRepo.DeleteByKey(userID, medicineID, formulationType); err != nil {
		return nil, err
	}
	return s.ListByUser(userID)
}

// Clear 清空用户购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidCartItem
	}
	return s.cartRepo.ClearByUser(userID)
}

// ReapStale 清理长期未更新的购物车项
func (s *CartService) ReapStale(staleDays int) (int64, error) {
	if staleDays <= 0 {
		staleDays = constants.CartStaleDays
	}
	before := time.Now().AddDate(0, 0, -staleDays)
	return s.cartRepo.DeleteStale(before)
}

func (s *CartService) resolveCartMedicine(medicineID uint, rawFormulation string) (*models.Medicine, models.Money, string, error) {
	medicine, err := s.medicineRepo.GetByID(medicineID)
	if err != nil {
		return nil, models.Money{}, "", err
	}
	if medicine == nil || !medicine.IsActive {
		return nil, models.Money{}, "", ErrMedicineNotAvailable
	}

	formulationType := normalizeFormulationType(rawFormulation)
	if formulationType == "" {
		return nil, models.Money{}, "", ErrFormulationInvalid
	}
	basePrice, ok := medicine.Formulations[formulationType]
	if !ok {
		return nil, models.Money{}, "", ErrFormulationInvalid
	}

	return medicine, discountedPrice(basePrice, medicine.DiscountPercent), formulationType, nil
}

func (s *CartService) upsertCartItem(userID uint, medicine *models.Medicine, formulationType string, quantity int, unitPrice models.Money) error {
	now := time.Now()
	item := &models.CartItem{
		UserID:          userID,
		MedicineID:      medicine.ID,
		FormulationType: formulationType,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		Name:            medicine.Name,
		Image:           medicine.Image,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return s.cartRepo.Upsert(item)
}

func clampCartQuantity(quantity int) int {
	if quantity > constants.CartQuantityMax {
		return constants.CartQuantityMax
	}
	if quantity < constants.CartQuantityMin {
		return constants.CartQuantityMin
	}
	return quantity
}

func normalizeFormulationType(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case constants.FormulationTablet, constants.FormulationSyrup, constants.FormulationCapsule, constants.FormulationInjection:
		return value
	default:
		return ""
	}
}

func discountedPrice(base models.Money, discountPercent int) models.Money {
	if discountPercent <= 0 || discountPercent > 100 {
		return models.NewMoneyFromDecimal(base.Decimal)
	}
	factor := decimal.NewFromInt(int64(100 - discountPercent)).Div(decimal.NewFromInt(100))
	return models.NewMoneyFromDecimal(base.Decimal.Mul(factor))
}
