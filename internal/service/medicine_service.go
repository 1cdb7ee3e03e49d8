package service

import (
	"sort"
	"strings"

	"github.com/pharmanext/internal/constants"
	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/repository"

	"github.com/shopspring/decimal"
)

// MedicineService 药品业务服务
type MedicineService struct {
	repo repository.MedicineRepository
}

// NewMedicineService 创建药品服务
func NewMedicineService(repo repository.MedicineRepository) *MedicineService {
	return &MedicineService{repo: repo}
}

// BrowseMedicinesParams 前台药品列表参数
type BrowseMedicinesParams struct {
	CategoryID string
	Search     string
	SortBy     string
	SortDir    string
	Page       int
	PageSize   int
}

// CreateMedicineInput 创建/更新药品输入
type CreateMedicineInput struct {
	SellerID        uint
	CategoryID      uint
	Slug            string
	Name            string
	GenericName     string
	Brand           string
	Description     string
	Image           string
	Images          []string
	Formulations    map[string]decimal.Decimal
	DiscountPercent int
	IsActive        *bool
	SortOrder       int
}

// Browse 前台药品检索。
// 在上架集合上做子串过滤；命中名称完全一致的条目最前，前缀命中其次，
// 同档内再按请求的字段排序，最后分页。
func (s *MedicineService) Browse(params BrowseMedicinesParams) ([]models.Medicine, int64, error) {
	all, err := s.repo.ListActive(strings.TrimSpace(params.CategoryID))
	if err != nil {
		return nil, 0, err
	}

	filtered := filterMedicines(all, params.Search)
	orderMedicines(filtered, params.Search, params.SortBy, params.SortDir)

	total := int64(len(filtered))
	return paginateMedicines(filtered, params.Page, params.PageSize), total, nil
}

// GetPublicBySlug 获取前台药品详情
func (s *MedicineService) GetPublicBySlug(slug string) (*models.Medicine, error) {
	medicine, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if medicine == nil || !medicine.IsActive {
		return nil, ErrNotFound
	}
	return medicine, nil
}

// ListManaged 获取后台药品列表（管理员全量，卖家限定自有）
func (s *MedicineService) ListManaged(sellerID uint, categoryID, search string, page, pageSize int) ([]models.Medicine, int64, error) {
	filter := repository.MedicineListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		SellerID:     sellerID,
		Search:       search,
		OnlyActive:   false,
		WithCategory: true,
	}
	return s.repo.List(filter)
}

// GetManagedByID 获取后台药品详情
func (s *MedicineService) GetManagedByID(id uint, sellerID uint) (*models.Medicine, error) {
	medicine, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, ErrNotFound
	}
	if sellerID != 0 && medicine.SellerID != sellerID {
		return nil, ErrSellerMismatch
	}
	return medicine, nil
}

// Create 创建药品
func (s *MedicineService) Create(input CreateMedicineInput) (*models.Medicine, error) {
	formulations, err := normalizeFormulations(input.Formulations)
	if err != nil {
		return nil, err
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return nil, ErrDiscountInvalid
	}
	count, err := s.repo.CountBySlug(input.Slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrMedicineNameRequired
	}

	medicine := models.Medicine{
		SellerID:        input.SellerID,
		CategoryID:      input.CategoryID,
		Slug:            input.Slug,
		Name:            strings.TrimSpace(input.Name),
		GenericName:     strings.TrimSpace(input.GenericName),
		Brand:           strings.TrimSpace(input.Brand),
		Description:     input.Description,
		Image:           strings.TrimSpace(input.Image),
		Images:          models.StringArray(input.Images),
		Formulations:    formulations,
		DiscountPercent: input.DiscountPercent,
		IsActive:        isActive,
		SortOrder:       input.SortOrder,
	}

	if err := s.repo.Create(&medicine); err != nil {
		return nil, err
	}
	return &medicine, nil
}

// Update 更新药品
func (s *MedicineService) Update(id uint, input CreateMedicineInput) (*models.Medicine, error) {
	formulations, err := normalizeFormulations(input.Formulations)
	if err != nil {
		return nil, err
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return nil, ErrDiscountInvalid
	}
	medicine, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, ErrNotFound
	}
	if input.SellerID != 0 && medicine.SellerID != input.SellerID {
		return nil, ErrSellerMismatch
	}

	count, err := s.repo.CountBySlug(input.Slug, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	medicine.CategoryID = input.CategoryID
	medicine.Slug = input.Slug
	medicine.Name = strings.TrimSpace(input.Name)
	medicine.GenericName = strings.TrimSpace(input.GenericName)
	medicine.Brand = strings.TrimSpace(input.Brand)
	medicine.Description = input.Description
	medicine.Image = strings.TrimSpace(input.Image)
	medicine.Images = models.StringArray(input.Images)
	medicine.Formulations = formulations
	medicine.DiscountPercent = input.DiscountPercent
	medicine.SortOrder = input.SortOrder
	if input.IsActive != nil {
		medicine.IsActive = *input.IsActive
	}

	if err := s.repo.Update(medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

// Delete 删除药品
func (s *MedicineService) Delete(id uint, sellerID uint) error {
	medicine, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if medicine == nil {
		return ErrNotFound
	}
	if sellerID != 0 && medicine.SellerID != sellerID {
		return ErrSellerMismatch
	}
	return s.repo.Delete(id)
}

func normalizeFormulations(raw map[string]decimal.Decimal) (models.MoneyMap, error) {
	if len(raw) == 0 {
		return nil, ErrFormulationInvalid
	}
	formulations := models.MoneyMap{}
	for rawType, price := range raw {
		formulationType := normalizeFormulationType(rawType)
		if formulationType == "" {
			return nil, ErrFormulationInvalid
		}
		rounded := price.Round(2)
		if rounded.LessThanOrEqual(decimal.Zero) {
			return nil, ErrMedicinePriceInvalid
		}
		formulations[formulationType] = models.NewMoneyFromDecimal(rounded)
	}
	return formulations, nil
}

func filterMedicines(all []models.Medicine, search string) []models.Medicine {
	normalized := strings.ToLower(strings.TrimSpace(search))
	filtered := make([]models.Medicine, 0, len(all))
	if normalized == "" {
		return append(filtered, all...)
	}
	for _, medicine := range all {
		if strings.Contains(strings.ToLower(medicine.Name), normalized) ||
			strings.Contains(strings.ToLower(medicine.GenericName), normalized) ||
			strings.Contains(strings.ToLower(medicine.Brand), normalized) ||
			strings.Contains(strings.ToLower(medicine.Category.Name), normalized) {
			filtered = append(filtered, medicine)
		}
	}
	return filtered
}

// orderMedicines 排序检索结果。
// 搜索命中档次（完全一致 < 前缀 < 其余）是第一排序键，请求字段其次，
// 两者都未区分时保持原有相对顺序。
func orderMedicines(medicines []models.Medicine, search, sortBy, sortDir string) {
	rank := medicineSearchRank(search)
	less := medicineSortLess(sortBy)
	if rank == nil && less == nil {
		return
	}
	desc := strings.EqualFold(strings.TrimSpace(sortDir), constants.SortDirectionDesc)

	sort.SliceStable(medicines, func(i, j int) bool {
		if rank != nil {
			ri, rj := rank(medicines[i]), rank(medicines[j])
			if ri != rj {
				return ri < rj
			}
		}
		if less == nil {
			return false
		}
		if desc {
			return less(medicines[j], medicines[i])
		}
		return less(medicines[i], medicines[j])
	})
}

func medicineSearchRank(search string) func(models.Medicine) int {
	normalized := strings.ToLower(strings.TrimSpace(search))
	if normalized == "" {
		return nil
	}
	return func(m models.Medicine) int {
		name := strings.ToLower(m.Name)
		switch {
		case name == normalized:
			return 0
		case strings.HasPrefix(name, normalized):
			return 1
		default:
			return 2
		}
	}
}

func medicineSortLess(sortBy string) func(a, b models.Medicine) bool {
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case constants.MedicineSortName:
		return func(a, b models.Medicine) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case constants.MedicineSortBrand:
		return func(a, b models.Medicine) bool {
			return strings.ToLower(a.Brand) < strings.ToLower(b.Brand)
		}
	case constants.MedicineSortCategory:
		return func(a, b models.Medicine) bool {
			return strings.ToLower(a.Category.Name) < strings.ToLower(b.Category.Name)
		}
	case constants.MedicineSortPrice:
		return func(a, b models.Medicine) bool {
			return lowestFormulationPrice(a).LessThan(lowestFormulationPrice(b))
		}
	default:
		return nil
	}
}

func lowestFormulationPrice(medicine models.Medicine) decimal.Decimal {
	lowest, ok := medicine.Formulations.Lowest()
	if !ok {
		return decimal.Zero
	}
	return lowest.Decimal
}

func paginateMedicines(medicines []models.Medicine, page, pageSize int) []models.Medicine {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= len(medicines) {
		return []models.Medicine{}
	}
	end := start + pageSize
	if end > len(medicines) {
		end = len(medicines)
	}
	return medicines[start:end]
}
