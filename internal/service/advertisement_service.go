package service

import (
	"strings"

	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/repository"
)

// AdvertisementService 推广位服务。
// 卖家提交后默认下线，管理员审核通过才对店面可见。
type AdvertisementService struct {
	repo         repository.AdvertisementRepository
	medicineRepo repository.MedicineRepository
}

// NewAdvertisementService 创建推广位服务
func NewAdvertisementService(repo repository.AdvertisementRepository, medicineRepo repository.MedicineRepository) *AdvertisementService {
	return &AdvertisementService{repo: repo, medicineRepo: medicineRepo}
}

// AdvertisementInput 创建/更新推广位输入
type AdvertisementInput struct {
	SellerID    uint
	MedicineID  uint
	Title       string
	Description string
	Image       string
	SortOrder   int
}

// ListActive 店面推广位列表
func (s *AdvertisementService) ListActive() ([]models.Advertisement, error) {
	return s.repo.ListActive()
}

// List 后台推广位列表（卖家限定自有）
func (s *AdvertisementService) List(sellerID uint, isActive *bool, page, pageSize int) ([]models.Advertisement, int64, error) {
	return s.repo.List(repository.AdvertisementListFilter{
		Page:     page,
		PageSize: pageSize,
		SellerID: sellerID,
		IsActive: isActive,
	})
}

// GetByID 推广位详情
func (s *AdvertisementService) GetByID(id uint, sellerID uint) (*models.Advertisement, error) {
	ad, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, ErrNotFound
	}
	if sellerID != 0 && ad.SellerID != sellerID {
		return nil, ErrSellerMismatch
	}
	return ad, nil
}

// Create 卖家提交推广位，目标药品必须是该卖家的上架药品
func (s *AdvertisementService) Create(input AdvertisementInput) (*models.Advertisement, error) {
	medicine, err := s.medicineRepo.GetByID(input.MedicineID)
	if err != nil {
		return nil, err
	}
	if medicine == nil || !medicine.IsActive {
		return nil, ErrAdTargetInvalid
	}
	if input.SellerID != 0 && medicine.SellerID != input.SellerID {
		return nil, ErrAdTargetInvalid
	}

	ad := models.Advertisement{
		SellerID:    input.SellerID,
		MedicineID:  input.MedicineID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Image:       strings.TrimSpace(input.Image),
		IsActive:    false,
		SortOrder:   input.SortOrder,
	}
	if err := s.repo.Create(&ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

// Update 更新推广位内容。卖家编辑后重新进入待审核状态。
func (s *AdvertisementService) Update(id uint, input AdvertisementInput) (*models.Advertisement, error) {
	ad, err := s.GetByID(id, input.SellerID)
	if err != nil {
		return nil, err
	}

	if input.MedicineID != 0 && input.MedicineID != ad.MedicineID {
		medicine, err := s.medicineRepo.GetByID(input.MedicineID)
		if err != nil {
			return nil, err
		}
		if medicine == nil || !medicine.IsActive {
			return nil, ErrAdTargetInvalid
		}
		if input.SellerID != 0 && medicine.SellerID != input.SellerID {
			return nil, ErrAdTargetInvalid
		}
		ad.MedicineID = input.MedicineID
	}

	ad.Title = strings.TrimSpace(input.Title)
	ad.Description = input.Description
	ad.Image = strings.TrimSpace(input.Image)
	ad.SortOrder = input.SortOrder
	if input.SellerID != 0 {
		ad.IsActive = false
	}
	if err := s.repo.Update(ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// SetApproval 管理员审核上线/下线
func (s *AdvertisementService) SetApproval(id uint, isActive bool) (*models.Advertisement, error) {
	ad, err := s.GetByID(id, 0)
	if err != nil {
		return nil, err
	}
	ad.IsActive = isActive
	if err := s.repo.Update(ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// Delete 删除推广位（卖家限定自有）
func (s *AdvertisementService) Delete(id uint, sellerID uint) error {
	if _, err := s.GetByID(id, sellerID); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
