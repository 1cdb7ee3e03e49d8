package main

import (
	"github.com/pharmanext/internal/config"
	"github.com/pharmanext/internal/constants"
	"github.com/pharmanext/internal/logger"
	"github.com/pharmanext/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 示例卖家
	sellerID := seedSeller(stdLog.Printf)

	// 药品分类
	categories := []models.Category{
		{Slug: "pain-relief", Name: "Pain Relief", SortOrder: 10},
		{Slug: "antibiotics", Name: "Antibiotics", SortOrder: 20},
		{Slug: "vitamins", Name: "Vitamins & Supplements", SortOrder: 30},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"pain-relief", "antibiotics", "vitamins"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 示例药品
	medicines := []models.Medicine{
		{
			SellerID:    sellerID,
			CategoryID:  categoryIDs["pain-relief"],
			Slug:        "paracetamol-500",
			Name:        "Paracetamol 500mg",
			GenericName: "Acetaminophen",
			Brand:       "PharmaNext",
			Description: "Fast acting pain and fever relief.",
			Formulations: models.MoneyMap{
				constants.FormulationTablet: models.NewMoneyFromDecimal(decimal.NewFromFloat(4.99)),
				constants.FormulationSyrup:  models.NewMoneyFromDecimal(decimal.NewFromFloat(7.49)),
			},
			IsActive:  true,
			SortOrder: 10,
		},
		{
			SellerID:    sellerID,
			CategoryID:  categoryIDs["antibiotics"],
			Slug:        "amoxicillin-250",
			Name:        "Amoxicillin 250mg",
			GenericName: "Amoxicillin",
			Brand:       "PharmaNext",
			Description: "Broad spectrum antibiotic. Prescription required.",
			Formulations: models.MoneyMap{
				constants.FormulationCapsule:   models.NewMoneyFromDecimal(decimal.NewFromFloat(12.5)),
				constants.FormulationInjection: models.NewMoneyFromDecimal(decimal.NewFromFloat(24)),
			},
			IsActive:  true,
			SortOrder: 20,
		},
		{
			SellerID:    sellerID,
			CategoryID:  categoryIDs["vitamins"],
			Slug:        "vitamin-c-1000",
			Name:        "Vitamin C 1000mg",
			GenericName: "Ascorbic Acid",
			Brand:       "PharmaNext",
			Description: "Daily immune support.",
			Formulations: models.MoneyMap{
				constants.FormulationTablet: models.NewMoneyFromDecimal(decimal.NewFromFloat(9.99)),
			},
			DiscountPercent: 10,
			IsActive:        true,
			SortOrder:       30,
		},
	}
	for _, med := range medicines {
		var existing models.Medicine
		if err := models.DB.Where("slug = ?", med.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&med).Error; err != nil {
				stdLog.Printf("Failed to create medicine %s: %v", med.Slug, err)
			} else {
				stdLog.Printf("Created medicine: %s", med.Slug)
			}
		} else {
			stdLog.Printf("Medicine already exists: %s", med.Slug)
		}
	}

	// 站点配置
	var existingSetting models.Setting
	if err := models.DB.Where("key = ?", constants.SettingKeySiteConfig).First(&existingSetting).Error; err != nil {
		setting := models.Setting{
			Key: constants.SettingKeySiteConfig,
			ValueJSON: models.JSON(map[string]interface{}{
				"site_name":      "PharmaNext",
				"currency":       constants.DefaultCurrency,
				"invoice_footer": "Thank you for shopping with PharmaNext.",
			}),
		}
		if err := models.DB.Create(&setting).Error; err != nil {
			stdLog.Printf("Failed to create site config: %v", err)
		} else {
			stdLog.Printf("Created site config")
		}
	} else {
		stdLog.Printf("Site config already exists")
	}

	stdLog.Printf("Seed finished")
}

func seedSeller(logf func(format string, v ...interface{})) uint {
	var existing models.User
	if err := models.DB.Where("email = ?", "seller@pharmanext.local").First(&existing).Error; err == nil {
		logf("Seller already exists: %s", existing.Email)
		return existing.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("seller123"), bcrypt.DefaultCost)
	if err != nil {
		logf("Failed to hash seller password: %v", err)
		return 0
	}
	seller := models.User{
		Email:        "seller@pharmanext.local",
		PasswordHash: string(hash),
		DisplayName:  "Demo Seller",
		Role:         models.RoleSeller,
		Status:       constants.UserStatusActive,
	}
	if err := models.DB.Create(&seller).Error; err != nil {
		logf("Failed to create seller: %v", err)
		return 0
	}
	logf("Created seller: %s", seller.Email)
	return seller.ID
}
