package provider

import (
	"github.com/pharmanext/internal/authz"
	"github.com/pharmanext/internal/cache"
	"github.com/pharmanext/internal/config"
	"github.com/pharmanext/internal/logger"
	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/queue"
	"github.com/pharmanext/internal/repository"
	"github.com/pharmanext/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo            repository.UserRepository
	EmailVerifyCodeRepo repository.EmailVerifyCodeRepository
	OrderRepo           repository.OrderRepository
	MedicineRepo        repository.MedicineRepository
	CartRepo            repository.CartRepository
	CategoryRepo        repository.CategoryRepository
	AdvertisementRepo   repository.AdvertisementRepository
	FeedbackRepo        repository.FeedbackRepository
	SettingRepo         repository.SettingRepository

	// Services
	AuthzService         *authz.Service
	UserAuthService      *service.UserAuthService
	UserAdminService     *service.UserAdminService
	EmailService         *service.EmailService
	CaptchaService       *service.CaptchaService
	MedicineService      *service.MedicineService
	CategoryService      *service.CategoryService
	SettingService       *service.SettingService
	CartService          *service.CartService
	CheckoutService      *service.CheckoutService
	OrderService         *service.OrderService
	InvoiceService       *service.InvoiceService
	AdvertisementService *service.AdvertisementService
	FeedbackService      *service.FeedbackService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.EmailVerifyCodeRepo = repository.NewEmailVerifyCodeRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.MedicineRepo = repository.NewMedicineRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.AdvertisementRepo = repository.NewAdvertisementRepository(db)
	c.FeedbackRepo = repository.NewFeedbackRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.SettingService, c.Config.Captcha)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.EmailVerifyCodeRepo, c.EmailService)
	c.UserAdminService = service.NewUserAdminService(c.UserRepo)
	c.MedicineService = service.NewMedicineService(c.MedicineRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.MedicineRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.QueueClient)
	c.InvoiceService = service.NewInvoiceService(c.OrderRepo, c.SettingService)
	c.AdvertisementService = service.NewAdvertisementService(c.AdvertisementRepo, c.MedicineRepo)
	c.FeedbackService = service.NewFeedbackService(c.FeedbackRepo)

	gateway := service.NewStripeCardGateway(c.Config.Payment.Stripe)
	c.CheckoutService = service.NewCheckoutService(
		models.DB,
		c.Config,
		c.CartService,
		c.CartRepo,
		c.OrderRepo,
		c.SettingService,
		gateway,
		c.QueueClient,
	)
}
