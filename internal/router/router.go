package router

import (
	"fmt"
	"strings"

	"github.com/pharmanext/internal/cache"
	"github.com/pharmanext/internal/config"
	adminhandlers "github.com/pharmanext/internal/http/handlers/admin"
	publichandlers "github.com/pharmanext/internal/http/handlers/public"
	sellerhandlers "github.com/pharmanext/internal/http/handlers/seller"
	"github.com/pharmanext/internal/logger"
	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按店面/卖家/管理端分组）
	publicHandler := publichandlers.New(c)
	sellerHandler := sellerhandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ph"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）
	r.Static("/uploads", "./uploads")

	apiV1 := r.Group("/api/v1")
	{
		// 店面公开接口
		apiV1.GET("/site-config", publicHandler.GetSiteConfig)
		apiV1.GET("/medicines", publicHandler.ListMedicines)
		apiV1.GET("/medicines/:slug", publicHandler.GetMedicine)
		apiV1.GET("/categories", publicHandler.ListCategories)
		apiV1.GET("/categories/:id", publicHandler.GetCategory)
		apiV1.GET("/advertisements", publicHandler.ListAdvertisements)
		apiV1.GET("/feedbacks", publicHandler.ListFeedbacks)
		apiV1.GET("/captcha/setting", publicHandler.GetCaptchaSetting)
		apiV1.GET("/captcha/image", publicHandler.GenerateCaptcha)

		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			auth.POST("/send-verify-code", publicHandler.SendVerifyCode)
			auth.POST("/reset-password", publicHandler.ResetPassword)
		}

		// 支付回调
		apiV1.POST("/payments/webhook/stripe", publicHandler.StripeWebhook)

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/users/me", publicHandler.GetProfile)
			user.PUT("/users/me", publicHandler.UpdateProfile)
			user.PUT("/users/me/password", publicHandler.ChangePassword)
			user.GET("/users/:email", publicHandler.GetUserRole)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:medicineId", publicHandler.RemoveCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.POST("/checkout", publicHandler.PlaceOrder)
			user.GET("/orders", publicHandler.ListMyOrders)
			user.GET("/orders/:id", publicHandler.GetMyOrder)
			user.GET("/orders/:id/invoice", publicHandler.DownloadInvoice)

			user.POST("/feedbacks", publicHandler.SubmitFeedback)
		}

		// 卖家接口
		seller := apiV1.Group("/seller")
		seller.Use(
			UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo),
			RequireRole(models.Role.CanSell),
			RBACMiddleware(c.AuthzService),
		)
		{
			seller.GET("/medicines", sellerHandler.ListMedicines)
			seller.GET("/medicines/:id", sellerHandler.GetMedicine)
			seller.POST("/medicines", sellerHandler.CreateMedicine)
			seller.PUT("/medicines/:id", sellerHandler.UpdateMedicine)
			seller.DELETE("/medicines/:id", sellerHandler.DeleteMedicine)

			seller.GET("/advertisements", sellerHandler.ListAdvertisements)
			seller.POST("/advertisements", sellerHandler.CreateAdvertisement)
			seller.PUT("/advertisements/:id", sellerHandler.UpdateAdvertisement)
			seller.DELETE("/advertisements/:id", sellerHandler.DeleteAdvertisement)
		}

		// 管理端接口
		admin := apiV1.Group("/admin")
		admin.Use(
			UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo),
			RequireRole(func(role models.Role) bool { return role == models.RoleAdmin }),
			RBACMiddleware(c.AuthzService),
		)
		{
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PATCH("/orders/:id", adminHandler.UpdateOrderStatus)
			admin.GET("/orders/:id/invoice", adminHandler.DownloadOrderInvoice)

			admin.GET("/medicines", adminHandler.ListMedicines)
			admin.GET("/medicines/:id", adminHandler.GetMedicine)
			admin.DELETE("/medicines/:id", adminHandler.DeleteMedicine)

			admin.GET("/categories", adminHandler.ListCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PUT("/users/:id/role", adminHandler.SetUserRole)
			admin.PUT("/users/:id/status", adminHandler.SetUserStatus)
			admin.PUT("/users/batch-status", adminHandler.BatchSetUserStatus)

			admin.GET("/advertisements", adminHandler.ListAdvertisements)
			admin.PUT("/advertisements/:id/approval", adminHandler.SetAdvertisementApproval)
			admin.DELETE("/advertisements/:id", adminHandler.DeleteAdvertisement)

			admin.GET("/feedbacks", adminHandler.ListFeedbacks)
			admin.PUT("/feedbacks/:id/approval", adminHandler.SetFeedbackApproval)
			admin.DELETE("/feedbacks/:id", adminHandler.DeleteFeedback)

			admin.GET("/settings/site", adminHandler.GetSiteConfig)
			admin.PUT("/settings/site", adminHandler.UpdateSiteConfig)
			admin.GET("/settings/captcha", adminHandler.GetCaptchaSetting)
			admin.PUT("/settings/captcha", adminHandler.PatchCaptchaSetting)

			admin.GET("/authz/roles", adminHandler.ListRoles)
			admin.POST("/authz/roles", adminHandler.CreateRole)
			admin.DELETE("/authz/roles/:role", adminHandler.DeleteRole)
			admin.GET("/authz/roles/:role/policies", adminHandler.GetRolePolicies)
			admin.POST("/authz/roles/:role/policies", adminHandler.GrantRolePolicy)
			admin.DELETE("/authz/roles/:role/policies", adminHandler.RevokeRolePolicy)
			admin.GET("/authz/users/:id/roles", adminHandler.GetUserRoles)
			admin.PUT("/authz/users/:id/roles", adminHandler.SetUserRoles)
		}
	}

	// 健康检查
	r.GET("/health", publicHandler.Health)

	return r
}
