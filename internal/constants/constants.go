package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

// 支付方式常量（订单载荷中的展示值）
const (
	PaymentTypeCard = "Card"
	PaymentTypeCOD  = "Cash on Delivery"
)

// 货到付款交易号前缀
const (
	CODTransactionPrefix = "COD-"
)

// 结算流程状态常量
const (
	CheckoutStateIdle             = "idle"
	CheckoutStateValidating       = "validating"
	CheckoutStateConfirmingIntent = "confirming_intent"
	CheckoutStateProcessing       = "processing"
	CheckoutStateSubmitting       = "submitting"
	CheckoutStateSucceeded        = "succeeded"
	CheckoutStateFailed           = "failed"
)

// 剂型常量
const (
	FormulationTablet    = "tablet"
	FormulationSyrup     = "syrup"
	FormulationCapsule   = "capsule"
	FormulationInjection = "injection"
)

// 购物车数量边界常量
const (
	CartQuantityMin = 1
	CartQuantityMax = 100
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 列表排序键常量
const (
	MedicineSortName     = "name"
	MedicineSortBrand    = "brand"
	MedicineSortCategory = "category"
	MedicineSortPrice    = "price"
)

// 排序方向常量
const (
	SortDirectionAsc  = "asc"
	SortDirectionDesc = "desc"
)

// 验证码用途常量
const (
	VerifyPurposeRegister = "register"
	VerifyPurposeReset    = "reset"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)

// 站点设置键常量
const (
	SettingKeySiteConfig     = "site_config"
	SettingKeyCaptchaSetting = "captcha_setting"
)

// 站点设置字段常量
const (
	SettingFieldSiteName      = "site_name"
	SettingFieldSiteCurrency  = "currency"
	SettingFieldInvoiceFooter = "invoice_footer"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 队列任务类型常量
const (
	TaskOrderStatusEmail = "order:status_email"
	TaskCartReapStale    = "cart:reap_stale"
)

// 购物车过期阈值（天）
const (
	CartStaleDays = 30
)

// 默认货币
const (
	DefaultCurrency = "USD"
)
