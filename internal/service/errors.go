package service

import "errors"

// 服务层业务错误，由各 handler 统一映射成接口错误响应。
var (
	ErrNotFound = errors.New("record not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrProfileEmpty       = errors.New("profile update is empty")
	ErrUserStatusInvalid  = errors.New("user status is invalid")
	ErrRoleInvalid        = errors.New("role invalid")

	ErrInvalidVerifyPurpose       = errors.New("invalid verify purpose")
	ErrVerifyCodeInvalid          = errors.New("verify code invalid")
	ErrVerifyCodeExpired          = errors.New("verify code expired")
	ErrVerifyCodeTooFrequent      = errors.New("verify code sent too frequently")
	ErrVerifyCodeAttemptsExceeded = errors.New("verify code attempts exceeded")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")

	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")

	ErrSlugExists           = errors.New("slug already exists")
	ErrCategoryInUse        = errors.New("category has medicines")
	ErrMedicineNotAvailable = errors.New("medicine not available")
	ErrMedicineNameRequired = errors.New("medicine name is required")
	ErrMedicinePriceInvalid = errors.New("medicine price invalid")
	ErrFormulationInvalid   = errors.New("formulation type invalid")
	ErrDiscountInvalid      = errors.New("discount percent invalid")
	ErrSellerMismatch       = errors.New("medicine belongs to another seller")

	ErrInvalidCartItem = errors.New("cart item invalid")
	ErrCartEmpty       = errors.New("cart is empty")

	ErrBillingInfoInvalid   = errors.New("billing info invalid")
	ErrPaymentTypeInvalid   = errors.New("payment type invalid")
	ErrPaymentMethodMissing = errors.New("payment method missing")
	ErrPaymentDeclined      = errors.New("payment declined")
	ErrPaymentGatewayError  = errors.New("payment gateway error")
	ErrOrderCreateFailed    = errors.New("order create failed")
	ErrOrderStatusInvalid   = errors.New("order status transition not allowed")
	ErrInvoiceOrderMissing  = errors.New("order for invoice not found")

	ErrRatingInvalid     = errors.New("rating must be between 1 and 5")
	ErrAdTargetInvalid   = errors.New("advertisement medicine invalid")
	ErrQueueUnavailable  = errors.New("queue unavailable")
	ErrSettingKeyInvalid = errors.New("setting key invalid")
)
