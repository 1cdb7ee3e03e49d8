package public

import (
	"errors"

	"github.com/pharmanext/internal/http/handlers/shared"
	"github.com/pharmanext/internal/http/response"
	"github.com/pharmanext/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			shared.RespondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	shared.RespondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var authCommonErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid email or password"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, msg: "account is disabled"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, msg: "password does not meet the policy"},
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, msg: "captcha is required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, msg: "captcha verification failed"},
	{target: service.ErrCaptchaConfigInvalid, code: response.CodeInternal, msg: "captcha is misconfigured"},
}

var registerErrorRules = []mappedHandlerError{
	{target: service.ErrEmailExists, code: response.CodeBadRequest, msg: "email is already registered"},
	{target: service.ErrVerifyCodeInvalid, code: response.CodeBadRequest, msg: "verify code is invalid"},
	{target: service.ErrVerifyCodeExpired, code: response.CodeBadRequest, msg: "verify code has expired"},
	{target: service.ErrVerifyCodeAttemptsExceeded, code: response.CodeBadRequest, msg: "too many verify attempts"},
}

var verifyCodeErrorRules = []mappedHandlerError{
	{target: service.ErrEmailServiceDisabled, code: response.CodeBadRequest, msg: "email service is disabled"},
	{target: service.ErrEmailServiceNotConfigured, code: response.CodeInternal, msg: "email service is not configured"},
	{target: service.ErrEmailRecipientRejected, code: response.CodeBadRequest, msg: "recipient address rejected"},
	{target: service.ErrVerifyCodeTooFrequent, code: response.CodeTooManyRequests, msg: "verify code requested too frequently"},
	{target: service.ErrInvalidVerifyPurpose, code: response.CodeBadRequest, msg: "unsupported verify purpose"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, msg: "email is already registered"},
	{target: service.ErrNotFound, code: response.CodeBadRequest, msg: "email is not registered"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest, msg: "cart item is invalid"},
	{target: service.ErrMedicineNotAvailable, code: response.CodeBadRequest, msg: "medicine is not available"},
	{target: service.ErrFormulationInvalid, code: response.CodeBadRequest, msg: "formulation type is invalid"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "cart item not found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrBillingInfoInvalid, code: response.CodeBadRequest, msg: "billing information is incomplete"},
	{target: service.ErrPaymentTypeInvalid, code: response.CodeBadRequest, msg: "payment type is not supported"},
	{target: service.ErrPaymentMethodMissing, code: response.CodeBadRequest, msg: "payment method is required for card payment"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrPaymentDeclined, code: response.CodeBadRequest, msg: "card payment was declined"},
	{target: service.ErrPaymentGatewayError, code: response.CodeGateway, msg: "payment gateway is unavailable"},
	{target: service.ErrOrderCreateFailed, code: response.CodeInternal, msg: "order could not be created"},
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "order could not be created")
}
