package admin

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

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, msg: "order status transition is not allowed"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "order not found"},
}

var categoryErrorRules = []mappedHandlerError{
	{target: service.ErrSlugExists, code: response.CodeBadRequest, msg: "slug is already in use"},
	{target: service.ErrCategoryInUse, code: response.CodeBadRequest, msg: "category still has medicines"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "category not found"},
}

var userErrorRules = []mappedHandlerError{
	{target: service.ErrRoleInvalid, code: response.CodeBadRequest, msg: "role is not supported"},
	{target: service.ErrUserStatusInvalid, code: response.CodeBadRequest, msg: "status is not supported"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "user not found"},
}

var feedbackErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "feedback not found"},
}

var advertisementErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "advertisement not found"},
}
