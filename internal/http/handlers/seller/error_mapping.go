package seller

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

var medicineErrorRules = []mappedHandlerError{
	{target: service.ErrMedicineNameRequired, code: response.CodeBadRequest, msg: "medicine name is required"},
	{target: service.ErrSlugExists, code: response.CodeBadRequest, msg: "slug is already in use"},
	{target: service.ErrFormulationInvalid, code: response.CodeBadRequest, msg: "formulation type is invalid"},
	{target: service.ErrMedicinePriceInvalid, code: response.CodeBadRequest, msg: "formulation price must be positive"},
	{target: service.ErrDiscountInvalid, code: response.CodeBadRequest, msg: "discount percent must be between 0 and 100"},
	{target: service.ErrSellerMismatch, code: response.CodeForbidden, msg: "medicine belongs to another seller"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "medicine not found"},
}

var advertisementErrorRules = []mappedHandlerError{
	{target: service.ErrAdTargetInvalid, code: response.CodeBadRequest, msg: "advertised medicine must be active and owned by you"},
	{target: service.ErrSellerMismatch, code: response.CodeForbidden, msg: "advertisement belongs to another seller"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "advertisement not found"},
}
