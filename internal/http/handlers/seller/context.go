package seller

import (
	"github.com/pharmanext/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getSellerID(c *gin.Context) (uint, bool) {
	return shared.GetContextUint(c, "user_id")
}
