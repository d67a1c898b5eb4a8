package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/tk-rocha/garcom-api/internal/presentation/http/dto/response"
)

// OperatorMiddleware attaches the current operator to the request context.
// Authentication itself happens outside this service; the operator arrives
// as opaque headers set by the terminal shell.
func OperatorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		operatorID := c.GetHeader("X-Operator-Id")
		if operatorID == "" {
			response.Unauthorized(c, "X-Operator-Id header is required")
			c.Abort()
			return
		}

		c.Set("operator_id", operatorID)
		c.Set("operator_name", c.GetHeader("X-Operator-Name"))

		c.Next()
	}
}
