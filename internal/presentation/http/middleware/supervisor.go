package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/tk-rocha/garcom-api/internal/presentation/http/dto/response"
	"golang.org/x/crypto/bcrypt"
)

// SupervisorMiddleware gates an endpoint behind the supervisor password,
// checked against the configured bcrypt hash. An empty hash disables the
// gate (development mode).
func SupervisorMiddleware(passwordHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if passwordHash == "" {
			c.Next()
			return
		}

		password := c.GetHeader("X-Supervisor-Password")
		if password == "" {
			response.Forbidden(c, "Supervisor password is required")
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
			response.Forbidden(c, "Invalid supervisor password")
			c.Abort()
			return
		}

		c.Next()
	}
}
