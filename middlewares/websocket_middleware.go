package middlewares

import (
	"github.com/brunodev185/pedidos-cine/utils"
	"github.com/gin-gonic/gin"
)

// WebSocketAuthMiddleware autentica a conexão ws pelo token na query
// (browsers não mandam header Authorization no upgrade).
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)

		c.Next()
	}
}
