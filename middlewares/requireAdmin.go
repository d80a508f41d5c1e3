package middlewares

import (
	"net/http"

	"github.com/ibam-church/membership/models"

	"github.com/gin-gonic/gin"
)

// RequireAdmin runs after CheckAuth and lets through active admin accounts only.
func RequireAdmin(c *gin.Context) {
	isAdmin := c.GetBool("admin")
	current, ok := c.Get("currentAdmin")
	if !isAdmin || !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if admin, ok := current.(models.AdminUser); !ok || !admin.Is_Active {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin account is disabled"})
		return
	}

	c.Next()
}
