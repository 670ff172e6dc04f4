package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"hugo-exporter/pkg/config"
)

// AuthRequired rejects callers without an authenticated session. An export
// run never starts for a rejected caller. An empty ADMIN_PASSWORD disables
// auth for single-user local setups.
func AuthRequired(c *gin.Context) {
	if config.AdminPassword == "" {
		c.Next()
		return
	}

	session := sessions.Default(c)
	if auth, ok := session.Get("authenticated").(bool); !ok || !auth {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission_denied"})
		return
	}
	c.Next()
}

func Login(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	if config.AdminPassword == "" || req.Password != config.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	session := sessions.Default(c)
	session.Set("authenticated", true)
	session.Save()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
