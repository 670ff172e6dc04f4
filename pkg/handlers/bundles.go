package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hugo-exporter/pkg/config"
	"hugo-exporter/pkg/services"
)

// Bundles lists the page bundles currently present in the export tree.
func Bundles(index *services.BundleIndex) gin.HandlerFunc {
	return func(c *gin.Context) {
		bundles, err := index.List(config.ExportDir)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bundles: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, bundles)
	}
}

// ServeAsset serves a single file from inside the export tree, for
// previewing localized assets.
func ServeAsset(c *gin.Context) {
	targetPath := c.Query("path")
	if targetPath == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	fullPath := services.SafeJoin(config.ExportDir, "content", targetPath)
	if fullPath == "" {
		c.Status(http.StatusNotFound)
		return
	}

	c.File(fullPath)
}
