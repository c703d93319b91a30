//go:build embed
// +build embed

package main

import (
	"embed"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed web/dist
var webDist embed.FS

// setupStaticFiles serves the embedded single-page app. Unknown paths fall back
// to index.html so client-side routes like /properties/:id load the app.
func setupStaticFiles(router *gin.Engine) {
	log.Println("📦 Using embedded frontend assets")

	distFS, err := fs.Sub(webDist, "web/dist")
	if err != nil {
		log.Fatalf("Failed to get dist subdirectory: %v", err)
	}

	index, err := fs.ReadFile(distFS, "index.html")
	if err != nil {
		log.Fatalf("Failed to read embedded index.html: %v", err)
	}

	router.NoRoute(func(c *gin.Context) {
		urlPath := c.Request.URL.Path
		if strings.HasPrefix(urlPath, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}

		name := strings.TrimPrefix(path.Clean(urlPath), "/")
		if name != "" && name != "index.html" {
			if content, err := fs.ReadFile(distFS, name); err == nil {
				contentType := mime.TypeByExtension(path.Ext(name))
				if contentType == "" {
					contentType = "application/octet-stream"
				}
				if strings.HasPrefix(name, "assets/") {
					c.Header("Cache-Control", "public, max-age=31536000, immutable")
				}
				c.Data(http.StatusOK, contentType, content)
				return
			}
		}

		c.Header("Cache-Control", "no-cache")
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
}
