//go:build !embed
// +build !embed

package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// setupStaticFiles leaves the frontend to the Vite dev server in development
func setupStaticFiles(router *gin.Engine) {
	log.Println("🔧 Frontend is not embedded (development mode)")
	log.Println("   Run the web app separately with: cd web && npm run dev")

	router.StaticFile("/favicon.ico", "./web/public/favicon.ico")

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Frontend is running separately",
			"dev_url": "http://localhost:5173",
			"hint":    "Build with -tags embed after 'cd web && npm run build' to serve the app from this binary",
		})
	})
}
