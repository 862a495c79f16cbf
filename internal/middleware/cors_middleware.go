package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CorsMiddleware allows the web dashboard origins. BaseUrl comes from
// config so deployed environments can add their frontend.
func CorsMiddleware(baseUrl string) gin.HandlerFunc {
	allowOrigins := []string{"http://localhost:3000"}
	if baseUrl != "" {
		allowOrigins = append(allowOrigins, baseUrl)
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Cache-Control", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
