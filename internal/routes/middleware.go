package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// RequestID は各リクエストに一意なIDを割り当て、X-Request-IDヘッダーで返すミドルウェアです。
// クライアントがすでにX-Request-IDを送っている場合はそれをそのまま使います。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			generated, err := gonanoid.New()
			if err != nil {
				log.Printf("Failed to generate request ID: %v", err)
			} else {
				id = generated
			}
		}

		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
