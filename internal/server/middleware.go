package server

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// isolationHeaders は全レスポンスにクロスオリジン分離ヘッダーを付与する
// 配信先のサンドボックス実行環境が要求するため、ルーティングの結果に
// かかわらず必ず付与する
func (s *Server) isolationHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cross-Origin-Opener-Policy", "same-origin")
		c.Header("Cross-Origin-Embedder-Policy", "require-corp")
		c.Next()
	}
}

// requestLogger はリクエストIDを付与してアクセスログを出力する
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		start := time.Now()

		c.Next()

		log.Printf("[%s] %s %s -> %d (%s)",
			requestID, c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start))
	}
}
