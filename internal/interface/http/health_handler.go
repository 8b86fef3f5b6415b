package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "pong",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	dbStatus := "memory"
	if s.db != nil {
		dbStatus = "ok"
		ctx, cancel := contextWithTimeout(c, 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			dbStatus = "unreachable"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"db":      dbStatus,
		"stocks":  len(s.store.Stocks()),
		"clients": s.hub.clientCount(),
		"loading": s.store.Loading(),
	})
}
