package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleGetWatchlist(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"watchlist": s.store.Watchlist(),
	})
}

func (s *Server) handleAddWatchlist(c *gin.Context) {
	var body struct {
		Symbol string `json:"symbol"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}
	symbol := strings.ToUpper(strings.TrimSpace(body.Symbol))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "symbol required", "error_code": errCodeBadRequest})
		return
	}

	// 重複加入為冪等 no-op，仍回 200。
	s.store.AddToWatchlist(c.Request.Context(), symbol)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"watchlist": s.store.Watchlist(),
	})
}

func (s *Server) handleRemoveWatchlist(c *gin.Context) {
	symbol := pathSymbol(c)
	s.store.RemoveFromWatchlist(c.Request.Context(), symbol)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"watchlist": s.store.Watchlist(),
	})
}
