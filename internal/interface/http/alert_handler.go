package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appMarket "stock-watch/internal/application/market"
	alertDomain "stock-watch/internal/domain/alert"
)

type alertPayload struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	Type      string  `json:"type"`
	Threshold float64 `json:"threshold"`
	Triggered bool    `json:"triggered"`
}

func alertPayloadFrom(a alertDomain.Alert) alertPayload {
	return alertPayload{
		ID:        a.ID,
		Symbol:    a.Symbol,
		Type:      string(a.Direction),
		Threshold: a.Threshold,
		Triggered: a.Triggered,
	}
}

func (s *Server) handleListAlerts(c *gin.Context) {
	alerts := s.store.Alerts()
	items := make([]alertPayload, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, alertPayloadFrom(a))
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"alerts":  items,
	})
}

func (s *Server) handleCreateAlert(c *gin.Context) {
	var body struct {
		Symbol    string  `json:"symbol"`
		Type      string  `json:"type"`
		Threshold float64 `json:"threshold"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(body.Symbol))
	direction := alertDomain.Direction(body.Type)
	if symbol == "" || !direction.Valid() || body.Threshold <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "symbol, type and positive threshold required", "error_code": errCodeBadRequest})
		return
	}

	a, ok := s.store.AddAlert(c.Request.Context(), symbol, direction, body.Threshold)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid alert", "error_code": errCodeBadRequest})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"alert":   alertPayloadFrom(a),
	})
}

func (s *Server) handleUpdateAlert(c *gin.Context) {
	id := c.Param("id")
	var body struct {
		Symbol    *string  `json:"symbol"`
		Type      *string  `json:"type"`
		Threshold *float64 `json:"threshold"`
		Triggered *bool    `json:"triggered"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	update := appMarket.AlertUpdate{
		Threshold: body.Threshold,
		Triggered: body.Triggered,
	}
	if body.Symbol != nil {
		v := strings.ToUpper(strings.TrimSpace(*body.Symbol))
		if v == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "symbol must not be empty", "error_code": errCodeBadRequest})
			return
		}
		update.Symbol = &v
	}
	if body.Type != nil {
		d := alertDomain.Direction(*body.Type)
		if !d.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "type must be above or below", "error_code": errCodeBadRequest})
			return
		}
		update.Direction = &d
	}
	if body.Threshold != nil && *body.Threshold <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "threshold must be > 0", "error_code": errCodeBadRequest})
		return
	}

	a, ok := s.store.UpdateAlert(c.Request.Context(), id, update)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "unknown alert id", "error_code": errCodeNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"alert":   alertPayloadFrom(a),
	})
}

func (s *Server) handleDeleteAlert(c *gin.Context) {
	id := c.Param("id")
	// 不存在的 id 為 no-op，仍回 200。
	s.store.DeleteAlert(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
