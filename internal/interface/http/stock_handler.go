package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stock-watch/internal/domain/market"
)

type stockPayload struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OpenPrice     float64 `json:"openPrice"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	MarketCap     string  `json:"marketCap"`
}

func stockPayloadFrom(s market.Stock) stockPayload {
	return stockPayload{
		Symbol:        s.Symbol,
		Name:          s.Name,
		Price:         s.Price,
		OpenPrice:     s.OpenPrice,
		Change:        s.Change,
		ChangePercent: s.ChangePercent,
		Volume:        s.Volume,
		MarketCap:     s.MarketCap,
	}
}

type historyPayload struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

func (s *Server) handleListStocks(c *gin.Context) {
	stocks := s.store.Stocks()
	items := make([]stockPayload, 0, len(stocks))
	for _, st := range stocks {
		items = append(items, stockPayloadFrom(st))
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"loading": s.store.Loading(),
		"stocks":  items,
	})
}

func (s *Server) handleGetStock(c *gin.Context) {
	symbol := pathSymbol(c)
	stock, ok := s.store.GetStockBySymbol(symbol)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "unknown symbol", "error_code": errCodeNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stock":   stockPayloadFrom(stock),
	})
}

func (s *Server) handleStockHistory(c *gin.Context) {
	symbol := pathSymbol(c)
	series, ok := s.store.History(symbol)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "unknown symbol", "error_code": errCodeNotFound})
		return
	}
	items := make([]historyPayload, 0, len(series))
	for _, p := range series {
		items = append(items, historyPayload{Date: p.Date, Price: p.Price})
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"symbol":  symbol,
		"history": items,
	})
}

func pathSymbol(c *gin.Context) string {
	return strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
}
