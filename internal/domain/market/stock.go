package market

import (
	"errors"
	"fmt"
	"math"
)

// MinPrice 為模擬報價的價格下限，避免出現非正數價格。
const MinPrice = 0.01

// Stock 描述儀表板追蹤的單一股票即時快照。
type Stock struct {
	Symbol        string
	Name          string
	Price         float64
	OpenPrice     float64
	Change        float64
	ChangePercent float64
	Volume        int64
	MarketCap     string
}

// ValidationError 收集多個驗證失敗原因。
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("stock validation failed: %v", e.Reasons)
}

// Validate 檢查欄位是否符合基本完整性條件。
func (s Stock) Validate() error {
	var reasons []string

	if s.Symbol == "" {
		reasons = append(reasons, "symbol is required")
	}
	if s.Name == "" {
		reasons = append(reasons, "name is required")
	}
	if s.Price < MinPrice {
		reasons = append(reasons, "price must be >= 0.01")
	}
	if s.OpenPrice <= 0 {
		reasons = append(reasons, "open price must be > 0")
	}
	if s.Volume < 0 {
		reasons = append(reasons, "volume must be >= 0")
	}

	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}
	return nil
}

// IsValidationError 檢查錯誤是否為股票快照的驗證錯誤。
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ApplyMove 依百分比變動回傳更新後的快照。漲跌幅以未捨入的新價計算後，
// price/change/changePercent 各自獨立捨入到小數兩位。
func (s Stock) ApplyMove(deltaPct float64) Stock {
	newPrice := s.Price + s.Price*(deltaPct/100)
	if newPrice < MinPrice {
		newPrice = MinPrice
	}
	change := newPrice - s.OpenPrice
	changePct := change / s.OpenPrice * 100

	s.Price = Round2(newPrice)
	s.Change = Round2(change)
	s.ChangePercent = Round2(changePct)
	return s
}

// Round2 四捨五入到小數兩位。
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Seed 回傳開站時的固定股票清單。
func Seed() []Stock {
	return []Stock{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: 175.43, OpenPrice: 173.5, Change: 1.93, ChangePercent: 1.11, Volume: 58234567, MarketCap: "2.75T"},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Price: 142.35, OpenPrice: 143.2, Change: -0.85, ChangePercent: -0.59, Volume: 24567890, MarketCap: "1.78T"},
		{Symbol: "MSFT", Name: "Microsoft Corporation", Price: 378.91, OpenPrice: 376.8, Change: 2.11, ChangePercent: 0.56, Volume: 32145678, MarketCap: "2.82T"},
		{Symbol: "AMZN", Name: "Amazon.com Inc.", Price: 151.23, OpenPrice: 152.1, Change: -0.87, ChangePercent: -0.57, Volume: 41234567, MarketCap: "1.56T"},
		{Symbol: "TSLA", Name: "Tesla Inc.", Price: 242.84, OpenPrice: 238.5, Change: 4.34, ChangePercent: 1.82, Volume: 98765432, MarketCap: "771B"},
		{Symbol: "NVDA", Name: "NVIDIA Corporation", Price: 495.22, OpenPrice: 492.3, Change: 2.92, ChangePercent: 0.59, Volume: 45678901, MarketCap: "1.22T"},
		{Symbol: "META", Name: "Meta Platforms Inc.", Price: 338.15, OpenPrice: 340.2, Change: -2.05, ChangePercent: -0.60, Volume: 18765432, MarketCap: "865B"},
		{Symbol: "NFLX", Name: "Netflix Inc.", Price: 445.67, OpenPrice: 443.8, Change: 1.87, ChangePercent: 0.42, Volume: 5678901, MarketCap: "192B"},
		{Symbol: "AMD", Name: "Advanced Micro Devices", Price: 119.45, OpenPrice: 121.2, Change: -1.75, ChangePercent: -1.44, Volume: 67890123, MarketCap: "193B"},
		{Symbol: "INTC", Name: "Intel Corporation", Price: 43.21, OpenPrice: 42.9, Change: 0.31, ChangePercent: 0.72, Volume: 34567890, MarketCap: "182B"},
	}
}
