package alert

import (
	"errors"
	"fmt"

	"stock-watch/internal/domain/market"
)

// Direction 列舉警示方向。
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

// Valid 檢查方向值是否受支援。
func (d Direction) Valid() bool {
	return d == DirectionAbove || d == DirectionBelow
}

// Alert 為使用者設定的價格警示規則。Triggered 在工作階段內只會由 false 翻成 true，
// 除非使用者刪除或重設，不會自動解除。
type Alert struct {
	ID        string
	Symbol    string
	Direction Direction
	Threshold float64
	Triggered bool
}

// ValidationError 收集多個驗證失敗原因。
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("alert validation failed: %v", e.Reasons)
}

// Validate 檢查欄位是否符合基本完整性條件。
func (a Alert) Validate() error {
	var reasons []string

	if a.Symbol == "" {
		reasons = append(reasons, "symbol is required")
	}
	if !a.Direction.Valid() {
		reasons = append(reasons, "direction must be above or below")
	}
	if a.Threshold <= 0 {
		reasons = append(reasons, "threshold must be > 0")
	}

	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}
	return nil
}

// IsValidationError 檢查錯誤是否為警示的驗證錯誤。
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ShouldTrigger 判斷目前價格是否落在警示條件內。
func (a Alert) ShouldTrigger(price float64) bool {
	switch a.Direction {
	case DirectionAbove:
		return price >= a.Threshold
	case DirectionBelow:
		return price <= a.Threshold
	default:
		return false
	}
}

// Crossed 判斷股票快照是否使警示由未觸發轉為觸發。
func (a Alert) Crossed(stock market.Stock) bool {
	return !a.Triggered && a.ShouldTrigger(stock.Price)
}
