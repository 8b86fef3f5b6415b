package alert

import (
	alertDomain "stock-watch/internal/domain/alert"
	"stock-watch/internal/domain/market"
)

// Trigger 描述單次警示跨越事件，帶出觸發當下的價格。
type Trigger struct {
	Alert alertDomain.Alert
	Price float64
}

// Evaluate 依清單順序對最新股價重新評估所有警示。
// 只在條件首次成立時把 Triggered 由 false 翻成 true（邊緣觸發），
// 條件之後不成立也不會自動解除；查無對應股票的警示保持原狀。
// 回傳更新後的警示清單與本輪新觸發的事件。
func Evaluate(stocks []market.Stock, alerts []alertDomain.Alert) ([]alertDomain.Alert, []Trigger) {
	bySymbol := make(map[string]market.Stock, len(stocks))
	for _, s := range stocks {
		bySymbol[s.Symbol] = s
	}

	out := make([]alertDomain.Alert, len(alerts))
	var triggers []Trigger
	for i, a := range alerts {
		stock, ok := bySymbol[a.Symbol]
		if ok && a.Crossed(stock) {
			a.Triggered = true
			triggers = append(triggers, Trigger{Alert: a, Price: stock.Price})
		}
		out[i] = a
	}
	return out, triggers
}
