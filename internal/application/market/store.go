package market

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	appAlert "stock-watch/internal/application/alert"
	alertDomain "stock-watch/internal/domain/alert"
	"stock-watch/internal/domain/market"
)

// Notification 對應送往前端的 toast 訊息。
type Notification struct {
	Level       string // success | info | error
	Title       string
	Description string
}

// Notifier 為「盡力而為」的通知出口，不保證送達。
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// AlertUpdate 為部分更新警示的輸入；nil 欄位表示不變更。
// Triggered 只能由使用者明確重設，評估器不會經由這裡寫入。
type AlertUpdate struct {
	Symbol    *string
	Direction *alertDomain.Direction
	Threshold *float64
	Triggered *bool
}

// Store 持有單一工作階段的全部看盤狀態：股票清單、自選清單、警示與歷史序列。
// 讀取一律回傳複本，寫入一律整份替換，由內部互斥鎖保護。
type Store struct {
	mu        sync.RWMutex
	stocks    []market.Stock
	watchlist []string
	alerts    []alertDomain.Alert
	history   map[string][]market.HistoricalPoint
	readyAt   time.Time

	notifier Notifier
	now      func() time.Time
	newID    func() string
}

// NewStore 以種子資料建立 Store：固定股票清單、預設自選（AAPL/GOOGL/MSFT）、
// 兩筆預設警示，以及各股票的合成歷史序列。warmup 期間 Loading 回報 true，
// 模擬初始載入。
func NewStore(notifier Notifier, warmup time.Duration) *Store {
	s := &Store{
		stocks:    market.Seed(),
		watchlist: []string{"AAPL", "GOOGL", "MSFT"},
		history:   make(map[string][]market.HistoricalPoint),
		notifier:  notifier,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	s.alerts = []alertDomain.Alert{
		{ID: s.newID(), Symbol: "AAPL", Direction: alertDomain.DirectionAbove, Threshold: 180},
		{ID: s.newID(), Symbol: "GOOGL", Direction: alertDomain.DirectionBelow, Threshold: 140},
	}

	now := s.now()
	rng := rand.New(rand.NewSource(now.UnixNano()))
	for _, st := range s.stocks {
		s.history[st.Symbol] = market.GenerateHistory(st.Symbol, st.Price, now, rng)
	}
	s.readyAt = now.Add(warmup)
	return s
}

// Loading 回報初始載入是否仍在進行。
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now().Before(s.readyAt)
}

// Stocks 回傳目前股票清單的複本。
func (s *Store) Stocks() []market.Stock {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]market.Stock, len(s.stocks))
	copy(out, s.stocks)
	return out
}

// GetStockBySymbol 以線性掃描查詢股票；清單規模固定且極小。
func (s *Store) GetStockBySymbol(symbol string) (market.Stock, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.stocks {
		if st.Symbol == symbol {
			return st, true
		}
	}
	return market.Stock{}, false
}

// History 回傳指定股票的歷史序列複本。序列在啟動時產生一次，之後的報價
// 跳動不會回寫，圖表與即時價允許逐漸分歧。
func (s *Store) History(symbol string) ([]market.HistoricalPoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	series, ok := s.history[symbol]
	if !ok {
		return nil, false
	}
	out := make([]market.HistoricalPoint, len(series))
	copy(out, series)
	return out, true
}

// Watchlist 回傳自選清單複本，保留加入順序。
func (s *Store) Watchlist() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.watchlist))
	copy(out, s.watchlist)
	return out
}

// AddToWatchlist 將股票加入自選清單；已存在時為冪等 no-op。
func (s *Store) AddToWatchlist(ctx context.Context, symbol string) {
	s.mu.Lock()
	for _, w := range s.watchlist {
		if w == symbol {
			s.mu.Unlock()
			return
		}
	}
	next := make([]string, 0, len(s.watchlist)+1)
	next = append(next, s.watchlist...)
	next = append(next, symbol)
	s.watchlist = next
	s.mu.Unlock()

	s.notify(ctx, Notification{
		Level:       "success",
		Title:       "Added to Watchlist",
		Description: fmt.Sprintf("%s has been added to your watchlist", symbol),
	})
}

// RemoveFromWatchlist 將股票自自選清單移除；不存在時為 no-op。
func (s *Store) RemoveFromWatchlist(ctx context.Context, symbol string) {
	s.mu.Lock()
	next := make([]string, 0, len(s.watchlist))
	removed := false
	for _, w := range s.watchlist {
		if w == symbol {
			removed = true
			continue
		}
		next = append(next, w)
	}
	s.watchlist = next
	s.mu.Unlock()

	if !removed {
		return
	}
	s.notify(ctx, Notification{
		Level:       "info",
		Title:       "Removed from Watchlist",
		Description: fmt.Sprintf("%s has been removed from your watchlist", symbol),
	})
}

// Alerts 回傳警示清單複本。
func (s *Store) Alerts() []alertDomain.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]alertDomain.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// AddAlert 建立新警示並配發識別碼；輸入不合法時靜默忽略（呼叫端負責驗證）。
func (s *Store) AddAlert(ctx context.Context, symbol string, direction alertDomain.Direction, threshold float64) (alertDomain.Alert, bool) {
	a := alertDomain.Alert{
		ID:        s.newID(),
		Symbol:    symbol,
		Direction: direction,
		Threshold: threshold,
	}
	if err := a.Validate(); err != nil {
		return alertDomain.Alert{}, false
	}

	s.mu.Lock()
	next := make([]alertDomain.Alert, 0, len(s.alerts)+1)
	next = append(next, s.alerts...)
	next = append(next, a)
	s.alerts = next
	s.mu.Unlock()

	s.notify(ctx, Notification{
		Level:       "success",
		Title:       "Alert Created",
		Description: fmt.Sprintf("You'll be notified when %s goes %s $%v", a.Symbol, a.Direction, a.Threshold),
	})
	return a, true
}

// UpdateAlert 合併提供的欄位到既有警示；id 不存在時為 no-op。
func (s *Store) UpdateAlert(ctx context.Context, id string, update AlertUpdate) (alertDomain.Alert, bool) {
	s.mu.Lock()
	var updated alertDomain.Alert
	found := false
	next := make([]alertDomain.Alert, len(s.alerts))
	for i, a := range s.alerts {
		if a.ID == id {
			if update.Symbol != nil {
				a.Symbol = *update.Symbol
			}
			if update.Direction != nil {
				a.Direction = *update.Direction
			}
			if update.Threshold != nil {
				a.Threshold = *update.Threshold
			}
			if update.Triggered != nil {
				a.Triggered = *update.Triggered
			}
			updated = a
			found = true
		}
		next[i] = a
	}
	s.alerts = next
	s.mu.Unlock()

	if !found {
		return alertDomain.Alert{}, false
	}
	s.notify(ctx, Notification{
		Level:       "success",
		Title:       "Alert Updated",
		Description: "Your alert has been updated successfully",
	})
	return updated, true
}

// DeleteAlert 刪除指定警示；id 不存在時清單保持不變。
func (s *Store) DeleteAlert(ctx context.Context, id string) bool {
	s.mu.Lock()
	next := make([]alertDomain.Alert, 0, len(s.alerts))
	removed := false
	for _, a := range s.alerts {
		if a.ID == id {
			removed = true
			continue
		}
		next = append(next, a)
	}
	s.alerts = next
	s.mu.Unlock()

	if !removed {
		return false
	}
	s.notify(ctx, Notification{
		Level:       "info",
		Title:       "Alert Deleted",
		Description: "Your alert has been removed",
	})
	return true
}

// ApplyTick 對每檔股票套用一次價格跳動，替換整份清單後同步重新評估警示。
// deltaFor 回傳該股票本輪的漲跌百分比。回傳更新後的股票快照供串流廣播。
func (s *Store) ApplyTick(ctx context.Context, deltaFor func(market.Stock) float64) []market.Stock {
	s.mu.Lock()
	next := make([]market.Stock, len(s.stocks))
	for i, st := range s.stocks {
		next[i] = st.ApplyMove(deltaFor(st))
	}
	s.stocks = next

	alerts, triggers := appAlert.Evaluate(next, s.alerts)
	s.alerts = alerts

	out := make([]market.Stock, len(next))
	copy(out, next)
	s.mu.Unlock()

	for _, tr := range triggers {
		s.notify(ctx, Notification{
			Level:       "success",
			Title:       fmt.Sprintf("Alert Triggered: %s", tr.Alert.Symbol),
			Description: fmt.Sprintf("Price %s $%v. Current: $%v", tr.Alert.Direction, tr.Alert.Threshold, tr.Price),
		})
	}
	return out
}

func (s *Store) notify(ctx context.Context, n Notification) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, n)
}
