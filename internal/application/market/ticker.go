package market

import (
	"context"
	"log"
	"math/rand"
	"time"

	"stock-watch/internal/domain/market"
)

// DefaultTickInterval 為模擬報價的預設週期。
const DefaultTickInterval = 3 * time.Second

// DefaultMaxMovePercent 為單次跳動的漲跌幅上限（±2%）。
const DefaultMaxMovePercent = 2.0

// TickDriver 以固定週期驅動模擬報價：每輪對所有股票套用隨機漲跌，
// 進而觸發警示評估與串流廣播。以 context 取消停止。
type TickDriver struct {
	store    *Store
	interval time.Duration
	maxMove  float64
	rng      *rand.Rand
	onTick   func(ctx context.Context, stocks []market.Stock)
}

// NewTickDriver 建立報價驅動器。interval/maxMove 為零值時使用預設值。
// onTick 於每輪更新後以最新快照呼叫，可為 nil。
func NewTickDriver(store *Store, interval time.Duration, maxMove float64, onTick func(ctx context.Context, stocks []market.Stock)) *TickDriver {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if maxMove <= 0 {
		maxMove = DefaultMaxMovePercent
	}
	return &TickDriver{
		store:    store,
		interval: interval,
		maxMove:  maxMove,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		onTick:   onTick,
	}
}

// Start 啟動背景報價迴圈，直到 ctx 取消為止。
func (d *TickDriver) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		log.Printf("[Feed] tick driver started (interval=%s)", d.interval)
		for {
			select {
			case <-ctx.Done():
				log.Printf("[Feed] tick driver stopped: %v", ctx.Err())
				return
			case <-ticker.C:
				d.Tick(ctx)
			}
		}
	}()
}

// Tick 執行單輪更新；測試與啟動流程可直接呼叫。
func (d *TickDriver) Tick(ctx context.Context) {
	stocks := d.store.ApplyTick(ctx, func(market.Stock) float64 {
		// 均勻分布於 [-maxMove, +maxMove]。
		return (d.rng.Float64() - 0.5) * 2 * d.maxMove
	})
	if d.onTick != nil {
		d.onTick(ctx, stocks)
	}
}
