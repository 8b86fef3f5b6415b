package notify

import (
	"context"
	"fmt"
	"log"

	appMarket "stock-watch/internal/application/market"
)

// TelegramNotifier 把 toast 訊息轉送到 Telegram，作為平台通知的出口。
// 傳送失敗只記 log，不回傳錯誤（盡力而為）。
type TelegramNotifier struct {
	client *TelegramClient
}

// NewTelegramNotifier 建立 Telegram 通知出口。
func NewTelegramNotifier(client *TelegramClient) *TelegramNotifier {
	return &TelegramNotifier{client: client}
}

// Notify 實作 market.Notifier。
func (t *TelegramNotifier) Notify(ctx context.Context, n appMarket.Notification) {
	text := fmt.Sprintf("%s\n%s", n.Title, n.Description)
	if err := t.client.SendMessage(ctx, text); err != nil {
		log.Printf("[Notify] telegram send failed: %v", err)
	}
}

// MultiNotifier 依序呼叫多個通知出口。
type MultiNotifier []appMarket.Notifier

// Notify 實作 market.Notifier。
func (m MultiNotifier) Notify(ctx context.Context, n appMarket.Notification) {
	for _, target := range m {
		if target == nil {
			continue
		}
		target.Notify(ctx, n)
	}
}
