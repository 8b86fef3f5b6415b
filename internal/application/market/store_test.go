package market

import (
	"context"
	"strings"
	"testing"
	"time"

	alertDomain "stock-watch/internal/domain/alert"
	"stock-watch/internal/domain/market"
)

type captureNotifier struct {
	notes []Notification
}

func (c *captureNotifier) Notify(ctx context.Context, n Notification) {
	c.notes = append(c.notes, n)
}

func (c *captureNotifier) titled(title string) int {
	count := 0
	for _, n := range c.notes {
		if n.Title == title {
			count++
		}
	}
	return count
}

func TestNewStore_Seed(t *testing.T) {
	s := NewStore(nil, 0)

	if got := len(s.Stocks()); got != 10 {
		t.Fatalf("expected 10 stocks, got %d", got)
	}

	wl := s.Watchlist()
	want := []string{"AAPL", "GOOGL", "MSFT"}
	if len(wl) != len(want) {
		t.Fatalf("expected watchlist %v, got %v", want, wl)
	}
	for i := range want {
		if wl[i] != want[i] {
			t.Errorf("watchlist[%d] = %s, want %s", i, wl[i], want[i])
		}
	}

	alerts := s.Alerts()
	if len(alerts) != 2 {
		t.Fatalf("expected 2 default alerts, got %d", len(alerts))
	}
	if alerts[0].Symbol != "AAPL" || alerts[0].Direction != alertDomain.DirectionAbove || alerts[0].Threshold != 180 {
		t.Errorf("unexpected default alert: %+v", alerts[0])
	}
	if alerts[1].Symbol != "GOOGL" || alerts[1].Direction != alertDomain.DirectionBelow || alerts[1].Threshold != 140 {
		t.Errorf("unexpected default alert: %+v", alerts[1])
	}
	if alerts[0].ID == "" || alerts[1].ID == "" || alerts[0].ID == alerts[1].ID {
		t.Error("expected distinct non-empty alert ids")
	}

	for _, st := range s.Stocks() {
		series, ok := s.History(st.Symbol)
		if !ok {
			t.Fatalf("missing history for %s", st.Symbol)
		}
		if len(series) != market.HistoryDays+1 {
			t.Errorf("expected %d history points for %s, got %d", market.HistoryDays+1, st.Symbol, len(series))
		}
		if series[len(series)-1].Price != st.Price {
			t.Errorf("history for %s does not end at current price", st.Symbol)
		}
	}
}

func TestStore_Loading(t *testing.T) {
	warm := NewStore(nil, time.Hour)
	if !warm.Loading() {
		t.Error("expected loading during warmup")
	}

	ready := NewStore(nil, 0)
	if ready.Loading() {
		t.Error("expected not loading with zero warmup")
	}
}

func TestStore_GetStockBySymbol(t *testing.T) {
	s := NewStore(nil, 0)

	st, ok := s.GetStockBySymbol("TSLA")
	if !ok || st.Name != "Tesla Inc." {
		t.Errorf("expected Tesla, got %+v ok=%v", st, ok)
	}

	if _, ok := s.GetStockBySymbol("NOPE"); ok {
		t.Error("expected miss for unknown symbol")
	}
}

func TestStore_Watchlist(t *testing.T) {
	ctx := context.Background()

	t.Run("AddIdempotent", func(t *testing.T) {
		notes := &captureNotifier{}
		s := NewStore(notes, 0)

		s.AddToWatchlist(ctx, "NFLX")
		s.AddToWatchlist(ctx, "NFLX")

		wl := s.Watchlist()
		count := 0
		for _, sym := range wl {
			if sym == "NFLX" {
				count++
			}
		}
		if count != 1 {
			t.Errorf("expected NFLX once, got %d in %v", count, wl)
		}
		if got := notes.titled("Added to Watchlist"); got != 1 {
			t.Errorf("expected 1 add notification, got %d", got)
		}
	})

	t.Run("Remove", func(t *testing.T) {
		notes := &captureNotifier{}
		s := NewStore(notes, 0)

		s.RemoveFromWatchlist(ctx, "AAPL")
		for _, sym := range s.Watchlist() {
			if sym == "AAPL" {
				t.Error("expected AAPL removed")
			}
		}
		if got := notes.titled("Removed from Watchlist"); got != 1 {
			t.Errorf("expected 1 remove notification, got %d", got)
		}

		// 不存在時為 no-op，不再通知
		s.RemoveFromWatchlist(ctx, "AAPL")
		if got := notes.titled("Removed from Watchlist"); got != 1 {
			t.Errorf("expected no extra notification, got %d", got)
		}
	})
}

func TestStore_Alerts(t *testing.T) {
	ctx := context.Background()

	t.Run("Add", func(t *testing.T) {
		notes := &captureNotifier{}
		s := NewStore(notes, 0)

		a, ok := s.AddAlert(ctx, "TSLA", alertDomain.DirectionAbove, 250)
		if !ok {
			t.Fatal("expected alert created")
		}
		if a.ID == "" || a.Symbol != "TSLA" || a.Triggered {
			t.Errorf("unexpected alert %+v", a)
		}
		if len(s.Alerts()) != 3 {
			t.Errorf("expected 3 alerts, got %d", len(s.Alerts()))
		}
		if got := notes.titled("Alert Created"); got != 1 {
			t.Errorf("expected 1 create notification, got %d", got)
		}
	})

	t.Run("AddInvalid", func(t *testing.T) {
		notes := &captureNotifier{}
		s := NewStore(notes, 0)

		if _, ok := s.AddAlert(ctx, "TSLA", alertDomain.DirectionAbove, -5); ok {
			t.Fatal("expected invalid alert rejected")
		}
		if len(s.Alerts()) != 2 {
			t.Errorf("expected list unchanged, got %d", len(s.Alerts()))
		}
		if len(notes.notes) != 0 {
			t.Errorf("expected no notification, got %v", notes.notes)
		}
	})

	t.Run("Update", func(t *testing.T) {
		s := NewStore(nil, 0)
		id := s.Alerts()[0].ID

		threshold := 200.0
		a, ok := s.UpdateAlert(ctx, id, AlertUpdate{Threshold: &threshold})
		if !ok || a.Threshold != 200 {
			t.Fatalf("expected threshold updated, got %+v ok=%v", a, ok)
		}
		// 其他欄位不變
		if a.Symbol != "AAPL" || a.Direction != alertDomain.DirectionAbove {
			t.Errorf("unexpected merge result %+v", a)
		}

		if _, ok := s.UpdateAlert(ctx, "missing-id", AlertUpdate{Threshold: &threshold}); ok {
			t.Error("expected miss for unknown id")
		}
	})

	t.Run("ResetTriggered", func(t *testing.T) {
		s := NewStore(nil, 0)
		id := s.Alerts()[0].ID

		f := false
		tr := true
		if _, ok := s.UpdateAlert(ctx, id, AlertUpdate{Triggered: &tr}); !ok {
			t.Fatal("expected update ok")
		}
		a, _ := s.UpdateAlert(ctx, id, AlertUpdate{Triggered: &f})
		if a.Triggered {
			t.Error("expected triggered reset to false")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		s := NewStore(nil, 0)
		id := s.Alerts()[0].ID

		if !s.DeleteAlert(ctx, id) {
			t.Fatal("expected delete ok")
		}
		if len(s.Alerts()) != 1 {
			t.Errorf("expected 1 alert left, got %d", len(s.Alerts()))
		}
		if s.DeleteAlert(ctx, id) {
			t.Error("expected second delete to miss")
		}
	})
}

func TestStore_ApplyTick(t *testing.T) {
	ctx := context.Background()
	notes := &captureNotifier{}
	s := NewStore(notes, 0)

	before := s.Stocks()
	updated := s.ApplyTick(ctx, func(market.Stock) float64 { return 10 })

	if len(updated) != len(before) {
		t.Fatalf("expected %d stocks, got %d", len(before), len(updated))
	}
	for i, st := range updated {
		want := before[i].ApplyMove(10)
		if st.Price != want.Price || st.Change != want.Change {
			t.Errorf("%s: expected %+v, got %+v", st.Symbol, want, st)
		}
	}

	// AAPL 預設警示（above 180）在 +10% 後觸發；GOOGL（below 140）不會。
	triggered := 0
	for _, n := range notes.notes {
		if strings.HasPrefix(n.Title, "Alert Triggered:") {
			triggered++
			if n.Title != "Alert Triggered: AAPL" {
				t.Errorf("unexpected trigger %q", n.Title)
			}
		}
	}
	if triggered != 1 {
		t.Fatalf("expected 1 trigger notification, got %d", triggered)
	}

	// 已觸發的警示不會在下一輪重複通知
	s.ApplyTick(ctx, func(market.Stock) float64 { return 10 })
	again := 0
	for _, n := range notes.notes {
		if strings.HasPrefix(n.Title, "Alert Triggered:") {
			again++
		}
	}
	if again != 1 {
		t.Errorf("expected latch to suppress retrigger, got %d notifications", again)
	}
}
