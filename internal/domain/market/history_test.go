package market

import (
	"math/rand"
	"testing"
	"time"
)

func TestGenerateHistory(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(42))
	current := 175.43

	points := GenerateHistory("AAPL", current, now, rng)

	if len(points) != HistoryDays+1 {
		t.Fatalf("expected %d points, got %d", HistoryDays+1, len(points))
	}
	if points[0].Date != "2024-02-14" {
		t.Errorf("expected first date 2024-02-14, got %s", points[0].Date)
	}
	if last := points[len(points)-1]; last.Date != "2024-03-15" || last.Price != current {
		t.Errorf("expected final point (2024-03-15, %v), got (%s, %v)", current, last.Date, last.Price)
	}

	// dates strictly ascending, one per day
	for i := 1; i < len(points); i++ {
		prev, _ := time.Parse("2006-01-02", points[i-1].Date)
		cur, _ := time.Parse("2006-01-02", points[i].Date)
		if cur.Sub(prev) != 24*time.Hour {
			t.Fatalf("dates not consecutive at %d: %s -> %s", i, points[i-1].Date, points[i].Date)
		}
	}

	// clamp floor (allow 1 cent of rounding slack)
	floor := current*historyClampFloor - 0.01
	for _, p := range points {
		if p.Price < floor {
			t.Errorf("point %s below floor: %v", p.Date, p.Price)
		}
	}
}

func TestGenerateHistory_Deterministic(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	a := GenerateHistory("MSFT", 378.91, now, rand.New(rand.NewSource(7)))
	b := GenerateHistory("MSFT", 378.91, now, rand.New(rand.NewSource(7)))

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("series diverge at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}
