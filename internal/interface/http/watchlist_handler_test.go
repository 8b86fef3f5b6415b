package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"
)

func decodeWatchlist(t *testing.T, body []byte) []string {
	t.Helper()
	var resp struct {
		Watchlist []string `json:"watchlist"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Watchlist
}

func TestWatchlistHandler(t *testing.T) {
	server := newTestServer(t)
	token := loginToken(t, server)

	t.Run("Defaults", func(t *testing.T) {
		w := authedRequest(t, server, "GET", "/api/watchlist", nil, token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		wl := decodeWatchlist(t, w.Body.Bytes())
		want := []string{"AAPL", "GOOGL", "MSFT"}
		if len(wl) != 3 || wl[0] != want[0] || wl[1] != want[1] || wl[2] != want[2] {
			t.Errorf("expected %v, got %v", want, wl)
		}
	})

	t.Run("Add", func(t *testing.T) {
		// 小寫輸入正規化成大寫
		w := authedRequest(t, server, "POST", "/api/watchlist", []byte(`{"symbol":"nflx"}`), token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d. body: %s", w.Code, w.Body.String())
		}
		wl := decodeWatchlist(t, w.Body.Bytes())
		if wl[len(wl)-1] != "NFLX" {
			t.Errorf("expected NFLX appended, got %v", wl)
		}
	})

	t.Run("AddDuplicate", func(t *testing.T) {
		w := authedRequest(t, server, "POST", "/api/watchlist", []byte(`{"symbol":"NFLX"}`), token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 for duplicate, got %d", w.Code)
		}
		wl := decodeWatchlist(t, w.Body.Bytes())
		count := 0
		for _, sym := range wl {
			if sym == "NFLX" {
				count++
			}
		}
		if count != 1 {
			t.Errorf("expected NFLX once, got %v", wl)
		}
	})

	t.Run("AddEmptySymbol", func(t *testing.T) {
		w := authedRequest(t, server, "POST", "/api/watchlist", []byte(`{"symbol":" "}`), token)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("Remove", func(t *testing.T) {
		w := authedRequest(t, server, "DELETE", "/api/watchlist/NFLX", nil, token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		for _, sym := range decodeWatchlist(t, w.Body.Bytes()) {
			if sym == "NFLX" {
				t.Error("expected NFLX removed")
			}
		}
	})

	t.Run("RemoveAbsent", func(t *testing.T) {
		w := authedRequest(t, server, "DELETE", "/api/watchlist/NFLX", nil, token)
		if w.Code != http.StatusOK {
			t.Errorf("expected 200 for absent symbol, got %d", w.Code)
		}
	})
}
