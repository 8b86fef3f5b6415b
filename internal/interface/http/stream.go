package httpapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	appMarket "stock-watch/internal/application/market"
	"stock-watch/internal/domain/market"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type wsClient struct {
	conn *websocket.Conn
	out  chan any
	done chan struct{}
}

type tickFrame struct {
	Type   string         `json:"type"` // "tick"
	Stocks []stockPayload `json:"stocks"`
}

type toastFrame struct {
	Type        string `json:"type"` // "toast"
	Level       string `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TSUnix      int64  `json:"ts_unix"` // ms
}

// hub 管理 websocket 連線：廣播報價與 toast，並為新連線重播近期 toast。
type hub struct {
	mu      sync.RWMutex
	clients map[*wsClient]struct{}
	recent  []toastFrame
	limit   int
}

func newHub(limit int) *hub {
	return &hub{
		clients: make(map[*wsClient]struct{}),
		recent:  make([]toastFrame, 0, limit),
		limit:   limit,
	}
}

func (h *hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Notify 實作 market.Notifier：把 toast 廣播給所有連線並留存於重播緩衝。
func (h *hub) Notify(ctx context.Context, n appMarket.Notification) {
	frame := toastFrame{
		Type:        "toast",
		Level:       n.Level,
		Title:       n.Title,
		Description: n.Description,
		TSUnix:      time.Now().UnixMilli(),
	}
	h.mu.Lock()
	h.recent = append(h.recent, frame)
	if h.limit > 0 && len(h.recent) > h.limit {
		h.recent = h.recent[len(h.recent)-h.limit:]
	}
	h.mu.Unlock()

	h.broadcast(frame)
}

// BroadcastTick 把最新股票快照推給所有連線。
func (h *hub) BroadcastTick(ctx context.Context, stocks []market.Stock) {
	items := make([]stockPayload, 0, len(stocks))
	for _, s := range stocks {
		items = append(items, stockPayloadFrom(s))
	}
	h.broadcast(tickFrame{Type: "tick", Stocks: items})
}

func (h *hub) broadcast(v any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.clients {
		select {
		case cl.out <- v:
		default:
			// 慢速消費者直接丟幀，不阻塞報價迴圈。
		}
	}
}

func (h *hub) replayFrames() []toastFrame {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]toastFrame, len(h.recent))
	copy(out, h.recent)
	return out
}

func (h *hub) serveWS(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	cl := &wsClient{conn: conn, out: make(chan any, 256), done: make(chan struct{})}
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()

	// 重播近期 toast，讓新連線補上錯過的通知。
	for _, frame := range h.replayFrames() {
		select {
		case cl.out <- frame:
		default:
		}
	}

	// writer
	go func() {
		ping := time.NewTicker(45 * time.Second)
		defer ping.Stop()
		for {
			select {
			case <-cl.done:
				return
			case v := <-cl.out:
				if err := conn.WriteJSON(v); err != nil {
					return
				}
			case <-ping.C:
				_ = conn.WriteMessage(websocket.PingMessage, nil)
			}
		}
	}()

	// reader：僅用於偵測斷線，收到的訊息一律忽略。
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	close(cl.done)
	h.mu.Lock()
	delete(h.clients, cl)
	h.mu.Unlock()
}
