package httpapi

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appAuth "stock-watch/internal/application/auth"
	appMarket "stock-watch/internal/application/market"
	authinfra "stock-watch/internal/infrastructure/auth"
	"stock-watch/internal/infrastructure/config"
	"stock-watch/internal/infrastructure/notify"
	"stock-watch/internal/infra/memory"
	"stock-watch/internal/infrastructure/persistence/postgres"
)

const (
	errCodeBadRequest         = "BAD_REQUEST"
	errCodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	errCodeInvalidInput       = "AUTH_INVALID_INPUT"
	errCodeUnauthorized       = "AUTH_UNAUTHORIZED"
	errCodeNotFound           = "NOT_FOUND"
	errCodeInternal           = "INTERNAL_ERROR"
)

// Server 封裝 HTTP 路由與依賴。
type Server struct {
	engine   *gin.Engine
	store    *appMarket.Store
	feed     *appMarket.TickDriver
	authSvc  *appAuth.Service
	tokenSvc *authinfra.JWTIssuer
	hub      *hub
	db       *sql.DB
	tokenTTL time.Duration
}

// NewServer 建立 API 伺服器。預設使用記憶體儲存；提供 db 時，
// 登入狀態與註冊帳號改落到 PostgreSQL。
func NewServer(cfg config.Config, db *sql.DB) *Server {
	var (
		vault appAuth.Vault
		users appAuth.UserRepository
	)
	if db != nil {
		vault = postgres.NewVaultRepo(db)
		users = postgres.NewUserRepo(db)
	} else {
		mem := memory.NewStore()
		vault = mem
		users = mem
	}

	ttl := cfg.Auth.TokenTTL
	if ttl == 0 {
		ttl = 30 * time.Minute
	}
	tokenSvc := authinfra.NewJWTIssuer(cfg.Auth.Secret, ttl)
	authSvc := appAuth.NewService(users, vault, authinfra.BcryptHasher{}, tokenSvc, cfg.Auth.LoginDelay)

	h := newHub(50)
	var notifier appMarket.Notifier = h
	if tg := cfg.Notifier.Telegram; tg.Enabled && tg.Token != "" && tg.ChatID != 0 {
		notifier = notify.MultiNotifier{h, notify.NewTelegramNotifier(notify.NewTelegramClient(tg.Token, tg.ChatID))}
	}

	store := appMarket.NewStore(notifier, cfg.Feed.Warmup)
	feed := appMarket.NewTickDriver(store, cfg.Feed.Interval, cfg.Feed.MaxMovePercent, h.BroadcastTick)

	s := &Server{
		store:    store,
		feed:     feed,
		authSvc:  authSvc,
		tokenSvc: tokenSvc,
		hub:      h,
		db:       db,
		tokenTTL: ttl,
	}
	s.registerRoutes()
	return s
}

// Handler 回傳路由處理器，供 HTTP server 掛載。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Store 主要用於測試注入/檢視狀態。
func (s *Server) Store() *appMarket.Store {
	return s.store
}

// Feed 回傳報價驅動器；由 main 以可取消的 context 啟動。
func (s *Server) Feed() *appMarket.TickDriver {
	return s.feed
}

func (s *Server) registerRoutes() {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(s.ginLogger(), gin.Recovery(), corsMiddleware())

	engine.GET("/api/ping", s.handlePing)
	engine.GET("/api/health", s.handleHealth)

	engine.POST("/api/auth/login", s.handleLogin)
	engine.POST("/api/auth/signup", s.handleSignup)
	engine.GET("/api/auth/session", s.handleSession)
	engine.POST("/api/auth/logout", s.requireAuth(), s.handleLogout)

	api := engine.Group("/api", s.requireAuth())
	{
		api.GET("/stocks", s.handleListStocks)
		api.GET("/stocks/:symbol", s.handleGetStock)
		api.GET("/stocks/:symbol/history", s.handleStockHistory)

		api.GET("/watchlist", s.handleGetWatchlist)
		api.POST("/watchlist", s.handleAddWatchlist)
		api.DELETE("/watchlist/:symbol", s.handleRemoveWatchlist)

		api.GET("/alerts", s.handleListAlerts)
		api.POST("/alerts", s.handleCreateAlert)
		api.PATCH("/alerts/:id", s.handleUpdateAlert)
		api.DELETE("/alerts/:id", s.handleDeleteAlert)
	}

	engine.GET("/ws", s.hub.serveWS)

	// 前端操作介面
	engine.NoRoute(gin.WrapH(http.FileServer(http.Dir("web"))))

	s.engine = engine
}
