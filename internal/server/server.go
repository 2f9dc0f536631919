package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"kagemusha/internal/config"
	"kagemusha/internal/static"
	"kagemusha/internal/tunnel"

	"github.com/gin-gonic/gin"
)

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	engine     *gin.Engine
	httpServer *http.Server
	router     *static.Router
	tunnel     tunnel.Handler

	mu        sync.Mutex
	boundAddr net.Addr

	shutdownOnce sync.Once
}

// New は新しいServerインスタンスを作成する
// tunnelHandlerにはアップグレード要求を引き受ける外部実装を渡す
func New(cfg *config.Config, tunnelHandler tunnel.Handler) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	rules := make([]static.Rule, 0, len(cfg.Routes))
	for _, route := range cfg.Routes {
		rules = append(rules, static.Rule{Prefix: route.Prefix, Root: route.Dir})
	}

	s := &Server{
		config: cfg,
		engine: engine,
		router: static.NewRouter(rules, static.NewFileResponder(nil)),
		tunnel: tunnelHandler,
		httpServer: &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	s.setupRoutes()
	return s
}

// setupRoutes はミドルウェアとルートを設定する
func (s *Server) setupRoutes() {
	s.engine.Use(s.requestLogger())
	s.engine.Use(s.upgradeDispatcher())
	s.engine.Use(s.isolationHeaders())

	// 全パスをプレフィックスルーターに委譲する
	// メソッドはルーティングに影響しない
	s.engine.NoRoute(func(c *gin.Context) {
		s.router.Route(c.Writer, c.Request.URL.Path)

		// ステータスをここで確定させる。確定させないとginが
		// 既定の404ボディを書き足し、空ボディの契約が崩れる
		c.Writer.WriteHeaderNow()
	})
}

// Start はサーバーを起動する
// バインドに失敗した場合はシグナル待ちに入らず即座にエラーを返す
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.ServerAddress())
	if err != nil {
		return fmt.Errorf("リッスンに失敗: %w", err)
	}

	s.mu.Lock()
	s.boundAddr = listener.Addr()
	s.mu.Unlock()

	log.Printf("HTTPサーバーを起動しています: %s", listenURL(listener.Addr()))

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			shutdownCh <- fmt.Errorf("サーバーの起動に失敗: %w", err)
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	case err := <-shutdownCh:
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Addr は実際にバインドされたアドレスを返す
// Startがリッスンを開始する前はnilを返す
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundAddr
}

// Shutdown はサーバーをグレースフルにシャットダウンする
// 複数回呼ばれても実際のシャットダウンは1回だけ実行される
func (s *Server) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		log.Println("サーバーをシャットダウンしています...")

		// 5秒のタイムアウトを設定
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if e := s.httpServer.Shutdown(ctx); e != nil {
			err = fmt.Errorf("サーバーのシャットダウンに失敗: %w", e)
			return
		}

		log.Println("サーバーが正常にシャットダウンされました")
	})
	return err
}

// listenURL はバインドされたアドレスをURL形式に整形する
// IPv6アドレスは角括弧付きで整形される
func listenURL(addr net.Addr) string {
	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		return "http://" + net.JoinHostPort(tcpAddr.IP.String(), strconv.Itoa(tcpAddr.Port))
	}
	return "http://" + addr.String()
}
