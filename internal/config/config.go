package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig
	Routes []Route
	Wisp   WispConfig
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string // リッスンするホスト
	Port int    // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout  time.Duration // 読み込みタイムアウト
	WriteTimeout time.Duration // 書き込みタイムアウト
}

// Route はURLプレフィックスと配信元ディレクトリの対応
type Route struct {
	Prefix string // URLプレフィックス (例: /uv/)
	Dir    string // 配信元ディレクトリの絶対パス
}

// WispConfig はプロトコルアップグレードエンドポイントの設定
type WispConfig struct {
	Suffix string // アップグレードを受け付けるパスの末尾 (例: /wisp/)
}

// Load は設定を読み込んで検証する
// 環境変数が設定されていない項目はデフォルト値を使う
func Load() (*Config, error) {
	cfg := Default()

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default は環境変数とデフォルト値から設定を組み立てる
// 検証は行わないため、上書きを終えたらFinalizeを呼ぶこと
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsIntOrDefault("PORT", 8080),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 0, // ストリーミング用にタイムアウト無効化
		},
		Routes: []Route{
			{Prefix: "/uv/", Dir: getEnvOrDefault("UV_DIR", "uv")},
			{Prefix: "/epoxy/", Dir: getEnvOrDefault("EPOXY_DIR", "epoxy")},
			{Prefix: "/baremux/", Dir: getEnvOrDefault("BAREMUX_DIR", "baremux")},
		},
		Wisp: WispConfig{
			Suffix: getEnvOrDefault("WISP_PATH", "/wisp/"),
		},
	}
}

// SetRouteDir はプレフィックスに対応する配信元ディレクトリを差し替える
// 一致するプレフィックスがない場合は何もしない
func (c *Config) SetRouteDir(prefix, dir string) {
	for i := range c.Routes {
		if c.Routes[i].Prefix == prefix {
			c.Routes[i].Dir = dir
			return
		}
	}
}

// Finalize は配信元ディレクトリを絶対パスに変換し、設定を検証する
// ルートテーブルはここを通過した後は変更しないこと
func (c *Config) Finalize() error {
	for i := range c.Routes {
		dir, err := filepath.Abs(c.Routes[i].Dir)
		if err != nil {
			return fmt.Errorf("ディレクトリの解決に失敗: %w", err)
		}
		c.Routes[i].Dir = dir
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	// ルート設定の検証
	if len(c.Routes) == 0 {
		return fmt.Errorf("配信ルートが設定されていません")
	}
	seen := make(map[string]bool, len(c.Routes))
	for _, route := range c.Routes {
		if !strings.HasPrefix(route.Prefix, "/") || !strings.HasSuffix(route.Prefix, "/") {
			return fmt.Errorf("無効なプレフィックス: %q", route.Prefix)
		}
		if seen[route.Prefix] {
			return fmt.Errorf("プレフィックスが重複しています: %q", route.Prefix)
		}
		seen[route.Prefix] = true

		info, err := os.Stat(route.Dir)
		if err != nil {
			return fmt.Errorf("配信元ディレクトリを開けません %q: %w", route.Dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("配信元がディレクトリではありません: %q", route.Dir)
		}
	}

	// アップグレードパスの検証
	if !strings.HasPrefix(c.Wisp.Suffix, "/") {
		return fmt.Errorf("無効なアップグレードパス: %q", c.Wisp.Suffix)
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていないか
// 整数として解釈できない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}
