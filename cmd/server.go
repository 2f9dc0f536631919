// Package main はKagemushaサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"kagemusha/internal/config"
	"kagemusha/internal/server"
	"kagemusha/internal/tunnel"
)

func main() {
	// コマンドラインオプション
	var (
		host       = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port       = flag.Int("port", 0, "サーバーのポート (デフォルト: 8080)")
		uvDir      = flag.String("uv-dir", "", "/uv/ の配信元ディレクトリ (デフォルト: uv)")
		epoxyDir   = flag.String("epoxy-dir", "", "/epoxy/ の配信元ディレクトリ (デフォルト: epoxy)")
		baremuxDir = flag.String("baremux-dir", "", "/baremux/ の配信元ディレクトリ (デフォルト: baremux)")
		help       = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("Kagemusha")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// 設定を組み立てる。検証はコマンドラインオプションの
	// 上書きを反映してから行う
	cfg := config.Default()

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *uvDir != "" {
		cfg.SetRouteDir("/uv/", *uvDir)
	}
	if *epoxyDir != "" {
		cfg.SetRouteDir("/epoxy/", *epoxyDir)
	}
	if *baremuxDir != "" {
		cfg.SetRouteDir("/baremux/", *baremuxDir)
	}

	if err := cfg.Finalize(); err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// サーバーを作成
	srv := server.New(cfg, tunnel.NewEcho())

	// コンテキストを作成
	ctx := context.Background()

	// サーバーを起動
	log.Printf("Kagemusha サーバーを起動します: %s", cfg.ServerAddress())
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
