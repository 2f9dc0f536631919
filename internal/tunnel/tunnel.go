// Package tunnel は、アップグレードされた接続を引き受けるトンネル側の
// 契約を定義します。トンネルプロトコル自体の実装はこのリポジトリの
// 範囲外で、Handlerを実装した外部コンポーネントを注入して使います。
package tunnel

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Handler はプロトコルアップグレード要求を引き受けるインタフェース
// HandleUpgradeは1つのアップグレード要求につき最大1回だけ呼ばれ、
// 呼び出し後の接続の所有権はHandler側に移る
type Handler interface {
	HandleUpgrade(w http.ResponseWriter, r *http.Request)
}

// Echo は開発用のループバックトンネル
// WebSocketハンドシェイクを完了し、受信したフレームをそのまま返す。
// 外部のトンネル実装を差し込むまでの動作確認に使う
type Echo struct {
	upgrader websocket.Upgrader
}

// NewEcho は新しいEchoを作成する
func NewEcho() *Echo {
	return &Echo{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 前段のアセットと同一オリジンとは限らないため全て許可する
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// HandleUpgrade はハンドシェイクを完了してエコーループに入る
func (e *Echo) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := e.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("アップグレードに失敗しました: %v", err)
		return
	}
	defer conn.Close()

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := conn.WriteMessage(messageType, payload); err != nil {
			return
		}
	}
}
