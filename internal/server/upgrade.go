package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// upgradeDispatcher はWebSocketアップグレード要求を振り分ける
// パスが設定された末尾に一致すればトンネルへ引き渡し、それ以外は
// HTTP応答を返さずに生の接続を切断する
func (s *Server) upgradeDispatcher() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isUpgradeRequest(c.Request) {
			c.Next()
			return
		}

		if strings.HasSuffix(c.Request.URL.Path, s.config.Wisp.Suffix) {
			// 接続の所有権はトンネル側に移る。以降こちらからは書き込まない
			s.tunnel.HandleUpgrade(c.Writer, c.Request)
		} else {
			closeRawConnection(c.Writer)
		}

		c.Abort()
	}
}

// isUpgradeRequest はWebSocketへのアップグレード要求かどうかを判定する
func isUpgradeRequest(r *http.Request) bool {
	if !strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		return false
	}
	return strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade")
}

// closeRawConnection は応答フレームを書かずに接続を切断する
// アップグレード待ちのクライアントに平文HTTPの404を返しても
// 解釈できないため、ハイジャックしてそのまま閉じる
func closeRawConnection(w http.ResponseWriter) {
	hijacker, ok := w.(http.Hijacker)
	if !ok {
		return
	}

	conn, _, err := hijacker.Hijack()
	if err != nil {
		return
	}
	_ = conn.Close()
}
