package static

import (
	"net/http"
	"strings"
)

// Rule はURLプレフィックスと配信元ディレクトリの束縛
type Rule struct {
	Prefix string // 例: /uv/
	Root   string // 正規化済みの絶対パス
}

// Router は順序付きのプレフィックスルールでリクエストパスを振り分ける
// ルールは構築後に変更されないため、並行アクセスに対して安全
type Router struct {
	rules     []Rule
	responder *FileResponder

	// パス解決関数。テストで差し替えられるようにフィールドにしている
	resolve func(base, raw string) (string, bool)
}

// NewRouter は新しいRouterを作成する
func NewRouter(rules []Rule, responder *FileResponder) *Router {
	return &Router{
		rules:     rules,
		responder: responder,
		resolve:   Resolve,
	}
}

// Route はリクエストパスを最初に一致したルールへ振り分ける
// 一致するルールがなければ404、解決結果が基点の外なら403を返す
func (rt *Router) Route(w http.ResponseWriter, path string) {
	for _, rule := range rt.rules {
		if !strings.HasPrefix(path, rule.Prefix) {
			continue
		}

		// プレフィックスを文字数ぶんだけ切り落とした残りが相対パス
		sub := path[len(rule.Prefix):]

		resolved, ok := rt.resolve(rule.Root, sub)
		if !ok {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		rt.responder.ServeFile(w, resolved)
		return
	}

	w.WriteHeader(http.StatusNotFound)
}
