package static

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// newTestRouter はテスト用のルーターと配信元ディレクトリを作成する
func newTestRouter(t *testing.T) (*Router, string, string) {
	t.Helper()

	uvDir := t.TempDir()
	epoxyDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(uvDir, "app.js"), []byte("uv bundle"), 0o644); err != nil {
		t.Fatalf("テストファイルの作成に失敗しました: %v", err)
	}
	if err := os.WriteFile(filepath.Join(epoxyDir, "worker.js"), []byte("epoxy worker"), 0o644); err != nil {
		t.Fatalf("テストファイルの作成に失敗しました: %v", err)
	}

	rules := []Rule{
		{Prefix: "/uv/", Root: uvDir},
		{Prefix: "/epoxy/", Root: epoxyDir},
	}

	return NewRouter(rules, NewFileResponder(nil)), uvDir, epoxyDir
}

// TestRoute はプレフィックスによる振り分けをテストする
func TestRoute(t *testing.T) {
	router, _, _ := newTestRouter(t)

	testCases := []struct {
		name           string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{"最初のルート", "/uv/app.js", 200, "uv bundle"},
		{"二番目のルート", "/epoxy/worker.js", 200, "epoxy worker"},
		{"未設定のプレフィックス", "/unknown/app.js", 404, ""},
		{"プレフィックスの末尾スラッシュなし", "/uv", 404, ""},
		{"存在しないファイル", "/uv/missing.js", 404, ""},
		{"プレフィックスのみはディレクトリなので404", "/uv/", 404, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.Route(rec, tc.path)

			if rec.Code != tc.expectedStatus {
				t.Errorf("予期しないステータスコード: got %d, want %d", rec.Code, tc.expectedStatus)
			}
			if rec.Body.String() != tc.expectedBody {
				t.Errorf("予期しないボディ: got %q, want %q", rec.Body.String(), tc.expectedBody)
			}
		})
	}
}

// TestRouteFirstMatchWins は重なるプレフィックスで先のルールが勝つことをテストする
func TestRouteFirstMatchWins(t *testing.T) {
	outer := t.TempDir()
	inner := t.TempDir()

	if err := os.MkdirAll(filepath.Join(outer, "v2"), 0o755); err != nil {
		t.Fatalf("ディレクトリの作成に失敗しました: %v", err)
	}
	if err := os.WriteFile(filepath.Join(outer, "v2", "f.txt"), []byte("outer"), 0o644); err != nil {
		t.Fatalf("テストファイルの作成に失敗しました: %v", err)
	}
	if err := os.WriteFile(filepath.Join(inner, "f.txt"), []byte("inner"), 0o644); err != nil {
		t.Fatalf("テストファイルの作成に失敗しました: %v", err)
	}

	rules := []Rule{
		{Prefix: "/docs/", Root: outer},
		{Prefix: "/docs/v2/", Root: inner},
	}
	router := NewRouter(rules, NewFileResponder(nil))

	rec := httptest.NewRecorder()
	router.Route(rec, "/docs/v2/f.txt")

	if rec.Body.String() != "outer" {
		t.Errorf("先に登録したルールが選ばれていません: got %q, want %q", rec.Body.String(), "outer")
	}
}

// TestRouteForbidden は解決が失敗した場合に403を返すことをテストする
// 正規化が先に効くため通常の入力では到達しないが、境界チェックの
// 挙動は契約として保証する
func TestRouteForbidden(t *testing.T) {
	router, _, _ := newTestRouter(t)
	router.resolve = func(base, raw string) (string, bool) {
		return "", false
	}

	rec := httptest.NewRecorder()
	router.Route(rec, "/uv/anything.js")

	if rec.Code != 403 {
		t.Errorf("予期しないステータスコード: got %d, want 403", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("403のボディは空であるべきです: got %q", rec.Body.String())
	}
}
