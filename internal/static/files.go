package static

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// fallbackContentType は拡張子からMIMEタイプを決定できなかった場合の値
const fallbackContentType = "application/octet-stream"

// TypeLookup は拡張子(例: ".js")からMIMEタイプを引く純粋な関数
// 未知の拡張子には空文字列を返す
type TypeLookup func(ext string) string

// FileResponder は解決済みの絶対パスからファイル内容を配信する
type FileResponder struct {
	lookup TypeLookup
}

// NewFileResponder は新しいFileResponderを作成する
// lookupがnilの場合はmime.TypeByExtensionを使う
func NewFileResponder(lookup TypeLookup) *FileResponder {
	if lookup == nil {
		lookup = mime.TypeByExtension
	}
	return &FileResponder{lookup: lookup}
}

// ServeFile はfilePathのファイル内容をレスポンスとして書き込む
// ファイルを開けない場合は理由を問わず404を返す（ファイルシステムの
// 構造を外部に漏らさないため、存在しないのか権限がないのかは区別しない）
func (fr *FileResponder) ServeFile(w http.ResponseWriter, filePath string) {
	f, err := os.Open(filePath)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	contentType := fr.lookup(filepath.Ext(filePath))
	if contentType == "" {
		contentType = fallbackContentType
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.WriteHeader(http.StatusOK)

	// ファイル全体をバッファせず、読めた分から順に書き込む
	// 途中でクライアントが切断した場合はそのまま打ち切る
	_, _ = io.Copy(w, f)
}
