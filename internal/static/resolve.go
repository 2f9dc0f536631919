package static

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolve は信頼できない相対パスrawをbase配下の絶対パスに解決する
// baseは正規化済みの絶対パスであること
//
// rawを先頭に"/"を付けて正規化してから結合するため、".."の連続は
// 合成ルートで打ち止めになりbaseの外には出られない。正規化の順序が
// 安全性を担保しているので変更しないこと。
func Resolve(base, raw string) (string, bool) {
	target := filepath.Join(base, filepath.Clean("/"+raw))
	if !contained(base, target) {
		return "", false
	}
	return target, true
}

// contained はtargetがbase自身またはその子孫かどうかを判定する
// 単純な前方一致では /srv/uv と /srv/uv-evil を区別できないため、
// baseの直後がパス区切りであることまで確認する
func contained(base, target string) bool {
	if target == base {
		return true
	}
	return strings.HasPrefix(target, base+string(os.PathSeparator))
}
