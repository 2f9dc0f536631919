// Package static は、静的ファイルの配信を管理します。
//
// このパッケージは、URLプレフィックスによるルーティング、
// ディレクトリトラバーサルを防ぐパス解決、ファイル内容の
// ストリーミング配信を担当します。
//
// 責務:
//   - プレフィックスルールによるリクエストパスの振り分け
//   - 信頼できないパスの安全な解決
//   - MIMEタイプの決定とファイル内容の配信
//
// 仕様:
//   - パス解決はファイルシステムに触れない純粋関数
//   - 解決結果が基点ディレクトリの外に出た場合は403
//   - ファイルを開けない理由は区別せず一律404
package static
