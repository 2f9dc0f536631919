// Package server は、HTTPサーバーとプロトコルアップグレードを管理します。
//
// このパッケージは、HTTPサーバーの起動、静的アセットへのルーティング、
// アップグレード要求のトンネルへの引き渡しを担当します。
//
// 責務:
//   - HTTPサーバーの起動とグレースフルシャットダウン
//   - クロスオリジン分離ヘッダーの付与
//   - プレフィックスルーターへのリクエストの委譲
//   - WebSocketアップグレード要求のトンネルへの引き渡し
//
// 仕様:
//   - HTTPエンジンはgin-gonic/ginを使用
//   - 全レスポンスにCOOP/COEPヘッダーを付与
//   - /wisp/ 以外へのアップグレード要求は応答せず切断
//   - SIGINT/SIGTERMでグレースフルシャットダウン
package server
