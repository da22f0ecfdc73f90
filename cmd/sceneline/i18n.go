// Package main provides localization for the sceneline CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Detect scene boundaries and mark segments in videos.": "動画のシーン境界を検出し、セグメントをマークします。",

		// Subcommands
		"Detect scene boundaries in an extracted frame sequence.": "抽出済みフレーム列からシーン境界を検出",
		"Show MP4 container metadata.":                            "MP4コンテナのメタデータを表示",
		"Interactively mark segments in a frame sequence.":        "フレーム列のセグメントを対話的にマーク",
		"Submit a video to the local library with initial segments.": "動画をローカルライブラリに登録し初期セグメントを作成",
		"Inspect stored segments.":                                "保存済みセグメントを確認",
		"List segments for a video.":                              "動画のセグメントを一覧表示",
		"Export segments as JSON.":                                "セグメントをJSONで書き出し",
		"Render a segment timeline image.":                        "セグメントのタイムライン画像を描画",
		"Show version information.":                               "バージョン情報を表示",

		// Flags
		"Directory of extracted frame images.":               "抽出済みフレーム画像のディレクトリ",
		"Matching MP4 file for container metadata.":          "対応するMP4ファイル（コンテナメタデータ用）",
		"Frame rate of the extracted frames (default: 30).":  "抽出フレームのフレームレート（デフォルト: 30）",
		"Split policy applied to the detected boundaries.":   "検出した境界に適用する分割ポリシー",
		"Scene cut threshold (0-1, default: 0.25).":          "シーンカット閾値（0-1、デフォルト: 0.25）",
		"Minimum gap between boundaries in seconds (default: 2.0).": "境界間の最小間隔（秒、デフォルト: 2.0）",
		"SQLite segment store path (default: ./sceneline.db).":      "SQLiteセグメントストアのパス（デフォルト: ./sceneline.db）",
		"YAML configuration file.":                           "YAML設定ファイル",
		"Enable debug output.":                               "デバッグ出力を有効化",
		"Directory for debug output.":                        "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error).":              "ログレベル（debug, info, warn, error）",
		"Suppress all log output.":                           "全てのログ出力を抑制",
		"Output PNG file path.":                              "出力PNGファイルパス",
		"Output file path (stdout when omitted).":            "出力ファイルパス（省略時は標準出力）",
		"Video identifier.":                                  "動画ID",
		"MP4 file path.":                                     "MP4ファイルパス",
		"Storyboard width (default: 960).":                   "ストーリーボードの幅（デフォルト: 960）",
		"Storyboard height (default: 140).":                  "ストーリーボードの高さ（デフォルト: 140）",
		"Matching MP4 file for duration and dimensions.":     "対応するMP4ファイル（再生時間と寸法用）",

		// Runtime messages
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Created %d segments":           "%d 個のセグメントを作成しました",
		"Video: %s":                     "動画: %s",
		"Duration: %.3fs":               "再生時間: %.3f秒",
		"Duration: unknown":             "再生時間: 不明",
		"Dimensions: %dx%d":             "寸法: %dx%d",
		"Estimated FPS: %.2f":           "推定FPS: %.2f",
		"Segment %s created":            "セグメント %s を作成しました",
		"No segments for %s":            "%s のセグメントはありません",
		"Exported %d segments to %s":    "%d 個のセグメントを %s に書き出しました",
		"Storyboard saved to %s":        "ストーリーボードを %s に保存しました",
		"Submitted batch %s":            "バッチ %s を登録しました",
		"sceneline version %s":          "sceneline バージョン %s",

		// Marking session
		"Marking %s. Commands: seek <t>, start, end, create [description], undo, cancel, status, quit": "%s をマーク中。コマンド: seek <t>, start, end, create [説明], undo, cancel, status, quit",
		"Usage: seek <seconds>": "使い方: seek <秒>",
		"Invalid time: %s":      "不正な時刻です: %s",
		"Seek failed: %s":       "シークに失敗しました: %s",
		"Unknown command: %s":   "不明なコマンドです: %s",
		"State: %s":             "状態: %s",
		"Start: %.3fs":          "開始: %.3f秒",
		"End: %.3fs":            "終了: %.3f秒",
	})
}
