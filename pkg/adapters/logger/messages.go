package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Detection queue started":              "検出キューを開始しました",
		"Detecting scenes in %s":               "%s のシーンを検出中",
		"Detection completed: %d boundaries":   "検出完了: %d 個の境界",
		"Detection cancelled for %s":           "%s の検出をキャンセルしました",
		"Discarding stale results for %s":      "%s の古い結果を破棄します",
		"Created %d segments for %s":           "%s に %d 個のセグメントを作成しました",
		"Detection degraded to full-span scene": "検出が全区間1シーンに縮退しました",

		// Sampler component
		"Seek to %.2fs failed, ending sample sequence: %s": "%.2fs へのシークに失敗、サンプル列を終了します: %s",
		"No frame readable at %.2fs, ending sample sequence": "%.2fs のフレームを読み取れず、サンプル列を終了します",

		// Detector component
		"Scene cut at %.2fs (diff %.3f)":          "%.2fs でシーンカット (差分 %.3f)",
		"Sampled %d frames, %d boundaries found":  "%d フレームをサンプリング、%d 個の境界を検出",
		"No frames sampled, falling back to single scene": "フレームをサンプリングできず、単一シーンにフォールバック",

		// Capture component
		"Snapshot capture at %.2fs failed: %s":     "%.2fs のスナップショット取得に失敗: %s",
		"Position restore to %.2fs failed: %s":     "%.2fs への位置復元に失敗: %s",

		// Marker component
		"Marked segment start at %.2fs":   "%.2fs にセグメント開始をマーク",
		"Marked segment end at %.2fs":     "%.2fs にセグメント終了をマーク",
		"Reordered marks: %.2fs - %.2fs":  "マークを並べ替え: %.2fs - %.2fs",
		"Segment %s created":              "セグメント %s を作成しました",
	})
}
