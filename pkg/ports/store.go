package ports

import "context"

// SegmentRecord is a persisted segment as returned by the store.
type SegmentRecord struct {
	ID            string
	VideoID       string
	StartMs       int64
	EndMs         int64
	Description   string
	CreationIndex int
}

// SegmentFields carries the mutable fields of a segment for updates.
// Nil fields are left unchanged.
type SegmentFields struct {
	StartMs     *int64
	EndMs       *int64
	Description *string
}

// SegmentStore abstracts segment persistence. The editing core calls it once
// per finalized segment; bulk generation from detected boundaries calls it
// once per boundary pair.
type SegmentStore interface {
	// CreateSegment persists a new segment and returns its id.
	CreateSegment(ctx context.Context, videoID string, startMs, endMs int64, description string) (string, error)

	// UpdateSegment applies the non-nil fields to an existing segment.
	UpdateSegment(ctx context.Context, id string, fields SegmentFields) error

	// DeleteSegment removes a segment.
	DeleteSegment(ctx context.Context, id string) error

	// ListSegments returns all segments for a video in creation order.
	ListSegments(ctx context.Context, videoID string) ([]SegmentRecord, error)
}

// SplitPolicy selects how an uploaded video is divided into initial segments.
type SplitPolicy string

const (
	// SplitTakeAll keeps the whole video as one segment.
	SplitTakeAll SplitPolicy = "take-all"
	// SplitManual creates no initial segments; the user marks them.
	SplitManual SplitPolicy = "manual"
	// SplitAutoScene converts a precomputed boundary list into segments.
	SplitAutoScene SplitPolicy = "auto-scene"
)

// BatchUploader abstracts the upload collaborator. For SplitAutoScene the
// boundaries argument carries the precomputed boundary timestamps in seconds;
// for other policies it is ignored.
type BatchUploader interface {
	SubmitBatch(ctx context.Context, name string, data []byte, policy SplitPolicy, boundaries []float64) (batchID string, err error)
}
