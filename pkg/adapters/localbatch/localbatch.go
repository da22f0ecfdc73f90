// Package localbatch provides a batch uploader that keeps uploads on the
// local filesystem and creates initial segments in the segment store.
package localbatch

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/user/sceneline/pkg/adapters/mp4meta"
	"github.com/user/sceneline/pkg/ports"
	"github.com/user/sceneline/pkg/timeline"
)

// Uploader implements ports.BatchUploader against a local library directory.
type Uploader struct {
	baseDir string
	fs      ports.FileSystem
	store   ports.SegmentStore
	logger  ports.Logger
}

// New creates an Uploader writing into baseDir.
func New(baseDir string, fs ports.FileSystem, store ports.SegmentStore, logger ports.Logger) *Uploader {
	return &Uploader{
		baseDir: baseDir,
		fs:      fs,
		store:   store,
		logger:  logger,
	}
}

// SubmitBatch stores the raw video bytes and creates the initial segments
// dictated by the split policy. The video id is the file name without its
// extension.
func (u *Uploader) SubmitBatch(ctx context.Context, name string, data []byte, policy ports.SplitPolicy, boundaries []float64) (string, error) {
	batchID := uuid.New().String()

	path := filepath.Join(u.baseDir, batchID, name)
	if err := u.fs.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}

	videoID := strings.TrimSuffix(name, filepath.Ext(name))

	var drafts []timeline.Segment
	switch policy {
	case ports.SplitAutoScene:
		drafts = timeline.SegmentsFromBoundaries(videoID, boundaries)
		if len(drafts) == 0 {
			return "", fmt.Errorf("auto-scene policy needs at least two boundaries")
		}
	case ports.SplitTakeAll:
		// The container itself tells us the span to keep.
		info, err := mp4meta.ProbeReader(bytes.NewReader(data), videoID)
		if err != nil {
			return "", fmt.Errorf("probe upload: %w", err)
		}
		if !info.Asset.DurationKnown {
			return "", fmt.Errorf("cannot take all of a video with unknown duration")
		}
		drafts = timeline.SegmentsFromBoundaries(videoID, timeline.BoundaryList{0, info.Asset.Duration})
	case ports.SplitManual:
		// The user marks segments interactively later.
	default:
		return "", fmt.Errorf("unknown split policy: %s", policy)
	}

	for _, d := range drafts {
		if _, err := u.store.CreateSegment(ctx, d.VideoID, d.StartMs, d.EndMs, d.Description); err != nil {
			return "", fmt.Errorf("create segment [%d,%d]ms: %w", d.StartMs, d.EndMs, err)
		}
	}

	if u.logger != nil {
		u.logger.Debug("Stored batch %s with %d initial segments", batchID, len(drafts))
	}
	return batchID, nil
}

// Ensure Uploader implements ports.BatchUploader
var _ ports.BatchUploader = (*Uploader)(nil)
