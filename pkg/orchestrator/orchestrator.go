// Package orchestrator coordinates detection passes, segment generation and
// the interactive editing session around one segment store.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/user/sceneline/pkg/capture"
	"github.com/user/sceneline/pkg/detector"
	"github.com/user/sceneline/pkg/marker"
	"github.com/user/sceneline/pkg/ports"
	"github.com/user/sceneline/pkg/sampler"
	"github.com/user/sceneline/pkg/timeline"
)

// Config contains all tunables for detection and capture.
type Config struct {
	// Detection
	Threshold float64
	MinGap    float64

	// Sampling
	AssumedFPS   float64
	SampleStride int
	SampleWidth  int
	SampleHeight int

	// Snapshot capture
	CaptureTimeoutMs int
	SnapshotQuality  int

	// Display
	PaletteSize int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Threshold: 0.25,
		MinGap:    2.0,

		AssumedFPS:   30.0,
		SampleStride: 30,
		SampleWidth:  160,
		SampleHeight: 90,

		CaptureTimeoutMs: 3000,
		SnapshotQuality:  capture.DefaultJPEGQuality,

		PaletteSize: timeline.DefaultPaletteSize,
	}
}

func (c Config) detectorOptions() detector.Options {
	return detector.Options{
		Threshold: c.Threshold,
		MinGap:    c.MinGap,
		Sample: sampler.Config{
			AssumedFPS: c.AssumedFPS,
			Stride:     c.SampleStride,
			Width:      c.SampleWidth,
			Height:     c.SampleHeight,
		},
	}
}

// Progress reports how far a detection pass has advanced through one video.
type Progress struct {
	VideoID string
	Sampled int
	Total   int // 0 when the duration is unknown
}

// Outcome is the result of one processed detection job. Discarded outcomes
// carry no boundaries: the job was cancelled or its asset was no longer the
// active one when it finished, and its results were never applied.
type Outcome struct {
	VideoID    string
	Boundaries timeline.BoundaryList
	Degraded   bool
	Discarded  bool
	SegmentIDs []string
}

type job struct {
	source ports.FrameSource
	policy ports.SplitPolicy
}

// Queue runs detection jobs one at a time in submission order. Asset
// identity travels with every job and is checked before results are
// committed, so a cancelled or superseded pass can never attribute
// boundaries to the wrong video.
type Queue struct {
	detector *detector.Detector
	capturer *capture.Capturer
	store    ports.SegmentStore
	sink     ports.DebugSink
	logger   ports.Logger
	cfg      Config

	// OnProgress, if set, receives per-video detection progress.
	OnProgress func(Progress)

	mu         sync.Mutex
	pending    []job
	activeID   string
	inFlightID string
	cancel     context.CancelFunc
}

// New creates a detection Queue.
func New(renderer ports.Renderer, store ports.SegmentStore, sink ports.DebugSink, log ports.Logger, cfg Config) *Queue {
	return &Queue{
		detector: detector.New(renderer, log),
		capturer: capture.New(renderer, log, time.Duration(cfg.CaptureTimeoutMs)*time.Millisecond, cfg.SnapshotQuality),
		store:    store,
		sink:     sink,
		logger:   log,
		cfg:      cfg,
	}
}

// Enqueue adds a video to the detection queue with the split policy that
// decides what happens to its boundaries.
func (q *Queue) Enqueue(source ports.FrameSource, policy ports.SplitPolicy) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, job{source: source, policy: policy})
}

// SetActive records which video the user is looking at. An in-flight
// detection pass for any other video is cancelled; its results will be
// discarded, never applied.
func (q *Queue) SetActive(videoID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.activeID = videoID
	if q.inFlightID != "" && q.inFlightID != videoID && q.cancel != nil {
		q.cancel()
	}
}

// Pending returns the number of queued jobs.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// ProcessNext runs the oldest queued job to completion. It returns nil when
// the queue is empty. A pass cancelled by SetActive yields a discarded
// outcome, not an error; only cancellation of ctx itself is an error.
func (q *Queue) ProcessNext(ctx context.Context) (*Outcome, error) {
	q.mu.Lock()
	if len(q.pending) == 0 {
		q.mu.Unlock()
		return nil, nil
	}
	j := q.pending[0]
	q.pending = q.pending[1:]

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	videoID := j.source.ID()
	q.inFlightID = videoID
	q.cancel = cancel
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.inFlightID = ""
		q.cancel = nil
		q.mu.Unlock()
	}()

	q.logger.Info(l10n.F("Detecting scenes in %s", videoID))

	opts := q.cfg.detectorOptions()
	if q.OnProgress != nil {
		opts.Progress = func(sampled, total int) {
			q.OnProgress(Progress{VideoID: videoID, Sampled: sampled, Total: total})
		}
	}

	result, err := q.detector.DetectScenes(jobCtx, j.source, opts)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Cancelled by SetActive: discard, never apply.
		q.logger.Info(l10n.F("Detection cancelled for %s", videoID))
		return &Outcome{VideoID: videoID, Discarded: true}, nil
	}

	q.mu.Lock()
	stale := q.activeID != "" && q.activeID != videoID
	q.mu.Unlock()
	if stale {
		q.logger.Info(l10n.F("Discarding stale results for %s", videoID))
		return &Outcome{VideoID: videoID, Discarded: true}, nil
	}

	if result.Degraded {
		q.logger.Warn(l10n.T("Detection degraded to full-span scene"))
	}
	q.logger.Info(l10n.F("Detection completed: %d boundaries", len(result.Boundaries)))

	q.saveDebug(result)

	outcome := &Outcome{
		VideoID:    videoID,
		Boundaries: result.Boundaries,
		Degraded:   result.Degraded,
	}

	ids, err := q.applySplitPolicy(ctx, j, result)
	if err != nil {
		return outcome, err
	}
	outcome.SegmentIDs = ids
	return outcome, nil
}

// ProcessAll drains the queue in submission order.
func (q *Queue) ProcessAll(ctx context.Context) ([]Outcome, error) {
	var outcomes []Outcome
	for {
		outcome, err := q.ProcessNext(ctx)
		if err != nil {
			return outcomes, err
		}
		if outcome == nil {
			return outcomes, nil
		}
		outcomes = append(outcomes, *outcome)
	}
}

// applySplitPolicy converts detection results into persisted segments, one
// store call per segment.
func (q *Queue) applySplitPolicy(ctx context.Context, j job, result detector.Result) ([]string, error) {
	var drafts []timeline.Segment
	switch j.policy {
	case ports.SplitAutoScene:
		drafts = timeline.SegmentsFromBoundaries(result.VideoID, result.Boundaries)
	case ports.SplitTakeAll:
		if duration, ok := j.source.Duration(); ok && duration > 0 {
			drafts = timeline.SegmentsFromBoundaries(result.VideoID, timeline.BoundaryList{0, duration})
		}
	default:
		// manual: the user marks segments interactively
		return nil, nil
	}

	ids := make([]string, 0, len(drafts))
	for _, d := range drafts {
		id, err := q.store.CreateSegment(ctx, d.VideoID, d.StartMs, d.EndMs, d.Description)
		if err != nil {
			return ids, fmt.Errorf("create segment [%d,%d]ms: %w", d.StartMs, d.EndMs, err)
		}
		ids = append(ids, id)
	}
	q.logger.Info(l10n.F("Created %d segments for %s", len(ids), result.VideoID))
	return ids, nil
}

func (q *Queue) saveDebug(result detector.Result) {
	if q.sink == nil || !q.sink.Enabled() {
		return
	}
	if data, err := json.MarshalIndent(result.Boundaries, "", "  "); err == nil {
		q.sink.SaveBoundariesJSON(result.VideoID, data)
	}
	if data, err := json.MarshalIndent(result.Trace, "", "  "); err == nil {
		q.sink.SaveDiffTrace(result.VideoID, data)
	}
}

// CaptureFrame takes a snapshot at t without moving the source's playback
// position. ok is false when the snapshot is unavailable.
func (q *Queue) CaptureFrame(ctx context.Context, source ports.FrameSource, t float64) (*capture.Snapshot, bool) {
	snap, ok := q.capturer.Capture(ctx, source, t)
	if ok && q.sink != nil && q.sink.Enabled() {
		q.sink.SaveSnapshot(source.ID(), fmt.Sprintf("%.3f", t), snap.Data)
	}
	return snap, ok
}

// NewMarker opens a marking session for the source, wired to its live
// playback position and to snapshot capture.
func (q *Queue) NewMarker(source ports.FrameSource) *marker.Marker {
	captureFn := func(ctx context.Context, t float64) (*capture.Snapshot, bool) {
		return q.CaptureFrame(ctx, source, t)
	}
	return marker.New(source.ID(), source.Position, captureFn, q.store, q.logger)
}
