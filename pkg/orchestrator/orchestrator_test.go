package orchestrator

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/user/sceneline/pkg/adapters/logger"
	"github.com/user/sceneline/pkg/mocks"
	"github.com/user/sceneline/pkg/ports"
)

// solidSource yields frames whose color switches at the given cut times.
func solidSource(id string, duration float64, cuts []float64) *mocks.FrameSource {
	palette := []color.RGBA{
		{A: 255},
		{R: 255, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
	source := &mocks.FrameSource{
		IDFunc:       func() string { return id },
		DurationFunc: func() (float64, bool) { return duration, true },
	}
	source.CurrentFrameFunc = func() image.Image {
		scene := 0
		for _, cut := range cuts {
			if source.Position() >= cut {
				scene++
			}
		}
		img := image.NewRGBA(image.Rect(0, 0, 160, 90))
		draw.Draw(img, img.Bounds(), &image.Uniform{C: palette[scene%len(palette)]}, image.Point{}, draw.Src)
		return img
	}
	return source
}

func newQueue(store *mocks.SegmentStore) *Queue {
	return New(&mocks.Renderer{}, store, mocks.NewDebugSink(false), logger.NewNoop(), DefaultConfig())
}

func TestQueue_AutoSceneCreatesSegments(t *testing.T) {
	store := &mocks.SegmentStore{}
	q := newQueue(store)

	q.Enqueue(solidSource("video-1", 12.4, []float64{4, 9}), ports.SplitAutoScene)

	outcome, err := q.ProcessNext(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome == nil || outcome.Discarded {
		t.Fatalf("expected applied outcome, got %+v", outcome)
	}

	// Boundaries [0,4,9,12.4] become three segments.
	if len(outcome.SegmentIDs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(outcome.SegmentIDs))
	}
	if len(store.CreateCalls) != 3 {
		t.Fatalf("expected 3 store calls, got %d", len(store.CreateCalls))
	}
	wantStarts := []int64{0, 4000, 9000}
	wantEnds := []int64{4000, 9000, 12400}
	for i, call := range store.CreateCalls {
		if call.StartMs != wantStarts[i] || call.EndMs != wantEnds[i] {
			t.Errorf("segment %d: got [%d,%d], want [%d,%d]", i, call.StartMs, call.EndMs, wantStarts[i], wantEnds[i])
		}
	}
}

func TestQueue_ManualPolicyCreatesNothing(t *testing.T) {
	store := &mocks.SegmentStore{}
	q := newQueue(store)

	q.Enqueue(solidSource("video-1", 6.0, nil), ports.SplitManual)

	outcome, err := q.ProcessNext(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.SegmentIDs) != 0 || len(store.CreateCalls) != 0 {
		t.Error("manual policy must not create segments")
	}
	if len(outcome.Boundaries) == 0 {
		t.Error("boundaries should still be reported")
	}
}

func TestQueue_TakeAllCreatesSingleSegment(t *testing.T) {
	store := &mocks.SegmentStore{}
	q := newQueue(store)

	q.Enqueue(solidSource("video-1", 6.0, nil), ports.SplitTakeAll)

	if _, err := q.ProcessNext(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.CreateCalls) != 1 {
		t.Fatalf("expected 1 store call, got %d", len(store.CreateCalls))
	}
	if store.CreateCalls[0].StartMs != 0 || store.CreateCalls[0].EndMs != 6000 {
		t.Errorf("expected [0,6000], got [%d,%d]", store.CreateCalls[0].StartMs, store.CreateCalls[0].EndMs)
	}
}

func TestQueue_SubmissionOrder(t *testing.T) {
	store := &mocks.SegmentStore{}
	q := newQueue(store)

	q.Enqueue(solidSource("video-1", 4.0, nil), ports.SplitManual)
	q.Enqueue(solidSource("video-2", 4.0, nil), ports.SplitManual)
	q.Enqueue(solidSource("video-3", 4.0, nil), ports.SplitManual)

	outcomes, err := q.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"video-1", "video-2", "video-3"}
	if len(outcomes) != len(want) {
		t.Fatalf("expected %d outcomes, got %d", len(want), len(outcomes))
	}
	for i, id := range want {
		if outcomes[i].VideoID != id {
			t.Errorf("outcome %d: expected %s, got %s", i, id, outcomes[i].VideoID)
		}
	}
	if q.Pending() != 0 {
		t.Errorf("expected drained queue, got %d pending", q.Pending())
	}
}

func TestQueue_ActiveVideoChangeDiscardsResults(t *testing.T) {
	store := &mocks.SegmentStore{}
	q := newQueue(store)

	source := solidSource("video-1", 30.0, []float64{4, 9})
	seeks := 0
	inner := source.SeekFunc
	source.SeekFunc = func(ctx context.Context, tm float64) error {
		seeks++
		if seeks == 3 {
			// The user switches videos mid-pass.
			q.SetActive("video-2")
		}
		if inner != nil {
			return inner(ctx, tm)
		}
		return nil
	}

	q.SetActive("video-1")
	q.Enqueue(source, ports.SplitAutoScene)

	outcome, err := q.ProcessNext(context.Background())
	if err != nil {
		t.Fatalf("cancellation by SetActive must not surface as an error: %v", err)
	}
	if !outcome.Discarded {
		t.Error("expected discarded outcome after active video change")
	}
	if len(store.CreateCalls) != 0 {
		t.Errorf("stale results were applied: %d store calls", len(store.CreateCalls))
	}
}

func TestQueue_StaleActiveAtCompletionDiscards(t *testing.T) {
	store := &mocks.SegmentStore{}
	q := newQueue(store)

	// Active changes before the job even starts; detection completes but
	// the results target a non-active asset.
	q.SetActive("video-2")
	q.Enqueue(solidSource("video-1", 4.0, nil), ports.SplitAutoScene)

	outcome, err := q.ProcessNext(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Discarded {
		t.Error("expected discarded outcome for non-active asset")
	}
	if len(store.CreateCalls) != 0 {
		t.Error("stale results were applied")
	}
}

func TestQueue_ParentContextCancellation(t *testing.T) {
	store := &mocks.SegmentStore{}
	q := newQueue(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q.Enqueue(solidSource("video-1", 4.0, nil), ports.SplitManual)
	if _, err := q.ProcessNext(ctx); err == nil {
		t.Error("expected error when the host context is cancelled")
	}
}

func TestQueue_EmptyQueue(t *testing.T) {
	q := newQueue(&mocks.SegmentStore{})
	outcome, err := q.ProcessNext(context.Background())
	if err != nil || outcome != nil {
		t.Errorf("expected nil outcome for empty queue, got %+v, %v", outcome, err)
	}
}

func TestQueue_ProgressReported(t *testing.T) {
	q := newQueue(&mocks.SegmentStore{})

	var progress []Progress
	q.OnProgress = func(p Progress) { progress = append(progress, p) }

	q.Enqueue(solidSource("video-1", 3.0, nil), ports.SplitManual)
	if _, err := q.ProcessNext(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(progress) != 3 {
		t.Fatalf("expected 3 progress reports, got %d", len(progress))
	}
	for i, p := range progress {
		if p.VideoID != "video-1" {
			t.Errorf("progress %d: wrong video id %s", i, p.VideoID)
		}
		if p.Sampled != i+1 {
			t.Errorf("progress %d: expected sampled %d, got %d", i, i+1, p.Sampled)
		}
	}
}

func TestQueue_DegradedDetectionSurfaced(t *testing.T) {
	q := newQueue(&mocks.SegmentStore{})

	// Unknown duration: sampler yields nothing, detection degrades.
	q.Enqueue(&mocks.FrameSource{IDFunc: func() string { return "video-1" }}, ports.SplitManual)

	outcome, err := q.ProcessNext(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Degraded {
		t.Error("expected degraded outcome")
	}
	if len(outcome.Boundaries) != 2 {
		t.Errorf("expected two-element fallback, got %v", outcome.Boundaries)
	}
}

func TestQueue_MarkerSessionUsesLiveCursor(t *testing.T) {
	store := &mocks.SegmentStore{}
	q := newQueue(store)

	source := solidSource("video-1", 10.0, nil)
	m := q.NewMarker(source)

	// Playback reaches 2.0s, user marks start; then seeks to 6.0s and
	// marks end; creating persists [2000,6000].
	if err := source.Seek(context.Background(), 2.0); err != nil {
		t.Fatal(err)
	}
	if err := m.MarkStart(context.Background()); err != nil {
		t.Fatalf("MarkStart: %v", err)
	}
	if err := source.Seek(context.Background(), 6.0); err != nil {
		t.Fatal(err)
	}
	if err := m.MarkEnd(context.Background()); err != nil {
		t.Fatalf("MarkEnd: %v", err)
	}

	// Mark-time snapshot capture must have restored the playback position.
	if got := source.Position(); got != 6.0 {
		t.Errorf("capture moved playback position to %g", got)
	}

	if _, err := m.Create(context.Background(), "clip"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(store.CreateCalls) != 1 {
		t.Fatalf("expected 1 store call, got %d", len(store.CreateCalls))
	}
	if store.CreateCalls[0].StartMs != 2000 || store.CreateCalls[0].EndMs != 6000 {
		t.Errorf("expected [2000,6000], got [%d,%d]", store.CreateCalls[0].StartMs, store.CreateCalls[0].EndMs)
	}
}
