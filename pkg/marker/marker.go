// Package marker implements the interactive segment marking state machine:
// cursor-driven start/end marks, reorder on out-of-order input, optional
// frame snapshots, and segment finalization against the persistence store.
package marker

import (
	"context"
	"errors"
	"math"

	"github.com/user/sceneline/pkg/capture"
	"github.com/user/sceneline/pkg/ports"
)

// State is the marking phase for one in-progress segment.
type State int

const (
	// Idle means no marks are set.
	Idle State = iota
	// StartSet means the start mark is set and the end is pending.
	StartSet
	// EndSet means both marks are set and the segment can be created.
	EndSet
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case StartSet:
		return "start-set"
	case EndSet:
		return "end-set"
	default:
		return "unknown"
	}
}

// Rejected operations. The state is unchanged when these are returned.
var (
	// ErrStartNotSet rejects an end mark before any start mark.
	ErrStartNotSet = errors.New("start must be set first")
	// ErrEndNotAfterStart rejects an end mark at or before the start.
	ErrEndNotAfterStart = errors.New("end must be after start")
	// ErrNothingToRemove signals RemoveLastMark in the Idle state.
	ErrNothingToRemove = errors.New("nothing to remove")
	// ErrNotReady rejects Create before both marks are set.
	ErrNotReady = errors.New("segment start and end must be set first")
)

// equalTolerance is the window in seconds within which two cursor times are
// treated as the same instant.
const equalTolerance = 0.001

// CursorFunc returns the live playback position in seconds. It is consulted
// at the moment of each call, never cached, so marks cannot race ongoing
// playback.
type CursorFunc func() float64

// CaptureFunc takes an optional frame snapshot at a timestamp. A nil
// function, or ok=false, leaves the snapshot empty without blocking the
// state transition.
type CaptureFunc func(ctx context.Context, t float64) (*capture.Snapshot, bool)

// CreateResult reports a finalized segment. EndTime is where the orchestrator
// should move the playback cursor afterwards.
type CreateResult struct {
	SegmentID string
	EndTime   float64
}

// Marker is the per-video marking state machine. It is transient editing
// state, discarded when the session ends, and is driven from a single
// cooperative flow; it is not safe for concurrent use.
type Marker struct {
	videoID string
	cursor  CursorFunc
	capture CaptureFunc
	store   ports.SegmentStore
	logger  ports.Logger

	state     State
	start     float64
	end       float64
	startSnap *capture.Snapshot
	endSnap   *capture.Snapshot
}

// New creates a Marker for one video. capture may be nil when frame previews
// are not wanted.
func New(videoID string, cursor CursorFunc, captureFn CaptureFunc, store ports.SegmentStore, log ports.Logger) *Marker {
	return &Marker{
		videoID: videoID,
		cursor:  cursor,
		capture: captureFn,
		store:   store,
		logger:  log.WithComponent("marker"),
	}
}

// State returns the current marking phase.
func (m *Marker) State() State {
	return m.state
}

// Start returns the start mark, if set.
func (m *Marker) Start() (float64, bool) {
	return m.start, m.state != Idle
}

// End returns the end mark, if set.
func (m *Marker) End() (float64, bool) {
	return m.end, m.state == EndSet
}

// StartSnapshot returns the captured start frame, which may be nil even when
// the start mark is set.
func (m *Marker) StartSnapshot() *capture.Snapshot {
	return m.startSnap
}

// EndSnapshot returns the captured end frame, which may be nil even when the
// end mark is set.
func (m *Marker) EndSnapshot() *capture.Snapshot {
	return m.endSnap
}

// MarkStart places the start mark at the live cursor position. From Idle it
// captures a snapshot and moves to StartSet. With a start already set, a
// cursor before it reorders the marks (the old start becomes the end); a
// cursor at or after it re-marks the start and clears any stale end.
func (m *Marker) MarkStart(ctx context.Context) error {
	t := m.cursor()

	if m.state != Idle && m.reorderIfNeeded(ctx, t) {
		return nil
	}

	m.start = t
	m.end = 0
	m.endSnap = nil
	m.startSnap = m.snapshot(ctx, t)
	m.state = StartSet
	m.logger.Debug("Marked segment start at %.2fs", t)
	return nil
}

// MarkEnd places the end mark at the live cursor position. It is rejected
// from Idle. A cursor before the start reorders the marks instead of being
// rejected; a cursor within tolerance of the start is rejected with the
// state unchanged.
func (m *Marker) MarkEnd(ctx context.Context) error {
	if m.state == Idle {
		return ErrStartNotSet
	}

	t := m.cursor()
	if m.reorderIfNeeded(ctx, t) {
		return nil
	}
	if t <= m.start+equalTolerance {
		return ErrEndNotAfterStart
	}

	m.end = t
	m.endSnap = m.snapshot(ctx, t)
	m.state = EndSet
	m.logger.Debug("Marked segment end at %.2fs", t)
	return nil
}

// reorderIfNeeded applies the shared reorder rule: when the new timestamp
// falls before the current start, the existing start (and its snapshot)
// becomes the end, and a fresh start is marked at the new timestamp. Both
// MarkStart and MarkEnd route through here so the two entry points cannot
// diverge.
func (m *Marker) reorderIfNeeded(ctx context.Context, t float64) bool {
	if t >= m.start {
		return false
	}

	m.end = m.start
	m.endSnap = m.startSnap
	m.start = t
	m.startSnap = m.snapshot(ctx, t)
	m.state = EndSet
	m.logger.Debug("Reordered marks: %.2fs - %.2fs", m.start, m.end)
	return true
}

// RemoveLastMark undoes the most recent mark: EndSet drops the end and
// returns to StartSet, StartSet drops the start and returns to Idle.
func (m *Marker) RemoveLastMark() error {
	switch m.state {
	case EndSet:
		m.end = 0
		m.endSnap = nil
		m.state = StartSet
		return nil
	case StartSet:
		m.start = 0
		m.startSnap = nil
		m.state = Idle
		return nil
	default:
		return ErrNothingToRemove
	}
}

// Create finalizes the marked interval as a persisted segment. Valid only
// from EndSet. On success all marker state is cleared; on store failure the
// marks are kept so the user can retry.
func (m *Marker) Create(ctx context.Context, description string) (CreateResult, error) {
	if m.state != EndSet {
		return CreateResult{}, ErrNotReady
	}

	startMs := int64(math.Round(m.start * 1000))
	endMs := int64(math.Round(m.end * 1000))
	id, err := m.store.CreateSegment(ctx, m.videoID, startMs, endMs, description)
	if err != nil {
		return CreateResult{}, err
	}

	end := m.end
	m.reset()
	m.logger.Debug("Segment %s created", id)
	return CreateResult{SegmentID: id, EndTime: end}, nil
}

// Cancel discards all marker state and returns to Idle. Calling it from Idle
// is a no-op.
func (m *Marker) Cancel() {
	m.reset()
}

func (m *Marker) reset() {
	m.state = Idle
	m.start = 0
	m.end = 0
	m.startSnap = nil
	m.endSnap = nil
}

// snapshot captures a frame if a capture function is configured. Failure is
// not an error: captured images are optional metadata only.
func (m *Marker) snapshot(ctx context.Context, t float64) *capture.Snapshot {
	if m.capture == nil {
		return nil
	}
	snap, ok := m.capture(ctx, t)
	if !ok {
		return nil
	}
	return snap
}
