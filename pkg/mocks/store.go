package mocks

import (
	"context"
	"fmt"

	"github.com/user/sceneline/pkg/ports"
)

// SegmentStore is a mock implementation of ports.SegmentStore. By default it
// keeps segments in memory and assigns sequential ids.
type SegmentStore struct {
	CreateSegmentFunc func(ctx context.Context, videoID string, startMs, endMs int64, description string) (string, error)
	UpdateSegmentFunc func(ctx context.Context, id string, fields ports.SegmentFields) error
	DeleteSegmentFunc func(ctx context.Context, id string) error
	ListSegmentsFunc  func(ctx context.Context, videoID string) ([]ports.SegmentRecord, error)

	// Recorded calls for verification
	CreateCalls []CreateSegmentCall

	Segments []ports.SegmentRecord
}

// CreateSegmentCall records a call to CreateSegment.
type CreateSegmentCall struct {
	VideoID     string
	StartMs     int64
	EndMs       int64
	Description string
}

func (m *SegmentStore) CreateSegment(ctx context.Context, videoID string, startMs, endMs int64, description string) (string, error) {
	m.CreateCalls = append(m.CreateCalls, CreateSegmentCall{VideoID: videoID, StartMs: startMs, EndMs: endMs, Description: description})
	if m.CreateSegmentFunc != nil {
		return m.CreateSegmentFunc(ctx, videoID, startMs, endMs, description)
	}
	id := fmt.Sprintf("seg-%d", len(m.Segments)+1)
	m.Segments = append(m.Segments, ports.SegmentRecord{
		ID:            id,
		VideoID:       videoID,
		StartMs:       startMs,
		EndMs:         endMs,
		Description:   description,
		CreationIndex: len(m.Segments),
	})
	return id, nil
}

func (m *SegmentStore) UpdateSegment(ctx context.Context, id string, fields ports.SegmentFields) error {
	if m.UpdateSegmentFunc != nil {
		return m.UpdateSegmentFunc(ctx, id, fields)
	}
	for i := range m.Segments {
		if m.Segments[i].ID != id {
			continue
		}
		if fields.StartMs != nil {
			m.Segments[i].StartMs = *fields.StartMs
		}
		if fields.EndMs != nil {
			m.Segments[i].EndMs = *fields.EndMs
		}
		if fields.Description != nil {
			m.Segments[i].Description = *fields.Description
		}
		return nil
	}
	return fmt.Errorf("segment %s not found", id)
}

func (m *SegmentStore) DeleteSegment(ctx context.Context, id string) error {
	if m.DeleteSegmentFunc != nil {
		return m.DeleteSegmentFunc(ctx, id)
	}
	for i := range m.Segments {
		if m.Segments[i].ID == id {
			m.Segments = append(m.Segments[:i], m.Segments[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("segment %s not found", id)
}

func (m *SegmentStore) ListSegments(ctx context.Context, videoID string) ([]ports.SegmentRecord, error) {
	if m.ListSegmentsFunc != nil {
		return m.ListSegmentsFunc(ctx, videoID)
	}
	var out []ports.SegmentRecord
	for _, s := range m.Segments {
		if s.VideoID == videoID {
			out = append(out, s)
		}
	}
	return out, nil
}

// Ensure SegmentStore implements ports.SegmentStore
var _ ports.SegmentStore = (*SegmentStore)(nil)
