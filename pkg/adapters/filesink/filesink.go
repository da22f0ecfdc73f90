// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/sceneline/pkg/ports"
)

// Sink saves debug output to files, one subdirectory per video.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveBoundariesJSON saves the detected boundary list as JSON.
func (s *Sink) SaveBoundariesJSON(videoID string, data []byte) error {
	path := filepath.Join(s.baseDir, videoID, "boundaries.json")
	return s.fs.WriteFile(path, data)
}

// SaveDiffTrace saves the per-sample difference trace as JSON.
func (s *Sink) SaveDiffTrace(videoID string, data []byte) error {
	path := filepath.Join(s.baseDir, videoID, "diff-trace.json")
	return s.fs.WriteFile(path, data)
}

// SaveSampleFrame saves a downsampled frame from a detection pass.
func (s *Sink) SaveSampleFrame(videoID string, index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, videoID, "samples")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode sample frame: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("sample-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

// SaveSnapshot saves an encoded frame snapshot.
func (s *Sink) SaveSnapshot(videoID string, label string, data []byte) error {
	dir := filepath.Join(s.baseDir, videoID, "snapshots")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.jpg", label))
	return s.fs.WriteFile(path, data)
}

// SaveStoryboard saves a rendered storyboard image.
func (s *Sink) SaveStoryboard(videoID string, img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode storyboard: %w", err)
	}
	path := filepath.Join(s.baseDir, videoID, "storyboard.png")
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
