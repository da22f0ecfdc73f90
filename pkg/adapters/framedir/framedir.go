// Package framedir provides a frame source over a directory of numbered
// image files captured at a fixed frame rate.
package framedir

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/user/sceneline/pkg/ports"
)

// Source implements ports.FrameSource over pre-extracted frame images.
// File names are read in sorted order; frame N covers [N/fps, (N+1)/fps).
type Source struct {
	id       string
	dir      string
	fps      float64
	fs       ports.FileSystem
	renderer ports.Renderer

	names []string

	pos       float64
	index     int
	current   image.Image
	width     int
	height    int
}

// New scans dir for image files and decodes the first frame to learn
// the stream dimensions.
func New(id, dir string, fps float64, fs ports.FileSystem, renderer ports.Renderer) (*Source, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive: %f", fps)
	}

	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frame directory: %w", err)
	}

	var names []string
	for _, name := range entries {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".png", ".jpg", ".jpeg":
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no frame images in %s", dir)
	}

	s := &Source{
		id:       id,
		dir:      dir,
		fps:      fps,
		fs:       fs,
		renderer: renderer,
		names:    names,
		index:    -1,
	}

	first, err := s.decode(0)
	if err != nil {
		return nil, err
	}
	bounds := first.Bounds()
	s.width = bounds.Dx()
	s.height = bounds.Dy()
	s.current = first
	s.index = 0

	return s, nil
}

// ID returns the source identifier.
func (s *Source) ID() string {
	return s.id
}

// Duration reports the span covered by the frame files.
func (s *Source) Duration() (float64, bool) {
	return float64(len(s.names)) / s.fps, true
}

// Dimensions returns the pixel size of the frames.
func (s *Source) Dimensions() (int, int) {
	return s.width, s.height
}

// Seek positions the source at the given time in seconds, decoding the
// covering frame if it is not already loaded.
func (s *Source) Seek(ctx context.Context, t float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t < 0 {
		return fmt.Errorf("seek before start: %f", t)
	}

	idx := int(t * s.fps)
	if idx >= len(s.names) {
		idx = len(s.names) - 1
	}

	if idx != s.index {
		img, err := s.decode(idx)
		if err != nil {
			return err
		}
		s.current = img
		s.index = idx
	}
	s.pos = t
	return nil
}

// Position returns the current playback position in seconds.
func (s *Source) Position() float64 {
	return s.pos
}

// CurrentFrame returns the frame at the current position.
func (s *Source) CurrentFrame() image.Image {
	return s.current
}

func (s *Source) decode(idx int) (image.Image, error) {
	name := s.names[idx]
	data, err := s.fs.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read frame %s: %w", name, err)
	}

	format := ports.FormatJPEG
	if strings.ToLower(filepath.Ext(name)) == ".png" {
		format = ports.FormatPNG
	}

	img, err := s.renderer.DecodeImage(data, format)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", name, err)
	}
	return img, nil
}

// Ensure Source implements ports.FrameSource
var _ ports.FrameSource = (*Source)(nil)
