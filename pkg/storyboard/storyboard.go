// Package storyboard renders a video's segment timeline as an image: one
// colored bar per segment on a time axis, boundary ticks, and optional
// frame thumbnails.
package storyboard

import (
	"fmt"
	"image"
	"image/color"

	"github.com/user/sceneline/pkg/ports"
	"github.com/user/sceneline/pkg/timeline"
)

// Theme defines storyboard styling. Palette order matches the timeline color
// index, so storyboard colors agree with any other display layer.
type Theme struct {
	BackgroundColor color.Color
	TrackColor      color.Color
	TickColor       color.Color
	CursorColor     color.Color
	ActiveStroke    color.Color
	TextColor       color.Color
	Palette         []color.RGBA
}

// DefaultTheme returns the default storyboard theme.
func DefaultTheme() Theme {
	return Theme{
		BackgroundColor: color.RGBA{R: 30, G: 30, B: 30, A: 255},
		TrackColor:      color.RGBA{R: 50, G: 50, B: 50, A: 255},
		TickColor:       color.RGBA{R: 120, G: 120, B: 120, A: 255},
		CursorColor:     color.White,
		ActiveStroke:    color.White,
		TextColor:       color.RGBA{R: 220, G: 220, B: 220, A: 255},
		Palette: []color.RGBA{
			{R: 76, G: 175, B: 80, A: 255},
			{R: 33, G: 150, B: 243, A: 255},
			{R: 255, G: 152, B: 0, A: 255},
			{R: 156, G: 39, B: 176, A: 255},
			{R: 244, G: 67, B: 54, A: 255},
			{R: 0, G: 188, B: 212, A: 255},
			{R: 255, G: 235, B: 59, A: 255},
			{R: 121, G: 85, B: 72, A: 255},
		},
	}
}

// Input describes one storyboard rendering.
type Input struct {
	Asset      timeline.VideoAsset
	Segments   []timeline.Segment
	Boundaries timeline.BoundaryList
	// Thumbnails maps segment id to a preview frame, drawn above the bar.
	Thumbnails map[string]image.Image
	// Cursor is the playback position in seconds; negative to omit.
	Cursor float64
	Width  int
	Height int
	Theme  Theme
}

// DefaultInput returns an Input with default dimensions and theme for the
// given asset.
func DefaultInput(asset timeline.VideoAsset) Input {
	return Input{
		Asset:  asset,
		Cursor: -1,
		Width:  960,
		Height: 140,
		Theme:  DefaultTheme(),
	}
}

const (
	trackMargin  = 16
	trackHeight  = 24
	tickHeight   = 8
	thumbPadding = 4
)

// Render draws the storyboard. The asset duration must be known; segments
// and boundaries outside [0, duration] are clipped to the canvas.
func Render(renderer ports.Renderer, input Input) (image.Image, error) {
	if !input.Asset.DurationKnown || input.Asset.Duration <= 0 {
		return nil, fmt.Errorf("storyboard: duration of %s is unknown", input.Asset.ID)
	}
	if input.Width <= 0 || input.Height <= 0 {
		return nil, fmt.Errorf("storyboard: invalid canvas size %dx%d", input.Width, input.Height)
	}

	theme := input.Theme
	if len(theme.Palette) == 0 {
		theme = DefaultTheme()
	}

	canvas := renderer.CreateCanvas(input.Width, input.Height, theme.BackgroundColor)

	trackY := input.Height - trackMargin - trackHeight
	trackW := input.Width - trackMargin*2
	durationMs := input.Asset.DurationMs()

	toX := func(ms int64) int {
		if ms < 0 {
			ms = 0
		}
		if ms > durationMs {
			ms = durationMs
		}
		return trackMargin + int(int64(trackW)*ms/durationMs)
	}

	// Track band
	canvas.DrawRect(trackMargin, trackY, trackW, trackHeight, theme.TrackColor)

	// Active-first display order keeps the active bar on top of overlaps.
	ordered := timeline.SortedForDisplay(input.Segments, input.Cursor)
	for i := len(ordered) - 1; i >= 0; i-- {
		s := ordered[i]
		x0 := toX(s.StartMs)
		x1 := toX(s.EndMs)
		if x1 <= x0 {
			x1 = x0 + 1
		}
		barColor := theme.Palette[timeline.ColorIndex(s, len(theme.Palette))]
		canvas.DrawRect(x0, trackY, x1-x0, trackHeight, barColor)

		if thumb, ok := input.Thumbnails[s.ID]; ok && thumb != nil {
			thumbH := trackY - trackMargin - thumbPadding
			if thumbH > 0 {
				thumbW := x1 - x0
				canvas.DrawImageScaled(thumb, x0, trackMargin, thumbW, thumbH)
			}
		}
	}

	if active, ok := timeline.ActiveSegment(input.Segments, input.Cursor); ok {
		x0 := toX(active.StartMs)
		x1 := toX(active.EndMs)
		canvas.DrawRectStroke(x0, trackY, x1-x0, trackHeight, theme.ActiveStroke, 2)
	}

	// Boundary ticks under the track
	for _, b := range input.Boundaries {
		x := toX(int64(b * 1000))
		canvas.DrawLine(x, trackY+trackHeight, x, trackY+trackHeight+tickHeight, theme.TickColor, 1)
	}

	// Cursor line across the full height
	if input.Cursor >= 0 {
		x := toX(int64(input.Cursor * 1000))
		canvas.DrawLine(x, trackMargin/2, x, input.Height-trackMargin/2, theme.CursorColor, 1)
	}

	canvas.DrawText(input.Asset.ID, trackMargin, input.Height-2, ports.TextStyle{
		FontSize: 11,
		Color:    theme.TextColor,
	})

	return canvas.ToImage(), nil
}
