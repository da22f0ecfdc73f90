package mocks

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/user/sceneline/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer. The default behaviors
// are real enough for pixel-level tests: ResizeImage does a nearest-neighbor
// scale and EncodeImage returns a placeholder payload.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc  func(data []byte, format ports.ImageFormat) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return NewCanvas(width, height, bg)
}

func (m *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data, format)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{0xFF, 0xD8}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	srcBounds := img.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sx := srcBounds.Min.X + x*srcBounds.Dx()/width
			sy := srcBounds.Min.Y + y*srcBounds.Dy()/height
			dst.Set(x, y, img.At(sx, sy))
		}
	}
	return dst
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas backed by a real RGBA
// image. Drawing calls are recorded for verification.
type Canvas struct {
	img *image.RGBA

	RectCalls  []RectCall
	ImageCalls []ImageCall
	TextCalls  []string
	LineCalls  int
}

// RectCall records a call to DrawRect or DrawRectStroke.
type RectCall struct {
	X, Y, W, H int
	Color      color.Color
}

// ImageCall records a call to DrawImage or DrawImageScaled.
type ImageCall struct {
	X, Y, W, H int
}

// NewCanvas creates a mock canvas filled with the background color.
func NewCanvas(width, height int, bg color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	return &Canvas{img: img}
}

func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.ImageCalls = append(c.ImageCalls, ImageCall{X: x, Y: y, W: img.Bounds().Dx(), H: img.Bounds().Dy()})
	draw.Draw(c.img, img.Bounds().Add(image.Pt(x, y)), img, img.Bounds().Min, draw.Over)
}

func (c *Canvas) DrawImageScaled(img image.Image, x, y, width, height int) {
	c.ImageCalls = append(c.ImageCalls, ImageCall{X: x, Y: y, W: width, H: height})
}

func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.RectCalls = append(c.RectCalls, RectCall{X: x, Y: y, W: w, H: h, Color: col})
	draw.Draw(c.img, image.Rect(x, y, x+w, y+h), &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func (c *Canvas) DrawRectStroke(x, y, w, h int, col color.Color, strokeWidth float64) {
	c.RectCalls = append(c.RectCalls, RectCall{X: x, Y: y, W: w, H: h, Color: col})
}

func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	c.TextCalls = append(c.TextCalls, text)
}

func (c *Canvas) DrawLine(x1, y1, x2, y2 int, col color.Color, width float64) {
	c.LineCalls++
}

func (c *Canvas) ToImage() image.Image {
	return c.img
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
