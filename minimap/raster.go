package minimap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

const (
	gridLineWidth = 1.0
	wallLineWidth = 2.0

	// maxRasterSide caps the rasterized image side in pixels.
	maxRasterSide = 4096
)

var ErrInvalidViewport = errors.New("viewport cannot be rasterized")

// Background is the fill color behind a rasterized drawing.
var Background = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}

// CheckRaster returns ErrInvalidViewport unless the viewport is finite,
// positive and at most 4096 pixels on each side.
func (s Size) CheckRaster() error {
	if !s.Finite() || s.W <= 0 || s.H <= 0 || math.Ceil(s.W) > maxRasterSide || math.Ceil(s.H) > maxRasterSide {
		return fmt.Errorf("%w: %vx%v", ErrInvalidViewport, s.W, s.H)
	}
	return nil
}

// Render rasterizes a drawing into an image the size of its viewport.
func Render(d Drawing) (*image.RGBA, error) {
	if err := d.Viewport.CheckRaster(); err != nil {
		return nil, err
	}
	w, h := int(math.Ceil(d.Viewport.W)), int(math.Ceil(d.Viewport.H))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	for _, s := range d.GridLines {
		stroke(img, s, gridLineWidth)
	}
	for _, s := range d.Walls {
		stroke(img, s, wallLineWidth)
	}
	if d.Marker != nil {
		fill(img, d.Marker.Points[:], d.Marker.Color)
	}
	return img, nil
}

// RenderPNG rasterizes a drawing and writes it as PNG.
func RenderPNG(d Drawing, w io.Writer) error {
	img, err := Render(d)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// stroke paints a segment as a quad of the given width.
func stroke(dst *image.RGBA, s Segment, width float64) {
	dx, dy := s.To.X-s.From.X, s.To.Y-s.From.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}

	nx, ny := -dy/length*width/2, dx/length*width/2
	fill(dst, []Point{
		{X: s.From.X + nx, Y: s.From.Y + ny},
		{X: s.To.X + nx, Y: s.To.Y + ny},
		{X: s.To.X - nx, Y: s.To.Y - ny},
		{X: s.From.X - nx, Y: s.From.Y - ny},
	}, s.Color)
}

// fill paints a closed polygon.
func fill(dst *image.RGBA, points []Point, c color.RGBA) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}
