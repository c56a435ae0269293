// Package render draws detected poses onto a 2D drawing surface as
// keypoint circles and skeleton line segments.
package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Canvas is an immediate-mode 2D drawing surface. Fill color, stroke
// color and line width are persistent state: a value stays current
// until the next Set call, which the renderer relies on.
type Canvas interface {
	SetFillColor(c color.RGBA)
	SetStrokeColor(c color.RGBA)
	SetLineWidth(w float64)

	// Circle draws a filled circle with the current fill color and
	// outlines it with the current stroke color and line width.
	Circle(x, y, radius float64)

	// Line draws a straight segment with the current stroke color and
	// line width.
	Line(x1, y1, x2, y2 float64)
}

// MatCanvas implements Canvas on top of a gocv.Mat, so poses can be
// painted directly onto a captured video frame.
type MatCanvas struct {
	mat       *gocv.Mat
	fill      color.RGBA
	stroke    color.RGBA
	lineWidth float64
}

// NewMatCanvas wraps the given frame. The Mat stays owned by the caller.
func NewMatCanvas(mat *gocv.Mat) *MatCanvas {
	return &MatCanvas{
		mat:       mat,
		fill:      Black,
		stroke:    Black,
		lineWidth: 1,
	}
}

func (c *MatCanvas) SetFillColor(col color.RGBA) {
	c.fill = col
}

func (c *MatCanvas) SetStrokeColor(col color.RGBA) {
	c.stroke = col
}

func (c *MatCanvas) SetLineWidth(w float64) {
	c.lineWidth = w
}

func (c *MatCanvas) Circle(x, y, radius float64) {
	center := image.Pt(int(x), int(y))
	gocv.Circle(c.mat, center, int(radius), c.fill, -1)
	gocv.Circle(c.mat, center, int(radius), c.stroke, c.thickness())
}

func (c *MatCanvas) Line(x1, y1, x2, y2 float64) {
	gocv.Line(c.mat, image.Pt(int(x1), int(y1)), image.Pt(int(x2), int(y2)),
		c.stroke, c.thickness())
}

func (c *MatCanvas) thickness() int {
	if c.lineWidth < 1 {
		return 1
	}
	return int(c.lineWidth)
}
