// Package testdata generates synthetic video frames for tests, so the
// pipeline and activity detector can be exercised without a camera or
// recorded footage.
package testdata

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Frame dimensions matching the default capture resolution.
const (
	FrameWidth  = 640
	FrameHeight = 480
)

// BlankFrame returns a black BGR frame. The caller closes it.
func BlankFrame() *gocv.Mat {
	mat := gocv.NewMatWithSize(FrameHeight, FrameWidth, gocv.MatTypeCV8UC3)
	return &mat
}

// FrameWithSubject returns a frame with a bright rectangle standing in
// for a person, offset horizontally by dx. Consecutive frames with
// different offsets read as scene activity.
func FrameWithSubject(dx int) *gocv.Mat {
	mat := gocv.NewMatWithSize(FrameHeight, FrameWidth, gocv.MatTypeCV8UC3)

	rect := image.Rect(200+dx, 100, 440+dx, 460)
	gocv.Rectangle(&mat, rect, color.RGBA{R: 200, G: 200, B: 200, A: 255}, -1)

	return &mat
}

// MovingSequence returns n frames of a subject sliding across the
// scene. The caller closes each frame.
func MovingSequence(n int) []*gocv.Mat {
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		frames[i] = FrameWithSubject(i * 20)
	}
	return frames
}

// CloseFrames closes every frame in a sequence.
func CloseFrames(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}
