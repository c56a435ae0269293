package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// ActivityDetector gates the detection pipeline on scene activity using
// frame differencing with Gaussian blur for noise reduction. When the
// scene is static the pipeline drops to its idle frame rate and skips
// pose detection entirely.
type ActivityDetector struct {
	threshold   float64
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

// Activity detection constants.
const (
	// GaussianBlurSize is the kernel size for Gaussian blur (21x21).
	GaussianBlurSize = 21
	// DiffThreshold is the binary threshold for difference detection.
	DiffThreshold = 25
)

// NewActivityDetector creates an ActivityDetector with the given
// threshold: the percentage of pixels that must change between frames
// for the scene to count as active.
func NewActivityDetector(threshold float64) *ActivityDetector {
	return &ActivityDetector{
		threshold: threshold,
		prevGray:  gocv.NewMat(),
	}
}

// Detect compares a frame against the previous one and reports whether
// the scene is active, along with the percentage of pixels that changed.
// The first frame establishes the baseline and reports inactive.
func (a *ActivityDetector) Detect(frame *gocv.Mat) (bool, float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred,
		image.Point{X: GaussianBlurSize, Y: GaussianBlurSize}, 0, 0,
		gocv.BorderDefault)

	if !a.initialized {
		blurred.CopyTo(&a.prevGray)
		a.initialized = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, a.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, DiffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()

	changePercent := float64(nonZero) / float64(totalPixels) * 100.0

	blurred.CopyTo(&a.prevGray)

	return changePercent > a.threshold, changePercent
}

// Reset clears the baseline frame so the next Detect call starts over.
func (a *ActivityDetector) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.initialized = false
}

// Close releases the internal Mat resources.
func (a *ActivityDetector) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.prevGray.Close()
}
