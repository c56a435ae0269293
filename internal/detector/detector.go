// Package detector wraps the external pose-estimation model service.
// All estimation happens inside the service; this package only moves
// frames in and pose lists out.
package detector

import (
	"gocv.io/x/gocv"

	"github.com/nmurthy/posecam/internal/pose"
)

// Detector defines the interface for pose detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns the detected poses.
	// Returns an empty slice when no bodies are found.
	Detect(frame *gocv.Mat) ([]pose.Pose, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds detection options passed to the model service.
type Config struct {
	// Model is the pose model to load (movenet, posenet, blazepose).
	Model string

	// Backend is the compute delegate the service runs with (cpu, gpu, npu).
	Backend string

	// MaxPoses is the maximum number of bodies to detect per frame.
	MaxPoses int

	// EnableTracking asks the service to assign stable tracking IDs to
	// poses across frames.
	EnableTracking bool
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Model:          pose.ModelMoveNet,
		Backend:        "cpu",
		MaxPoses:       6,
		EnableTracking: true,
	}
}
