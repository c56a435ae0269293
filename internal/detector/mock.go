package detector

import (
	"gocv.io/x/gocv"

	"github.com/nmurthy/posecam/internal/pose"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	poses []pose.Pose
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetPoses sets the poses that will be returned by Detect.
func (m *MockDetector) SetPoses(poses []pose.Pose) {
	m.poses = poses
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured poses or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]pose.Pose, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.poses, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// StandingPose returns a preset 17-keypoint COCO pose of a person
// standing upright, centered in a 640x480 frame, with uniform scores.
func StandingPose(id int, score float64) pose.Pose {
	coords := [][2]float64{
		{320, 80},  // nose
		{310, 70},  // left eye
		{330, 70},  // right eye
		{295, 75},  // left ear
		{345, 75},  // right ear
		{270, 140}, // left shoulder
		{370, 140}, // right shoulder
		{250, 210}, // left elbow
		{390, 210}, // right elbow
		{240, 280}, // left wrist
		{400, 280}, // right wrist
		{285, 270}, // left hip
		{355, 270}, // right hip
		{280, 350}, // left knee
		{360, 350}, // right knee
		{275, 430}, // left ankle
		{365, 430}, // right ankle
	}

	p := pose.Pose{
		ID:        pose.Int(id),
		Score:     pose.Float(score),
		Keypoints: make([]pose.Keypoint, len(coords)),
	}
	for i, c := range coords {
		p.Keypoints[i] = pose.Keypoint{
			X:     c[0],
			Y:     c[1],
			Score: pose.Float(score),
		}
	}
	return p
}

// UnscoredPose returns a COCO pose whose keypoints all carry a nil
// score, as some models report when confidence is unavailable.
func UnscoredPose(id int) pose.Pose {
	p := StandingPose(id, 0)
	for i := range p.Keypoints {
		p.Keypoints[i].Score = nil
	}
	p.Score = nil
	return p
}
