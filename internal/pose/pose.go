// Package pose defines the pose data model produced by the detector and
// the per-model skeleton metadata used for rendering.
package pose

// Keypoint is one anatomical landmark with position and confidence score.
// Score is nil when the model does not report a confidence for the point.
type Keypoint struct {
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Score *float64 `json:"score"`
	Name  string   `json:"name,omitempty"`
}

// Pose is one detected body instance. ID is the tracking identity assigned
// by the model across frames, nil when tracking is disabled or the model
// does not track. Keypoints are produced fresh each frame and discarded
// after rendering; list order follows the model's keypoint index order.
type Pose struct {
	Keypoints []Keypoint `json:"keypoints"`
	ID        *int       `json:"id,omitempty"`
	Score     *float64   `json:"score,omitempty"`
}

// Float returns a pointer to v, for building optional scores.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v, for building optional tracking IDs.
func Int(v int) *int {
	return &v
}
