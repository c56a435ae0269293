package detector

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"

	"github.com/nmurthy/posecam/internal/pose"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != pose.ModelMoveNet {
		t.Errorf("Model = %q, want %q", cfg.Model, pose.ModelMoveNet)
	}
	if cfg.Backend != "cpu" {
		t.Errorf("Backend = %q, want cpu", cfg.Backend)
	}
	if cfg.MaxPoses != 6 {
		t.Errorf("MaxPoses = %d, want 6", cfg.MaxPoses)
	}
	if !cfg.EnableTracking {
		t.Error("EnableTracking should default to true")
	}
}

func TestMockDetector_Detect(t *testing.T) {
	m := NewMockDetector()
	m.SetPoses([]pose.Pose{StandingPose(1, 0.9)})

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	poses, err := m.Detect(&frame)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(poses) != 1 {
		t.Fatalf("Detect() returned %d poses, want 1", len(poses))
	}
	if poses[0].ID == nil || *poses[0].ID != 1 {
		t.Errorf("pose ID = %v, want 1", poses[0].ID)
	}
}

func TestMockDetector_Error(t *testing.T) {
	m := NewMockDetector()
	wantErr := errors.New("model service unavailable")
	m.SetError(wantErr)

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	if _, err := m.Detect(&frame); !errors.Is(err, wantErr) {
		t.Errorf("Detect() error = %v, want %v", err, wantErr)
	}
}

func TestStandingPose(t *testing.T) {
	p := StandingPose(3, 0.8)

	if len(p.Keypoints) != 17 {
		t.Fatalf("StandingPose has %d keypoints, want 17", len(p.Keypoints))
	}
	if p.ID == nil || *p.ID != 3 {
		t.Errorf("pose ID = %v, want 3", p.ID)
	}
	for i, kp := range p.Keypoints {
		if kp.Score == nil || *kp.Score != 0.8 {
			t.Errorf("keypoint %d score = %v, want 0.8", i, kp.Score)
		}
		if kp.X < 0 || kp.X >= 640 || kp.Y < 0 || kp.Y >= 480 {
			t.Errorf("keypoint %d at (%f, %f) is outside the 640x480 frame", i, kp.X, kp.Y)
		}
	}
}

func TestUnscoredPose(t *testing.T) {
	p := UnscoredPose(0)

	if p.Score != nil {
		t.Errorf("pose score = %v, want nil", p.Score)
	}
	for i, kp := range p.Keypoints {
		if kp.Score != nil {
			t.Errorf("keypoint %d score = %v, want nil", i, kp.Score)
		}
	}
}
