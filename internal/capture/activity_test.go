package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestNewActivityDetector(t *testing.T) {
	ad := NewActivityDetector(1.0)
	if ad == nil {
		t.Fatal("NewActivityDetector returned nil")
	}
	defer ad.Close()

	if ad.threshold != 1.0 {
		t.Errorf("threshold = %f, want 1.0", ad.threshold)
	}
	if ad.initialized {
		t.Error("detector should not be initialized initially")
	}
}

func TestActivityDetector_StaticScene(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	ad := NewActivityDetector(1.0)
	defer ad.Close()

	frame1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	// First frame establishes the baseline.
	active, changePercent := ad.Detect(&frame1)
	if active {
		t.Error("first frame should report inactive")
	}
	if changePercent != 0 {
		t.Errorf("first frame changePercent = %f, want 0", changePercent)
	}

	active, changePercent = ad.Detect(&frame2)
	if active {
		t.Errorf("identical frames should report inactive, changePercent = %f", changePercent)
	}
}

func TestActivityDetector_SceneChange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	ad := NewActivityDetector(1.0)
	defer ad.Close()

	blackFrame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer blackFrame.Close()

	whiteFrame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer whiteFrame.Close()
	whiteFrame.SetTo(gocv.NewScalar(255, 255, 255, 0))

	ad.Detect(&blackFrame)

	active, changePercent := ad.Detect(&whiteFrame)
	if !active {
		t.Errorf("black to white should report active, changePercent = %f", changePercent)
	}
	if changePercent < 50.0 {
		t.Errorf("changePercent = %f, expected > 50%% for full-frame change", changePercent)
	}
}

func TestActivityDetector_NilFrame(t *testing.T) {
	ad := NewActivityDetector(1.0)
	defer ad.Close()

	active, changePercent := ad.Detect(nil)
	if active || changePercent != 0 {
		t.Errorf("nil frame: got (%v, %f), want (false, 0)", active, changePercent)
	}
}

func TestActivityDetector_Reset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	ad := NewActivityDetector(1.0)
	defer ad.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	ad.Detect(&frame)
	if !ad.initialized {
		t.Error("detector should be initialized after first Detect")
	}

	ad.Reset()
	if ad.initialized {
		t.Error("detector should not be initialized after Reset")
	}

	// The frame after a reset re-establishes the baseline.
	active, _ := ad.Detect(&frame)
	if active {
		t.Error("first frame after Reset should report inactive")
	}
}
