package pose

import "testing"

func TestMetaFor(t *testing.T) {
	tests := []struct {
		model     string
		keypoints int
		pairs     int
	}{
		{ModelMoveNet, 17, 16},
		{ModelPoseNet, 17, 16},
		{ModelBlazePose, 33, 35},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			meta, err := MetaFor(tt.model)
			if err != nil {
				t.Fatalf("MetaFor(%q) error = %v", tt.model, err)
			}
			if meta.Name() != tt.model {
				t.Errorf("Name() = %q, want %q", meta.Name(), tt.model)
			}

			sides := meta.SideIndex()
			total := len(sides.Middle) + len(sides.Left) + len(sides.Right)
			if total != tt.keypoints {
				t.Errorf("side partition covers %d keypoints, want %d", total, tt.keypoints)
			}
			if len(sides.Left) != len(sides.Right) {
				t.Errorf("asymmetric partition: %d left vs %d right",
					len(sides.Left), len(sides.Right))
			}

			if got := len(meta.AdjacentPairs()); got != tt.pairs {
				t.Errorf("AdjacentPairs() has %d pairs, want %d", got, tt.pairs)
			}
		})
	}
}

func TestMetaForUnknownModel(t *testing.T) {
	if _, err := MetaFor("handpose"); err == nil {
		t.Fatal("expected error for unknown model")
	}
}

func TestSidePartitionDisjoint(t *testing.T) {
	for _, model := range []string{ModelMoveNet, ModelBlazePose} {
		t.Run(model, func(t *testing.T) {
			meta, err := MetaFor(model)
			if err != nil {
				t.Fatal(err)
			}
			sides := meta.SideIndex()

			seen := make(map[int]bool)
			for _, group := range [][]int{sides.Middle, sides.Left, sides.Right} {
				for _, i := range group {
					if seen[i] {
						t.Errorf("keypoint %d appears in more than one side group", i)
					}
					seen[i] = true
				}
			}
		})
	}
}

func TestAdjacentPairsInRange(t *testing.T) {
	for _, model := range []string{ModelMoveNet, ModelBlazePose} {
		t.Run(model, func(t *testing.T) {
			meta, err := MetaFor(model)
			if err != nil {
				t.Fatal(err)
			}
			sides := meta.SideIndex()
			n := len(sides.Middle) + len(sides.Left) + len(sides.Right)

			for _, p := range meta.AdjacentPairs() {
				if p[0] < 0 || p[0] >= n || p[1] < 0 || p[1] >= n {
					t.Errorf("pair %v out of range for %d keypoints", p, n)
				}
			}
		})
	}
}
