package pose

import "fmt"

// Side classifies a keypoint by which half of the body it belongs to.
type Side int

const (
	SideMiddle Side = iota
	SideLeft
	SideRight
)

// Sides partitions a model's keypoint indices into left/right/middle groups.
type Sides struct {
	Middle []int
	Left   []int
	Right  []int
}

// ModelMeta describes the static skeleton metadata of one pose model
// variant: the left/right/middle keypoint partition and the adjacent
// keypoint pairs that make up the skeleton topology.
type ModelMeta interface {
	Name() string
	SideIndex() Sides
	AdjacentPairs() [][2]int
}

// Supported model names.
const (
	ModelMoveNet   = "movenet"
	ModelPoseNet   = "posenet"
	ModelBlazePose = "blazepose"
)

// MetaFor returns the skeleton metadata for the named model.
func MetaFor(model string) (ModelMeta, error) {
	switch model {
	case ModelMoveNet:
		return cocoMeta{name: ModelMoveNet}, nil
	case ModelPoseNet:
		return cocoMeta{name: ModelPoseNet}, nil
	case ModelBlazePose:
		return blazePoseMeta{}, nil
	default:
		return nil, fmt.Errorf("unknown pose model %q", model)
	}
}

// COCO 17-keypoint topology shared by MoveNet and PoseNet.
// 0 nose, 1 left eye, 2 right eye, 3 left ear, 4 right ear,
// 5 left shoulder, 6 right shoulder, 7 left elbow, 8 right elbow,
// 9 left wrist, 10 right wrist, 11 left hip, 12 right hip,
// 13 left knee, 14 right knee, 15 left ankle, 16 right ankle.
var (
	cocoSides = Sides{
		Middle: []int{0},
		Left:   []int{1, 3, 5, 7, 9, 11, 13, 15},
		Right:  []int{2, 4, 6, 8, 10, 12, 14, 16},
	}

	cocoPairs = [][2]int{
		{0, 1}, {0, 2}, {1, 3}, {2, 4}, {5, 7}, {7, 9}, {6, 8}, {8, 10},
		{5, 6}, {5, 11}, {6, 12}, {11, 12}, {11, 13}, {13, 15}, {12, 14},
		{14, 16},
	}
)

type cocoMeta struct {
	name string
}

func (m cocoMeta) Name() string            { return m.name }
func (m cocoMeta) SideIndex() Sides        { return cocoSides }
func (m cocoMeta) AdjacentPairs() [][2]int { return cocoPairs }

// BlazePose 33-keypoint topology. 0 is the nose; points 1-10 cover the
// face, 11-22 the arms and hands, 23-32 the legs and feet.
var (
	blazePoseSides = Sides{
		Middle: []int{0},
		Left:   []int{1, 2, 3, 7, 9, 11, 13, 15, 17, 19, 21, 23, 25, 27, 29, 31},
		Right:  []int{4, 5, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32},
	}

	blazePosePairs = [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 7}, {0, 4}, {4, 5}, {5, 6}, {6, 8},
		{9, 10}, {11, 12}, {11, 13}, {13, 15}, {15, 17}, {15, 19}, {15, 21},
		{17, 19}, {12, 14}, {14, 16}, {16, 18}, {16, 20}, {16, 22}, {18, 20},
		{11, 23}, {12, 24}, {23, 24}, {23, 25}, {25, 27}, {27, 29}, {27, 31},
		{29, 31}, {24, 26}, {26, 28}, {28, 30}, {28, 32}, {30, 32},
	}
)

type blazePoseMeta struct{}

func (blazePoseMeta) Name() string            { return ModelBlazePose }
func (blazePoseMeta) SideIndex() Sides        { return blazePoseSides }
func (blazePoseMeta) AdjacentPairs() [][2]int { return blazePosePairs }
