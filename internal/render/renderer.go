package render

import (
	"sync"

	"github.com/nmurthy/posecam/internal/pose"
)

// Default drawing dimensions.
const (
	DefaultRadius    = 4
	DefaultLineWidth = 2
)

// Renderer draws detected poses onto a Canvas. Keypoints are colored by
// body side, skeleton segments by tracking identity. The score threshold
// and tracking flag mirror the active model configuration and can be
// updated between frames.
type Renderer struct {
	meta           pose.ModelMeta
	mu             sync.RWMutex
	scoreThreshold float64
	enableTracking bool
}

// New creates a Renderer for the given model metadata. The score
// threshold defaults to 0, meaning every keypoint renders.
func New(meta pose.ModelMeta) *Renderer {
	return &Renderer{meta: meta}
}

// SetScoreThreshold updates the minimum confidence a keypoint or
// skeleton segment must reach to be drawn.
func (r *Renderer) SetScoreThreshold(t float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scoreThreshold = t
}

// SetTracking toggles identity-based skeleton coloring.
func (r *Renderer) SetTracking(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enableTracking = enabled
}

// SetModelMeta switches the skeleton metadata, used when the active
// model changes.
func (r *Renderer) SetModelMeta(meta pose.ModelMeta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meta = meta
}

// DrawResults draws every pose in the list onto the canvas. Poses draw
// independently of each other; colors can collide when tracking
// identities repeat modulo the palette size, which is expected.
func (r *Renderer) DrawResults(c Canvas, poses []pose.Pose) {
	for i := range poses {
		r.drawResult(c, &poses[i])
	}
}

// drawResult draws a single pose. A pose without keypoints is nothing
// to draw, never an error. Skeleton segments go down first and keypoint
// circles after, so on a painter's-model surface the keypoints stay
// visibly on top of the connecting lines.
func (r *Renderer) drawResult(c Canvas, p *pose.Pose) {
	if len(p.Keypoints) == 0 {
		return
	}
	r.mu.RLock()
	threshold := r.scoreThreshold
	tracking := r.enableTracking
	meta := r.meta
	r.mu.RUnlock()

	r.drawSkeleton(c, p, meta, threshold, tracking)
	r.drawKeypoints(c, p.Keypoints, meta, threshold)
}

// drawKeypoints draws the pose's keypoints as filled circles, grouped
// and colored by body side: middle red, left green, right orange. The
// white stroke is set once before the middle group and deliberately
// persists for the left and right groups, matching the demo's original
// look.
func (r *Renderer) drawKeypoints(c Canvas, kps []pose.Keypoint,
	meta pose.ModelMeta, threshold float64) {

	sides := meta.SideIndex()

	c.SetFillColor(Red)
	c.SetStrokeColor(White)
	c.SetLineWidth(DefaultLineWidth)
	for _, i := range sides.Middle {
		r.drawKeypoint(c, kps, i, threshold)
	}

	c.SetFillColor(Green)
	for _, i := range sides.Left {
		r.drawKeypoint(c, kps, i, threshold)
	}

	c.SetFillColor(Orange)
	for _, i := range sides.Right {
		r.drawKeypoint(c, kps, i, threshold)
	}
}

// drawKeypoint draws one keypoint if its score reaches the threshold.
// A nil score counts as 0 here, so unscored points only render while
// the threshold sits at its default of 0.
func (r *Renderer) drawKeypoint(c Canvas, kps []pose.Keypoint, i int,
	threshold float64) {

	if i >= len(kps) {
		return
	}
	kp := kps[i]

	score := 0.0
	if kp.Score != nil {
		score = *kp.Score
	}
	if score < threshold {
		return
	}

	c.Circle(kp.X, kp.Y, DefaultRadius)
}

// drawSkeleton draws a line segment for every adjacent keypoint pair of
// the model topology. With tracking enabled and a tracking identity on
// the pose, the color comes from the fixed palette keyed by identity
// mod 20; otherwise the skeleton is red. A nil endpoint score counts as
// 1.0 here, the opposite convention from keypoint circles.
func (r *Renderer) drawSkeleton(c Canvas, p *pose.Pose, meta pose.ModelMeta,
	threshold float64, tracking bool) {

	col := Red
	if tracking && p.ID != nil {
		// IDs arrive unvalidated from the model service; Go's % keeps
		// the sign, so wrap negatives back into the palette.
		idx := *p.ID % len(posePalette)
		if idx < 0 {
			idx += len(posePalette)
		}
		col = posePalette[idx]
	}

	c.SetFillColor(col)
	c.SetStrokeColor(col)
	c.SetLineWidth(DefaultLineWidth)

	for _, pair := range meta.AdjacentPairs() {
		i, j := pair[0], pair[1]
		if i >= len(p.Keypoints) || j >= len(p.Keypoints) {
			continue
		}
		kp1, kp2 := p.Keypoints[i], p.Keypoints[j]

		score1, score2 := 1.0, 1.0
		if kp1.Score != nil {
			score1 = *kp1.Score
		}
		if kp2.Score != nil {
			score2 = *kp2.Score
		}

		if score1 >= threshold && score2 >= threshold {
			c.Line(kp1.X, kp1.Y, kp2.X, kp2.Y)
		}
	}
}
