package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/nmurthy/posecam/internal/pose"
	"github.com/nmurthy/posecam/internal/render"
)

// runPipeline is the main loop that processes frames from the camera.
// It manages the transitions between idle and active modes based on
// scene activity.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On scene activity, switch to active mode (ActiveFPS)
// 3. Run pose detection on the frame
// 4. Draw keypoints and skeletons onto the frame
// 5. Publish the annotated JPEG and pose list for the stream handlers
// 6. After 2s without activity, switch back to idle mode
func (a *App) runPipeline() {
	activeMode := false
	lastActivity := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			active, _ := a.activity.Detect(frame)

			if active {
				lastActivity = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastActivity) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			var poses []pose.Pose

			if activeMode {
				d := a.Detector()
				if d != nil {
					poses, err = d.Detect(frame)
					if err != nil {
						log.Printf("Error detecting poses: %v", err)
						poses = nil
					}
				}

				if len(poses) > 0 {
					canvas := render.NewMatCanvas(frame)
					a.renderer.DrawResults(canvas, poses)
				}
			}

			a.publish(frame, poses)
			frame.Close()
		}
	}
}

// publish encodes the (possibly annotated) frame and stores it together
// with the pose list for the stream and websocket handlers.
func (a *App) publish(frame *gocv.Mat, poses []pose.Pose) {
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		log.Printf("Error encoding frame: %v", err)
		return
	}
	defer buf.Close()

	jpeg := make([]byte, buf.Len())
	copy(jpeg, buf.GetBytes())

	a.mu.Lock()
	a.latestJPEG = jpeg
	a.latestPoses = poses
	a.mu.Unlock()
}
