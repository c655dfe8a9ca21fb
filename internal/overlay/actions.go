package overlay

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/trackworks/poseoverlay/internal/capture"
	"github.com/trackworks/poseoverlay/internal/vr"
)

// CapturePoint snapshots the pose of the given controller, records it in
// the store, and drops an axes marker at the snapshot. It is the
// programmatic form of the trigger binding and honours the same mute:
// while the overlay is disabled it returns ErrBindingsMuted.
func (o *Overlay) CapturePoint(controllerIndex int) (capture.Point, error) {
	if !o.bindings.buttonEnabled(vr.ButtonTrigger) {
		return capture.Point{}, ErrBindingsMuted
	}

	ctrl, ok := o.registry.Controller(controllerIndex)
	if !ok {
		o.logger.Warn("capture from unknown controller", "index", controllerIndex)
		return capture.Point{}, fmt.Errorf("%w: %d", ErrUnknownController, controllerIndex)
	}

	pose := ctrl.Pose()
	point := o.store.Capture(controllerIndex, pose)

	marker := o.engine.NewAxes(captureAxesScale)
	marker.SetPose(pose)

	o.mu.Lock()
	marker.SetVisible(o.registry.Enabled())
	o.markers = append(o.markers, marker)
	o.mu.Unlock()

	for _, sink := range o.sinks {
		sink.PublishCapture(point)
	}

	o.logger.Info("point captured",
		"sequence", point.Sequence,
		"controller", ctrl.ID(),
		"total", o.store.Len())
	return point, nil
}

// SavePoints writes the captured points to the configured TSV file and, when
// an archive is configured, records the set as a session. Archive failures
// are logged but do not fail the save.
func (o *Overlay) SavePoints() error {
	return o.SavePointsTo("")
}

// SavePointsTo is SavePoints with an explicit destination; an empty path
// falls back to the configured save path.
func (o *Overlay) SavePointsTo(path string) error {
	if path == "" {
		path = o.cfg.SavePath
	}
	if err := o.store.Save(path); err != nil {
		o.logger.Error("saving points failed", "path", path, "error", err)
		return err
	}
	o.logger.Info("points saved", "path", path, "count", o.store.Len())

	if o.archive != nil {
		o.mu.Lock()
		ctx := o.ctx
		o.mu.Unlock()
		if ctx == nil {
			ctx = context.Background()
		}
		session, err := o.archive.SaveSession(ctx, path, o.store.Points())
		if err != nil {
			o.logger.Warn("archiving session failed", "error", err)
		} else {
			o.logger.Info("session archived", "session_id", session.ID, "points", session.PointCount)
		}
	}
	return nil
}

// savePoints is the binding action: SavePoints plus the on-screen result.
func (o *Overlay) savePoints() {
	if err := o.SavePoints(); err != nil {
		o.notifier.show("Error: could not save points data.")
		return
	}
	o.notifier.show("Points data saved.")
}

// ClearPoints discards the captured points and their scene markers. It
// returns the number of points removed.
func (o *Overlay) ClearPoints() int {
	o.mu.Lock()
	for _, m := range o.markers {
		m.Remove()
	}
	o.markers = nil
	o.mu.Unlock()

	removed := o.store.Clear()
	o.logger.Info("points cleared", "count", removed)
	return removed
}

// clearPoints is the binding action: ClearPoints plus the on-screen result.
func (o *Overlay) clearPoints() {
	o.ClearPoints()
	o.notifier.show("Points data cleared.")
}

// TakeScreenshot writes the next numbered screenshot into the configured
// directory and returns its path. The counter starts at 1 and survives
// clears, so files from one session never overwrite each other.
func (o *Overlay) TakeScreenshot() (string, error) {
	o.mu.Lock()
	seq := o.screenshotSeq
	o.mu.Unlock()

	path := filepath.Join(o.cfg.ScreenshotDir, fmt.Sprintf("svr_screenshot_%d.bmp", seq))
	if err := o.engine.CaptureScreenshot(path); err != nil {
		o.logger.Error("screenshot failed", "path", path, "error", err)
		return "", err
	}

	o.mu.Lock()
	o.screenshotSeq++
	o.mu.Unlock()

	o.logger.Info("screenshot saved", "path", path)
	return path, nil
}

// saveScreenshot is the binding action: TakeScreenshot plus the on-screen
// result.
func (o *Overlay) saveScreenshot() {
	if _, err := o.TakeScreenshot(); err != nil {
		o.notifier.show("Error: could not save screenshot.")
		return
	}
	o.notifier.show("Screenshot saved.")
}
