package app

import (
	"context"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

// Step runs one loop iteration and reports whether the display asked to
// quit. A frame read failure skips the frame. A detection failure counts
// as no hand so the frame is still shown and the quit key still polled.
//
// Iteration:
// 1. Read a mirrored frame from the camera
// 2. Detect hands and keep the first one
// 3. Convert it to pixel space and run the interpreter
// 4. Record metrics, journal rows and tray status
// 5. Draw the overlay and show it
func (a *App) Step(ctx context.Context) bool {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		a.frameLog.Debug().Err(err).Msg("frame read failed")
		return false
	}
	defer frame.Close()

	hands, err := a.detector.Detect(frame)
	if err != nil {
		a.frameLog.Warn().Err(err).Msg("hand detection failed")
		hands = nil
	}

	hand := detector.Primary(hands)
	if !a.IsEnabled() {
		hand = nil
	}

	w, h := frameSize(frame, a.camera)
	f := gesture.FrameFromHand(hand, w, h)

	ev := a.interp.Process(a.state, f)
	a.observe(ctx, ev)

	a.renderer.Draw(frame, f, ev)
	return a.display.Show(frame)
}

// frameSize prefers the decoded frame's dimensions over the requested
// capture size.
func frameSize(frame *gocv.Mat, cam capture.Camera) (int, int) {
	if frame != nil && !frame.Empty() {
		return frame.Cols(), frame.Rows()
	}
	return cam.Size()
}

func (a *App) observe(ctx context.Context, ev gesture.Event) {
	a.metrics.record(ctx, ev)
	a.journalEvent(ev)
	a.publishStatus(ev)

	if a.config.OnEvent != nil {
		a.config.OnEvent(ev)
	}
}

func (a *App) journalEvent(ev gesture.Event) {
	if a.journal == nil {
		return
	}

	var rows []store.Event
	if ev.ModeChanged {
		rows = append(rows, store.Event{Kind: store.EventModeSwitch, Mode: ev.Mode.String(), OK: true})
	}
	for _, f := range ev.Fired {
		row := store.Event{
			Kind:    store.EventCommand,
			Mode:    ev.Mode.String(),
			Command: string(f.Command),
			OK:      f.Err == nil,
		}
		if f.Err != nil {
			row.Error = f.Err.Error()
		}
		rows = append(rows, row)
	}

	for i := range rows {
		rows[i].SessionID = a.session
		rows[i].CreatedAt = ev.Time
		if err := a.journal.Events().Record(&rows[i]); err != nil {
			a.log.Warn().Err(err).Str("kind", string(rows[i].Kind)).Msg("journal write failed")
		}
	}
}

func (a *App) publishStatus(ev gesture.Event) {
	status := a.config.Status
	if status == nil {
		return
	}

	if !a.shown || ev.Mode != a.lastMode {
		status.SetMode(ev.Mode.String())
		a.lastMode = ev.Mode
		a.shown = true
	}
	if cmd, ok := ev.Command(); ok {
		status.SetLastCommand(cmd.Label())
	}
}
