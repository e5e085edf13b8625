// Package app runs the capture, detection and interpretation loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/logging"
	"github.com/ayusman/mudra/internal/overlay"
	"github.com/ayusman/mudra/internal/store"
)

// Status receives the values shown in the tray menu.
type Status interface {
	SetMode(mode string)
	SetLastCommand(label string)
}

// Config holds the components the loop drives. Camera, Detector and
// Effectors are required; the rest are optional.
type Config struct {
	Gesture   gesture.Config
	Clock     gesture.Clock
	Camera    capture.Camera
	Detector  detector.Detector
	Effectors gesture.Effectors
	// Display defaults to a headless display.
	Display overlay.Display
	// Journal, when set, records mode switches and commands.
	Journal *store.Store
	Status  Status
	// OnEvent is called with the outcome of every processed frame.
	OnEvent func(gesture.Event)
	Logger  zerolog.Logger
}

// App is the main application that turns camera frames into control events.
// The camera, detector, display and journal passed in Config are owned by
// the App and released when Run returns.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	display  overlay.Display
	renderer overlay.Renderer
	interp   *gesture.Interpreter
	state    *gesture.State
	metrics  *metrics
	journal  *store.Store
	session  string
	clock    gesture.Clock
	log      zerolog.Logger
	frameLog zerolog.Logger

	enabled  bool
	mu       sync.RWMutex
	lastMode gesture.Mode
	shown    bool
}

// New creates a new App. It queries the volume range once; failure to do
// so is returned.
func New(config Config) (*App, error) {
	if config.Camera == nil {
		return nil, fmt.Errorf("camera is required")
	}
	if config.Detector == nil {
		return nil, fmt.Errorf("detector is required")
	}
	if config.Effectors == nil {
		return nil, fmt.Errorf("effectors are required")
	}

	clock := config.Clock
	if clock == nil {
		clock = gesture.SystemClock{}
	}

	interp, err := gesture.NewInterpreter(config.Gesture, config.Effectors, clock, config.Logger)
	if err != nil {
		return nil, err
	}

	mt, err := newMetrics(meter())
	if err != nil {
		return nil, err
	}

	display := config.Display
	if display == nil {
		display = &overlay.Headless{}
	}

	log := logging.Component(config.Logger, "app")

	return &App{
		config:   config,
		camera:   config.Camera,
		detector: config.Detector,
		display:  display,
		interp:   interp,
		state:    gesture.NewState(),
		metrics:  mt,
		journal:  config.Journal,
		clock:    clock,
		log:      log,
		frameLog: logging.Sampled(log),
		enabled:  true,
	}, nil
}

// SetEnabled pauses or resumes gesture control. While paused every frame
// is treated as having no hand.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture control is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// State returns a copy of the interpreter state. It must not be called
// concurrently with Run.
func (a *App) State() gesture.State {
	return *a.state
}

// restoreLastCommand shows the newest journaled command in the status
// surface until a new one fires.
func (a *App) restoreLastCommand() {
	if a.journal == nil || a.config.Status == nil {
		return
	}

	e, err := a.journal.Events().LastCommand()
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			a.log.Warn().Err(err).Msg("journal history not read")
		}
		return
	}
	a.config.Status.SetLastCommand(gesture.Command(e.Command).Label())
}

// VolumeRange returns the device volume range queried at startup.
func (a *App) VolumeRange() gesture.Range {
	return a.interp.VolumeRange()
}

// Run opens the camera and processes frames until ctx is cancelled or the
// display requests shutdown. All owned resources are released on return.
func (a *App) Run(ctx context.Context) error {
	// highgui windows belong to the thread that created them.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer a.release()

	if !a.camera.IsOpen() {
		if err := a.camera.Open(); err != nil {
			return fmt.Errorf("open camera: %w", err)
		}
	}

	if a.journal != nil {
		sess, err := a.journal.StartSession(a.clock.Now())
		if err != nil {
			a.log.Warn().Err(err).Msg("journal session not started")
		} else {
			a.session = sess.ID
			defer a.endSession()
		}
	}

	a.restoreLastCommand()

	vr := a.interp.VolumeRange()
	a.log.Info().Float64("volumeMin", vr.Min).Float64("volumeMax", vr.Max).Msg("detection loop started")

	for {
		select {
		case <-ctx.Done():
			a.log.Info().Msg("detection loop stopped")
			return nil
		default:
		}

		if a.Step(ctx) {
			a.log.Info().Msg("quit requested from display")
			return nil
		}
	}
}

func (a *App) endSession() {
	if err := a.journal.EndSession(a.session, a.clock.Now()); err != nil {
		a.log.Warn().Err(err).Msg("journal session not closed")
	}
}

func (a *App) release() {
	if err := a.camera.Close(); err != nil {
		a.log.Warn().Err(err).Msg("error closing camera")
	}
	if err := a.detector.Close(); err != nil {
		a.log.Warn().Err(err).Msg("error closing detector")
	}
	if err := a.display.Close(); err != nil {
		a.log.Warn().Err(err).Msg("error closing display")
	}
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.log.Warn().Err(err).Msg("error closing journal")
		}
	}
}
