package gesture

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/logging"
)

// Config holds the gesture thresholds. Distances are in pixels.
type Config struct {
	// ModeSwitchDistance is the thumb-to-pinky spread that switches mode.
	ModeSwitchDistance float64
	// ModeCooldown is the minimum time between two mode switches.
	ModeCooldown time.Duration
	// PinchDistance is the fingertip-to-thumb distance below which a pinch fires.
	PinchDistance float64
	// CommandCooldown is shared by all media commands.
	CommandCooldown time.Duration
	// Input is the thumb-to-index distance domain mapped onto control values.
	Input Range
}

// DefaultConfig returns the thresholds used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		ModeSwitchDistance: 100,
		ModeCooldown:       time.Second,
		PinchDistance:      30,
		CommandCooldown:    500 * time.Millisecond,
		Input:              Range{Min: 30, Max: 200},
	}
}

// Clock supplies the current time for cooldown checks.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Effectors are the outputs driven by the interpreter. Every call may fail;
// failures are logged and never abort frame processing.
type Effectors interface {
	// VolumeRange reports the device volume range. It is queried once.
	VolumeRange() (min, max float64, err error)
	SetVolume(level float64) error
	SetBrightness(percent int) error
	SendTransport(cmd Command) error
}

// State is the mutable interpreter state. It is created once with NewState
// and passed to every Process call.
type State struct {
	Mode           Mode
	LastModeSwitch time.Time
	LastCommand    time.Time
	// MediaPlaying is tracked locally and flipped by play_pause. It is never
	// read back from the system.
	MediaPlaying bool
}

// NewState returns the startup state: volume mode, media assumed playing.
func NewState() *State {
	return &State{
		Mode:         ModeVolume,
		MediaPlaying: true,
	}
}

// ControlValue is a continuous value sent to the active mode's effector.
type ControlValue struct {
	Mode  Mode
	Value float64
	Err   error
}

// Pinch is a pinch condition that held in the current frame.
type Pinch struct {
	Command Command
	// At is the fingertip that formed the pinch.
	At Point
}

// Fired is a media command the debouncer let through.
type Fired struct {
	Command Command
	Err     error
}

// Event is the outcome of processing one frame.
type Event struct {
	Time        time.Time
	Hand        bool
	Mode        Mode
	ModeChanged bool
	Value       *ControlValue
	Pinches     []Pinch
	// Fired holds the dispatch attempts of this frame, in priority order.
	// At most one of them succeeded.
	Fired        []Fired
	MediaPlaying bool
}

// Command returns the command that was dispatched successfully, if any.
func (e Event) Command() (Command, bool) {
	for _, f := range e.Fired {
		if f.Err == nil {
			return f.Command, true
		}
	}
	return "", false
}

// pinchOrder is the firing priority when several pinches hold at once.
var pinchOrder = []struct {
	cmd    Command
	finger int
}{
	{CommandPlayPause, detector.IndexTip},
	{CommandNext, detector.MiddleTip},
	{CommandPrevious, detector.RingTip},
}

// Interpreter classifies frames and drives the effectors.
type Interpreter struct {
	cfg    Config
	fx     Effectors
	clock  Clock
	volume Range
	log    zerolog.Logger
	// controlLog reports per-frame control failures and is sampled.
	controlLog zerolog.Logger
}

// NewInterpreter creates an interpreter and reads the volume range from fx.
func NewInterpreter(cfg Config, fx Effectors, clock Clock, log zerolog.Logger) (*Interpreter, error) {
	if clock == nil {
		clock = SystemClock{}
	}

	lo, hi, err := fx.VolumeRange()
	if err != nil {
		return nil, fmt.Errorf("query volume range: %w", err)
	}

	log = logging.Component(log, "gesture")
	return &Interpreter{
		cfg:        cfg,
		fx:         fx,
		clock:      clock,
		volume:     Range{Min: lo, Max: hi},
		log:        log,
		controlLog: logging.Sampled(log),
	}, nil
}

// VolumeRange returns the device range captured at construction.
func (in *Interpreter) VolumeRange() Range {
	return in.volume
}

// Process runs one frame through mode switching, continuous mapping and the
// command debouncer. A nil frame leaves st untouched.
func (in *Interpreter) Process(st *State, f *Frame) Event {
	now := in.clock.Now()
	ev := Event{
		Time:         now,
		Mode:         st.Mode,
		MediaPlaying: st.MediaPlaying,
	}
	if f == nil {
		return ev
	}
	ev.Hand = true

	ev.ModeChanged = in.switchMode(st, f, now)
	ev.Mode = st.Mode

	switch {
	case st.Mode.Continuous():
		ev.Value = in.mapContinuous(st.Mode, f)
	case st.Mode == ModeMedia:
		ev.Pinches = in.pinches(f)
		ev.Fired = in.fireCommands(st, ev.Pinches, now)
	}

	ev.MediaPlaying = st.MediaPlaying
	return ev
}

func (in *Interpreter) switchMode(st *State, f *Frame, now time.Time) bool {
	spread := f.Distance(detector.ThumbTip, detector.PinkyTip)
	if spread <= in.cfg.ModeSwitchDistance {
		return false
	}
	if now.Sub(st.LastModeSwitch) <= in.cfg.ModeCooldown {
		return false
	}

	prev := st.Mode
	st.Mode = st.Mode.Next()
	st.LastModeSwitch = now
	in.log.Info().Stringer("from", prev).Stringer("to", st.Mode).Msg("mode switched")
	return true
}

func (in *Interpreter) mapContinuous(mode Mode, f *Frame) *ControlValue {
	d := f.Distance(detector.IndexTip, detector.ThumbTip)

	cv := &ControlValue{Mode: mode}
	switch mode {
	case ModeVolume:
		cv.Value = Interp(d, in.cfg.Input, in.volume)
		cv.Err = in.fx.SetVolume(cv.Value)
	case ModeBrightness:
		percent := int(Interp(d, in.cfg.Input, BrightnessRange))
		cv.Value = float64(percent)
		cv.Err = in.fx.SetBrightness(percent)
	}

	if cv.Err != nil {
		in.controlLog.Warn().Err(cv.Err).Stringer("mode", mode).Float64("value", cv.Value).Msg("control update failed")
	}
	return cv
}

func (in *Interpreter) pinches(f *Frame) []Pinch {
	var out []Pinch
	for _, p := range pinchOrder {
		if f.Distance(p.finger, detector.ThumbTip) < in.cfg.PinchDistance {
			out = append(out, Pinch{Command: p.cmd, At: f[p.finger]})
		}
	}
	return out
}

// fireCommands dispatches held pinches in priority order under the shared
// cooldown. A failed dispatch leaves the cooldown open for the next one.
func (in *Interpreter) fireCommands(st *State, held []Pinch, now time.Time) []Fired {
	var fired []Fired
	for _, p := range held {
		if now.Sub(st.LastCommand) < in.cfg.CommandCooldown {
			break
		}

		err := in.fx.SendTransport(p.Command)
		fired = append(fired, Fired{Command: p.Command, Err: err})
		if err != nil {
			in.log.Warn().Err(err).Str("command", string(p.Command)).Msg("media command failed")
			continue
		}

		if p.Command == CommandPlayPause {
			st.MediaPlaying = !st.MediaPlaying
		}
		st.LastCommand = now
		in.log.Info().Str("command", string(p.Command)).Bool("playing", st.MediaPlaying).Msg("media command")
		break
	}
	return fired
}
