package effector

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayusman/mudra/internal/gesture"
)

// Config configures the system effectors.
type Config struct {
	Timeout time.Duration
	// VolumeMin and VolumeMax are the device volume range reported to the
	// interpreter. The built-in commands take percent, so 0 to 100.
	VolumeMin float64
	VolumeMax float64
	// NextCombo and PreviousCombo are the keyboard shortcuts for the
	// next and previous commands.
	NextCombo     string
	PreviousCombo string
	Commands      Commands
}

// DefaultConfig returns the configuration for the running platform.
func DefaultConfig() Config {
	return Config{
		Timeout:       2 * time.Second,
		VolumeMin:     0,
		VolumeMax:     100,
		NextCombo:     "shift+n",
		PreviousCombo: "shift+p",
		Commands:      DefaultCommands(runtime.GOOS),
	}
}

// System implements gesture.Effectors by running OS commands.
type System struct {
	cfg    Config
	runner Runner
	log    zerolog.Logger
}

var _ gesture.Effectors = (*System)(nil)

// NewSystem creates a System. A nil runner uses an ExecRunner with the
// configured timeout.
func NewSystem(cfg Config, runner Runner, log zerolog.Logger) *System {
	if runner == nil {
		runner = NewExecRunner(cfg.Timeout)
	}
	return &System{
		cfg:    cfg,
		runner: runner,
		log:    log.With().Str("component", "effector").Logger(),
	}
}

// VolumeRange returns the configured device volume range.
func (s *System) VolumeRange() (float64, float64, error) {
	if s.cfg.VolumeMin >= s.cfg.VolumeMax {
		return 0, 0, fmt.Errorf("invalid volume range [%g, %g]", s.cfg.VolumeMin, s.cfg.VolumeMax)
	}
	return s.cfg.VolumeMin, s.cfg.VolumeMax, nil
}

// SetVolume sets the absolute output volume.
func (s *System) SetVolume(level float64) error {
	return s.run("volume", s.cfg.Commands.Volume, valueVars(level))
}

// SetBrightness sets the display brightness in percent.
func (s *System) SetBrightness(percent int) error {
	return s.run("brightness", s.cfg.Commands.Brightness, valueVars(float64(percent)))
}

// SendTransport presses the media key or shortcut for cmd.
func (s *System) SendTransport(cmd gesture.Command) error {
	switch cmd {
	case gesture.CommandPlayPause:
		return s.run(string(cmd), s.cfg.Commands.PlayPause, nil)
	case gesture.CommandNext:
		return s.sendCombo(cmd, s.cfg.NextCombo)
	case gesture.CommandPrevious:
		return s.sendCombo(cmd, s.cfg.PreviousCombo)
	default:
		return fmt.Errorf("unknown transport command %q", cmd)
	}
}

func (s *System) sendCombo(cmd gesture.Command, combo string) error {
	vars, err := comboVars(combo)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	return s.run(string(cmd), s.cfg.Commands.KeyCombo, vars)
}

func (s *System) run(output string, tmpl []string, vars map[string]string) error {
	argv := expand(tmpl, vars)
	if len(argv) == 0 {
		return fmt.Errorf("%s: %w", output, ErrNotConfigured)
	}

	s.log.Debug().Str("output", output).Strs("argv", argv).Msg("run effector")
	if err := s.runner.Run(context.Background(), argv); err != nil {
		return fmt.Errorf("%s: %w", output, err)
	}
	return nil
}
