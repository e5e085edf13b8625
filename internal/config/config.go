// Package config loads mudra settings from defaults, an optional JSON file,
// MUDRA_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/effector"
	"github.com/ayusman/mudra/internal/gesture"
)

// FileName is the config file looked up in the config directory.
const FileName = "mudra.json"

// CameraConfig holds capture settings.
type CameraConfig struct {
	Device int  `mapstructure:"device"`
	Width  int  `mapstructure:"width"`
	Height int  `mapstructure:"height"`
	Mirror bool `mapstructure:"mirror"`
}

// DetectorConfig holds hand detection settings.
type DetectorConfig struct {
	MaxHands        int     `mapstructure:"maxHands"`
	MinConfidence   float64 `mapstructure:"minConfidence"`
	MinTrackingConf float64 `mapstructure:"minTrackingConfidence"`
	Script          string  `mapstructure:"script"`
	Python          string  `mapstructure:"python"`
}

// GestureConfig holds interpreter thresholds. Distances are in pixels.
type GestureConfig struct {
	ModeSwitchDistance float64       `mapstructure:"modeSwitchDistance"`
	ModeCooldown       time.Duration `mapstructure:"modeCooldown"`
	PinchDistance      float64       `mapstructure:"pinchDistance"`
	CommandCooldown    time.Duration `mapstructure:"commandCooldown"`
	InputMin           float64       `mapstructure:"inputMin"`
	InputMax           float64       `mapstructure:"inputMax"`
}

// EffectorConfig holds OS output settings. Empty command templates fall
// back to the platform defaults.
type EffectorConfig struct {
	Timeout       time.Duration     `mapstructure:"timeout"`
	VolumeMin     float64           `mapstructure:"volumeMin"`
	VolumeMax     float64           `mapstructure:"volumeMax"`
	NextCombo     string            `mapstructure:"nextCombo"`
	PreviousCombo string            `mapstructure:"previousCombo"`
	Commands      effector.Commands `mapstructure:"commands"`
}

// DisplayConfig controls the preview window.
type DisplayConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Title   string `mapstructure:"title"`
}

// TrayConfig controls the system tray menu.
type TrayConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// JournalConfig controls the command history database.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Config is the complete application configuration.
type Config struct {
	LogLevel string         `mapstructure:"logLevel"`
	LogFile  string         `mapstructure:"logFile"`
	Camera   CameraConfig   `mapstructure:"camera"`
	Detector DetectorConfig `mapstructure:"detector"`
	Gesture  GestureConfig  `mapstructure:"gesture"`
	Effector EffectorConfig `mapstructure:"effector"`
	Display  DisplayConfig  `mapstructure:"display"`
	Tray     TrayConfig     `mapstructure:"tray"`
	Journal  JournalConfig  `mapstructure:"journal"`
}

// DataDir returns ~/.mudra, or .mudra when the home directory is unknown.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mudra"
	}
	return filepath.Join(home, ".mudra")
}

func setDefaults(v *viper.Viper) {
	gd := gesture.DefaultConfig()
	cd := capture.DefaultConfig()
	dd := detector.DefaultConfig()
	ed := effector.DefaultConfig()

	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")

	v.SetDefault("camera.device", cd.DeviceID)
	v.SetDefault("camera.width", cd.Width)
	v.SetDefault("camera.height", cd.Height)
	v.SetDefault("camera.mirror", cd.Mirror)

	v.SetDefault("detector.maxHands", dd.MaxHands)
	v.SetDefault("detector.minConfidence", dd.MinConfidence)
	v.SetDefault("detector.minTrackingConfidence", dd.MinTrackingConf)
	v.SetDefault("detector.script", "")
	v.SetDefault("detector.python", "")

	v.SetDefault("gesture.modeSwitchDistance", gd.ModeSwitchDistance)
	v.SetDefault("gesture.modeCooldown", gd.ModeCooldown)
	v.SetDefault("gesture.pinchDistance", gd.PinchDistance)
	v.SetDefault("gesture.commandCooldown", gd.CommandCooldown)
	v.SetDefault("gesture.inputMin", gd.Input.Min)
	v.SetDefault("gesture.inputMax", gd.Input.Max)

	v.SetDefault("effector.timeout", ed.Timeout)
	v.SetDefault("effector.volumeMin", ed.VolumeMin)
	v.SetDefault("effector.volumeMax", ed.VolumeMax)
	v.SetDefault("effector.nextCombo", ed.NextCombo)
	v.SetDefault("effector.previousCombo", ed.PreviousCombo)

	v.SetDefault("display.enabled", true)
	v.SetDefault("display.title", "Gesture Control")

	v.SetDefault("tray.enabled", false)

	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", filepath.Join(DataDir(), "mudra.db"))
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"log-level":    "logLevel",
	"log-file":     "logFile",
	"camera":       "camera.device",
	"display":      "display.enabled",
	"tray":         "tray.enabled",
	"journal":      "journal.enabled",
	"journal-path": "journal.path",
}

// RegisterFlags adds the overridable settings to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("log-file", "", "also write logs to this file")
	fs.Int("camera", 0, "camera device index")
	fs.Bool("display", true, "show the preview window")
	fs.Bool("tray", false, "show the system tray menu")
	fs.Bool("journal", true, "record commands to the journal database")
	fs.String("journal-path", "", "journal database path")
}

// Load reads configuration from configDir/mudra.json, the environment and
// flags. A missing file is not an error. flags may be nil.
func Load(configDir string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	v.SetConfigType("json")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}

	v.SetEnvPrefix("MUDRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if configDir != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks thresholds and ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		errs = append(errs, fmt.Errorf("camera size %dx%d must be positive", c.Camera.Width, c.Camera.Height))
	}
	if c.Detector.MaxHands < 1 {
		errs = append(errs, fmt.Errorf("detector.maxHands must be at least 1"))
	}
	if c.Gesture.ModeSwitchDistance <= 0 {
		errs = append(errs, fmt.Errorf("gesture.modeSwitchDistance must be positive"))
	}
	if c.Gesture.PinchDistance <= 0 {
		errs = append(errs, fmt.Errorf("gesture.pinchDistance must be positive"))
	}
	if c.Gesture.ModeCooldown < 0 || c.Gesture.CommandCooldown < 0 {
		errs = append(errs, fmt.Errorf("gesture cooldowns must not be negative"))
	}
	if c.Gesture.InputMin >= c.Gesture.InputMax {
		errs = append(errs, fmt.Errorf("gesture input range [%g, %g] is empty", c.Gesture.InputMin, c.Gesture.InputMax))
	}
	if c.Effector.VolumeMin >= c.Effector.VolumeMax {
		errs = append(errs, fmt.Errorf("effector volume range [%g, %g] is empty", c.Effector.VolumeMin, c.Effector.VolumeMax))
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		errs = append(errs, fmt.Errorf("journal.path is required when the journal is enabled"))
	}

	return errors.Join(errs...)
}

// GestureConfig returns the interpreter thresholds.
func (c *Config) GestureConfig() gesture.Config {
	return gesture.Config{
		ModeSwitchDistance: c.Gesture.ModeSwitchDistance,
		ModeCooldown:       c.Gesture.ModeCooldown,
		PinchDistance:      c.Gesture.PinchDistance,
		CommandCooldown:    c.Gesture.CommandCooldown,
		Input:              gesture.Range{Min: c.Gesture.InputMin, Max: c.Gesture.InputMax},
	}
}

// CameraConfig returns the capture settings.
func (c *Config) CameraConfig() capture.Config {
	return capture.Config{
		DeviceID: c.Camera.Device,
		Width:    c.Camera.Width,
		Height:   c.Camera.Height,
		Mirror:   c.Camera.Mirror,
	}
}

// DetectorConfig returns the hand detection settings.
func (c *Config) DetectorConfig() detector.Config {
	return detector.Config{
		MaxHands:        c.Detector.MaxHands,
		MinConfidence:   c.Detector.MinConfidence,
		MinTrackingConf: c.Detector.MinTrackingConf,
		Script:          c.Detector.Script,
		Python:          c.Detector.Python,
	}
}

// EffectorConfig returns the OS output settings for goos, filling unset
// command templates from the platform defaults.
func (c *Config) EffectorConfig(goos string) effector.Config {
	defaults := effector.DefaultCommands(goos)
	cmds := c.Effector.Commands
	if len(cmds.Volume) == 0 {
		cmds.Volume = defaults.Volume
	}
	if len(cmds.Brightness) == 0 {
		cmds.Brightness = defaults.Brightness
	}
	if len(cmds.PlayPause) == 0 {
		cmds.PlayPause = defaults.PlayPause
	}
	if len(cmds.KeyCombo) == 0 {
		cmds.KeyCombo = defaults.KeyCombo
	}

	return effector.Config{
		Timeout:       c.Effector.Timeout,
		VolumeMin:     c.Effector.VolumeMin,
		VolumeMax:     c.Effector.VolumeMax,
		NextCombo:     c.Effector.NextCombo,
		PreviousCombo: c.Effector.PreviousCombo,
		Commands:      cmds,
	}
}
