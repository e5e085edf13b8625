package effector

import (
	"math"
	"strconv"
	"strings"
)

// Commands are argv templates for each output. Placeholders:
//
//	{value}       value rounded to a whole number
//	{raw}         value with full precision
//	{fraction}    value divided by 100
//	{combo}       key combo as configured, e.g. "shift+n"
//	{applescript} AppleScript keystroke statement for the combo
//
// An empty template disables the output.
type Commands struct {
	Volume     []string `mapstructure:"volume"`
	Brightness []string `mapstructure:"brightness"`
	PlayPause  []string `mapstructure:"playPause"`
	KeyCombo   []string `mapstructure:"keyCombo"`
}

// DefaultCommands returns the built-in templates for an operating system.
// Unknown systems get no commands.
func DefaultCommands(goos string) Commands {
	switch goos {
	case "darwin":
		return Commands{
			Volume:     []string{"osascript", "-e", "set volume output volume {value}"},
			Brightness: []string{"brightness", "{fraction}"},
			// F8 play/pause media key
			PlayPause: []string{"osascript", "-e", "tell application \"System Events\" to key code 100"},
			KeyCombo:  []string{"osascript", "-e", "{applescript}"},
		}
	case "linux":
		return Commands{
			Volume:     []string{"pactl", "set-sink-volume", "@DEFAULT_SINK@", "{value}%"},
			Brightness: []string{"brightnessctl", "-q", "set", "{value}%"},
			PlayPause:  []string{"xdotool", "key", "XF86AudioPlay"},
			KeyCombo:   []string{"xdotool", "key", "{combo}"},
		}
	default:
		return Commands{}
	}
}

// expand substitutes placeholders in a copy of tmpl.
func expand(tmpl []string, vars map[string]string) []string {
	if len(tmpl) == 0 {
		return nil
	}

	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	r := strings.NewReplacer(pairs...)

	out := make([]string, len(tmpl))
	for i, arg := range tmpl {
		out[i] = r.Replace(arg)
	}
	return out
}

func valueVars(v float64) map[string]string {
	rounded := math.Round(v)
	if rounded == 0 {
		rounded = 0 // drop the sign of -0
	}
	return map[string]string{
		"value":    strconv.FormatFloat(rounded, 'f', 0, 64),
		"raw":      strconv.FormatFloat(v, 'f', -1, 64),
		"fraction": strconv.FormatFloat(v/100, 'f', 2, 64),
	}
}

func comboVars(combo string) (map[string]string, error) {
	key, modifiers, err := parseCombo(combo)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"combo":       combo,
		"applescript": buildKeystrokeScript(key, modifiers),
	}, nil
}
