package effector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name string
		tmpl []string
		v    float64
		want []string
	}{
		{
			name: "rounded value",
			tmpl: []string{"set", "{value}%"},
			v:    33.5,
			want: []string{"set", "34%"},
		},
		{
			name: "raw value",
			tmpl: []string{"set", "{raw}"},
			v:    -12.25,
			want: []string{"set", "-12.25"},
		},
		{
			name: "fraction",
			tmpl: []string{"brightness", "{fraction}"},
			v:    7,
			want: []string{"brightness", "0.07"},
		},
		{
			name: "negative zero",
			tmpl: []string{"{value}"},
			v:    -0.2,
			want: []string{"0"},
		},
		{
			name: "empty template",
			tmpl: nil,
			v:    1,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expand(tt.tmpl, valueVars(tt.v)))
		})
	}
}

func TestExpand_DoesNotModifyTemplate(t *testing.T) {
	tmpl := []string{"{value}"}
	expand(tmpl, valueVars(5))
	assert.Equal(t, []string{"{value}"}, tmpl)
}

func TestParseCombo(t *testing.T) {
	key, mods, err := parseCombo("shift+n")
	require.NoError(t, err)
	assert.Equal(t, "n", key)
	assert.Equal(t, []string{"shift"}, mods)

	key, mods, err = parseCombo("space")
	require.NoError(t, err)
	assert.Equal(t, "space", key)
	assert.Empty(t, mods)

	_, _, err = parseCombo("ctrl+")
	assert.Error(t, err)
}

func TestBuildKeystrokeScript(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		modifiers []string
		want      string
	}{
		{
			name: "plain key",
			key:  "k",
			want: `tell application "System Events" to keystroke "k"`,
		},
		{
			name:      "single modifier",
			key:       "p",
			modifiers: []string{"Shift"},
			want:      `tell application "System Events" to keystroke "p" using {shift down}`,
		},
		{
			name:      "aliases",
			key:       "c",
			modifiers: []string{"cmd", "alt"},
			want:      `tell application "System Events" to keystroke "c" using {command down, option down}`,
		},
		{
			name:      "unknown modifiers ignored",
			key:       "x",
			modifiers: []string{"hyper"},
			want:      `tell application "System Events" to keystroke "x"`,
		},
		{
			name:      "quote key escaped",
			key:       `"`,
			modifiers: []string{"shift"},
			want:      `tell application "System Events" to keystroke "\"" using {shift down}`,
		},
		{
			name: "backslash key escaped",
			key:  `\`,
			want: `tell application "System Events" to keystroke "\\"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildKeystrokeScript(tt.key, tt.modifiers))
		})
	}
}

func TestDefaultCommands(t *testing.T) {
	for _, goos := range []string{"darwin", "linux"} {
		c := DefaultCommands(goos)
		assert.NotEmpty(t, c.Volume, goos)
		assert.NotEmpty(t, c.Brightness, goos)
		assert.NotEmpty(t, c.PlayPause, goos)
		assert.NotEmpty(t, c.KeyCombo, goos)
	}
	assert.Equal(t, Commands{}, DefaultCommands("windows"))
}
