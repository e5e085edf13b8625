package effector

import (
	"fmt"
	"strings"
)

// modifierMap maps user-friendly modifier names to AppleScript equivalents.
var modifierMap = map[string]string{
	"command": "command down",
	"cmd":     "command down",
	"option":  "option down",
	"alt":     "option down",
	"control": "control down",
	"ctrl":    "control down",
	"shift":   "shift down",
}

// appleScriptQuoter escapes a key for use inside an AppleScript string literal.
var appleScriptQuoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// parseCombo splits a combo such as "shift+n" into its key and modifiers.
func parseCombo(combo string) (key string, modifiers []string, err error) {
	parts := strings.Split(combo, "+")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	key = parts[len(parts)-1]
	if key == "" {
		return "", nil, fmt.Errorf("key combo %q has no key", combo)
	}
	return key, parts[:len(parts)-1], nil
}

// buildKeystrokeScript generates an AppleScript for the given key and modifiers.
func buildKeystrokeScript(key string, modifiers []string) string {
	key = appleScriptQuoter.Replace(key)

	var appleModifiers []string
	for _, mod := range modifiers {
		if appleMod, ok := modifierMap[strings.ToLower(mod)]; ok {
			appleModifiers = append(appleModifiers, appleMod)
		}
	}

	if len(appleModifiers) == 0 {
		return fmt.Sprintf(`tell application "System Events" to keystroke "%s"`, key)
	}

	modifierList := strings.Join(appleModifiers, ", ")
	return fmt.Sprintf(`tell application "System Events" to keystroke "%s" using {%s}`, key, modifierList)
}
