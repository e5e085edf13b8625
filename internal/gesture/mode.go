package gesture

// Mode is the control target currently driven by the hand.
type Mode int

// Modes cycle in declaration order and wrap back to ModeVolume.
const (
	ModeVolume Mode = iota
	ModeBrightness
	ModeMedia
	numModes
)

// Next returns the mode that follows m in the switch cycle.
func (m Mode) Next() Mode {
	return (m + 1) % numModes
}

// Continuous reports whether the mode maps finger distance to a value.
func (m Mode) Continuous() bool {
	return m == ModeVolume || m == ModeBrightness
}

func (m Mode) String() string {
	switch m {
	case ModeVolume:
		return "VOLUME"
	case ModeBrightness:
		return "BRIGHTNESS"
	case ModeMedia:
		return "MEDIA"
	default:
		return "UNKNOWN"
	}
}

// Command is a one-shot media transport command.
type Command string

const (
	CommandPlayPause Command = "play_pause"
	CommandNext      Command = "next"
	CommandPrevious  Command = "previous"
)

// Label is the text shown next to the fingertip while the pinch is held.
func (c Command) Label() string {
	switch c {
	case CommandPlayPause:
		return "PLAY/PAUSE"
	case CommandNext:
		return "NEXT SHORT"
	case CommandPrevious:
		return "PREV SHORT"
	default:
		return string(c)
	}
}
