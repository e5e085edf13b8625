package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

func testFrame() *gesture.Frame {
	var f gesture.Frame
	for i := range f {
		f[i] = gesture.Point{X: float64(100 + 10*i), Y: float64(300 - 5*i)}
	}
	return &f
}

func findText(s Scene, value string) (Text, bool) {
	for _, t := range s.Texts {
		if t.Value == value {
			return t, true
		}
	}
	return Text{}, false
}

func TestLayout_Footer(t *testing.T) {
	tests := []struct {
		mode gesture.Mode
		want string
	}{
		{gesture.ModeVolume, "MODE: VOLUME (Switch: Thumb+Pinky)"},
		{gesture.ModeBrightness, "MODE: BRIGHTNESS (Switch: Thumb+Pinky)"},
		{gesture.ModeMedia, "MODE: MEDIA (Switch: Thumb+Pinky)"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			s := Layout(nil, gesture.Event{Mode: tt.mode})

			footer, ok := findText(s, tt.want)
			if !ok {
				t.Fatalf("footer %q not found in %+v", tt.want, s.Texts)
			}
			if footer.At != image.Pt(10, 120) || footer.Color != ColorFooter {
				t.Errorf("footer = %+v", footer)
			}
		})
	}
}

func TestLayout_NoHand(t *testing.T) {
	s := Layout(nil, gesture.Event{Mode: gesture.ModeMedia, MediaPlaying: true})

	if len(s.Lines) != 0 || len(s.Circles) != 0 {
		t.Errorf("expected no skeleton without a hand, got %d lines %d circles", len(s.Lines), len(s.Circles))
	}
	if len(s.Texts) != 1 {
		t.Errorf("expected only the footer, got %+v", s.Texts)
	}
}

func TestLayout_Skeleton(t *testing.T) {
	f := testFrame()
	s := Layout(f, gesture.Event{Hand: true, Mode: gesture.ModeMedia})

	if len(s.Lines) != len(HandConnections) {
		t.Errorf("got %d bones, want %d", len(s.Lines), len(HandConnections))
	}

	joints := 0
	for _, c := range s.Circles {
		if c.Color == ColorJoint {
			joints++
		}
	}
	if joints != detector.NumLandmarks {
		t.Errorf("got %d joints, want %d", joints, detector.NumLandmarks)
	}
}

func TestLayout_ContinuousModes(t *testing.T) {
	tests := []struct {
		mode   gesture.Mode
		banner string
		color  color.RGBA
	}{
		{gesture.ModeVolume, "VOLUME MODE", ColorVolume},
		{gesture.ModeBrightness, "BRIGHTNESS MODE", ColorBrightness},
	}

	for _, tt := range tests {
		t.Run(tt.banner, func(t *testing.T) {
			f := testFrame()
			s := Layout(f, gesture.Event{Hand: true, Mode: tt.mode})

			banner, ok := findText(s, tt.banner)
			if !ok {
				t.Fatalf("banner %q not found", tt.banner)
			}
			if banner.At != image.Pt(10, 50) || banner.Color != tt.color {
				t.Errorf("banner = %+v", banner)
			}

			var tips []image.Point
			for _, c := range s.Circles {
				if c.Radius == 15 {
					if c.Color != tt.color {
						t.Errorf("tip circle colour = %v, want %v", c.Color, tt.color)
					}
					tips = append(tips, c.Center)
				}
			}
			want := []image.Point{pt(f[detector.ThumbTip]), pt(f[detector.IndexTip])}
			if len(tips) != 2 || tips[0] != want[0] || tips[1] != want[1] {
				t.Errorf("tip circles = %v, want %v", tips, want)
			}
		})
	}
}

func TestLayout_Media(t *testing.T) {
	f := testFrame()
	ev := gesture.Event{
		Hand: true,
		Mode: gesture.ModeMedia,
		Pinches: []gesture.Pinch{
			{Command: gesture.CommandPlayPause, At: gesture.Point{X: 200, Y: 200}},
			{Command: gesture.CommandNext, At: gesture.Point{X: 300, Y: 250}},
		},
		MediaPlaying: false,
	}

	s := Layout(f, ev)

	tests := []struct {
		value string
		at    image.Point
	}{
		{"PLAY/PAUSE", image.Pt(150, 170)},
		{"NEXT SHORT", image.Pt(230, 220)},
		{"MEDIA MODE", image.Pt(10, 50)},
		{"Status: PAUSED", image.Pt(10, 80)},
	}
	for _, tt := range tests {
		got, ok := findText(s, tt.value)
		if !ok {
			t.Errorf("text %q not found", tt.value)
			continue
		}
		if got.At != tt.at {
			t.Errorf("%q at %v, want %v", tt.value, got.At, tt.at)
		}
	}

	if _, ok := findText(s, "PREV SHORT"); ok {
		t.Error("unexpected PREV SHORT label without a ring pinch")
	}
	if _, ok := findText(s, "VOLUME MODE"); ok {
		t.Error("unexpected volume banner in media mode")
	}
}

func TestLayout_MediaPlaying(t *testing.T) {
	s := Layout(testFrame(), gesture.Event{Hand: true, Mode: gesture.ModeMedia, MediaPlaying: true})

	if _, ok := findText(s, "Status: PLAYING"); !ok {
		t.Errorf("expected playing status, got %+v", s.Texts)
	}
}
