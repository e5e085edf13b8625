// Package overlay draws the interpreter's view of each frame and shows it
// in a preview window.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// Colours are plain RGB; gocv converts them to BGR when drawing.
var (
	ColorVolume     = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	ColorBrightness = color.RGBA{R: 0, G: 255, B: 255, A: 0}
	ColorMedia      = color.RGBA{R: 255, G: 165, B: 0, A: 0}
	ColorLabel      = color.RGBA{R: 255, G: 255, B: 0, A: 0}
	ColorFooter     = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	ColorJoint      = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	ColorBone       = color.RGBA{R: 255, G: 255, B: 255, A: 0}
)

// HandConnections are the landmark pairs joined when drawing the skeleton.
var HandConnections = [][2]int{
	{detector.Wrist, detector.ThumbCMC},
	{detector.ThumbCMC, detector.ThumbMCP},
	{detector.ThumbMCP, detector.ThumbIP},
	{detector.ThumbIP, detector.ThumbTip},
	{detector.Wrist, detector.IndexMCP},
	{detector.IndexMCP, detector.IndexPIP},
	{detector.IndexPIP, detector.IndexDIP},
	{detector.IndexDIP, detector.IndexTip},
	{detector.IndexMCP, detector.MiddleMCP},
	{detector.MiddleMCP, detector.MiddlePIP},
	{detector.MiddlePIP, detector.MiddleDIP},
	{detector.MiddleDIP, detector.MiddleTip},
	{detector.MiddleMCP, detector.RingMCP},
	{detector.RingMCP, detector.RingPIP},
	{detector.RingPIP, detector.RingDIP},
	{detector.RingDIP, detector.RingTip},
	{detector.RingMCP, detector.PinkyMCP},
	{detector.Wrist, detector.PinkyMCP},
	{detector.PinkyMCP, detector.PinkyPIP},
	{detector.PinkyPIP, detector.PinkyDIP},
	{detector.PinkyDIP, detector.PinkyTip},
}

// Text is a string drawn with the Hershey simplex font.
type Text struct {
	Value     string
	At        image.Point
	Scale     float64
	Color     color.RGBA
	Thickness int
}

// Circle is a filled dot.
type Circle struct {
	Center image.Point
	Radius int
	Color  color.RGBA
}

// Line is a skeleton bone.
type Line struct {
	From, To  image.Point
	Color     color.RGBA
	Thickness int
}

// Scene is everything drawn on top of one camera frame.
type Scene struct {
	Lines   []Line
	Circles []Circle
	Texts   []Text
}

// Layout places the annotations for frame f and its event. Mode specific
// annotations only appear while a hand is tracked; the footer is always
// drawn.
func Layout(f *gesture.Frame, ev gesture.Event) Scene {
	var s Scene

	if f != nil {
		s.skeleton(f)
	}

	if f != nil && ev.Hand {
		switch ev.Mode {
		case gesture.ModeVolume:
			s.continuous(f, "VOLUME MODE", ColorVolume)
		case gesture.ModeBrightness:
			s.continuous(f, "BRIGHTNESS MODE", ColorBrightness)
		case gesture.ModeMedia:
			s.media(ev)
		}
	}

	s.Texts = append(s.Texts, Text{
		Value:     fmt.Sprintf("MODE: %s (Switch: Thumb+Pinky)", ev.Mode),
		At:        image.Pt(10, 120),
		Scale:     0.6,
		Color:     ColorFooter,
		Thickness: 2,
	})

	return s
}

func (s *Scene) skeleton(f *gesture.Frame) {
	for _, c := range HandConnections {
		s.Lines = append(s.Lines, Line{
			From:      pt(f[c[0]]),
			To:        pt(f[c[1]]),
			Color:     ColorBone,
			Thickness: 2,
		})
	}
	for _, p := range f {
		s.Circles = append(s.Circles, Circle{Center: pt(p), Radius: 3, Color: ColorJoint})
	}
}

func (s *Scene) continuous(f *gesture.Frame, banner string, c color.RGBA) {
	s.Texts = append(s.Texts, Text{Value: banner, At: image.Pt(10, 50), Scale: 1, Color: c, Thickness: 2})
	s.Circles = append(s.Circles,
		Circle{Center: pt(f[detector.ThumbTip]), Radius: 15, Color: c},
		Circle{Center: pt(f[detector.IndexTip]), Radius: 15, Color: c},
	)
}

func (s *Scene) media(ev gesture.Event) {
	for _, p := range ev.Pinches {
		offset := 70
		if p.Command == gesture.CommandPlayPause {
			offset = 50
		}
		at := pt(p.At)
		s.Texts = append(s.Texts, Text{
			Value:     p.Command.Label(),
			At:        image.Pt(at.X-offset, at.Y-30),
			Scale:     0.7,
			Color:     ColorLabel,
			Thickness: 2,
		})
	}

	status := "PAUSED"
	if ev.MediaPlaying {
		status = "PLAYING"
	}
	s.Texts = append(s.Texts,
		Text{Value: "MEDIA MODE", At: image.Pt(10, 50), Scale: 1, Color: ColorMedia, Thickness: 2},
		Text{Value: "Status: " + status, At: image.Pt(10, 80), Scale: 0.7, Color: ColorMedia, Thickness: 2},
	)
}

func pt(p gesture.Point) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}
