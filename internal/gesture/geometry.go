// Package gesture turns per-frame hand landmarks into control events for
// volume, brightness and media playback.
package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Point is a landmark position in pixel coordinates of the current frame.
// The origin is the top-left corner and y grows downwards.
type Point struct {
	X float64
	Y float64
}

// Frame holds the 21 landmarks of one tracked hand in pixel space.
// A missing hand is represented by a nil *Frame.
type Frame [detector.NumLandmarks]Point

// Distance returns the planar Euclidean distance between two points in pixels.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Distance returns the pixel distance between landmarks i and j.
func (f *Frame) Distance(i, j int) float64 {
	return Distance(f[i], f[j])
}

// FrameFromHand converts normalized detector output to pixel coordinates for
// an image of the given size. Coordinates are truncated to whole pixels.
func FrameFromHand(hand *detector.HandLandmarks, width, height int) *Frame {
	if hand == nil {
		return nil
	}

	var f Frame
	for i, p := range hand.Points {
		f[i] = Point{
			X: float64(int(p.X * float64(width))),
			Y: float64(int(p.Y * float64(height))),
		}
	}
	return &f
}
