package overlay

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/gesture"
)

// Display shows annotated frames and reports whether the user asked to quit.
type Display interface {
	Show(img *gocv.Mat) (quit bool)
	Close() error
}

// Renderer paints a Scene onto a frame.
type Renderer struct{}

// Draw lays out f and ev and paints the result onto img.
func (Renderer) Draw(img *gocv.Mat, f *gesture.Frame, ev gesture.Event) {
	Paint(img, Layout(f, ev))
}

// Paint draws s onto img.
func Paint(img *gocv.Mat, s Scene) {
	for _, l := range s.Lines {
		gocv.Line(img, l.From, l.To, l.Color, l.Thickness)
	}
	for _, c := range s.Circles {
		gocv.Circle(img, c.Center, c.Radius, c.Color, -1)
	}
	for _, t := range s.Texts {
		gocv.PutText(img, t.Value, t.At, gocv.FontHersheySimplex, t.Scale, t.Color, t.Thickness)
	}
}

// Window is a highgui preview window. Pressing q requests shutdown.
//
// The native window is created by the first Show, so every highgui call
// happens on the goroutine that drives the loop.
type Window struct {
	title string
	win   *gocv.Window
}

// NewWindow returns a window with the given title.
func NewWindow(title string) *Window {
	return &Window{title: title}
}

// Show displays img and polls the keyboard for 1ms.
func (w *Window) Show(img *gocv.Mat) bool {
	if w.win == nil {
		w.win = gocv.NewWindow(w.title)
	}
	w.win.IMShow(*img)
	return w.win.WaitKey(1)&0xFF == 'q'
}

// Close destroys the window if it was ever shown.
func (w *Window) Close() error {
	if w.win == nil {
		return nil
	}
	err := w.win.Close()
	w.win = nil
	return err
}

// Headless discards frames. It is used when the preview is disabled.
type Headless struct {
	shown int
}

// Show counts the frame and never requests shutdown.
func (h *Headless) Show(*gocv.Mat) bool {
	h.shown++
	return false
}

// Shown returns how many frames were passed to Show.
func (h *Headless) Shown() int {
	return h.shown
}

// Close is a no-op.
func (h *Headless) Close() error {
	return nil
}
