package overlay

import (
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/gesture"
)

func TestHeadless(t *testing.T) {
	h := &Headless{}

	for i := 0; i < 3; i++ {
		if h.Show(nil) {
			t.Fatal("headless display should never request quit")
		}
	}
	if h.Shown() != 3 {
		t.Errorf("Shown() = %d, want 3", h.Shown())
	}
	if err := h.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDisplay_Interface(t *testing.T) {
	var _ Display = (*Window)(nil)
	var _ Display = (*Headless)(nil)
}

func TestWindow_OpensOnFirstShow(t *testing.T) {
	w := NewWindow("mudra")
	if w.win != nil {
		t.Fatal("window opened before the first frame")
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() of an unshown window error = %v", err)
	}
}

func TestRenderer_Draw(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping gocv drawing test")
	}

	img := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer img.Close()

	Renderer{}.Draw(&img, testFrame(), gesture.Event{Hand: true, Mode: gesture.ModeVolume})

	sum := img.Sum()
	if sum.Val1+sum.Val2+sum.Val3 == 0 {
		t.Error("expected annotations to be drawn on a black frame")
	}
}
