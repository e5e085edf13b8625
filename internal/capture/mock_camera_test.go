package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestMockCamera_ReadFrame(t *testing.T) {
	tests := []struct {
		name     string
		frames   int
		loop     bool
		reads    int
		wantFail int // index of the first failing read, -1 for none
	}{
		{"plays each frame once", 2, false, 3, 2},
		{"loops forever", 1, true, 5, -1},
		{"no frames", 0, true, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var frames []*gocv.Mat
			for i := 0; i < tt.frames; i++ {
				m := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
				defer m.Close()
				frames = append(frames, &m)
			}

			cam := NewMockCamera(frames, tt.loop)
			if err := cam.Open(); err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer cam.Close()

			for i := 0; i < tt.reads; i++ {
				f, err := cam.ReadFrame()
				if i == tt.wantFail {
					if err == nil {
						f.Close()
						t.Fatalf("read %d: expected error", i)
					}
					return
				}
				if err != nil {
					t.Fatalf("read %d: ReadFrame() error = %v", i, err)
				}
				if f.Rows() != 480 || f.Cols() != 640 {
					t.Errorf("read %d: frame %dx%d, want 640x480", i, f.Cols(), f.Rows())
				}
				f.Close()
			}
		})
	}
}

func TestMockCamera_NotOpen(t *testing.T) {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	cam := NewMockCamera([]*gocv.Mat{&frame}, true)
	if _, err := cam.ReadFrame(); err != ErrCameraNotOpen {
		t.Errorf("ReadFrame() error = %v, want ErrCameraNotOpen", err)
	}

	w, h := cam.Size()
	if w != 640 || h != 480 {
		t.Errorf("Size() = %dx%d, want 640x480", w, h)
	}
}

func TestMockCamera_ReopenRewinds(t *testing.T) {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	cam := NewMockCamera([]*gocv.Mat{&frame}, false)
	cam.Open()
	f, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	f.Close()
	cam.Close()

	cam.Open()
	defer cam.Close()
	f, err = cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() after reopen error = %v", err)
	}
	f.Close()
}
