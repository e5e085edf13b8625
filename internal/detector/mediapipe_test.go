package detector

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"
)

// shellService returns a detector that runs script through sh instead of
// the Python hand service.
func shellService(t *testing.T, script string) (*MediaPipeDetector, string) {
	t.Helper()

	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	path := filepath.Join(t.TempDir(), "service.sh")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	d, err := NewMediaPipeDetector(Config{Python: sh, Script: path, MaxHands: 1})
	if err != nil {
		t.Fatalf("NewMediaPipeDetector() error = %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d, path
}

func TestMediaPipeDetector_RestartsAfterServiceExit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping gocv integration test")
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	d, path := shellService(t, "exit 0\n")

	if _, err := d.Detect(&frame); err == nil {
		t.Fatal("expected error from a service that exited")
	}
	if d.started {
		t.Fatal("dead service was kept after a protocol failure")
	}

	healthy := "echo '{\"hands\":[]}'\ncat > /dev/null\n"
	if err := os.WriteFile(path, []byte(healthy), 0o755); err != nil {
		t.Fatalf("rewrite script: %v", err)
	}

	hands, err := d.Detect(&frame)
	if err != nil {
		t.Fatalf("Detect() after restart error = %v", err)
	}
	if len(hands) != 0 {
		t.Errorf("hands = %d, want 0", len(hands))
	}
}

func TestMediaPipeDetector_ReportedErrorKeepsService(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping gocv integration test")
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	d, _ := shellService(t, "echo '{\"error\":\"decode failed\"}'\ncat > /dev/null\n")

	_, err := d.Detect(&frame)
	var reported *serviceError
	if !errors.As(err, &reported) {
		t.Fatalf("Detect() error = %v, want a service-reported error", err)
	}
	if !d.started {
		t.Error("service was stopped after a per-frame error")
	}
}
