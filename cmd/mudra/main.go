package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/effector"
	"github.com/ayusman/mudra/internal/logging"
	"github.com/ayusman/mudra/internal/overlay"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "mudra: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("mudra", pflag.ContinueOnError)
	configDir := fs.String("config", config.DataDir(), "directory containing "+config.FileName)
	history := fs.Int("history", 0, "print the last `n` journal events and command totals, then exit")
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*configDir, fs)
	if err != nil {
		return err
	}

	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	var fileOut io.Writer
	if logFile != nil {
		defer logFile.Close()
		fileOut = logFile
	}
	log := logging.New(cfg.LogLevel, os.Stderr, fileOut)

	if *history > 0 {
		s, err := store.New(cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer s.Close()
		return printHistory(os.Stdout, s, *history)
	}

	// highgui and the tray both want the main thread on macOS.
	if cfg.Tray.Enabled && cfg.Display.Enabled && runtime.GOOS == "darwin" {
		log.Warn().Msg("preview window disabled while the tray is enabled")
		cfg.Display.Enabled = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var tr *tray.Tray
	if cfg.Tray.Enabled {
		tr = tray.New()
	}

	a, err := build(cfg, tr, log)
	if err != nil {
		return err
	}

	if tr == nil {
		return a.Run(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	tr.OnToggle(a.SetEnabled)
	tr.OnQuit(cancel)

	errCh := make(chan error, 1)
	tr.Run(func() {
		go func() {
			errCh <- a.Run(ctx)
			tr.Quit()
		}()
	})
	cancel()
	return <-errCh
}

func build(cfg *config.Config, tr *tray.Tray, log zerolog.Logger) (*app.App, error) {
	fx := effector.NewSystem(cfg.EffectorConfig(runtime.GOOS), nil, log)

	var det detector.Detector
	if mp, err := detector.NewMediaPipeDetector(cfg.DetectorConfig()); err == nil {
		det = mp
		log.Info().Msg("using MediaPipe hand detection")
	} else {
		log.Warn().Err(err).Msg("MediaPipe not available, running without hand detection")
		det = detector.NewMockDetector()
	}

	var display overlay.Display = &overlay.Headless{}
	if cfg.Display.Enabled {
		display = overlay.NewWindow(cfg.Display.Title)
	}

	var journal *store.Store
	if cfg.Journal.Enabled {
		s, err := store.New(cfg.Journal.Path)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.Journal.Path).Msg("journal disabled")
		} else {
			journal = s
		}
	}

	appCfg := app.Config{
		Gesture:   cfg.GestureConfig(),
		Camera:    capture.NewCamera(cfg.CameraConfig()),
		Detector:  det,
		Effectors: fx,
		Display:   display,
		Journal:   journal,
		Logger:    log,
	}
	if tr != nil {
		appCfg.Status = tr
	}

	a, err := app.New(appCfg)
	if err != nil {
		det.Close()
		display.Close()
		if journal != nil {
			journal.Close()
		}
		return nil, err
	}
	return a, nil
}
