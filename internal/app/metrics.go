package app

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ayusman/mudra/internal/gesture"
)

const instrumentationName = "github.com/ayusman/mudra/internal/app"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// metrics counts loop activity on the global meter provider. Without an SDK
// installed every instrument is a no-op.
type metrics struct {
	frames       metric.Int64Counter
	modeSwitches metric.Int64Counter
	commands     metric.Int64Counter
	failures     metric.Int64Counter
}

func newMetrics(m metric.Meter) (*metrics, error) {
	var (
		mt  metrics
		err error
	)

	mt.frames, err = m.Int64Counter(
		"mudra.frames",
		metric.WithDescription("Frames run through the interpreter"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}

	mt.modeSwitches, err = m.Int64Counter(
		"mudra.mode_switches",
		metric.WithDescription("Control mode changes"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating mode switch counter: %w", err)
	}

	mt.commands, err = m.Int64Counter(
		"mudra.commands",
		metric.WithDescription("Media commands dispatched successfully"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating commands counter: %w", err)
	}

	mt.failures, err = m.Int64Counter(
		"mudra.effector_failures",
		metric.WithDescription("Effector calls that returned an error"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating effector failure counter: %w", err)
	}

	return &mt, nil
}

func (mt *metrics) record(ctx context.Context, ev gesture.Event) {
	mt.frames.Add(ctx, 1, metric.WithAttributes(attribute.Bool("hand", ev.Hand)))

	if ev.ModeChanged {
		mt.modeSwitches.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", ev.Mode.String())))
	}

	if ev.Value != nil && ev.Value.Err != nil {
		mt.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", ev.Value.Mode.String())))
	}

	for _, f := range ev.Fired {
		attrs := metric.WithAttributes(attribute.String("command", string(f.Command)))
		if f.Err != nil {
			mt.failures.Add(ctx, 1, attrs)
			continue
		}
		mt.commands.Add(ctx, 1, attrs)
	}
}
