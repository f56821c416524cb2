package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dycw/skritter/internal/config"
	"github.com/dycw/skritter/internal/events"
	"github.com/dycw/skritter/internal/inject"
	"github.com/dycw/skritter/internal/logging"
	"github.com/dycw/skritter/internal/notify"
	"github.com/dycw/skritter/internal/progress"
	"github.com/dycw/skritter/internal/review"
	"github.com/dycw/skritter/internal/tui"
)

const barWidth = 60

// runApp wires the event source, injector and monitor into the review loop
// and runs it until shutdown.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer log.Close()

	return runReview(cmd.Context(), cmd.ErrOrStderr(), cfg, log.Logger)
}

func runReview(parent context.Context, stderr io.Writer, cfg *config.Config, log *slog.Logger) (err error) {
	rc, err := cfg.Review()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	source, terminal, err := openSource(cfg, log)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, source.Close()) }()

	injector, err := inject.New(inject.Kind(cfg.IO.Injector), rc.Taps.Keys(), log)
	if err != nil {
		return fmt.Errorf("open %s injector: %w", cfg.IO.Injector, err)
	}
	defer func() { err = errors.Join(err, injector.Close()) }()

	var (
		reporter  progress.Reporter
		observers []review.Observer
	)
	switch cfg.IO.UI {
	case "tui":
		mon := tui.New(tui.Options{Bindings: rc.Bindings, Source: terminal, Cancel: cancel})
		mon.Start()
		defer func() { err = errors.Join(err, mon.Stop()) }()
		reporter = mon
		observers = append(observers, mon)
	case "plain":
		bar := progress.NewBar(stderr, barWidth, review.LabelWidth())
		defer bar.Finish()
		reporter = bar
	}

	if cfg.IO.Notify {
		sender, err := notify.NewDBus()
		if err != nil {
			log.Warn("desktop notifications disabled", "error", err)
		} else {
			n := notify.New(sender, log)
			defer n.Close()
			observers = append(observers, n)
		}
	}

	m, err := review.New(rc, review.Options{
		Source:    source,
		Injector:  injector,
		Progress:  reporter,
		Logger:    log,
		Observers: observers,
	})
	if err != nil {
		return err
	}

	log.Debug("review loop configured",
		"source", cfg.IO.Source,
		"injector", cfg.IO.Injector,
		"ui", cfg.IO.UI,
		"tick", rc.Tick,
	)
	return m.Run(ctx)
}

// openSource returns the configured event source. terminal is non-nil when
// keys come from the monitor UI.
func openSource(cfg *config.Config, log *slog.Logger) (source events.Source, terminal *events.Chan, err error) {
	switch cfg.IO.Source {
	case "terminal":
		ch := events.NewChan(0)
		return ch, ch, nil
	default:
		ev, err := events.OpenEvdev(events.EvdevConfig{
			Paths:        cfg.IO.Devices,
			ExcludeNames: []string{inject.DeviceName},
			Watch:        true,
			Logger:       log,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open keyboards: %w", err)
		}
		return ev, nil, nil
	}
}

// newLogger sends logs to a file when one is configured or when the
// monitor UI owns the terminal.
func newLogger(cfg *config.Config, stderr io.Writer) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	lc := &logging.Config{
		Level:    level,
		Format:   format,
		Output:   logging.OutputStderr,
		FilePath: cfg.Log.File,
	}
	if cfg.Log.File != "" || cfg.IO.UI == "tui" {
		lc.Output = logging.OutputFile
	}
	return logging.New(lc, stderr)
}
