package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dycw/skritter/internal/events"
	"github.com/dycw/skritter/internal/inject"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Print raw key events from the input devices",
	Long: `probe reads the same keyboards the review loop would and prints every
event it sees. Use it to check device permissions and key names.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		duration, _ := cmd.Flags().GetDuration("duration")
		list, _ := cmd.Flags().GetBool("list")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if list {
			paths, err := events.FindKeyboards([]string{inject.DeviceName})
			if err != nil {
				return fmt.Errorf("find keyboards: %w", err)
			}
			for _, p := range paths {
				fmt.Fprintln(out, p)
			}
			return nil
		}

		if cfg.IO.Source != "evdev" {
			return fmt.Errorf("probe reads input devices; source %q has nothing to probe", cfg.IO.Source)
		}

		log, err := newLogger(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer log.Close()

		src, err := events.OpenEvdev(events.EvdevConfig{
			Paths:        cfg.IO.Devices,
			ExcludeNames: []string{inject.DeviceName},
			Watch:        true,
			Logger:       log.Logger,
		})
		if err != nil {
			return fmt.Errorf("open keyboards: %w", err)
		}
		defer src.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), duration)
		defer cancel()

		fmt.Fprintf(out, "Reading key events for %s...\n", duration)
		for {
			ev, ok, err := src.Poll(ctx, time.Second)
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return nil
			}
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(out, "%s  %-7s  %-10s  %s\n",
					ev.Time.Format("15:04:05.000"), ev.Kind, ev.Key, ev.Device)
			}
		}
	},
}

func init() {
	probeCmd.Flags().Duration("duration", 10*time.Second, "How long to read events")
	probeCmd.Flags().Bool("list", false, "List the keyboards that would be read and exit")
}
