package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dycw/skritter/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "skritter",
	Short: "Timed review automation for Skritter",
	Long: `skritter drives the Skritter review page on a timer: it answers each card,
moves on to the next one and lets you pause, fail the current or previous
card, or quit with a single key.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	d := config.Default()

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/skritter/config.toml)")
	pf.String("log-level", d.Log.Level, "Log level: debug, info, warn or error")
	pf.String("log-format", d.Log.Format, "Log format: text or json")
	pf.String("log-file", d.Log.File, "Write logs to this file instead of stderr")
	pf.String("source", d.IO.Source, "Event source: evdev or terminal")
	pf.StringSlice("devices", d.IO.Devices, "Input devices to read (default: every keyboard)")

	f := rootCmd.Flags()
	f.Float64("init", d.Durations.Init, "Seconds to wait before the first card")
	f.Float64("test", d.Durations.Test, "Seconds to spend on each test")
	f.Float64("review", d.Durations.Review, "Seconds to spend on each review")
	f.Float64("forgotten", d.Durations.Forgotten, "Seconds to spend on a card marked forgotten")
	f.Float64("pause", d.Durations.Pause, "Seconds between checks while paused")
	f.Float64("tick", d.Durations.Tick, "Polling interval in seconds")
	f.String("injector", d.IO.Injector, "Key injector: uinput, xdotool or dry-run")
	f.String("ui", d.IO.UI, "Monitor: tui, plain or none")
	f.Bool("notify", d.IO.Notify, "Send desktop notifications on pause, forgotten and shutdown")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadConfig merges defaults, the config file, SKRITTER_* variables and the
// flags set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(config.LoadOptions{Path: path, Flags: cmd.Flags()})
}
