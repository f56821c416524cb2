package config

import (
	"fmt"
	"time"

	"github.com/dycw/skritter/internal/keys"
	"github.com/dycw/skritter/internal/review"
)

// Config holds all application configuration.
type Config struct {
	Durations DurationsConfig `mapstructure:"durations" toml:"durations" yaml:"durations"`
	Keys      KeysConfig      `mapstructure:"keys" toml:"keys" yaml:"keys"`
	Taps      TapsConfig      `mapstructure:"taps" toml:"taps" yaml:"taps"`
	IO        IOConfig        `mapstructure:"io" toml:"io" yaml:"io"`
	Log       LogConfig       `mapstructure:"log" toml:"log" yaml:"log"`
}

// DurationsConfig holds per-state waits in seconds.
type DurationsConfig struct {
	Init      float64 `mapstructure:"init" toml:"init" yaml:"init" validate:"gte=0"`
	Test      float64 `mapstructure:"test" toml:"test" yaml:"test" validate:"gte=0"`
	Review    float64 `mapstructure:"review" toml:"review" yaml:"review" validate:"gte=0"`
	Forgotten float64 `mapstructure:"forgotten" toml:"forgotten" yaml:"forgotten" validate:"gte=0"`
	// Pause applies to both paused states.
	Pause float64 `mapstructure:"pause" toml:"pause" yaml:"pause" validate:"gte=0"`
	Tick  float64 `mapstructure:"tick" toml:"tick" yaml:"tick" validate:"gt=0"`
}

// KeysConfig binds operator signals to keys.
type KeysConfig struct {
	TogglePause  string `mapstructure:"toggle_pause" toml:"toggle_pause" yaml:"toggle_pause" validate:"required,keyname"`
	FailCurrent  string `mapstructure:"fail_current" toml:"fail_current" yaml:"fail_current" validate:"required,keyname"`
	FailPrevious string `mapstructure:"fail_previous" toml:"fail_previous" yaml:"fail_previous" validate:"required,keyname"`
	ShutDown     string `mapstructure:"shut_down" toml:"shut_down" yaml:"shut_down" validate:"required,keyname"`
}

// TapsConfig names the target application's shortcuts.
type TapsConfig struct {
	Success  string `mapstructure:"success" toml:"success" yaml:"success" validate:"required,keyname"`
	Confirm  string `mapstructure:"confirm" toml:"confirm" yaml:"confirm" validate:"required,keyname"`
	Fail     string `mapstructure:"fail" toml:"fail" yaml:"fail" validate:"required,keyname"`
	Previous string `mapstructure:"previous" toml:"previous" yaml:"previous" validate:"required,keyname"`
	Next     string `mapstructure:"next" toml:"next" yaml:"next" validate:"required,keyname"`
}

// IOConfig selects the event source, injector and monitor.
type IOConfig struct {
	Source   string   `mapstructure:"source" toml:"source" yaml:"source" validate:"oneof=evdev terminal"`
	Injector string   `mapstructure:"injector" toml:"injector" yaml:"injector" validate:"oneof=uinput xdotool dry-run"`
	Devices  []string `mapstructure:"devices" toml:"devices" yaml:"devices" validate:"dive,required"`
	UI       string   `mapstructure:"ui" toml:"ui" yaml:"ui" validate:"oneof=tui plain none"`
	Notify   bool     `mapstructure:"notify" toml:"notify" yaml:"notify"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" toml:"format" yaml:"format" validate:"oneof=text json"`
	File   string `mapstructure:"file" toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Durations: DurationsConfig{
			Init:      2.0,
			Test:      1.5,
			Review:    1.5,
			Forgotten: 3.0,
			Pause:     60,
			Tick:      0.1,
		},
		Keys: KeysConfig{
			TogglePause:  "esc",
			FailCurrent:  "c",
			FailPrevious: "l",
			ShutDown:     "q",
		},
		Taps: TapsConfig{
			Success:  "3",
			Confirm:  "enter",
			Fail:     "1",
			Previous: "left",
			Next:     "right",
		},
		IO: IOConfig{
			Source:   "evdev",
			Injector: "uinput",
			Devices:  []string{},
			UI:       "plain",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks struct tags, then the rules that span fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	b, err := c.Bindings()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := b.Validate(); err != nil {
		return fmt.Errorf("invalid config: keys: %w", err)
	}
	if c.IO.Source == "terminal" && c.IO.UI != "tui" {
		return fmt.Errorf("invalid config: source terminal needs ui tui, got %q", c.IO.UI)
	}
	return nil
}

// StateDurations converts the per-state waits.
func (c *Config) StateDurations() review.Durations {
	d := c.Durations
	pause := review.Seconds(d.Pause)
	return review.Durations{
		review.StateInit:         review.Seconds(d.Init),
		review.StateTest:         review.Seconds(d.Test),
		review.StateReview:       review.Seconds(d.Review),
		review.StateForgotten:    review.Seconds(d.Forgotten),
		review.StateTestPaused:   pause,
		review.StateReviewPaused: pause,
	}
}

// Tick returns the polling subdivision.
func (c *Config) Tick() time.Duration {
	return review.Seconds(c.Durations.Tick)
}

// Bindings converts the signal keys.
func (c *Config) Bindings() (review.Bindings, error) {
	var b review.Bindings
	err := parseAll([]parseTarget{
		{"keys.toggle_pause", c.Keys.TogglePause, &b.TogglePause},
		{"keys.fail_current", c.Keys.FailCurrent, &b.FailCurrent},
		{"keys.fail_previous", c.Keys.FailPrevious, &b.FailPrevious},
		{"keys.shut_down", c.Keys.ShutDown, &b.ShutDown},
	})
	return b, err
}

// TapKeys converts the target application's shortcuts.
func (c *Config) TapKeys() (review.Taps, error) {
	var t review.Taps
	err := parseAll([]parseTarget{
		{"taps.success", c.Taps.Success, &t.Success},
		{"taps.confirm", c.Taps.Confirm, &t.Confirm},
		{"taps.fail", c.Taps.Fail, &t.Fail},
		{"taps.previous", c.Taps.Previous, &t.Previous},
		{"taps.next", c.Taps.Next, &t.Next},
	})
	return t, err
}

// Review assembles the engine configuration.
func (c *Config) Review() (review.Config, error) {
	b, err := c.Bindings()
	if err != nil {
		return review.Config{}, err
	}
	t, err := c.TapKeys()
	if err != nil {
		return review.Config{}, err
	}
	return review.Config{
		Durations: c.StateDurations(),
		Bindings:  b,
		Taps:      t,
		Tick:      c.Tick(),
	}, nil
}

type parseTarget struct {
	name string
	raw  string
	dst  *keys.Key
}

func parseAll(targets []parseTarget) error {
	for _, t := range targets {
		k, err := keys.Parse(t.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", t.name, err)
		}
		*t.dst = k
	}
	return nil
}
