package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SKRITTER"

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"init":       "durations.init",
	"test":       "durations.test",
	"review":     "durations.review",
	"forgotten":  "durations.forgotten",
	"pause":      "durations.pause",
	"tick":       "durations.tick",
	"source":     "io.source",
	"injector":   "io.injector",
	"devices":    "io.devices",
	"ui":         "io.ui",
	"notify":     "io.notify",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// Path is an explicit config file. It must exist when set.
	Path string
	// Flags overrides file and environment values for flags that were set.
	Flags *pflag.FlagSet
}

// DefaultPath returns $XDG_CONFIG_HOME/skritter/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "skritter", "config.toml"), nil
}

// ResolvePath returns the file Load would read.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return DefaultPath()
}

// Load merges defaults, the config file, environment and flags, then
// validates the result.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	path, err := ResolvePath(opts.Path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := checkSchema(data); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		v.SetConfigType("toml")
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && opts.Path == "":
		// No file at the default location: defaults apply.
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("durations.init", d.Durations.Init)
	v.SetDefault("durations.test", d.Durations.Test)
	v.SetDefault("durations.review", d.Durations.Review)
	v.SetDefault("durations.forgotten", d.Durations.Forgotten)
	v.SetDefault("durations.pause", d.Durations.Pause)
	v.SetDefault("durations.tick", d.Durations.Tick)
	v.SetDefault("keys.toggle_pause", d.Keys.TogglePause)
	v.SetDefault("keys.fail_current", d.Keys.FailCurrent)
	v.SetDefault("keys.fail_previous", d.Keys.FailPrevious)
	v.SetDefault("keys.shut_down", d.Keys.ShutDown)
	v.SetDefault("taps.success", d.Taps.Success)
	v.SetDefault("taps.confirm", d.Taps.Confirm)
	v.SetDefault("taps.fail", d.Taps.Fail)
	v.SetDefault("taps.previous", d.Taps.Previous)
	v.SetDefault("taps.next", d.Taps.Next)
	v.SetDefault("io.source", d.IO.Source)
	v.SetDefault("io.injector", d.IO.Injector)
	v.SetDefault("io.devices", d.IO.Devices)
	v.SetDefault("io.ui", d.IO.UI)
	v.SetDefault("io.notify", d.IO.Notify)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
}
