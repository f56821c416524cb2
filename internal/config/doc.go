// Package config loads skritter's settings.
//
// Values are layered, lowest precedence first:
//   - built-in defaults
//   - the TOML config file ($XDG_CONFIG_HOME/skritter/config.toml by default)
//   - SKRITTER_* environment variables, e.g. SKRITTER_DURATIONS_TEST=2.5
//   - command-line flags
//
// The file is checked against an embedded JSON schema before it is merged,
// and the merged result is validated with struct tags.
package config
