// Package config loads review settings from layered sources.
//
// Precedence, lowest to highest: built-in defaults, the aidiff.yaml config
// file ($XDG_CONFIG_HOME/aidiff or the current directory), AIDIFF_*
// environment variables, then command-line flags bound by the CLI layer.
package config
