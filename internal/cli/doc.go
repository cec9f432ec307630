// Package cli wires the cobra command tree: review, config, models, cache,
// and version.
//
// Command handlers never call os.Exit; they set a package-level exit code
// that Run returns, so tests can execute commands in-process. Reports go to
// stdout, status and warnings to stderr.
package cli
