// Package cache provides a file-based cache for LLM review responses.
//
// Entries are keyed by provider name, model, and the assembled prompt (which
// already includes the redacted diff), hashed with SHA-256 to form the file
// name. Each entry stores the raw response string with a creation timestamp
// and a TTL in seconds. Expired entries are skipped on read.
//
// The default cache directory is $XDG_CACHE_HOME/aidiff or the
// OS-appropriate equivalent.
package cache
