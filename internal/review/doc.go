// Package review contains the core types and engine for LLM-based diff
// review.
//
// It defines the Issue and Severity types, assembles the prompt payload
// (mode instructions, output-format contract, diff), parses the provider's
// labeled-field reply blocks into issues, and filters placeholder false
// positives. Malformed blocks are kept with sentinel values and surfaced as
// [ParseWarning]s rather than dropped, so partial results always survive a
// sloppy reply.
//
// The [Engine] wires the pipeline together; the provider call is its only
// side effect.
package review
