// Package output renders review results in the supported formats.
//
// Three formatters are built in: markdown (the default, with emoji markers
// and per-group headings), plain text, and JSON for downstream tooling. The
// markdown formatter keeps the labeled-field issue layout, so a rendered
// report parses back into the same issues.
//
// Human-readable formats group issues by file path or by review type
// (untyped issues land in an "unspecified" bucket); groups appear in
// first-seen order and issues keep their parsed order. JSON always groups
// by file.
package output
