// Package gitctx acquires diffs from a git repository.
//
// It shells out to git to diff the working tree (or the index, with the
// staged option) against a base reference, optionally appending untracked
// files as synthetic all-added diff sections. Diffs are cleaned of
// index/mode metadata and truncated to a configurable byte budget at
// whole-file boundaries, never inside a hunk.
//
// Any git failure (missing binary, unresolvable reference, or a working
// directory outside a repository) surfaces as a [DiffUnavailableError].
package gitctx
