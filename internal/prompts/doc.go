// Package prompts stores the per-mode instruction templates used to build
// review prompts.
//
// Templates for the four built-in modes (security, accessibility,
// performance, quality) are embedded in the binary. A prompts directory can
// override any of them with a <mode>.md file. Requesting a mode with no
// template is a configuration error surfaced as [TemplateNotFoundError].
package prompts
