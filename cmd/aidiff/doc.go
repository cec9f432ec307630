// Aidiff reviews git diffs with LLM providers.
//
// It collects the diff between the working tree and a base ref (or the
// staged changes), sends it to a provider with the selected review-mode
// prompts, and prints the parsed findings as markdown, plain text, or JSON,
// with deterministic exit codes for scripting.
//
// Usage:
//
//	aidiff review                          # diff against origin/main, security mode
//	aidiff review --staged                 # review staged changes
//	aidiff review --modes security,performance
//	aidiff review --provider openai --model gpt-4o
//	aidiff review --dry-run                # print the prompt without calling a provider
//	aidiff models list                     # known providers and models
//	aidiff config init                     # write a starter config file
package main
