package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidiff/aidiff/internal/cache"
	"github.com/aidiff/aidiff/internal/config"
	"github.com/aidiff/aidiff/internal/gitctx"
	"github.com/aidiff/aidiff/internal/output"
	"github.com/aidiff/aidiff/internal/prompts"
	"github.com/aidiff/aidiff/internal/providers"
	"github.com/aidiff/aidiff/internal/redact"
	"github.com/aidiff/aidiff/internal/review"
)

var flagOut string

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review the current git diff with an LLM",
	Long: "Collects a git diff against a base ref (or the staged changes), sends it\n" +
		"to the configured LLM provider with the selected review-mode prompts, and\n" +
		"prints the parsed findings.",
	RunE: runReviewCmd,
}

// flagKeys maps flag names to config keys so flags override file and
// environment settings.
var flagKeys = map[string]string{
	"base":              "base",
	"staged":            "staged",
	"include-untracked": "include_untracked",
	"modes":             "modes",
	"provider":          "provider",
	"model":             "model",
	"output":            "output",
	"group-by":          "group_by",
	"dry-run":           "dry_run",
	"debug":             "debug",
	"prompts-dir":       "prompts_dir",
	"max-diff-bytes":    "max_diff_bytes",
	"timeout":           "timeout",
	"no-redact":         "no_redact",
	"no-cache":          "no_cache",
}

func init() {
	f := reviewCmd.Flags()
	f.String("base", "", "Base ref to diff against (default origin/main)")
	f.Bool("staged", false, "Review staged changes instead of a base diff")
	f.Bool("include-untracked", false, "Include untracked files as synthetic diffs")
	f.StringSlice("modes", nil, "Review modes: security, accessibility, performance, quality")
	f.String("provider", "", "LLM provider (anthropic, openai, gemini, ollama)")
	f.String("model", "", "Model name (empty selects the provider default)")
	f.String("output", "", "Output format (markdown, plain, json)")
	f.String("group-by", "", "Group issues by file or type")
	f.Bool("dry-run", false, "Print the assembled prompt instead of calling the provider")
	f.Bool("debug", false, "Print run diagnostics to stderr")
	f.String("prompts-dir", "", "Directory with <mode>.md prompt template overrides")
	f.Int("max-diff-bytes", 0, "Truncate the diff beyond this many bytes")
	f.Int("timeout", 0, "Provider timeout in seconds")
	f.Bool("no-redact", false, "Disable secret redaction (use with caution)")
	f.Bool("no-cache", false, "Bypass the response cache")
	f.StringVar(&flagOut, "out", "", "Write the report to a file instead of stdout")
}

func loadReviewConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.New()
	if err != nil {
		return nil, err
	}
	for flag, key := range flagKeys {
		if pf := cmd.Flags().Lookup(flag); pf != nil && pf.Changed {
			if err := v.BindPFlag(key, pf); err != nil {
				return nil, err
			}
		}
	}
	return config.Load(v)
}

func runReviewCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadReviewConfig(cmd)
	if err != nil {
		errorf("%v", err)
		exitCode = ExitRuntimeError
		return nil
	}

	if !output.ValidGroupBy(cfg.GroupBy) {
		errorf("invalid --group-by %q (expected %s or %s)", cfg.GroupBy, output.GroupByFile, output.GroupByType)
		exitCode = ExitUsageError
		return nil
	}

	store := prompts.NewStore(cfg.PromptsDir)
	instructions, err := store.Combine(cfg.Modes)
	if err != nil {
		errorf("%v", err)
		exitCode = ExitRuntimeError
		return nil
	}

	if cfg.NoRedact {
		warnf("secret redaction is disabled")
	}
	if !cfg.Staged && gitctx.IsDirty() {
		warnf("working tree has uncommitted changes; the diff against %s includes them", cfg.Base)
	}

	diffRes, err := gitctx.Diff(cfg.Base, gitctx.DiffOptions{
		Staged:           cfg.Staged,
		IncludeUntracked: cfg.IncludeUntracked,
		MaxDiffBytes:     cfg.MaxDiffBytes,
	})
	if err != nil {
		errorf("%v", err)
		exitCode = ExitRuntimeError
		return nil
	}
	if diffRes.Diff == "" {
		successf("No changes to review.")
		return nil
	}
	if diffRes.Truncated {
		warnf("diff truncated to %d bytes; %d file(s) dropped", cfg.MaxDiffBytes, diffRes.DroppedFiles)
	}

	if cfg.DryRun {
		diff := diffRes.Diff
		if !cfg.NoRedact {
			diff = redact.Diff(diff, cfg.RedactPaths)
		}
		fmt.Fprint(os.Stdout, review.BuildPrompt(instructions, diff))
		return nil
	}

	formatter, err := output.Default().Get(cfg.Output)
	if err != nil {
		errorf("%v", err)
		exitCode = ExitUsageError
		return nil
	}

	client, err := providers.Default().New(cfg.Provider, cfg.Model, providers.Options{
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		errorf("%v", err)
		if providers.IsAuthError(err) {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitUsageError
		}
		return nil
	}

	respCache, err := cache.New(!cfg.NoCache, cfg.CacheDir, cfg.CacheTTLSeconds)
	if err != nil {
		warnf("cache unavailable: %v", err)
		respCache, _ = cache.New(false, "", 0)
	}

	engine := &review.Engine{
		Provider:      client,
		Cache:         respCache,
		RedactSecrets: !cfg.NoRedact,
		RedactPaths:   cfg.RedactPaths,
		MaxTokens:     cfg.MaxTokens,
	}

	if cfg.Debug {
		infof("provider=%s model=%s modes=%v files=%d", client.Name(), client.Model(), cfg.Modes, len(diffRes.Files))
	}

	ctx := context.Background()
	result, err := engine.Run(ctx, instructions, diffRes.Diff, cfg.Modes)
	if err != nil {
		errorf("%v", err)
		if providers.IsAuthError(err) {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitRuntimeError
		}
		return nil
	}

	reportParseWarnings(result.Warnings, cfg.Debug)
	if cfg.Debug {
		infof("run=%s cache_hit=%v tokens=%d llm_ms=%d issues=%d",
			result.RunID, result.CacheHit, result.TokensUsed, result.LLMMs, len(result.Issues))
	}

	w, closeFn, err := reportWriter(flagOut)
	if err != nil {
		errorf("%v", err)
		exitCode = ExitRuntimeError
		return nil
	}
	defer closeFn()

	err = formatter.Render(w, output.Report{
		Issues:      result.Issues,
		Modes:       cfg.Modes,
		GroupBy:     cfg.GroupBy,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		errorf("writing report: %v", err)
		exitCode = ExitRuntimeError
	}
	return nil
}

func reportParseWarnings(warnings []review.ParseWarning, debug bool) {
	if len(warnings) == 0 {
		return
	}
	warnf("%d issue block(s) had missing or malformed fields; defaults were substituted", len(warnings))
	if debug {
		for _, w := range warnings {
			infof("  %s", w)
		}
	}
}

func reportWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
