// Package main provides the CLI entrypoint for phraseforge.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/phraseforge/internal/config"
	"github.com/verte-zerg/phraseforge/internal/fault"
	"github.com/verte-zerg/phraseforge/internal/fetch"
	"github.com/verte-zerg/phraseforge/internal/generator"
	"github.com/verte-zerg/phraseforge/internal/logging"
	"github.com/verte-zerg/phraseforge/internal/model"
	"github.com/verte-zerg/phraseforge/internal/pipeline"
	"github.com/verte-zerg/phraseforge/internal/stats"
)

const (
	defaultCount        = 1
	defaultMinFrequency = 10000
	defaultVariant      = string(model.VariantFrequency)
	defaultLogLevel     = "info"
)

var (
	genCount        int
	genMinFrequency uint32
	genRedownload   bool
	genVariant      string
	genSeed         int64
	genSecure       bool
	genStrict       bool
	genDataDir      string
	genLogLevel     string

	configPathOnly bool
)

func main() {
	if err := logging.Setup(os.Stderr, defaultLogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		log.Error().Msg(err.Error())
		if hint := fault.Hint(err); hint != "" {
			log.Info().Msg(hint)
		}
		os.Exit(fault.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "phraseforge",
		Short:         "Generate memorable passphrases from WordNet word lists",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerateCmd,
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fault.Usagef("%v", err)
	})

	rootCmd.Flags().IntVarP(&genCount, "count", "c", defaultCount, "number of passphrases to generate")
	rootCmd.Flags().Int64Var(&genSeed, "seed", 0, "seed for reproducible output (0 = time-seeded)")
	rootCmd.Flags().BoolVar(&genSecure, "secure", false, "draw randomness from crypto/rand")
	rootCmd.Flags().BoolVar(&genStrict, "strict", false, "fail when a word slot has no words above the threshold")

	pf := rootCmd.PersistentFlags()
	pf.Uint32VarP(&genMinFrequency, "min-frequency", "f", defaultMinFrequency, "minimum word frequency to include")
	pf.BoolVarP(&genRedownload, "redownload", "r", false, "force re-download of WordNet data and rebuild of word lists")
	pf.StringVar(&genVariant, "variant", defaultVariant, "word list variant: frequency or lexical")
	pf.StringVar(&genDataDir, "data-dir", "", "storage directory (default: $XDG_DATA_HOME/phraseforge)")
	pf.StringVar(&genLogLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, error or disabled")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newInfoCmd())

	return rootCmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	lists, err := prepareLists(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	gen := newGenerator(cfg)
	out := cmd.OutOrStdout()
	warned := make(map[model.PartOfSpeech]bool)
	for i := 0; i < cfg.Count; i++ {
		var p generator.Passphrase
		switch cfg.Variant {
		case model.VariantLexical:
			p = gen.Lexical(lists)
			reportFallbacks(p.Missing, warned)
		default:
			if cfg.Strict {
				if p, err = gen.FrequencyStrict(lists, cfg.MinFrequency); err != nil {
					return err
				}
			} else {
				p = gen.Frequency(lists, cfg.MinFrequency)
				reportMissing(p.Missing, cfg.MinFrequency, warned)
			}
		}
		if _, err := fmt.Fprintln(out, p.Text); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show word list sizes and estimated passphrase entropy",
		Args:  cobra.NoArgs,
		RunE:  runInfoCmd,
	}
}

func runInfoCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	lists, err := prepareLists(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	report := stats.BuildReport(lists, cfg.Variant, cfg.MinFrequency)
	out := cmd.OutOrStdout()
	if err := report.Render(out, stats.ShouldUseColor(out, false)); err != nil {
		return err
	}
	if empty := report.Empty(); len(empty) > 0 && cfg.Variant != model.VariantLexical {
		log.Warn().Strs("parts", empty).Uint32("min_frequency", cfg.MinFrequency).Msg("Some slots have no eligible words; lower --min-frequency")
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
	cmd.Flags().BoolVar(&configPathOnly, "path", false, "print the config file path and exit")
	return cmd
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if configPathOnly {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fault.FS("create directory", filepath.Dir(path), err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fault.FS("stat", path, err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fault.FS("write", path, err)
		}
		log.Info().Str("path", path).Msg("Created config file")
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	editorCmd := exec.CommandContext(cmd.Context(), parts[0], append(parts[1:], path)...)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resolveConfig merges the config file into flags that were not set
// explicitly, validates the result and applies the log level.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fault.Usagef("failed to load config: %v", err)
	}
	applyConfig(cmd, "count", &genCount, fileCfg.Generate.Count)
	applyConfig(cmd, "min-frequency", &genMinFrequency, fileCfg.Generate.MinFrequency)
	applyConfig(cmd, "variant", &genVariant, fileCfg.Generate.Variant)
	applyConfig(cmd, "secure", &genSecure, fileCfg.Generate.Secure)
	applyConfig(cmd, "strict", &genStrict, fileCfg.Generate.Strict)
	applyConfig(cmd, "data-dir", &genDataDir, fileCfg.Storage.DataDir)
	applyConfig(cmd, "log-level", &genLogLevel, fileCfg.Log.Level)

	if err := logging.Setup(cmd.ErrOrStderr(), genLogLevel); err != nil {
		return model.Config{}, fault.Usagef("%v", err)
	}

	variant, err := model.ParseVariant(genVariant)
	if err != nil {
		return model.Config{}, fault.Usagef("--variant: %v", err)
	}
	cfg := model.Config{
		Count:        genCount,
		MinFrequency: genMinFrequency,
		Redownload:   genRedownload,
		Variant:      variant,
		Seed:         genSeed,
		Secure:       genSecure,
		Strict:       genStrict,
		DataDir:      genDataDir,
		LogLevel:     genLogLevel,
	}
	if fileCfg.Storage.KeepArchive != nil {
		cfg.KeepArchive = *fileCfg.Storage.KeepArchive
	}
	if fileCfg.Sources.WordNetURL != nil {
		cfg.WordNetURL = *fileCfg.Sources.WordNetURL
	}
	if fileCfg.Sources.CorpusURL != nil {
		cfg.CorpusURL = *fileCfg.Sources.CorpusURL
	}
	if cfg.DataDir == "" {
		cfg.DataDir = config.DefaultDataDir()
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	log.Debug().Interface("config", cfg).Msg("Resolved configuration")
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Count <= 0 {
		return fault.Usagef("--count must be > 0")
	}
	if cfg.Secure && cfg.Seed != 0 {
		return fault.Usagef("--seed cannot be combined with --secure")
	}
	return nil
}

func prepareLists(ctx context.Context, cfg model.Config) (model.WordLists, error) {
	fetcher := fetch.New(fetch.Options{
		WordNetURL:  cfg.WordNetURL,
		CorpusURL:   cfg.CorpusURL,
		KeepArchive: cfg.KeepArchive,
	})
	return pipeline.Prepare(ctx, pipeline.Options{
		DataDir: cfg.DataDir,
		Variant: cfg.Variant,
		Force:   cfg.Redownload,
		Sources: fetcher,
	})
}

func newGenerator(cfg model.Config) *generator.Generator {
	switch {
	case cfg.Secure:
		return generator.NewSecure()
	case cfg.Seed != 0:
		return generator.NewSeeded(cfg.Seed)
	default:
		return generator.New()
	}
}

// reportMissing warns once per part of speech left without candidates.
func reportMissing(parts []model.PartOfSpeech, minFrequency uint32, warned map[model.PartOfSpeech]bool) {
	for _, pos := range parts {
		if warned[pos] {
			continue
		}
		warned[pos] = true
		log.Warn().Str("part", pos.String()).Uint32("min_frequency", minFrequency).
			Msg("No words above the frequency threshold; field left empty, lower --min-frequency")
	}
}

func reportFallbacks(parts []model.PartOfSpeech, warned map[model.PartOfSpeech]bool) {
	for _, pos := range parts {
		if warned[pos] {
			continue
		}
		warned[pos] = true
		log.Debug().Str("part", pos.String()).Msg("Word list empty; using fallback word")
	}
}

func applyConfig[T any](cmd *cobra.Command, name string, target, value *T) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# phraseforge configuration
# Uncomment a value to enable it. CLI flags override config values.

[generate]
# count = %d                # Number of passphrases to generate
# min-frequency = %d    # Minimum word frequency (frequency variant)
# variant = %q     # "frequency" or "lexical"
# secure = false           # Draw randomness from crypto/rand
# strict = false           # Fail instead of leaving a word slot empty

[storage]
# data-dir = %q
# keep-archive = false     # Keep the WordNet archive after extraction

[sources]
# wordnet-url = %q
# corpus-url = %q

[log]
# level = %q
`,
		defaultCount,
		defaultMinFrequency,
		defaultVariant,
		config.DefaultDataDir(),
		fetch.DefaultWordNetURL,
		fetch.DefaultCorpusURL,
		defaultLogLevel,
	)
}
