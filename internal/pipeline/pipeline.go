// Package pipeline prepares the word lists: it checks the cache, fetches and
// builds when needed, and loads the result.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/phraseforge/internal/fetch"
	"github.com/verte-zerg/phraseforge/internal/model"
	"github.com/verte-zerg/phraseforge/internal/wordlist"
)

// Sources fetches the raw inputs of the word list builder.
type Sources interface {
	EnsureDictionary(ctx context.Context, dir string, force bool) (fetch.Result, error)
	EnsureCorpus(ctx context.Context, dir string, force bool) (fetch.Result, error)
}

// Options configures Prepare.
type Options struct {
	DataDir string
	Variant model.Variant
	Force   bool
	Sources Sources
}

// Prepare returns the loaded word lists of opts.Variant, fetching and
// building them first when the cache is incomplete or Force is set.
func Prepare(ctx context.Context, opts Options) (model.WordLists, error) {
	if opts.DataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	listDir := wordlist.Dir(opts.DataDir, opts.Variant)

	if opts.Force || !wordlist.Exists(listDir) {
		if opts.Sources == nil {
			return nil, fmt.Errorf("word lists missing in %s and no source configured", listDir)
		}
		if err := rebuild(ctx, opts, listDir); err != nil {
			return nil, err
		}
	} else {
		log.Debug().Str("dir", listDir).Msg("Using cached word lists")
	}

	lists, err := wordlist.Load(listDir, opts.Variant)
	if err != nil {
		return nil, fmt.Errorf("failed to load word lists: %w", err)
	}
	return lists, nil
}

func rebuild(ctx context.Context, opts Options, listDir string) error {
	dict, err := opts.Sources.EnsureDictionary(ctx, opts.DataDir, opts.Force)
	if err != nil {
		return fmt.Errorf("failed to fetch dictionary: %w", err)
	}

	build := wordlist.BuildOptions{
		Variant: opts.Variant,
		DictDir: dict.Path,
		OutDir:  listDir,
		Force:   opts.Force,
	}
	if opts.Variant != model.VariantLexical {
		corpus, err := opts.Sources.EnsureCorpus(ctx, opts.DataDir, opts.Force)
		if err != nil {
			return fmt.Errorf("failed to fetch frequency corpus: %w", err)
		}
		build.CorpusPath = corpus.Path
	}

	built, err := wordlist.BuildAll(build)
	if err != nil {
		return fmt.Errorf("failed to build word lists: %w", err)
	}
	log.Info().Int("lists", len(built)).Str("dir", filepath.Clean(listDir)).Msg("Word lists ready")
	return nil
}
