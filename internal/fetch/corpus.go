package fetch

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// EnsureCorpus makes sure dir holds the frequency corpus, one
// "word frequency" pair per line. An existing file is kept unless force is set.
func (f *Fetcher) EnsureCorpus(ctx context.Context, dir string, force bool) (Result, error) {
	corpusPath := filepath.Join(dir, CorpusName)
	if !force {
		present, err := fileExists(corpusPath)
		if err != nil {
			return Result{}, err
		}
		if present {
			log.Debug().Str("path", corpusPath).Msg("Using cached frequency corpus")
			return Result{Path: corpusPath, Cached: true}, nil
		}
	}

	log.Info().Str("url", f.opts.CorpusURL).Msg("Downloading frequency word list")
	if err := f.download(ctx, f.opts.CorpusURL, corpusPath); err != nil {
		return Result{}, err
	}
	return Result{Path: corpusPath, Cached: false}, nil
}
