// Package fetch downloads the WordNet dictionary and the word frequency
// corpus into the storage directory.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/phraseforge/internal/fault"
)

const (
	// DefaultWordNetURL is the WordNet 3.0 database archive.
	DefaultWordNetURL = "https://wordnetcode.princeton.edu/3.0/WNdb-3.0.tar.gz"
	// DefaultCorpusURL is the hermitdave English frequency list.
	DefaultCorpusURL = "https://raw.githubusercontent.com/hermitdave/FrequencyWords/refs/heads/master/content/2018/en/en_full.txt"

	// ArchiveName is the on-disk name of the downloaded dictionary archive.
	ArchiveName = "WNdb-3.0.tar.gz"
	// CorpusName is the on-disk name of the frequency corpus.
	CorpusName = "en_full.txt"
	// DictDir is the subdirectory holding the extracted index files.
	DictDir = "dict"

	defaultTimeout   = 2 * time.Minute
	defaultAttempts  = 3
	defaultUserAgent = "phraseforge-cli"
	retryBackoff     = 2 * time.Second
)

// retrySleep waits between attempts. Tests replace it.
var retrySleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Options configures a Fetcher. Zero values fall back to defaults.
type Options struct {
	WordNetURL  string
	CorpusURL   string
	KeepArchive bool
	Timeout     time.Duration
	Attempts    int
	UserAgent   string
}

// Fetcher retrieves remote word sources.
type Fetcher struct {
	client *http.Client
	opts   Options
}

// Result describes a fetched source on disk.
type Result struct {
	Path   string
	Cached bool
}

// New returns a Fetcher with defaults applied to opts.
func New(opts Options) *Fetcher {
	if opts.WordNetURL == "" {
		opts.WordNetURL = DefaultWordNetURL
	}
	if opts.CorpusURL == "" {
		opts.CorpusURL = DefaultCorpusURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Attempts <= 0 {
		opts.Attempts = defaultAttempts
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	return &Fetcher{
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
	}
}

// download fetches url into destPath, retrying transient failures.
func (f *Fetcher) download(ctx context.Context, url, destPath string) error {
	var lastErr error
	for attempt := 1; attempt <= f.opts.Attempts; attempt++ {
		if attempt > 1 {
			log.Warn().Err(lastErr).Int("attempt", attempt).Int("of", f.opts.Attempts).Msg("Retrying download")
			if err := retrySleep(ctx, time.Duration(attempt-1)*retryBackoff); err != nil {
				return &fault.NetworkError{URL: url, Err: err}
			}
		}
		err := f.downloadOnce(ctx, url, destPath)
		if err == nil {
			return nil
		}
		lastErr = err
		var netErr *fault.NetworkError
		if !errors.As(err, &netErr) || !netErr.Temporary() || ctx.Err() != nil {
			return err
		}
	}
	return lastErr
}

func (f *Fetcher) downloadOnce(ctx context.Context, url, destPath string) error {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fault.FS("create directory", dir, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return &fault.NetworkError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return &fault.NetworkError{URL: url, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return &fault.NetworkError{URL: url, Status: resp.StatusCode}
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(destPath)+".*.part")
	if err != nil {
		return fault.FS("create temp file", dir, err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	body := &trackingReader{r: resp.Body}
	if _, err := io.Copy(tmpFile, body); err != nil {
		if body.err != nil {
			return &fault.NetworkError{URL: url, Err: body.err}
		}
		return fault.FS("write", tmpPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fault.FS("close", tmpPath, err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fault.FS("rename", destPath, err)
	}
	return nil
}

// trackingReader remembers read errors so copy failures can be attributed
// to the network rather than the disk.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		t.err = err
	}
	return n, err
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fault.FS("stat", path, err)
}
