package fetch

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/phraseforge/internal/fault"
	"github.com/verte-zerg/phraseforge/internal/model"
)

// EnsureDictionary makes sure dir/dict holds the WordNet index file of every
// part of speech. Existing files are kept unless force is set.
func (f *Fetcher) EnsureDictionary(ctx context.Context, dir string, force bool) (Result, error) {
	dictDir := filepath.Join(dir, DictDir)
	if !force {
		present, err := dictionaryPresent(dictDir)
		if err != nil {
			return Result{}, err
		}
		if present {
			log.Debug().Str("dir", dictDir).Msg("Using cached WordNet dictionary")
			return Result{Path: dictDir, Cached: true}, nil
		}
	}

	archivePath := filepath.Join(dir, ArchiveName)
	log.Info().Str("url", f.opts.WordNetURL).Msg("Downloading WordNet dictionary")
	if err := f.download(ctx, f.opts.WordNetURL, archivePath); err != nil {
		return Result{}, err
	}

	log.Info().Str("archive", archivePath).Msg("Extracting WordNet dictionary")
	if err := ExtractIndexFiles(archivePath, dictDir); err != nil {
		return Result{}, err
	}
	if !f.opts.KeepArchive {
		if err := os.Remove(archivePath); err != nil {
			return Result{}, fault.FS("remove", archivePath, err)
		}
	}
	return Result{Path: dictDir, Cached: false}, nil
}

// ExtractIndexFiles copies the dict/index.* members of a gzipped tar
// archive into destDir.
func ExtractIndexFiles(archivePath, destDir string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fault.FS("open", archivePath, err)
	}
	defer func() {
		_ = file.Close()
	}()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return &fault.ExtractError{Archive: archivePath, Err: fmt.Errorf("failed to create gzip reader: %w", err)}
	}
	defer func() {
		_ = gzReader.Close()
	}()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fault.FS("create directory", destDir, err)
	}

	wanted := make(map[string]struct{}, len(model.PartsOfSpeech))
	for _, pos := range model.PartsOfSpeech {
		wanted[path.Join(DictDir, pos.IndexFile())] = struct{}{}
	}

	tarReader := tar.NewReader(gzReader)
	found := make(map[string]struct{}, len(wanted))
	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !(errors.Is(err, tar.ErrInsecurePath) && header != nil) {
			return &fault.ExtractError{Archive: archivePath, Err: fmt.Errorf("error reading tar archive: %w", err)}
		}
		name, ok := memberName(header.Name)
		if !ok {
			return &fault.ExtractError{Archive: archivePath, Member: header.Name, Err: errors.New("unsafe member path")}
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		if _, ok := wanted[name]; !ok {
			continue
		}
		dest := filepath.Join(destDir, path.Base(name))
		if err := writeMember(tarReader, dest); err != nil {
			var fsErr *fault.FilesystemError
			if errors.As(err, &fsErr) {
				return err
			}
			return &fault.ExtractError{Archive: archivePath, Member: name, Err: err}
		}
		found[name] = struct{}{}
	}

	for _, pos := range model.PartsOfSpeech {
		name := path.Join(DictDir, pos.IndexFile())
		if _, ok := found[name]; !ok {
			return &fault.ExtractError{Archive: archivePath, Member: name, Err: errors.New("member not found")}
		}
	}
	return nil
}

// memberName normalizes a tar member name and reports whether it stays
// inside the extraction root.
func memberName(name string) (string, bool) {
	if strings.HasPrefix(name, "/") {
		return "", false
	}
	cleaned := path.Clean(name)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	return cleaned, true
}

func writeMember(r io.Reader, dest string) error {
	dir := filepath.Dir(dest)
	tmpFile, err := os.CreateTemp(dir, filepath.Base(dest)+".*.part")
	if err != nil {
		return fault.FS("create temp file", dir, err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	src := &trackingReader{r: r}
	if _, err := io.Copy(tmpFile, src); err != nil {
		if src.err != nil {
			return src.err
		}
		return fault.FS("write", tmpPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fault.FS("close", tmpPath, err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fault.FS("rename", dest, err)
	}
	return nil
}

func dictionaryPresent(dictDir string) (bool, error) {
	for _, pos := range model.PartsOfSpeech {
		ok, err := fileExists(filepath.Join(dictDir, pos.IndexFile()))
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
