package wordlist

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/phraseforge/internal/fault"
	"github.com/verte-zerg/phraseforge/internal/model"
)

// WordNet index lines can be long; allow up to 1 MiB per line.
const maxLineSize = 1 << 20

// BuildOptions configures BuildAll.
type BuildOptions struct {
	Variant    model.Variant
	DictDir    string
	CorpusPath string
	OutDir     string
	Force      bool
}

// BuildAll derives the word list of every part of speech into OutDir and
// returns the parts that were (re)built. Existing lists are kept unless
// Force is set.
func BuildAll(opts BuildOptions) ([]model.PartOfSpeech, error) {
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fault.FS("create directory", opts.OutDir, err)
	}

	var built []model.PartOfSpeech
	for _, pos := range model.PartsOfSpeech {
		outPath := filepath.Join(opts.OutDir, pos.ListFile())
		if !opts.Force {
			if _, err := os.Stat(outPath); err == nil {
				log.Debug().Str("path", outPath).Msg("Keeping existing word list")
				continue
			} else if !os.IsNotExist(err) {
				return built, fault.FS("stat", outPath, err)
			}
		}

		indexPath := filepath.Join(opts.DictDir, pos.IndexFile())
		log.Info().Str("list", pos.ListFile()).Str("variant", string(opts.Variant)).Msg("Building word list")

		var (
			lines []string
			err   error
		)
		switch opts.Variant {
		case model.VariantLexical:
			lines, err = BuildLexical(indexPath)
		default:
			lines, err = BuildFrequency(indexPath, opts.CorpusPath)
		}
		if err != nil {
			return built, err
		}
		if err := WriteLines(outPath, lines); err != nil {
			return built, err
		}
		log.Debug().Str("path", outPath).Int("words", len(lines)).Msg("Wrote word list")
		built = append(built, pos)
	}
	return built, nil
}

// BuildFrequency keeps the corpus lines whose word appears in the dictionary
// index. Lines are returned verbatim in corpus order.
func BuildFrequency(indexPath, corpusPath string) ([]string, error) {
	known, err := knownWords(indexPath)
	if err != nil {
		return nil, err
	}

	var lines []string
	err = scanLines(corpusPath, func(line string) {
		if token := firstToken(line); token != "" {
			if _, ok := known[token]; ok {
				lines = append(lines, line)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// BuildLexical returns the index words that pass LexicalWord, skipping the
// indented license header of WordNet index files.
func BuildLexical(indexPath string) ([]string, error) {
	var words []string
	err := scanLines(indexPath, func(line string) {
		if strings.HasPrefix(line, "  ") {
			return
		}
		if token := firstToken(line); LexicalWord(token) {
			words = append(words, token)
		}
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

func knownWords(indexPath string) (map[string]struct{}, error) {
	known := make(map[string]struct{})
	err := scanLines(indexPath, func(line string) {
		if token := firstToken(line); KnownWord(token) {
			known[token] = struct{}{}
		}
	})
	if err != nil {
		return nil, err
	}
	return known, nil
}

func firstToken(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func scanLines(path string, fn func(string)) error {
	file, err := os.Open(path)
	if err != nil {
		return fault.FS("open", path, err)
	}
	defer func() {
		// Best-effort close for read-only input.
		_ = file.Close()
	}()

	if err := eachLine(file, fn); err != nil {
		return fault.FS("read", path, err)
	}
	return nil
}

func eachLine(r io.Reader, fn func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	return scanner.Err()
}
