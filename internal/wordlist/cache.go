package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/verte-zerg/phraseforge/internal/fault"
	"github.com/verte-zerg/phraseforge/internal/model"
)

// lexicalSubdir keeps lexical lists apart from frequency lists so both
// caches can live in one storage directory.
const lexicalSubdir = "lexical"

// Dir returns the directory holding the derived lists of a variant.
func Dir(dataDir string, variant model.Variant) string {
	if variant == model.VariantLexical {
		return filepath.Join(dataDir, lexicalSubdir)
	}
	return dataDir
}

// Exists reports whether all four derived word lists are present in dir.
// File contents are not inspected.
func Exists(dir string) bool {
	for _, pos := range model.PartsOfSpeech {
		if _, err := os.Stat(filepath.Join(dir, pos.ListFile())); err != nil {
			return false
		}
	}
	return true
}

// Load reads the four derived word lists from dir.
func Load(dir string, variant model.Variant) (model.WordLists, error) {
	parse := parseFrequencyLine
	if variant == model.VariantLexical {
		parse = parseLexicalLine
	}
	lists := make(model.WordLists, len(model.PartsOfSpeech))
	for _, pos := range model.PartsOfSpeech {
		entries, err := loadEntries(filepath.Join(dir, pos.ListFile()), parse)
		if err != nil {
			return nil, err
		}
		lists[pos] = entries
	}
	return lists, nil
}

func loadEntries(path string, parse func(string) (model.WordEntry, bool)) ([]model.WordEntry, error) {
	var entries []model.WordEntry
	err := scanLines(path, func(line string) {
		if entry, ok := parse(line); ok {
			entries = append(entries, entry)
		}
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// parseFrequencyLine parses "word frequency". Lines missing either field or
// carrying a frequency outside uint32 are rejected.
func parseFrequencyLine(line string) (model.WordEntry, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return model.WordEntry{}, false
	}
	freq, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return model.WordEntry{}, false
	}
	return model.WordEntry{Word: fields[0], Frequency: uint32(freq)}, true
}

func parseLexicalLine(line string) (model.WordEntry, bool) {
	word := firstToken(line)
	if word == "" {
		return model.WordEntry{}, false
	}
	return model.WordEntry{Word: word}, true
}

// WriteLines atomically replaces path with one line per element.
func WriteLines(path string, lines []string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fault.FS("create directory", dir, err)
	}
	tmpFile, err := os.CreateTemp(dir, "wordlist-*.txt")
	if err != nil {
		return fault.FS("create temp file", dir, err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, line := range lines {
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return fault.FS("write", tmpPath, err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fault.FS("flush", tmpPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fault.FS("close", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fault.FS("rename", path, err)
	}
	return nil
}
