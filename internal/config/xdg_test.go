package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")

	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "phraseforge", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultDataDir(); got != filepath.Join("/data", "phraseforge") {
		t.Fatalf("unexpected data dir: %s", got)
	}
}

func TestXDGDataHomeFallback(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/tester")

	if got := XDGDataHome(); got != filepath.Join("/home/tester", ".local", "share") {
		t.Fatalf("unexpected data home: %s", got)
	}
}
