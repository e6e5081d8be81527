package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/phraseforge/internal/fault"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	dataDir := t.TempDir()
	lists := map[string]string{
		"adjectives.txt": "big 900000\nhappy 80000\nobscure 3\n",
		"nouns.txt":      "house 40000\nmouse 30000\n",
		"verbs.txt":      "runs 30000\n",
		"adverbs.txt":    "quickly 20000\n",
	}
	for name, content := range lists {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0o644))
	}
	return dataDir
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestGenerateFromCachedLists(t *testing.T) {
	dataDir := setupEnv(t)

	out, _, err := runCLI(t, "--data-dir", dataDir, "-c", "3", "--seed", "11")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		fields := strings.Split(line, "-")
		require.Len(t, fields, 5, "unexpected passphrase %q", line)
		assert.Equal(t, "runs", fields[3])
		assert.Equal(t, "quickly", fields[4])
	}

	again, _, err := runCLI(t, "--data-dir", dataDir, "-c", "3", "--seed", "11")
	require.NoError(t, err)
	assert.Equal(t, out, again, "same seed yields same passphrases")
}

func TestGenerateWarnsOnEmptySlot(t *testing.T) {
	dataDir := setupEnv(t)

	out, stderr, err := runCLI(t, "--data-dir", dataDir, "-f", "35000", "-c", "2", "--seed", "5")
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Split(line, "-")
		require.Len(t, fields, 5)
		assert.Empty(t, fields[3], "no verb clears the threshold")
		assert.Empty(t, fields[4], "no adverb clears the threshold")
	}
	assert.Equal(t, 1, strings.Count(stderr, "part=verb"), "warning is logged once per part")
	assert.Contains(t, stderr, "part=adverb")
}

func TestGenerateStrictFails(t *testing.T) {
	dataDir := setupEnv(t)

	out, _, err := runCLI(t, "--data-dir", dataDir, "-f", "999999", "--strict")
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	dataDir := setupEnv(t)
	cfgDir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "phraseforge")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	cfg := "[generate]\ncount = 4\n\n[storage]\ndata-dir = \"" + filepath.ToSlash(dataDir) + "\"\n\n[log]\nlevel = \"error\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(cfg), 0o644))

	out, _, err := runCLI(t, "--seed", "2")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)

	out, _, err = runCLI(t, "--seed", "2", "-c", "1")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1)
}

func TestInvalidFlagsAreUsageErrors(t *testing.T) {
	dataDir := setupEnv(t)

	_, _, err := runCLI(t, "--data-dir", dataDir, "-c", "0")
	assert.Equal(t, fault.ExitUsage, fault.ExitCode(err))

	_, _, err = runCLI(t, "--data-dir", dataDir, "--variant", "poetic")
	assert.Equal(t, fault.ExitUsage, fault.ExitCode(err))

	_, _, err = runCLI(t, "--data-dir", dataDir, "--count", "many")
	assert.Equal(t, fault.ExitUsage, fault.ExitCode(err))

	_, _, err = runCLI(t, "--data-dir", dataDir, "--secure", "--seed", "3")
	assert.Equal(t, fault.ExitUsage, fault.ExitCode(err))
}

func TestLexicalVariantUsesOwnDirectory(t *testing.T) {
	dataDir := setupEnv(t)
	lexDir := filepath.Join(dataDir, "lexical")
	require.NoError(t, os.MkdirAll(lexDir, 0o755))
	for _, name := range []string{"adjectives.txt", "nouns.txt", "verbs.txt", "adverbs.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(lexDir, name), nil, 0o644))
	}

	out, _, err := runCLI(t, "--data-dir", dataDir, "--variant", "lexical")
	require.NoError(t, err)
	assert.Equal(t, "quick-fox-jumps-swiftly\n", out)
}

func TestInfoCommand(t *testing.T) {
	dataDir := setupEnv(t)

	out, _, err := runCLI(t, "info", "--data-dir", dataDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Variant frequency, frequency > 10000")
	assert.Contains(t, out, "Slot")
	assert.Contains(t, out, "adjective")
	assert.Contains(t, out, "total")
}

func TestConfigPath(t *testing.T) {
	setupEnv(t)

	out, _, err := runCLI(t, "config", "--path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "phraseforge", "config.toml")+"\n", out)
}
