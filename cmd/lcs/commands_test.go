package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/robmorgan/lcs/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPatch = `
output:
  type: dump
fixtures:
  - name: spot1
    address: 1
    channels: 1
    dimmer: 0
  - name: par1
    address: 10
    profile: shehds-par
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writePatch(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lcs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testPatch), 0o644))
	return path
}

func TestDumpCommand(t *testing.T) {
	path := writePatch(t)

	out, err := execute(t, "dump", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "spot1")
	assert.Contains(t, out, "1-1")
	assert.Contains(t, out, "par1")
	assert.Contains(t, out, "10-17")
	assert.Contains(t, out, "rgbw 11,12,13,14")
	assert.Contains(t, out, "00000000")

	out, err = execute(t, "dump", "--config", path, "--yaml")
	require.NoError(t, err)
	cfg, err := config.Parse([]byte(out))
	require.NoError(t, err)
	assert.Len(t, cfg.Fixtures, 2)
}

func TestProfilesCommand(t *testing.T) {
	out, err := execute(t, "profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "shehds-par")
	assert.Contains(t, out, "generic-rgbw")
}

func TestBlackoutCommand(t *testing.T) {
	path := writePatch(t)

	_, err := execute(t, "blackout", "--config", path)
	require.NoError(t, err)
}

func TestBadConfig(t *testing.T) {
	_, err := execute(t, "dump", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writePatch(t)
	_, err = execute(t, "blackout", "--config", path, "--output", "artnet")
	assert.Error(t, err)
}
