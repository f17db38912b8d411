package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"amphorank/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFixtures(t *testing.T) (string, string) {
	t.Helper()
	stack, holdDrop, err := testkit.NewTestKit().WriteCSV(t.TempDir())
	require.NoError(t, err)
	return stack, holdDrop
}

func TestRankTable(t *testing.T) {
	stack, holdDrop := writeFixtures(t)

	out, err := execute(t, "rank", "--stack", stack, "--hold-drop", holdDrop, "--select", "S00,S01,S02")
	require.NoError(t, err)

	assert.Contains(t, out, "3 selected, 2 ranked, 1 excluded")
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "S02: missing hold")
	assert.Contains(t, out, "Reference loads:")
}

func TestRankJSON(t *testing.T) {
	stack, holdDrop := writeFixtures(t)

	out, err := execute(t, "rank", "--stack", stack, "--hold-drop", holdDrop, "--format", "json", "--seed", "9")
	require.NoError(t, err)

	var report struct {
		Seed     int64    `json:"seed"`
		Selected []string `json:"selected"`
		Result   struct {
			Entries []json.RawMessage `json:"entries"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, int64(9), report.Seed)
	assert.Len(t, report.Selected, 6)
	assert.Len(t, report.Result.Entries, 4)
}

func TestRankRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "rank", "--stack", "a.csv", "--hold-drop", "b.csv", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestRankRequiresInputs(t *testing.T) {
	t.Setenv("STACK_FILE", "")
	t.Setenv("HOLD_DROP_FILE", "")
	_, err := execute(t, "rank")
	assert.Error(t, err)
}

func TestSpecimens(t *testing.T) {
	stack, holdDrop := writeFixtures(t)

	out, err := execute(t, "specimens", "--stack", stack, "--hold-drop", holdDrop)
	require.NoError(t, err)
	assert.Equal(t, []string{"S00", "S01", "S02", "S03", "S04", "S05"}, strings.Fields(out))
}

func TestConfigPrintsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("outlier:\n  alpha: 0.01\n"), 0o600))

	out, err := execute(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "alpha: 0.01")
	assert.Contains(t, out, "rect_tensile: 0.2")

	_, err = execute(t, "config", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
