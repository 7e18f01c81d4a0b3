package github

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadRulesFileSequence(t *testing.T) {
	path := writeRulesFile(t, `
- name: branch-protection
  enforcement: active
- name: tag-protection
  enforcement: evaluate
`)

	rules, err := LoadRulesFile(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "branch-protection", rules[0].Name())
	assert.Equal(t, "evaluate", rules[1]["enforcement"])
}

func TestLoadRulesFileSingleMapping(t *testing.T) {
	path := writeRulesFile(t, `
name: branch-protection
enforcement: active
`)

	rules, err := LoadRulesFile(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "branch-protection", rules[0].Name())
}

func TestLoadRulesFileAcceptsEmittedReport(t *testing.T) {
	var buf bytes.Buffer
	e := &Emitter{Indent: 2}
	require.NoError(t, e.Emit(&buf, []Record{emitterRule()}))
	path := writeRulesFile(t, buf.String())

	rules, err := LoadRulesFile(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "default-branch-protection", rules[0].Name())
	assert.Equal(t, "active", rules[0]["enforcement"])
}

func TestLoadRulesFileMissing(t *testing.T) {
	_, err := LoadRulesFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRulesFileInvalid(t *testing.T) {
	path := writeRulesFile(t, "{{{not yaml")
	_, err := LoadRulesFile(path)
	assert.Error(t, err)
}
