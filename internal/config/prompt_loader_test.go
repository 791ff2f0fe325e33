package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPromptContentEmpty(t *testing.T) {
	got, err := LoadPromptContent("   ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadPromptContentInlineTemplate(t *testing.T) {
	got, err := LoadPromptContent("Phân tích {{TEXT}} cho {{CATEGORY}}")
	require.NoError(t, err)
	assert.Equal(t, "Phân tích {{TEXT}} cho {{CATEGORY}}", got)
}

func TestLoadPromptContentFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("nội dung prompt"), 0o644))

	got, err := LoadPromptContent(path)
	require.NoError(t, err)
	assert.Equal(t, "nội dung prompt", got)
}

func TestLoadPromptContentMissingFile(t *testing.T) {
	_, err := LoadPromptContent(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
