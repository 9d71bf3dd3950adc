package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptManagerDefaultTemplate(t *testing.T) {
	pm := NewPromptManager(t.TempDir(), "")
	ref := mustRef(t, "dQw4w9WgXcQ", "Never Gonna Give You Up")

	prompt, err := pm.CreatePrompt(ref, sampleTranscript("dQw4w9WgXcQ", "Hello", "world"))
	require.NoError(t, err)

	assert.Contains(t, prompt, "Title: Never Gonna Give You Up")
	assert.Contains(t, prompt, "Video: https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	assert.Contains(t, prompt, "Language: en")
	assert.Contains(t, prompt, "Hello world")
}

func TestPromptManagerConfigDirTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prompt.txt"), []byte("From config: {{.Title}}"), 0644))

	prompt, err := NewPromptManager(dir, "").CreatePrompt(VideoRef{Title: "T"}, sampleTranscript("dQw4w9WgXcQ", "x"))
	require.NoError(t, err)
	assert.Equal(t, "From config: T", prompt)
}

func TestPromptManagerCustomString(t *testing.T) {
	pm := NewPromptManager(t.TempDir(), "tldr: {{.Transcript}}")

	prompt, err := pm.CreatePrompt(VideoRef{}, sampleTranscript("dQw4w9WgXcQ", "short", "video"))
	require.NoError(t, err)
	assert.Equal(t, "tldr: short video", prompt)
}

func TestPromptManagerCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.URL}}|{{.Language}}"), 0644))

	pm := NewPromptManager(t.TempDir(), path)
	prompt, err := pm.CreatePrompt(mustRef(t, "dQw4w9WgXcQ", ""), sampleTranscript("dQw4w9WgXcQ", "x"))
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ|en", prompt)
}

func TestBuildPromptFromTemplateErrors(t *testing.T) {
	_, err := buildPromptFromTemplate("{{.Title", PromptData{})
	assert.Error(t, err)

	_, err = buildPromptFromTemplate("{{.Missing}}", PromptData{})
	assert.Error(t, err)
}

func TestIsLikelyFilePath(t *testing.T) {
	assert.True(t, IsLikelyFilePath("prompts/summary.txt"))
	assert.True(t, IsLikelyFilePath("summary.md"))
	assert.True(t, IsLikelyFilePath("summary"))
	assert.False(t, IsLikelyFilePath("tldr: {{.Transcript}}"))
}
