package internal

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "transcripts", config.OutputDir)
	assert.Equal(t, 5, config.MaxResults)
	assert.Equal(t, 20*time.Second, config.SearchTimeout)
	assert.Equal(t, 30*time.Second, config.FetchTimeout)
	assert.Equal(t, time.Second, config.FetchInterval)
	assert.Equal(t, []string{"en"}, config.Languages)
	assert.True(t, config.Headless)
	assert.Empty(t, config.BrowserBin)
	assert.Equal(t, "gpt-4o-mini", config.SummaryModel)
	assert.Equal(t, 2*time.Minute, config.SummaryTimeout)
	assert.False(t, config.Verbose)
	assert.False(t, config.Quiet)
	assert.False(t, config.MCPLogEnabled)
}

func TestInitConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	content := `output_dir = "/tmp/captions"
max_results = 3
fetch_interval = "250ms"
languages = ["de", "en"]
headless = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config := InitConfig(path)

	assert.Equal(t, "/tmp/captions", config.OutputDir)
	assert.Equal(t, 3, config.MaxResults)
	assert.Equal(t, 250*time.Millisecond, config.FetchInterval)
	assert.Equal(t, []string{"de", "en"}, config.Languages)
	assert.False(t, config.Headless)
	// untouched keys keep their defaults
	assert.Equal(t, 20*time.Second, config.SearchTimeout)
	assert.NotEmpty(t, config.ConfigDir)
	assert.NotEmpty(t, config.CacheDir)
}

func TestInitConfigEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_results = 3\n"), 0644))

	t.Setenv("TUBESCRIBE_MAX_RESULTS", "8")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	config := InitConfig(path)

	assert.Equal(t, 8, config.MaxResults)
	assert.Equal(t, "sk-test", config.OpenAIAPIKey)
}

func TestInitConfigVerboseKeepsStdoutClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_results = 3\n"), 0644))
	t.Setenv("TUBESCRIBE_VERBOSE", "true")

	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = stdout })

	config := InitConfig(path)

	require.NoError(t, w.Close())
	os.Stdout = stdout
	out, err := io.ReadAll(r)
	require.NoError(t, err)

	assert.True(t, config.Verbose)
	assert.Empty(t, string(out))
}

func TestEnsureDefaultFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config")

	require.NoError(t, EnsureDefaultConfig(dir))
	require.NoError(t, EnsureDefaultPrompt(dir))

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_results")

	// existing files are left alone
	custom := filepath.Join(dir, "prompt.txt")
	require.NoError(t, os.WriteFile(custom, []byte("mine"), 0644))
	require.NoError(t, EnsureDefaultPrompt(dir))
	data, err = os.ReadFile(custom)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
}
