package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into a fresh directory so commands that write
// relative to the working directory stay contained.
func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck // best-effort restore

	require.NoError(t, os.Chdir(tmpDir))
	t.Setenv("HOME", tmpDir)
	return tmpDir
}

// quietly silences command output for the duration of a test.
func quietly(t *testing.T) {
	t.Helper()
	oldQuiet := quietFlag
	quietFlag = true
	t.Cleanup(func() { quietFlag = oldQuiet })
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()

	nested := filepath.Join(tmpDir, "a", "b", "train.jsonl")
	require.NoError(t, ensureDir(nested))

	info, err := os.Stat(filepath.Join(tmpDir, "a", "b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Bare filenames and existing directories are fine.
	assert.NoError(t, ensureDir("train.jsonl"))
	assert.NoError(t, ensureDir(nested))
}

func TestDatasetSampleCommand(t *testing.T) {
	tmpDir := chdirTemp(t)
	quietly(t)

	require.NoError(t, datasetSampleCommand(""))

	content, err := os.ReadFile(filepath.Join(tmpDir, "sample_dataset.jsonl"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, `"messages"`)
	}
}

func TestDatasetSampleCommandExplicitPath(t *testing.T) {
	tmpDir := chdirTemp(t)
	quietly(t)

	out := filepath.Join(tmpDir, "datasets", "starter.jsonl")
	require.NoError(t, datasetSampleCommand(out))

	_, err := os.Stat(out)
	assert.NoError(t, err)
}

func TestDatasetBuildCommandCompletion(t *testing.T) {
	tmpDir := chdirTemp(t)
	quietly(t)

	corpus := filepath.Join(tmpDir, "corpus")
	require.NoError(t, os.Mkdir(corpus, 0o755))
	text := "التعلم الآلي يعمل من خلال تدريب النماذج على كميات كبيرة من البيانات. " +
		"الشبكات العصبية تتعلم الأنماط والعلاقات من الأمثلة المتكررة بدقة عالية."
	require.NoError(t, os.WriteFile(filepath.Join(corpus, "notes.txt"), []byte(text), 0o644))

	oldFormat, oldOutput, oldChunk := buildFormatFlag, buildOutputFlag, buildChunkFlag
	t.Cleanup(func() {
		buildFormatFlag, buildOutputFlag, buildChunkFlag = oldFormat, oldOutput, oldChunk
	})
	buildFormatFlag = "completion"
	buildOutputFlag = ""
	buildChunkFlag = 0

	require.NoError(t, datasetBuildCommand(corpus))

	content, err := os.ReadFile(filepath.Join(tmpDir, "train_completion.jsonl"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"prompt"`)
	assert.Contains(t, string(content), `"completion"`)
}

func TestDatasetBuildCommandUnknownFormat(t *testing.T) {
	chdirTemp(t)
	quietly(t)

	oldFormat := buildFormatFlag
	t.Cleanup(func() { buildFormatFlag = oldFormat })
	buildFormatFlag = "csv"

	err := datasetBuildCommand(".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown format")
}

func TestDatasetBuildCommandEmptyCorpus(t *testing.T) {
	tmpDir := chdirTemp(t)
	quietly(t)

	oldFormat, oldOutput := buildFormatFlag, buildOutputFlag
	t.Cleanup(func() { buildFormatFlag, buildOutputFlag = oldFormat, oldOutput })
	buildFormatFlag = "completion"
	buildOutputFlag = ""

	empty := filepath.Join(tmpDir, "empty")
	require.NoError(t, os.Mkdir(empty, 0o755))

	err := datasetBuildCommand(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No text files found")
}
