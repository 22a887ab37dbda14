package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenDocCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")

	output, err := executeCommand(t, "gen-doc", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, output, "Documentation generated in "+dir)

	data, err := os.ReadFile(filepath.Join(dir, "distcheck_check.md"))
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "---\ntitle: \"distcheck check\"\n"))
	assert.Contains(t, content, "/docs/reference/distcheck/")
}

func TestGenDocCommand_RequiresDir(t *testing.T) {
	_, err := executeCommand(t, "gen-doc")
	require.Error(t, err)
}

func TestFilePrepender(t *testing.T) {
	got := filePrepender("/tmp/out/distcheck_fields.md")
	assert.Contains(t, got, `title: "distcheck fields"`)
	assert.Contains(t, got, `description: "Reference for distcheck fields"`)
}

func TestLinkHandler(t *testing.T) {
	assert.Equal(t, "/docs/reference/distcheck_check/", linkHandler("distcheck_check.md"))
}
