package editor

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectEditor(t *testing.T) {
	tests := []struct {
		name   string
		editor string
		visual string
		want   string
	}{
		{"EDITOR wins", "nvim", "code", "nvim"},
		{"VISUAL when EDITOR empty", "", "code --wait", "code --wait"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", tt.visual)
			assert.Equal(t, tt.want, detectEditor())
		})
	}
}

func TestDetectEditor_Fallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	want := "vi"
	if _, err := exec.LookPath("nano"); err == nil {
		want = "nano"
	}
	assert.Equal(t, want, detectEditor())
}

func TestOpen_PassesArgumentsAndPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script editor")
	}

	dir := t.TempDir()
	record := filepath.Join(dir, "args.txt")
	script := filepath.Join(dir, "fake-editor.sh")
	body := "#!/bin/sh\necho \"$@\" > " + record + "\necho edited\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0755))

	t.Setenv("EDITOR", script+" --wait")

	target := filepath.Join(dir, "config.yaml")
	var out bytes.Buffer
	require.NoError(t, Open(t.Context(), target, &out))

	got, err := os.ReadFile(record)
	require.NoError(t, err)
	assert.Equal(t, "--wait "+target, strings.TrimSpace(string(got)))
	assert.Equal(t, "edited\n", out.String())
}

func TestOpen_MissingEditor(t *testing.T) {
	t.Setenv("EDITOR", "distcheck-no-such-editor")

	var out bytes.Buffer
	err := Open(t.Context(), "config.yaml", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running editor distcheck-no-such-editor")
}
