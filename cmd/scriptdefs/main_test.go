package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/scriptdefs/internal/cli"
)

func TestRun_Help(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error for help")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_ClassifiesAgainstProjectRoot(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	src := `
script {
  name  = "Gradle"
  files = ".*\\.gradle\\.kts"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "build.ktscfg.hcl"), []byte(src), 0o600))
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"--root", root, "classify", "build.gradle.kts", "Main.kt"})

	// --- Assert ---
	require.NoError(t, err, "stderr: %s", errOut.String())
	require.Equal(t, "build.gradle.kts\tGradle\nMain.kt\t-\n", out.String())
}
