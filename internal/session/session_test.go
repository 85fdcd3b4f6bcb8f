package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/scriptdefs/internal/ctxlog"
	"github.com/vk/scriptdefs/internal/definition"
	"github.com/vk/scriptdefs/internal/fileid"
	"github.com/vk/scriptdefs/internal/scriptscope"
	"github.com/vk/scriptdefs/internal/types"
)

const threeDefinitions = `
script {
  name  = "First"
  files = "first-.*\\.kts"

  parameter "args" {
    type = "list(string)"
  }
}

script {
  name  = "Second"
  files = "second-.*\\.kts"

  parameter "broken" {
  }
}

script {
  name  = "Third"
  files = "third-.*\\.kts"
}
`

func testCtx() context.Context {
	return ctxlog.Discard(context.Background())
}

func writeRoot(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o600))
	}
	return root
}

func TestNew_NoConfigurationKeepsStandard(t *testing.T) {
	root := writeRoot(t, map[string]string{"settings.txt": "nothing here"})

	s, err := New(testCtx(), Options{Root: root})
	require.NoError(t, err)

	defs := s.Registry.Definitions()
	require.Len(t, defs, 1)
	assert.True(t, definition.IsStandard(defs[0]))

	assert.True(t, s.IsScript(fileid.New("anything.kts")))
	assert.False(t, s.IsScript(fileid.New("first-x.kt")))
	assert.False(t, s.IsScript(fileid.New("notes.txt")))
	assert.Empty(t, s.Trace.Diagnostics())
}

func TestNew_PartialFailure(t *testing.T) {
	root := writeRoot(t, map[string]string{"defs.ktscfg.hcl": threeDefinitions})

	s, err := New(testCtx(), Options{Root: root})
	require.NoError(t, err)

	names := []string{}
	for _, d := range s.Registry.Definitions() {
		names = append(names, d.Name())
	}
	assert.Equal(t, []string{"First", "Third", "KotlinScript"}, names)

	diags := s.Trace.Diagnostics()
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Detail, "Element 1 of "+filepath.Join(root, "defs.ktscfg.hcl"))

	assert.Equal(t, "First", s.Registry.FindDefinition(fileid.New("first-a.kts")).Name())
	assert.True(t, definition.IsStandard(s.Registry.FindDefinition(fileid.New("second-a.kts"))))
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New(testCtx(), Options{Root: filepath.Join(t.TempDir(), "absent")})
	assert.Error(t, err)
}

func TestNew_WithoutRoot(t *testing.T) {
	s, err := New(testCtx(), Options{})
	require.NoError(t, err)
	assert.Len(t, s.Registry.Definitions(), 1)
	assert.NotEqual(t, s.ID.String(), "")
}

func TestFileScopesAndClose(t *testing.T) {
	root := writeRoot(t, map[string]string{"defs.ktscfg.hcl": threeDefinitions})
	tbl := types.NewTable()

	s, err := New(testCtx(), Options{Root: root, Types: tbl})
	require.NoError(t, err)
	ctx := s.WithLogger(testCtx())

	file := fileid.New(filepath.Join(root, "first-run.kts"))
	first, err := s.FileScopes(ctx, file)
	require.NoError(t, err)
	second, err := s.FileScopes(ctx, file)
	require.NoError(t, err)
	assert.Same(t, first.Lexical, second.Lexical)

	lex := first.Lexical.(*scriptscope.Scope)
	assert.Equal(t, "first-run", lex.Owner())
	assert.Equal(t, []string{"args"}, lex.Names())

	recorded, ok := s.Trace.Scope(file)
	require.True(t, ok)
	assert.Same(t, first.Lexical, recorded)

	require.NoError(t, s.Close(ctx))
	assert.Zero(t, s.Scopes.Len())
	_, ok = s.Trace.Scope(file)
	assert.False(t, ok)
}

func TestReload_ReplacesDefinitions(t *testing.T) {
	root := writeRoot(t, map[string]string{"defs.ktscfg.hcl": `script { name = "Before" }`})
	s, err := New(testCtx(), Options{Root: root})
	require.NoError(t, err)
	require.Equal(t, "Before", s.Registry.Definitions()[0].Name())

	require.NoError(t, os.WriteFile(filepath.Join(root, "defs.ktscfg.hcl"), []byte(`script { name = "After" }`), 0o600))
	require.NoError(t, s.Reload(s.WithLogger(testCtx())))

	defs := s.Registry.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "After", defs[0].Name())
}
