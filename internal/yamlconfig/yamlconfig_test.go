package yamlconfig

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/scriptdefs/internal/config"
	"github.com/vk/scriptdefs/internal/ctxlog"
)

func testCtx() context.Context {
	return ctxlog.Discard(context.Background())
}

func TestLoad_PartialFailure(t *testing.T) {
	root := filepath.Join("testdata", "project")

	res, err := NewLoader().Load(testCtx(), root)
	require.NoError(t, err)

	require.Len(t, res.Definitions, 2)
	tool, task := res.Definitions[0], res.Definitions[1]

	assert.Equal(t, "Tool", tool.Definition.Name)
	assert.Equal(t, 0, tool.Source.Element)
	assert.Equal(t, `tool-.*\.kts`, tool.Definition.Files)
	assert.Equal(t, []config.Parameter{{Name: "args", Type: "list(string)"}}, tool.Definition.Parameters)
	assert.Equal(t, []string{"org.example.Tool"}, tool.Definition.Supertypes)

	assert.Equal(t, "Task", task.Definition.Name)
	assert.Equal(t, 2, task.Source.Element)
	assert.Equal(t, 10, task.Source.Range.Start.Line)
	assert.Equal(t, []config.SuperclassParameter{{ScriptParamName: "env", SuperclassParamType: "map(string)"}}, task.Definition.SuperclassParameters)

	require.Len(t, res.Diagnostics, 2)
	assert.Equal(t, "Unparsable definition file", res.Diagnostics[0].Summary)
	assert.Equal(t, filepath.Join(root, "broken.ktscfg.yml"), res.Diagnostics[0].Subject.Filename)
	assert.Equal(t, "Skipped malformed script definition", res.Diagnostics[1].Summary)
	assert.Contains(t, res.Diagnostics[1].Detail, `unknown field "fiels"`)
}

func TestDecodeBytes_RootShapes(t *testing.T) {
	seq := DecodeBytes(testCtx(), []byte("- name: A\n- {}\n"), "seq.ktscfg.yaml")
	require.Empty(t, seq.Diagnostics)
	require.Len(t, seq.Definitions, 2)
	assert.Equal(t, "A", seq.Definitions[0].Definition.Name)
	assert.Equal(t, config.DefaultName, seq.Definitions[1].Definition.Name)
	assert.Equal(t, config.DefaultFilesPattern, seq.Definitions[1].Definition.Files)

	empty := DecodeBytes(testCtx(), []byte(""), "empty.ktscfg.yaml")
	assert.Empty(t, empty.Definitions)
	assert.Empty(t, empty.Diagnostics)

	for name, src := range map[string]string{
		"no scripts key":  "other: 1\n",
		"scalar root":     "hello\n",
		"scripts mapping": "scripts: {name: x}\n",
	} {
		res := DecodeBytes(testCtx(), []byte(src), "bad.ktscfg.yaml")
		assert.Empty(t, res.Definitions, name)
		require.Len(t, res.Diagnostics, 1, name)
		assert.Equal(t, "Malformed definition file", res.Diagnostics[0].Summary, name)
	}
}

func TestDecodeBytes_InvalidElements(t *testing.T) {
	src := `
- name: NotAMapping
  files: '([a-z'
- just-a-string
- name: Typed
  parameters:
    - {name: x}
- name: Good
`
	res := DecodeBytes(testCtx(), []byte(src), "bad.ktscfg.yaml")
	require.Len(t, res.Definitions, 1)
	assert.Equal(t, "Good", res.Definitions[0].Definition.Name)
	assert.Equal(t, 3, res.Definitions[0].Source.Element)
	assert.Len(t, res.Diagnostics, 3)
}

func TestEncode_RoundTrip(t *testing.T) {
	in := []*config.ScriptDefinition{
		{
			Name:       "Ordered",
			Files:      `.*\.main\.kts`,
			Classpath:  []string{"c.jar", "a.jar"},
			Supertypes: []string{"z.Base", "a.Iface", "z.Base"},
			Parameters: []config.Parameter{
				{Name: "b", Type: "string"},
				{Name: "a", Type: "list(number)"},
				{Name: "b", Type: "bool"},
			},
			SuperclassParameters: []config.SuperclassParameter{
				{ScriptParamName: "b", SuperclassParamType: "string"},
			},
		},
		config.New(),
	}

	out, err := Encode(in)
	require.NoError(t, err)

	res := DecodeBytes(testCtx(), out, "roundtrip.ktscfg.yaml")
	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Definitions, 2)
	assert.Equal(t, in[0], res.Definitions[0].Definition)
	assert.Equal(t, in[1], res.Definitions[1].Definition)
}
