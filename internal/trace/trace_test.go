package trace

import (
	"fmt"
	"sync"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/scriptdefs/internal/fileid"
	"github.com/vk/scriptdefs/internal/types"
)

type namedScope string

func (s namedScope) Owner() string { return string(s) }
func (s namedScope) Lookup(string) (types.Type, bool) { return types.Type{}, false }
func (s namedScope) Names() []string { return nil }

func TestRecordAndGetScope(t *testing.T) {
	m := NewMemory()
	f := fileid.New("a.kts")

	_, ok := m.Scope(f)
	assert.False(t, ok)

	m.RecordScope(f, namedScope("a"))
	got, ok := m.Scope(fileid.New("./a.kts"))
	require.True(t, ok)
	assert.Equal(t, "a", got.Owner())
}

func TestReportKeepsOrderAndCopies(t *testing.T) {
	m := NewMemory()
	m.Report(&hcl.Diagnostic{Summary: "first"})
	m.Report(&hcl.Diagnostic{Summary: "second"}, &hcl.Diagnostic{Summary: "third"})

	diags := m.Diagnostics()
	require.Len(t, diags, 3)
	assert.Equal(t, "first", diags[0].Summary)
	assert.Equal(t, "third", diags[2].Summary)

	diags[0] = nil
	assert.NotNil(t, m.Diagnostics()[0])
}

func TestConcurrentUse(t *testing.T) {
	m := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("f%d.kts", i)
			m.RecordScope(fileid.New(name), namedScope(name))
			m.Report(&hcl.Diagnostic{Summary: name})
		}(i)
	}
	wg.Wait()

	assert.Len(t, m.Diagnostics(), 50)
	_, ok := m.Scope(fileid.New("f49.kts"))
	assert.True(t, ok)

	m.Clear()
	assert.Empty(t, m.Diagnostics())
	_, ok = m.Scope(fileid.New("f49.kts"))
	assert.False(t, ok)
}
