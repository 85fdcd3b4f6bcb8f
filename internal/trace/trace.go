// Package trace provides the session's analysis trace: the record of
// computed file scopes and of diagnostics produced while loading and
// analysing, kept so that later consumers (diagnostic reporting, find
// usages) can read them without recomputation.
//
// Memory stores scopes in a sync.Map, since entries are written once per
// file by independent workers and read many times afterwards.
package trace

import (
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/scriptdefs/internal/fileid"
	"github.com/vk/scriptdefs/internal/scope"
)

// Trace is the sink for analysis results.
type Trace interface {
	RecordScope(file fileid.Identity, s scope.LexicalScope)
	Report(diags ...*hcl.Diagnostic)
}

// Memory is an in-memory Trace, safe for concurrent use.
type Memory struct {
	scopes sync.Map // Key: fileid.Key, Value: scope.LexicalScope

	mu    sync.Mutex
	diags hcl.Diagnostics
}

// NewMemory creates an empty trace.
func NewMemory() *Memory {
	return &Memory{}
}

// RecordScope stores the lexical scope computed for file.
func (m *Memory) RecordScope(file fileid.Identity, s scope.LexicalScope) {
	m.scopes.Store(fileid.Key(file), s)
}

// Scope returns the recorded lexical scope of file.
func (m *Memory) Scope(file fileid.Identity) (scope.LexicalScope, bool) {
	s, ok := m.scopes.Load(fileid.Key(file))
	if !ok {
		return nil, false
	}
	return s.(scope.LexicalScope), true
}

// Report appends diagnostics in arrival order.
func (m *Memory) Report(diags ...*hcl.Diagnostic) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.diags = append(m.diags, diags...)
}

// Diagnostics returns a copy of every reported diagnostic.
func (m *Memory) Diagnostics() hcl.Diagnostics {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(hcl.Diagnostics, len(m.diags))
	copy(out, m.diags)
	return out
}

// Clear drops every recorded scope and diagnostic.
func (m *Memory) Clear() {
	m.scopes.Clear()
	m.mu.Lock()
	m.diags = nil
	m.mu.Unlock()
}
