package filescope

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/scriptdefs/internal/fileid"
	"github.com/vk/scriptdefs/internal/scope"
)

// Scopes is the result of file scope construction.
type Scopes struct {
	Lexical scope.LexicalScope
	Imports scope.ImportResolver
}

// Factory constructs the scopes of a file.
type Factory interface {
	CreateScopesFor(ctx context.Context, file fileid.Identity) (Scopes, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(ctx context.Context, file fileid.Identity) (Scopes, error)

// CreateScopesFor implements Factory.
func (f FactoryFunc) CreateScopesFor(ctx context.Context, file fileid.Identity) (Scopes, error) {
	return f(ctx, file)
}

// Mutator replaces scope construction for one file. It receives the default
// factory so it can delegate, for example to build the scopes of the file it
// logically stands for.
type Mutator interface {
	CreateFileScopes(ctx context.Context, factory Factory) (Scopes, error)
}

// MutatorFunc adapts a function to the Mutator interface.
type MutatorFunc func(ctx context.Context, factory Factory) (Scopes, error)

// CreateFileScopes implements Mutator.
func (f MutatorFunc) CreateFileScopes(ctx context.Context, factory Factory) (Scopes, error) {
	return f(ctx, factory)
}

// Mutators is the side table of per-file scope construction overrides.
// Entries are keyed by the original of the identity they are set for, so a
// mutator set through a derived identity applies to every identity derived
// from the same file.
type Mutators struct {
	mu sync.RWMutex
	m  map[string]Mutator
}

// NewMutators creates an empty table.
func NewMutators() *Mutators {
	return &Mutators{m: make(map[string]Mutator)}
}

// Set registers m for file, replacing any previous mutator.
func (t *Mutators) Set(file fileid.Identity, m Mutator) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.m[fileid.Key(fileid.Original(file))] = m
}

// Remove drops the mutator of file.
func (t *Mutators) Remove(file fileid.Identity) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.m, fileid.Key(fileid.Original(file)))
}

// Get returns the mutator registered for file.
func (t *Mutators) Get(file fileid.Identity) (Mutator, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	m, ok := t.m[fileid.Key(fileid.Original(file))]
	return m, ok
}

// Provider gives the analysis phase access to file scopes.
type Provider interface {
	FileScopes(ctx context.Context, file fileid.Identity) (Scopes, error)
}

// LexicalScopeOf returns the lexical scope part of p's scopes for file.
func LexicalScopeOf(ctx context.Context, p Provider, file fileid.Identity) (scope.LexicalScope, error) {
	s, err := p.FileScopes(ctx, file)
	if err != nil {
		return nil, err
	}
	return s.Lexical, nil
}

// ImportResolverOf returns the import resolver part of p's scopes for file.
func ImportResolverOf(ctx context.Context, p Provider, file fileid.Identity) (scope.ImportResolver, error) {
	s, err := p.FileScopes(ctx, file)
	if err != nil {
		return nil, err
	}
	return s.Imports, nil
}

type throwing struct{}

// Throwing is the Provider for contexts that must never build file scopes.
// Calling it panics.
var Throwing Provider = throwing{}

func (throwing) FileScopes(_ context.Context, file fileid.Identity) (Scopes, error) {
	panic(fmt.Sprintf("filescope: Throwing provider must not be called (file %s)", fileid.Key(file)))
}
