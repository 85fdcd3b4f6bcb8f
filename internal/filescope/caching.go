package filescope

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vk/scriptdefs/internal/ctxlog"
	"github.com/vk/scriptdefs/internal/fileid"
	"github.com/vk/scriptdefs/internal/trace"
	"golang.org/x/sync/singleflight"
)

// Caching is the session's Provider. It is safe for concurrent use.
type Caching struct {
	factory  Factory
	mutators *Mutators
	trace    trace.Trace

	mu       sync.RWMutex
	cache    map[string]Scopes
	inflight map[string]*frame
	gen      uint64 // bumped by Discard

	group singleflight.Group
}

// NewCaching creates a Provider that builds scopes with factory, consults
// mutators for overrides, and records results in tr.
func NewCaching(factory Factory, mutators *Mutators, tr trace.Trace) *Caching {
	if mutators == nil {
		mutators = NewMutators()
	}
	return &Caching{
		factory:  factory,
		mutators: mutators,
		trace:    tr,
		cache:    make(map[string]Scopes),
		inflight: make(map[string]*frame),
	}
}

// frame is one running scope construction. waits counts the files its
// factory is currently requesting, whether it builds them itself or waits
// on another goroutine; it is guarded by Caching.mu.
type frame struct {
	key    string
	parent *frame
	waits  map[string]int
}

// frameKey carries the frame of the construction a context belongs to.
type frameKey struct{}

// FileScopes implements Provider. Failed constructions are not cached; the
// next call retries. A request that would wait on its own construction,
// directly or through constructions running on other goroutines, panics.
func (c *Caching) FileScopes(ctx context.Context, file fileid.Identity) (Scopes, error) {
	key := fileid.Key(file)
	if s, ok := c.lookup(key); ok {
		return s, nil
	}

	caller, _ := ctx.Value(frameKey{}).(*frame)
	if caller != nil {
		c.enter(caller, key)
		defer c.leave(caller, key)
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		c.mu.Lock()
		if s, ok := c.cache[key]; ok {
			c.mu.Unlock()
			return s, nil
		}
		f := &frame{key: key, parent: caller, waits: make(map[string]int)}
		c.inflight[key] = f
		gen := c.gen
		c.mu.Unlock()
		defer func() {
			c.mu.Lock()
			delete(c.inflight, key)
			c.mu.Unlock()
		}()

		s, err := c.build(context.WithValue(ctx, frameKey{}, f), file)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		current := c.gen == gen
		if current {
			c.cache[key] = s
		}
		c.mu.Unlock()

		if current && c.trace != nil {
			c.trace.RecordScope(file, s.Lexical)
		}
		return s, nil
	})
	if err != nil {
		return Scopes{}, err
	}
	if shared {
		ctxlog.FromContext(ctx).Debug("Reused concurrently built file scopes.", "file", key)
	}
	return v.(Scopes), nil
}

// enter records that caller's factory requests key, panicking when the
// construction of key already depends on caller.
func (c *Caching) enter(caller *frame, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if owner, ok := c.inflight[key]; ok {
		for f := caller; f != nil; f = f.parent {
			if f == owner {
				// Waiting on ourselves through singleflight would deadlock.
				panic(fmt.Sprintf("filescope: reentrant scope construction for %s", key))
			}
		}
		if c.reaches(owner, caller) {
			panic(fmt.Sprintf("filescope: cyclic scope construction for %s (requested while building %s)", key, caller.key))
		}
	}
	caller.waits[key]++
}

func (c *Caching) leave(caller *frame, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if caller.waits[key]--; caller.waits[key] <= 0 {
		delete(caller.waits, key)
	}
}

// reaches reports whether from waits, transitively, on target. c.mu must be
// held.
func (c *Caching) reaches(from, target *frame) bool {
	seen := make(map[*frame]bool)
	stack := []*frame{from}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f == target {
			return true
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		for k := range f.waits {
			if next, ok := c.inflight[k]; ok {
				stack = append(stack, next)
			}
		}
	}
	return false
}

func (c *Caching) build(ctx context.Context, file fileid.Identity) (Scopes, error) {
	logger := ctxlog.FromContext(ctx).With("file", fileid.Key(file))

	var (
		s   Scopes
		err error
	)
	if m, ok := c.mutators.Get(file); ok {
		logger.Debug("Building file scopes through mutator.")
		s, err = m.CreateFileScopes(ctx, c.factory)
	} else {
		logger.Debug("Building file scopes.")
		s, err = c.factory.CreateScopesFor(ctx, file)
	}
	if err != nil {
		return Scopes{}, fmt.Errorf("failed to build scopes for %s: %w", fileid.Key(file), err)
	}
	if s.Lexical == nil || s.Imports == nil {
		return Scopes{}, fmt.Errorf("failed to build scopes for %s: %w", fileid.Key(file), errIncompleteScopes)
	}
	return s, nil
}

var errIncompleteScopes = errors.New("scope construction returned no lexical scope or import resolver")

func (c *Caching) lookup(key string) (Scopes, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.cache[key]
	return s, ok
}

// Len returns the number of cached files.
func (c *Caching) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Discard drops every cached entry. Constructions still running when it is
// called return their result but do not cache or trace it. Sessions call it
// when they end.
func (c *Caching) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]Scopes)
	c.gen++
}
