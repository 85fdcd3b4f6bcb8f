// Package fileid defines the file identity abstraction used to classify
// source files and to key per-file analysis caches.
package fileid

import (
	"path/filepath"
)

// Identity is the minimal view of a source file needed for classification.
// ShortName is the base name matched against definition patterns; Path is
// the stable identity used as a cache key.
type Identity interface {
	ShortName() string
	Path() string
}

// Derived is implemented by identities that stand in for another file, such
// as an in-editor copy of a physical file.
type Derived interface {
	Identity
	Original() Identity
}

// File is the plain path-backed Identity.
type File struct {
	path string
}

// New returns the identity for the file at path. The path is cleaned so that
// equivalent spellings share one identity.
func New(path string) File {
	return File{path: filepath.Clean(path)}
}

// ShortName returns the base name of the file.
func (f File) ShortName() string { return filepath.Base(f.path) }

// Path returns the cleaned path of the file.
func (f File) Path() string { return f.path }

// String implements fmt.Stringer.
func (f File) String() string { return f.path }

type derived struct {
	File
	original Identity
}

func (d derived) Original() Identity { return d.original }

// WithOrigin returns an identity for path that reports original as the file
// it was derived from.
func WithOrigin(path string, original Identity) Derived {
	return derived{File: New(path), original: original}
}

// Original returns the identity id was derived from, or id itself when it is
// not derived.
func Original(id Identity) Identity {
	if d, ok := id.(Derived); ok {
		if o := d.Original(); o != nil {
			return o
		}
	}
	return id
}

// Key returns the cache key for id.
func Key(id Identity) string {
	return id.Path()
}
