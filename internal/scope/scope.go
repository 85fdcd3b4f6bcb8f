// Package scope declares the lexical scope and import resolver contracts that
// file scope construction produces and the analysis phase consumes.
package scope

import "github.com/vk/scriptdefs/internal/types"

// LexicalScope is the top-level scope of one file.
type LexicalScope interface {
	// Owner names what the scope belongs to, e.g. a script class name.
	Owner() string
	// Lookup finds a name declared directly in the scope.
	Lookup(name string) (types.Type, bool)
	// Names lists the declared names in declaration order.
	Names() []string
}

// ImportResolver resolves the imports of one file.
type ImportResolver interface {
	// Classpath lists the extra classpath entries visible to the file.
	Classpath() []string
	// ResolveImport resolves an imported type name.
	ResolveImport(name string) (types.Type, error)
}
