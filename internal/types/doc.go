// Package types provides the semantic-analysis type context that script
// definitions resolve their textual type names against.
//
// Names are looked up first in an explicit table of named types (usually
// fully qualified, such as "org.example.Env"), then parsed as HCL type
// constraint expressions ("string", "list(string)", "map(number)"). A name
// that is neither fails with an UnresolvedTypeReferenceError.
package types
