// Package definition models script kinds. A Definition decides which files
// belong to its kind and describes the implicit wrapper class synthesized
// around script code of that kind: its parameters, supertypes and superclass
// constructor bindings, plus extra classpath entries.
//
// Two constructors produce Definitions: Standard, the built-in fallback, and
// FromConfig, for definitions loaded from configuration files. Callers never
// need to distinguish them.
package definition
