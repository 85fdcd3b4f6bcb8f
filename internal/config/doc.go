// Package config defines the format-agnostic model of a script definition
// configuration, along with the Loader interface that format-specific
// packages (HCL, YAML) implement.
//
// Type names in the model are plain text. They are bound to concrete types
// only when a definition built from the config is queried against an
// analysis context.
package config
