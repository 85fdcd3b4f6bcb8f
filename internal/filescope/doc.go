// Package filescope is the entry point the analysis phase uses to obtain the
// top-level lexical scope and import resolver of a file.
//
// Caching memoizes the result per file identity: the first caller runs the
// construction, concurrent callers for the same file wait for it, and every
// later caller gets the identical Scopes value. Construction goes through the
// file's Mutator when one is registered in the Mutators side table, and
// through the default Factory otherwise. Throwing is a sentinel Provider for
// wiring that must never reach scope construction.
package filescope
