// Package registry holds the ordered list of script definitions active in an
// analysis session and answers which definition, if any, a file belongs to.
//
// Order is semantic: the first definition whose Matches accepts a file wins,
// so the built-in standard definition is always kept last. The list is
// replaced wholesale by configuration loading; readers always observe either
// the old or the new list, never a mix.
package registry
