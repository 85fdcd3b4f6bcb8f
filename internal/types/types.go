package types

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// ErrUnresolvedTypeReference is matched by every UnresolvedTypeReferenceError.
var ErrUnresolvedTypeReference = errors.New("unresolved type reference")

// UnresolvedTypeReferenceError reports a type name that the analysis context
// does not know.
type UnresolvedTypeReferenceError struct {
	Name   string
	Reason string
}

func (e *UnresolvedTypeReferenceError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unresolved type reference %q", e.Name)
	}
	return fmt.Sprintf("unresolved type reference %q: %s", e.Name, e.Reason)
}

// Is makes errors.Is(err, ErrUnresolvedTypeReference) true.
func (e *UnresolvedTypeReferenceError) Is(target error) bool {
	return target == ErrUnresolvedTypeReference
}

// Type is a resolved type: the name it was requested by and its structural
// representation.
type Type struct {
	Name string
	Cty  cty.Type
}

func (t Type) String() string { return t.Name }

// Context resolves textual type names to concrete types.
type Context interface {
	ResolveType(name string) (Type, error)
}

// Table is a Context backed by explicitly defined named types with a
// fallback to HCL type constraint expressions. It is safe for concurrent use.
type Table struct {
	mu    sync.RWMutex
	named map[string]cty.Type
}

// NewTable creates an empty table. Only HCL type expressions resolve until
// named types are defined.
func NewTable() *Table {
	return &Table{named: make(map[string]cty.Type)}
}

// Define registers name as an alias of ty, replacing any previous entry.
func (t *Table) Define(name string, ty cty.Type) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.named[name] = ty
}

// DefineExpr registers name as an alias of the HCL type expression expr.
func (t *Table) DefineExpr(name, expr string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("type name must not be empty")
	}
	ty, err := parseTypeExpr(expr)
	if err != nil {
		return fmt.Errorf("type %q: %w", name, err)
	}
	t.Define(name, ty)
	return nil
}

// DefineAll parses "name=expr" assignments, as given on the command line,
// and registers each of them.
func (t *Table) DefineAll(assignments []string) error {
	for _, a := range assignments {
		name, expr, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("invalid type definition %q: expected NAME=EXPR", a)
		}
		if err := t.DefineExpr(strings.TrimSpace(name), strings.TrimSpace(expr)); err != nil {
			return err
		}
	}
	return nil
}

// ResolveType implements Context.
func (t *Table) ResolveType(name string) (Type, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Type{}, &UnresolvedTypeReferenceError{Name: name, Reason: "empty type name"}
	}

	t.mu.RLock()
	ty, ok := t.named[name]
	t.mu.RUnlock()
	if ok {
		return Type{Name: name, Cty: ty}, nil
	}

	ty, err := parseTypeExpr(name)
	if err != nil {
		return Type{}, &UnresolvedTypeReferenceError{Name: name, Reason: err.Error()}
	}
	return Type{Name: name, Cty: ty}, nil
}

func parseTypeExpr(src string) (cty.Type, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "<type>", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilType, diags
	}
	ty, diags := typeexpr.TypeConstraint(expr)
	if diags.HasErrors() {
		return cty.NilType, diags
	}
	return ty, nil
}
