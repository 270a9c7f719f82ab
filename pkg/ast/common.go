// Package ast defines the typed abstract syntax produced by lowering a
// policy or schema CST (§4.8, §4.9). Every sum type in this package —
// Expr, TypeExpr, ScopeConstraint, ActionConstraint — is encoded as a struct carrying a Kind
// tag plus one populated variant field, never as interface{}, so a
// lowering or evaluation walk dispatches with an exhaustive switch
// instead of a type assertion.
package ast

// Annotations holds the `@key("value")` annotations attached to a
// policy or a schema declaration. Keys are unique by construction: Add
// reports false without mutating the set when the key is already
// present, and the lowerer is responsible for turning that into a
// DuplicateAnnotation diagnostic.
type Annotations struct {
	keys   []string
	values map[string]string
}

// NewAnnotations returns an empty annotation set.
func NewAnnotations() *Annotations {
	return &Annotations{values: map[string]string{}}
}

// Add records key=value, returning false if key was already present.
func (a *Annotations) Add(key, value string) bool {
	if _, exists := a.values[key]; exists {
		return false
	}
	a.keys = append(a.keys, key)
	a.values[key] = value
	return true
}

// Get looks up an annotation's value by key.
func (a *Annotations) Get(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Keys returns annotation keys in declaration order.
func (a *Annotations) Keys() []string {
	return append([]string(nil), a.keys...)
}

// Len reports the number of distinct annotations.
func (a *Annotations) Len() int { return len(a.keys) }

// EntityUID names a single entity: a (possibly namespace-qualified)
// entity type and an unescaped identifier string.
type EntityUID struct {
	Type string
	ID   string
}

// EntityRefOrSlot is either a concrete EntityUID or an unbound
// template slot (`?principal` / `?resource`), used wherever the scope
// grammar accepts either (§4.6 "Variable definition").
type EntityRefOrSlot struct {
	IsSlot bool
	Slot   string // e.g. "principal", valid when IsSlot
	Entity EntityUID
}

// LiteralKind distinguishes the primitive literal forms.
type LiteralKind int

const (
	LiteralBool LiteralKind = iota
	LiteralInt
	LiteralString
)

// Literal is a decoded primitive value: exactly one of Bool/Int/Str is
// meaningful, selected by Kind.
type Literal struct {
	Kind LiteralKind
	Bool bool
	Int  int64
	Str  string
}

// VariableKind is one of the four policy-scope variables.
type VariableKind int

const (
	VarPrincipal VariableKind = iota
	VarAction
	VarResource
	VarContext
)

func (v VariableKind) String() string {
	switch v {
	case VarPrincipal:
		return "principal"
	case VarAction:
		return "action"
	case VarResource:
		return "resource"
	case VarContext:
		return "context"
	default:
		return "variable"
	}
}
