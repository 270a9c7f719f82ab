package ast

// Schema is the lowered result of an entire schema source file.
// Top-level declarations outside any `namespace { … }` block collect
// into a single Namespace with an empty Name (§4.9 "implicit unnamed
// namespace").
type Schema struct {
	Namespaces []*Namespace
}

// Namespace groups the declarations written inside one `namespace Name
// { … }` block, or at the top level for the implicit namespace.
type Namespace struct {
	Annotations *Annotations
	Name        string
	Entities    []*EntityDecl
	Actions     []*ActionDecl
	Types       []*TypeDecl
}

// EntityDecl is a lowered `entity NameList [in TypeList] ( = {attrs}
// [tags T] | enum [...] )? ;` declaration. Names are always unqualified
// (§4.9 QualifiedEntityName). At most one of Shape or Enum is set; both
// are nil for a bare entity, for one with only `tags`, and for one
// whose shape does not lower.
type EntityDecl struct {
	Annotations *Annotations
	Names       []string
	In          []string
	Shape       *TypeExpr
	Tags        *TypeExpr
	Enum        []string
}

// ActionDecl is a lowered `action ActionNameList [in ...] [appliesTo
// {...}] [attributes {...}] ;` declaration.
type ActionDecl struct {
	Annotations    *Annotations
	Names          []string
	In             []string
	PrincipalTypes []string
	ResourceTypes  []string
	Context        *TypeExpr
	Attributes     *TypeExpr
}

// TypeDecl is a lowered `type Name = TypeExpr ;` declaration.
type TypeDecl struct {
	Annotations *Annotations
	Name        string
	Type        *TypeExpr
}

// TypeExprKind tags the populated field of a TypeExpr.
type TypeExprKind int

const (
	TypeExprName TypeExprKind = iota
	TypeExprSet
	TypeExprRecord
	TypeExprEnum
)

// TypeExpr is a lowered type reference: a named type, `Set<T>`, an
// inline `{ attrs }` record, or an inline `enum [...]`.
type TypeExpr struct {
	Kind        TypeExprKind
	Name        string
	Elem        *TypeExpr
	Attrs       []Attribute
	EnumChoices []string
}

// Attribute is one `[annotations] name[?]: TypeExpr` entry of a record
// type. The attribute name may have come from either an identifier or
// an unescaped string literal in the CST.
type Attribute struct {
	Annotations *Annotations
	Name        string
	Optional    bool
	Type        *TypeExpr
}
