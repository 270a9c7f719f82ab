package cst

import "github.com/cedarfront/cedarfront/pkg/syntax"

// SchemaFile wraps the KindSchemaFile root of a parsed schema.
type SchemaFile struct{ node }

// NewSchemaFile wraps tree's root as a SchemaFile view.
func NewSchemaFile(t *syntax.Tree) SchemaFile {
	return SchemaFile{node{t, t.Root()}}
}

// TopLevelEntities returns entity declarations written outside any
// `namespace { … }` block.
func (s SchemaFile) TopLevelEntities() []EntityDecl {
	var out []EntityDecl
	for _, c := range childrenOfKind(s.Tree, s.Idx, syntax.KindEntityDecl) {
		out = append(out, EntityDecl{node{s.Tree, c}})
	}
	return out
}

// TopLevelActions returns action declarations written outside any
// `namespace { … }` block.
func (s SchemaFile) TopLevelActions() []ActionDecl {
	var out []ActionDecl
	for _, c := range childrenOfKind(s.Tree, s.Idx, syntax.KindActionDecl) {
		out = append(out, ActionDecl{node{s.Tree, c}})
	}
	return out
}

// TopLevelTypes returns type declarations written outside any
// `namespace { … }` block.
func (s SchemaFile) TopLevelTypes() []TypeDecl {
	var out []TypeDecl
	for _, c := range childrenOfKind(s.Tree, s.Idx, syntax.KindTypeDecl) {
		out = append(out, TypeDecl{node{s.Tree, c}})
	}
	return out
}

// Namespaces returns the file's explicit `namespace Name { … }` blocks.
func (s SchemaFile) Namespaces() []NamespaceBlock {
	var out []NamespaceBlock
	for _, c := range childrenOfKind(s.Tree, s.Idx, syntax.KindNamespace) {
		out = append(out, NamespaceBlock{node{s.Tree, c}})
	}
	return out
}

// NamespaceBlock wraps a `namespace Name { … }` node.
type NamespaceBlock struct{ node }

// Annotations returns the namespace's annotations.
func (n NamespaceBlock) Annotations() []Annotation { return annotationsOf(n.Tree, n.Idx) }

// Name returns the namespace's declared (possibly `::`-qualified) name.
func (n NamespaceBlock) Name() Name {
	i, _ := child(n.Tree, n.Idx, syntax.KindName)
	return Name{node{n.Tree, i}}
}

// Entities returns the namespace's direct entity declarations.
func (n NamespaceBlock) Entities() []EntityDecl {
	var out []EntityDecl
	for _, c := range childrenOfKind(n.Tree, n.Idx, syntax.KindEntityDecl) {
		out = append(out, EntityDecl{node{n.Tree, c}})
	}
	return out
}

// Actions returns the namespace's direct action declarations.
func (n NamespaceBlock) Actions() []ActionDecl {
	var out []ActionDecl
	for _, c := range childrenOfKind(n.Tree, n.Idx, syntax.KindActionDecl) {
		out = append(out, ActionDecl{node{n.Tree, c}})
	}
	return out
}

// Types returns the namespace's direct type declarations.
func (n NamespaceBlock) Types() []TypeDecl {
	var out []TypeDecl
	for _, c := range childrenOfKind(n.Tree, n.Idx, syntax.KindTypeDecl) {
		out = append(out, TypeDecl{node{n.Tree, c}})
	}
	return out
}

// NestedNamespaces returns `namespace` blocks written directly inside
// this namespace — always a lowering error (§4.9 NestedNamespace).
func (n NamespaceBlock) NestedNamespaces() []NamespaceBlock {
	var out []NamespaceBlock
	for _, c := range childrenOfKind(n.Tree, n.Idx, syntax.KindNamespace) {
		out = append(out, NamespaceBlock{node{n.Tree, c}})
	}
	return out
}

func annotationsOf(t *syntax.Tree, i syntax.NodeIndex) []Annotation {
	list, ok := child(t, i, syntax.KindAnnotationList)
	if !ok {
		return nil
	}
	var out []Annotation
	for _, c := range childrenOfKind(t, list, syntax.KindAnnotation) {
		out = append(out, Annotation{node{t, c}})
	}
	return out
}

// EntityDecl wraps `entity NameList [in TypeList] (= {attrs} [tags T] |
// enum [...])? ;`.
type EntityDecl struct{ node }

// Annotations returns the declaration's annotations.
func (e EntityDecl) Annotations() []Annotation { return annotationsOf(e.Tree, e.Idx) }

// Names returns the declared entity type names.
func (e EntityDecl) Names() []Name {
	list, ok := child(e.Tree, e.Idx, syntax.KindNameList)
	if !ok {
		return nil
	}
	var out []Name
	for _, c := range childrenOfKind(e.Tree, list, syntax.KindName) {
		out = append(out, Name{node{e.Tree, c}})
	}
	return out
}

// Parents returns the `in [...]` parent entity type names.
func (e EntityDecl) Parents() []Name {
	list, ok := child(e.Tree, e.Idx, syntax.KindTypeList)
	if !ok {
		return nil
	}
	var out []Name
	for _, c := range childrenOfKind(e.Tree, list, syntax.KindName) {
		out = append(out, Name{node{e.Tree, c}})
	}
	return out
}

// Shape returns the entity's attribute record type, if it has one.
func (e EntityDecl) Shape() (TypeExpr, bool) {
	i, ok := child(e.Tree, e.Idx, syntax.KindRecordType)
	return TypeExpr{node{e.Tree, i}}, ok
}

// Tags returns the entity's `tags T` type, if present.
func (e EntityDecl) Tags() (TypeExpr, bool) {
	i, ok := child(e.Tree, e.Idx, syntax.KindSetType)
	if ok {
		return TypeExpr{node{e.Tree, i}}, true
	}
	i, ok = child(e.Tree, e.Idx, syntax.KindNameType)
	return TypeExpr{node{e.Tree, i}}, ok
}

// EnumChoices returns the entity's `enum [...]` choices as still-quoted
// string literal tokens, if it is an enum entity.
func (e EntityDecl) EnumChoices() ([]string, bool) {
	if _, ok := child(e.Tree, e.Idx, syntax.KindEnumType); !ok {
		return nil, false
	}
	enumIdx, _ := child(e.Tree, e.Idx, syntax.KindEnumType)
	var out []string
	for _, c := range childrenOfKind(e.Tree, enumIdx, syntax.KindStringLiteral) {
		out = append(out, e.Tree.Text(c))
	}
	return out, true
}

// ActionDecl wraps `action ActionNameList [in ...] [appliesTo {...}]
// [attributes {...}] ;`.
type ActionDecl struct{ node }

// Annotations returns the declaration's annotations.
func (a ActionDecl) Annotations() []Annotation { return annotationsOf(a.Tree, a.Idx) }

// Names returns the declared action names (strings or identifiers).
func (a ActionDecl) Names() []string {
	list, ok := child(a.Tree, a.Idx, syntax.KindNameList)
	if !ok {
		return nil
	}
	var out []string
	for _, c := range a.Tree.Children(list) {
		switch a.Tree.Kind(c) {
		case syntax.KindIdentifier, syntax.KindStringLiteral:
			out = append(out, a.Tree.Text(c))
		}
	}
	return out
}

// Parents returns the `in (Name|[Name,...])` parent action names.
func (a ActionDecl) Parents() ([]string, bool) {
	i, ok := child(a.Tree, a.Idx, syntax.KindActionParents)
	if !ok {
		return nil, false
	}
	var out []string
	for _, c := range a.Tree.Children(i) {
		switch a.Tree.Kind(c) {
		case syntax.KindIdentifier, syntax.KindStringLiteral:
			out = append(out, a.Tree.Text(c))
		}
	}
	return out, true
}

// AppliesTo returns the action's `appliesTo { ... }` clause.
func (a ActionDecl) AppliesTo() (AppliesTo, bool) {
	i, ok := child(a.Tree, a.Idx, syntax.KindAppliesTo)
	return AppliesTo{node{a.Tree, i}}, ok
}

// Attributes returns the action's `attributes { ... }` clause.
func (a ActionDecl) Attributes() (TypeExpr, bool) {
	list, ok := child(a.Tree, a.Idx, syntax.KindAttributeList)
	if !ok {
		return TypeExpr{}, false
	}
	return TypeExpr{node{a.Tree, list}}, true
}

// AppliesTo wraps `appliesTo { principal: TypeList, resource: TypeList,
// context: TypeExpr }`.
type AppliesTo struct{ node }

// PrincipalTypes returns the `principal:` type list.
func (a AppliesTo) PrincipalTypes() []Name {
	return typeListAfterLabel(a.Tree, a.Idx, "principal")
}

// ResourceTypes returns the `resource:` type list.
func (a AppliesTo) ResourceTypes() []Name {
	return typeListAfterLabel(a.Tree, a.Idx, "resource")
}

func typeListAfterLabel(t *syntax.Tree, i syntax.NodeIndex, label string) []Name {
	for _, c := range t.Children(i) {
		if t.Kind(c) != syntax.KindIdentifier || t.Text(c) != label {
			continue
		}
		if list, ok := t.After(i, c, syntax.KindTypeList); ok {
			var out []Name
			for _, n := range childrenOfKind(t, list, syntax.KindName) {
				out = append(out, Name{node{t, n}})
			}
			return out
		}
	}
	return nil
}

// Context returns the `context:` type expression.
func (a AppliesTo) Context() (TypeExpr, bool) {
	for _, c := range a.Tree.Children(a.Idx) {
		switch a.Tree.Kind(c) {
		case syntax.KindSetType, syntax.KindRecordType, syntax.KindEnumType, syntax.KindNameType:
			return TypeExpr{node{a.Tree, c}}, true
		}
	}
	return TypeExpr{}, false
}

// TypeDecl wraps `type Name = TypeExpr ;`.
type TypeDecl struct{ node }

// Annotations returns the declaration's annotations.
func (d TypeDecl) Annotations() []Annotation { return annotationsOf(d.Tree, d.Idx) }

// Name returns the declared type's name.
func (d TypeDecl) Name() string {
	ids := childrenOfKind(d.Tree, d.Idx, syntax.KindIdentifier)
	if len(ids) < 2 {
		return ""
	}
	return d.Tree.Text(ids[1])
}

// Type returns the declaration's right-hand-side type expression.
func (d TypeDecl) Type() (TypeExpr, bool) {
	for _, c := range d.Tree.Children(d.Idx) {
		switch d.Tree.Kind(c) {
		case syntax.KindSetType, syntax.KindRecordType, syntax.KindEnumType, syntax.KindNameType:
			return TypeExpr{node{d.Tree, c}}, true
		}
	}
	return TypeExpr{}, false
}

// TypeExpr wraps a `Set<T>`, `{ attrs }`, `enum [...]`, or plain `Name`
// type reference.
type TypeExpr struct{ node }

// Elem returns the element type of a `Set<T>` node.
func (t TypeExpr) Elem() (TypeExpr, bool) {
	for _, c := range t.Tree.Children(t.Idx) {
		switch t.Tree.Kind(c) {
		case syntax.KindSetType, syntax.KindRecordType, syntax.KindEnumType, syntax.KindNameType:
			return TypeExpr{node{t.Tree, c}}, true
		}
	}
	return TypeExpr{}, false
}

// NameRef returns the qualified name of a plain Name type reference.
func (t TypeExpr) NameRef() Name {
	i, _ := child(t.Tree, t.Idx, syntax.KindName)
	return Name{node{t.Tree, i}}
}

// Attributes returns a `{ attrs }` record type's attributes.
func (t TypeExpr) Attributes() []Attribute {
	var out []Attribute
	for _, c := range childrenOfKind(t.Tree, t.Idx, syntax.KindAttribute) {
		out = append(out, Attribute{node{t.Tree, c}})
	}
	return out
}

// EnumChoices returns an `enum [...]` type's still-quoted string
// literal tokens.
func (t TypeExpr) EnumChoices() []string {
	var out []string
	for _, c := range childrenOfKind(t.Tree, t.Idx, syntax.KindStringLiteral) {
		out = append(out, t.Tree.Text(c))
	}
	return out
}

// Attribute wraps `[annotations] name[?]: TypeExpr`.
type Attribute struct{ node }

// Annotations returns the attribute's annotations.
func (a Attribute) Annotations() []Annotation { return annotationsOf(a.Tree, a.Idx) }

// Name returns the attribute's name token text and whether it came
// from a string literal rather than an identifier.
func (a Attribute) Name() (text string, isString bool) {
	if tok, ok := tokenText(a.Tree, a.Idx, syntax.KindStringLiteral); ok {
		return tok, true
	}
	tok, _ := tokenText(a.Tree, a.Idx, syntax.KindIdentifier)
	return tok, false
}

// Optional reports whether the attribute carries a `?` marker.
func (a Attribute) Optional() bool {
	_, ok := child(a.Tree, a.Idx, syntax.KindQuestion)
	return ok
}

// Type returns the attribute's declared type.
func (a Attribute) Type() (TypeExpr, bool) {
	for _, c := range a.Tree.Children(a.Idx) {
		switch a.Tree.Kind(c) {
		case syntax.KindSetType, syntax.KindRecordType, syntax.KindEnumType, syntax.KindNameType:
			return TypeExpr{node{a.Tree, c}}, true
		}
	}
	return TypeExpr{}, false
}
