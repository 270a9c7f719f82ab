package lower

import (
	"github.com/cedarfront/cedarfront/pkg/ast"
	"github.com/cedarfront/cedarfront/pkg/cst"
	"github.com/cedarfront/cedarfront/pkg/diagnostic"
	"github.com/cedarfront/cedarfront/pkg/syntax"
)

// LowerSchema lowers a parsed schema tree to a Schema. Top-level
// declarations outside any `namespace { … }` block collect into a
// single implicit Namespace with an empty Name, created only when at
// least one such declaration exists (§4.9 "implicit unnamed
// namespace"). A namespace whose own name fails to lower is dropped
// entirely, even though its child declarations were already
// collected; a malformed entity, action, type, or attribute
// declaration is dropped individually instead.
func LowerSchema(tree *syntax.Tree, diags *diagnostic.Diagnostics) *ast.Schema {
	l := &lowerer{diags: diags}
	file := cst.NewSchemaFile(tree)

	var namespaces []*ast.Namespace

	topEntities := file.TopLevelEntities()
	topActions := file.TopLevelActions()
	topTypes := file.TopLevelTypes()
	if len(topEntities) > 0 || len(topActions) > 0 || len(topTypes) > 0 {
		namespaces = append(namespaces, &ast.Namespace{
			Annotations: ast.NewAnnotations(),
			Name:        "",
			Entities:    l.lowerEntityDecls(topEntities),
			Actions:     l.lowerActionDecls(topActions),
			Types:       l.lowerTypeDecls(topTypes),
		})
	}

	for _, block := range file.Namespaces() {
		if ns, ok := l.lowerNamespace(block); ok {
			namespaces = append(namespaces, ns)
		}
	}

	return &ast.Schema{Namespaces: namespaces}
}

func (l *lowerer) lowerNamespace(n cst.NamespaceBlock) (*ast.Namespace, bool) {
	entities := l.lowerEntityDecls(n.Entities())
	actions := l.lowerActionDecls(n.Actions())
	types := l.lowerTypeDecls(n.Types())

	for _, nested := range n.NestedNamespaces() {
		start, end := nested.Range()
		l.diags.Push(diagnostic.NewError("NestedNamespace", "namespaces cannot be nested").
			WithPrimary(sp(start, end), "remove this nested namespace"))
	}

	annotations := l.lowerAnnotations(n.Annotations())

	name, ok := l.lowerQualifiedName(n.Name())
	if !ok {
		start, end := n.Range()
		l.diags.Push(diagnostic.NewError("MissingName", "namespace is missing a name").
			WithPrimary(sp(start, end), "expected a name"))
		return nil, false
	}

	return &ast.Namespace{
		Annotations: annotations,
		Name:        name,
		Entities:    entities,
		Actions:     actions,
		Types:       types,
	}, true
}

func (l *lowerer) lowerEntityDecls(decls []cst.EntityDecl) []*ast.EntityDecl {
	var out []*ast.EntityDecl
	for _, d := range decls {
		if ed, ok := l.lowerEntityDecl(d); ok {
			out = append(out, ed)
		}
	}
	return out
}

func (l *lowerer) lowerEntityDecl(d cst.EntityDecl) (*ast.EntityDecl, bool) {
	annotations := l.lowerAnnotations(d.Annotations())

	var names []string
	for _, n := range d.Names() {
		name, ok := l.lowerUnqualifiedName(n)
		if !ok {
			start, end := n.Range()
			l.diags.Push(diagnostic.NewError("QualifiedEntityName", "entity type name must not be qualified here").
				WithPrimary(sp(start, end), "remove the `::` qualifier"))
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, false
	}

	in, ok := l.lowerEntityParents(d.Parents())
	if !ok {
		return nil, false
	}

	ed := &ast.EntityDecl{Annotations: annotations, Names: names, In: in}

	if enumIdx, ok := d.Tree.Child(d.Idx, syntax.KindEnumType); ok {
		toks := d.Tree.ChildrenOfKind(enumIdx, syntax.KindStringLiteral)
		start, end := d.Tree.Range(enumIdx)
		enum, ok := l.lowerEnumChoices(d.Tree, toks, start, end)
		if !ok {
			return nil, false
		}
		ed.Enum = enum
		return ed, true
	}

	if shape, ok := d.Shape(); ok {
		if te, ok := l.lowerTypeExpr(shape); ok {
			ed.Shape = te
		}
	}
	if tags, ok := d.Tags(); ok {
		if te, ok := l.lowerTypeExpr(tags); ok {
			ed.Tags = te
		}
	}
	return ed, true
}

// lowerEntityParents lowers an entity's `in [...]` parent type list,
// rejecting the whole declaration on the first duplicate parent type
// (§8 property #6, "entity parent sets").
func (l *lowerer) lowerEntityParents(parents []cst.Name) ([]string, bool) {
	seen := map[string]bool{}
	var out []string
	for _, p := range parents {
		name, ok := l.lowerQualifiedName(p)
		if !ok {
			continue
		}
		if seen[name] {
			start, end := p.Range()
			l.diags.Push(diagnostic.NewError("DuplicateEntityParent", "duplicate parent type `"+name+"`").
				WithPrimary(sp(start, end), "duplicate parent"))
			return nil, false
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, true
}

func (l *lowerer) lowerActionDecls(decls []cst.ActionDecl) []*ast.ActionDecl {
	var out []*ast.ActionDecl
	for _, d := range decls {
		if ad, ok := l.lowerActionDecl(d); ok {
			out = append(out, ad)
		}
	}
	return out
}

// lowerActionDecl lowers an action declaration. Unlike entity and type
// names, action names carry no `::`-qualification in this grammar, so
// there is no per-name qualifier check to perform.
func (l *lowerer) lowerActionDecl(d cst.ActionDecl) (*ast.ActionDecl, bool) {
	annotations := l.lowerAnnotations(d.Annotations())

	names := d.Names()
	if len(names) == 0 {
		return nil, false
	}

	ad := &ast.ActionDecl{Annotations: annotations, Names: names}

	if list, ok := d.Tree.Child(d.Idx, syntax.KindActionParents); ok {
		var parents []string
		for _, c := range d.Tree.Children(list) {
			switch d.Tree.Kind(c) {
			case syntax.KindIdentifier, syntax.KindStringLiteral:
				cstart, _ := d.Tree.Range(c)
				if value, ok := l.lowerStringToken(d.Tree.Text(c), cstart); ok {
					parents = append(parents, value)
				}
			}
		}
		start, end := d.Range()
		if !l.checkDuplicateActionParents(parents, start, end) {
			return nil, false
		}
		ad.In = parents
	}

	if appliesTo, ok := d.AppliesTo(); ok {
		if principalTypes, ok := l.lowerNameList(appliesTo.PrincipalTypes()); ok {
			ad.PrincipalTypes = principalTypes
		}
		if resourceTypes, ok := l.lowerNameList(appliesTo.ResourceTypes()); ok {
			ad.ResourceTypes = resourceTypes
		}
		if ctx, ok := appliesTo.Context(); ok {
			if te, ok := l.lowerContextType(ctx); ok {
				ad.Context = te
			}
		}
	}

	if attrs, ok := d.Attributes(); ok {
		if te, ok := l.lowerTypeExpr(attrs); ok {
			ad.Attributes = te
		}
	}

	return ad, true
}

// checkDuplicateActionParents reports a duplicate parent action name.
// It receives the decoded names only, with no per-name span, so the
// diagnostic is anchored to the whole declaration.
func (l *lowerer) checkDuplicateActionParents(parents []string, start, end int) bool {
	seen := map[string]bool{}
	for _, p := range parents {
		if seen[p] {
			l.diags.Push(diagnostic.NewError("DuplicateActionParent", "duplicate parent action `"+p+"`").
				WithPrimary(sp(start, end), "duplicate parent"))
			return false
		}
		seen[p] = true
	}
	return true
}

// lowerNameList lowers an entity type list used by `appliesTo`
// principal/resource type constraints, rejecting duplicates and an
// empty result (§8 property #7, "EntityTypeSet").
func (l *lowerer) lowerNameList(names []cst.Name) ([]string, bool) {
	seen := map[string]bool{}
	var out []string
	for _, n := range names {
		name, ok := l.lowerQualifiedName(n)
		if !ok {
			continue
		}
		if seen[name] {
			start, end := n.Range()
			l.diags.Push(diagnostic.NewError("DuplicateEntityType", "duplicate entity type `"+name+"`").
				WithPrimary(sp(start, end), "duplicate entity type"))
			return nil, false
		}
		seen[name] = true
		out = append(out, name)
	}
	if len(out) == 0 {
		start, end := 0, 0
		if len(names) > 0 {
			start, _ = names[0].Range()
			_, end = names[len(names)-1].Range()
		}
		l.diags.Push(diagnostic.NewError("EmptyEntityTypeSet", "entity type list must not be empty").
			WithPrimary(sp(start, end), "no valid entity types"))
		return nil, false
	}
	return out, true
}

// lowerContextType restricts `context:` to a record or named type;
// sets and plain entity references may never describe a context
// (§4.9 InvalidContextType).
func (l *lowerer) lowerContextType(te cst.TypeExpr) (*ast.TypeExpr, bool) {
	switch te.Kind() {
	case syntax.KindRecordType, syntax.KindNameType:
		return l.lowerTypeExpr(te)
	default:
		start, end := te.Range()
		l.diags.Push(diagnostic.NewError("InvalidContextType", "context must be a record or named type").
			WithPrimary(sp(start, end), "not a valid context type"))
		return nil, false
	}
}

func (l *lowerer) lowerTypeDecls(decls []cst.TypeDecl) []*ast.TypeDecl {
	var out []*ast.TypeDecl
	for _, d := range decls {
		if td, ok := l.lowerTypeDecl(d); ok {
			out = append(out, td)
		}
	}
	return out
}

func (l *lowerer) lowerTypeDecl(d cst.TypeDecl) (*ast.TypeDecl, bool) {
	annotations := l.lowerAnnotations(d.Annotations())

	name := d.Name()
	if name == "" {
		return nil, false
	}

	rhs, ok := d.Type()
	if !ok {
		return nil, false
	}
	te, ok := l.lowerTypeExpr(rhs)
	if !ok {
		return nil, false
	}

	return &ast.TypeDecl{Annotations: annotations, Name: name, Type: te}, true
}

// lowerTypeExpr lowers any type-expression shape. A plain entity
// reference never reaches this function as a standalone type — it can
// only appear inside an `in [...]` parent list, lowered through
// lowerEntityParents, or an `appliesTo` principal/resource type list,
// lowered through lowerNameList.
func (l *lowerer) lowerTypeExpr(te cst.TypeExpr) (*ast.TypeExpr, bool) {
	switch te.Kind() {
	case syntax.KindSetType:
		elem, ok := te.Elem()
		if !ok {
			start, end := te.Range()
			l.diags.Push(diagnostic.NewError("MissingTypeExpression", "expected a set element type").
				WithPrimary(sp(start, end), "missing element type"))
			return nil, false
		}
		inner, ok := l.lowerTypeExpr(elem)
		if !ok {
			return nil, false
		}
		return &ast.TypeExpr{Kind: ast.TypeExprSet, Elem: inner}, true

	case syntax.KindRecordType:
		attrs, ok := l.lowerSchemaAttributes(te.Attributes())
		if !ok {
			return nil, false
		}
		return &ast.TypeExpr{Kind: ast.TypeExprRecord, Attrs: attrs}, true

	case syntax.KindEnumType:
		toks := te.Tree.ChildrenOfKind(te.Idx, syntax.KindStringLiteral)
		start, end := te.Range()
		enum, ok := l.lowerEnumChoices(te.Tree, toks, start, end)
		if !ok {
			return nil, false
		}
		return &ast.TypeExpr{Kind: ast.TypeExprEnum, EnumChoices: enum}, true

	case syntax.KindNameType:
		name, ok := l.lowerQualifiedName(te.NameRef())
		if !ok {
			start, end := te.Range()
			l.diags.Push(diagnostic.NewError("MissingTypeExpression", "expected a type name").
				WithPrimary(sp(start, end), "missing type name"))
			return nil, false
		}
		return &ast.TypeExpr{Kind: ast.TypeExprName, Name: name}, true

	default:
		start, end := te.Range()
		l.diags.Push(diagnostic.NewError("MissingTypeExpression", "not a valid type expression").
			WithPrimary(sp(start, end), "expected a set, record, enum, or named type"))
		return nil, false
	}
}

// lowerEnumChoices decodes each still-quoted enum variant, lenient per
// malformed variant, but rejects the whole set on a duplicate variant
// or an empty result (§8 property #6 and #7).
func (l *lowerer) lowerEnumChoices(t *syntax.Tree, toks []syntax.NodeIndex, enumStart, enumEnd int) ([]string, bool) {
	seen := map[string]bool{}
	var out []string
	for _, tok := range toks {
		start, end := t.Range(tok)
		value, ok := l.lowerStringToken(t.Text(tok), start)
		if !ok {
			continue
		}
		if seen[value] {
			l.diags.Push(diagnostic.NewError("DuplicateEnumChoice", "duplicate enum choice `"+value+"`").
				WithPrimary(sp(start, end), "duplicate choice"))
			return nil, false
		}
		seen[value] = true
		out = append(out, value)
	}
	if len(out) == 0 {
		l.diags.Push(diagnostic.NewError("EmptyEnum", "enum must have at least one choice").
			WithPrimary(sp(enumStart, enumEnd), "no valid enum choices"))
		return nil, false
	}
	return out, true
}

// lowerSchemaAttributes lowers the attribute list shared by entity
// `={...}` shapes, action `attributes{...}` shapes, and nested record
// types. A malformed attribute name or type is dropped individually,
// but a duplicate attribute name rejects the whole set (§8 property
// #6, "schema attribute sets"), the same pattern lowerRecord uses for
// duplicate record keys.
func (l *lowerer) lowerSchemaAttributes(attrs []cst.Attribute) ([]ast.Attribute, bool) {
	seen := map[string]bool{}
	var out []ast.Attribute
	for _, a := range attrs {
		annotations := l.lowerAnnotations(a.Annotations())

		nameTok, isString := a.Name()
		name := nameTok
		if isString {
			start, _, ok := childSpan(a.Tree, a.Idx, syntax.KindStringLiteral)
			if !ok {
				continue
			}
			value, ok := l.lowerStringToken(nameTok, start)
			if !ok {
				continue
			}
			name = value
		}

		typeExpr, ok := a.Type()
		if !ok {
			continue
		}
		te, ok := l.lowerTypeExpr(typeExpr)
		if !ok {
			continue
		}

		if seen[name] {
			start, end := a.Range()
			l.diags.Push(diagnostic.NewError("DuplicateAttribute", "duplicate attribute `"+name+"`").
				WithPrimary(sp(start, end), "duplicate attribute"))
			return nil, false
		}
		seen[name] = true

		out = append(out, ast.Attribute{
			Annotations: annotations,
			Name:        name,
			Optional:    a.Optional(),
			Type:        te,
		})
	}
	return out, true
}
