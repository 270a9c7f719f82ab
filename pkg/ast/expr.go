package ast

import "github.com/cedarfront/cedarfront/pkg/escape"

// ExprKind tags the populated variant field of an Expr.
type ExprKind int

const (
	ExprLiteral ExprKind = iota
	ExprVariable
	ExprSlot
	ExprEntityRef
	ExprOr
	ExprAnd
	ExprRel
	ExprAdd
	ExprMul
	ExprUnary
	ExprIs
	ExprLike
	ExprHas
	ExprIf
	ExprList
	ExprRecord
	ExprField
	ExprMethodCall
	ExprExtensionCall
)

// RelOp is the operator of a Rel expression: every comparison that
// shares binding power (5,6) with `in` but isn't carved out into its
// own node kind (`is`, `has`, `like` get dedicated Expr variants).
type RelOp int

const (
	RelLt RelOp = iota
	RelLe
	RelGt
	RelGe
	RelEq
	RelNe
	RelIn
)

// AddOp is the operator of an Add expression.
type AddOp int

const (
	AddPlus AddOp = iota
	AddMinus
)

// UnaryOp is the operator of a Unary expression.
type UnaryOp int

const (
	UnaryNot UnaryOp = iota
	UnaryNeg
)

// Expr is a lowered expression node. Exactly one field matching Kind
// is populated; the rest are nil/zero.
type Expr struct {
	Kind ExprKind

	Literal   *Literal
	Variable  VariableKind
	Slot      string
	EntityRef *EntityUID

	Or    *BinaryExpr
	And   *BinaryExpr
	Rel   *RelExpr
	Add   *AddExpr
	Mul   *BinaryExpr
	Unary *UnaryExpr
	Is    *IsExpr
	Like  *LikeExpr
	Has   *HasExpr
	If    *IfExpr

	List   []*Expr
	Record []RecordEntry

	Field         *FieldExpr
	MethodCall    *MethodCallExpr
	ExtensionCall *ExtensionCallExpr
}

// BinaryExpr is a generic two-operand node used by Or, And, and Mul —
// operators with a single fixed meaning that need no Op field.
type BinaryExpr struct {
	Left  *Expr
	Right *Expr
}

// RelExpr is a comparison at binding power (5,6) other than `is`,
// `has`, or `like`.
type RelExpr struct {
	Op    RelOp
	Left  *Expr
	Right *Expr
}

// AddExpr is a `+`/`-` node; left-associative chains are represented
// as nested AddExpr the same way the CST nests them via Builder.Commit.
type AddExpr struct {
	Op    AddOp
	Left  *Expr
	Right *Expr
}

// UnaryExpr is a `!` or `-` prefix application.
type UnaryExpr struct {
	Op      UnaryOp
	Operand *Expr
}

// IsExpr is `subject is EntityType [in inExpr]`.
type IsExpr struct {
	Subject    *Expr
	EntityType string
	In         *Expr // nil when the optional `in expr` clause is absent
}

// LikeExpr is `subject like "pattern"`, with the pattern already
// decoded into literal/wildcard elements.
type LikeExpr struct {
	Subject *Expr
	Pattern []escape.PatternElement
}

// HasExpr is `subject has attr`, where attr came from either an
// identifier or an unescaped string literal in the CST.
type HasExpr struct {
	Subject *Expr
	Attr    string
}

// IfExpr is `if cond then then_ else else_`.
type IfExpr struct {
	Cond *Expr
	Then *Expr
	Else *Expr
}

// RecordEntry is one `key: value` pair of a record literal.
type RecordEntry struct {
	Key   string
	Value *Expr
}

// FieldExpr is `subject.attr` where attr is a plain field access (not
// a method call — member chains ending in `(args)` lower to
// MethodCallExpr/ExtensionCallExpr instead).
type FieldExpr struct {
	Subject *Expr
	Attr    string
}

// MethodCallExpr is a call to one of the closed set of built-in
// receiver methods (§4.8): `contains`, `containsAll`, `containsAny`,
// `isEmpty`, `getTag`, `hasTag`.
type MethodCallExpr struct {
	Method   string
	Receiver *Expr
	Args     []*Expr
}

// ExtensionCallExpr is a call to one of the closed set of extension
// functions/methods (`ip`, `decimal`, `datetime`, `duration`,
// `isInRange`, and so on). Receiver is nil for a free function call
// like `ip("1.2.3.4")` and non-nil for a method-style call like
// `x.isInRange(y)`.
type ExtensionCallExpr struct {
	Name     string
	Receiver *Expr
	Args     []*Expr
}
