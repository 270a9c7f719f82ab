package ast

// Effect is a policy's permit/forbid head.
type Effect int

const (
	EffectPermit Effect = iota
	EffectForbid
)

func (e Effect) String() string {
	if e == EffectForbid {
		return "forbid"
	}
	return "permit"
}

// PolicySet is the lowered result of an entire policy source file.
type PolicySet struct {
	Policies []*Policy
}

// Policy is one lowered `permit`/`forbid` statement.
type Policy struct {
	Annotations *Annotations
	Effect      Effect
	Principal   ScopeConstraint
	Action      ActionConstraint
	Resource    ScopeConstraint
	Conditions  []Condition
}

// ScopeKind tags the populated field of a ScopeConstraint.
type ScopeKind int

const (
	ScopeAny ScopeKind = iota
	ScopeEqual
	ScopeIn
	ScopeIs
	ScopeIsIn
)

// ScopeConstraint is the lowered form of a principal/resource scope
// clause (§4.8 "Scope"). Which fields are meaningful is determined by
// Kind: Equal/In populate Ref, Is populates EntityType, IsIn populates
// both EntityType and Ref (the `in` target).
type ScopeConstraint struct {
	Kind       ScopeKind
	EntityType string
	Ref        *EntityRefOrSlot
}

// ActionKind tags the populated field of an ActionConstraint.
type ActionKind int

const (
	ActionAny ActionKind = iota
	ActionEqual
	ActionIn
)

// ActionConstraint is the lowered form of an action scope clause.
// Equal populates Ref; In populates List, built from either a single
// entity reference or a bracketed list in the CST.
type ActionConstraint struct {
	Kind ActionKind
	Ref  *EntityRefOrSlot
	List []EntityUID
}

// ConditionKind distinguishes a `when` clause from an `unless` clause.
type ConditionKind int

const (
	ConditionWhen ConditionKind = iota
	ConditionUnless
)

// Condition is one lowered `when { expr }` / `unless { expr }` clause.
type Condition struct {
	Kind ConditionKind
	Expr *Expr
}
