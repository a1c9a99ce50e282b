package model

import (
	"sumtype-generator/internal/decl"
)

// UnionSpec is the canonical description of one tagged union.
type UnionSpec struct {
	Name      string
	Namespace string
	// Dir is the declaration directory relative to the input root.
	Dir string
	// Origin is the declaration position for diagnostics.
	Origin   string
	TagWidth TagWidth
	// Variants in declaration order; the order fixes the tag values.
	Variants []Variant
	// EmptyCases in declaration order, tagged after all variants.
	EmptyCases []string
	Mode       Mode
	Imports    []string
}

// CaseCount returns the number of declared cases.
func (s UnionSpec) CaseCount() int {
	return len(s.Variants) + len(s.EmptyCases)
}

// Empty reports whether the union declares no cases at all.
func (s UnionSpec) Empty() bool {
	return s.CaseCount() == 0
}

// KindType returns the name of the tag enumeration type.
func (s UnionSpec) KindType() string {
	return s.Name + "Kind"
}

// KindConst returns the tag constant for the case with the given logical name.
func (s UnionSpec) KindConst(caseName string) string {
	return s.KindType() + caseName
}

// Variant is one payload-carrying case.
type Variant struct {
	PayloadType decl.TypeRef
	LogicalName string
	Nullable    bool
	// Raw is set when the payload was recovered from raw annotation text.
	Raw bool
}

// Indirect reports whether the slot holds a pointer to the payload type
// because the variant is nullable but the type itself cannot be nil.
func (v Variant) Indirect() bool {
	return v.Nullable && !v.PayloadType.Nilable
}

// CanBeNil reports whether the slot may hold no value.
func (v Variant) CanBeNil() bool {
	return v.Nullable || v.PayloadType.Nilable
}

// SlotType returns the Go type of the storage slot and factory parameter.
func (v Variant) SlotType() string {
	if v.Indirect() {
		return "*" + v.PayloadType.Expr
	}

	return v.PayloadType.Expr
}

// FieldName returns the storage field name.
func (v Variant) FieldName() string {
	return "val" + v.LogicalName
}
