// Package primitive classifies Go predeclared scalar types by name.
package primitive

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUintptr
	KindFloat32
	KindFloat64
	KindComplex64
	KindComplex128
	KindBool
	KindString

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var byName = map[string]KindEnum{
	"int":        KindInt,
	"int8":       KindInt8,
	"int16":      KindInt16,
	"int32":      KindInt32,
	"rune":       KindInt32,
	"int64":      KindInt64,
	"uint":       KindUint,
	"uint8":      KindUint8,
	"byte":       KindUint8,
	"uint16":     KindUint16,
	"uint32":     KindUint32,
	"uint64":     KindUint64,
	"uintptr":    KindUintptr,
	"float32":    KindFloat32,
	"float64":    KindFloat64,
	"complex64":  KindComplex64,
	"complex128": KindComplex128,
	"bool":       KindBool,
	"string":     KindString,
}

// FromTypeName returns the kind of a predeclared type name, or the zero
// kind for anything else (named, composite or qualified types).
func FromTypeName(name string) KindEnum {
	return byName[name]
}

func (k KindEnum) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

func (k KindEnum) IsNumber() bool {
	return k.IsInteger() || k.IsFloat() || k.IsComplex()
}

func (k KindEnum) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

func (k KindEnum) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

func (k KindEnum) IsComplex() bool {
	return k == KindComplex64 || k == KindComplex128
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64, KindUintptr:
		return true
	}
}

// ZeroLiteral returns the Go literal of the zero value, or "" for an
// invalid kind.
func (k KindEnum) ZeroLiteral() string {
	switch {
	case k.IsNumber():
		return "0"
	case k == KindBool:
		return "false"
	case k == KindString:
		return `""`
	default:
		return ""
	}
}
