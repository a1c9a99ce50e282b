package model

import (
	"strings"

	"sumtype-generator/internal/common"
)

// TagWidth is the integer type backing a union's tag enumeration. The zero
// value is the default, 32-bit signed.
type TagWidth int

const (
	TagInt32 TagWidth = iota
	TagInt8
	TagUint8
	TagInt16
	TagUint16
	TagUint32
	TagInt64
	TagUint64

	tagWidthCount = int(iota)
)

// Valid reports whether w is one of the known widths.
func (w TagWidth) Valid() bool {
	return w >= 0 && int(w) < tagWidthCount
}

// GoType returns the Go builtin type name for the width.
func (w TagWidth) GoType() string {
	switch w {
	case TagInt8:
		return "int8"
	case TagUint8:
		return "uint8"
	case TagInt16:
		return "int16"
	case TagUint16:
		return "uint16"
	case TagInt32:
		return "int32"
	case TagUint32:
		return "uint32"
	case TagInt64:
		return "int64"
	case TagUint64:
		return "uint64"
	default:
		return common.UnknownStr
	}
}

// String returns the Go type name.
func (w TagWidth) String() string {
	return w.GoType()
}

// Bits returns the width in bits.
func (w TagWidth) Bits() int {
	switch w {
	case TagInt8, TagUint8:
		return 8
	case TagInt16, TagUint16:
		return 16
	case TagInt64, TagUint64:
		return 64
	default:
		return 32
	}
}

// Signed reports whether the width is a signed integer type.
func (w TagWidth) Signed() bool {
	switch w {
	case TagUint8, TagUint16, TagUint32, TagUint64:
		return false
	default:
		return true
	}
}

var tagWidthNames = map[string]TagWidth{
	"int8":   TagInt8,
	"sbyte":  TagInt8,
	"uint8":  TagUint8,
	"byte":   TagUint8,
	"int16":  TagInt16,
	"short":  TagInt16,
	"uint16": TagUint16,
	"ushort": TagUint16,
	"int32":  TagInt32,
	"int":    TagInt32,
	"uint32": TagUint32,
	"uint":   TagUint32,
	"int64":  TagInt64,
	"long":   TagInt64,
	"uint64": TagUint64,
	"ulong":  TagUint64,
}

// ParseTagWidth parses a width by name. Names are the Go builtin names plus
// the aliases byte, sbyte, short, ushort, int, uint, long and ulong.
func ParseTagWidth(name string) (TagWidth, bool) {
	w, ok := tagWidthNames[strings.ToLower(strings.TrimSpace(name))]
	return w, ok
}

// TagWidthFromSelector converts a numeric selector to a width.
func TagWidthFromSelector(n int64) (TagWidth, bool) {
	if n < 0 || n >= int64(tagWidthCount) {
		return TagInt32, false
	}

	return TagWidth(n), true
}
