// Package analyze discovers union declarations written as comment
// directives in Go source.
//
// A directive group is a comment group that starts with a union directive
// and lists the cases below it:
//
//	//sumtype:union Payment tag=uint8
//	//sumtype:variant(PaymentCard, "Card")
//	//sumtype:variant(PaymentCash)
//	//sumtype:variant(*int, nullable, name="Count")
//	//sumtype:empty("Pending")
//
// Packages are loaded with golang.org/x/tools/go/packages. Variant types are
// evaluated with go/types in the scope of the directive; nilability and the
// equality strategy are derived from the resolved type. Arguments that
// cannot be evaluated keep only their source text.
package analyze
