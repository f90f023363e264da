package typeinfo

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind tags every TypeInfo variant. The zero value is invalid.
type Kind int

const (
	_ Kind = iota // skip zero value, a TypeInfo never reports it

	KindPrimitive    // primitive
	KindObject       // object
	KindArray        // array
	KindUnion        // union
	KindIntersection // intersection
	KindGeneric      // generic
	KindLiteral      // literal
	KindUnknown      // unknown
	KindReference    // reference
	KindFunction     // function
	KindTuple        // tuple
	KindEnum         // enum
	KindKeyof        // keyof
	KindTypeof       // typeof
	KindIndex        // index
	KindConditional  // conditional
	KindNever        // never

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// ParseKind maps a kind tag ("object", "union", ...) back to its Kind.
func ParseKind(s string) (Kind, bool) {
	for k := Kind(1); int(k) < KindTotal; k++ {
		if k.String() == s {
			return k, true
		}
	}

	return 0, false
}

// IsContainer reports whether nodes of this kind hold nested types.
func (k Kind) IsContainer() bool {
	switch k {
	default:
		return false
	case KindObject, KindArray, KindUnion, KindIntersection, KindGeneric,
		KindReference, KindTuple, KindKeyof, KindTypeof, KindIndex, KindConditional:
		return true
	}
}
