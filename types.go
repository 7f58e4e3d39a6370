package bounded

// ConstantPolicy controls whether unbounded fields may be treated as
// zero-dimension constants taken from their defaults.
type ConstantPolicy int

const (
	ConstantsAllow  ConstantPolicy = iota // Unbounded fields with a default become constants.
	ConstantsReject                       // Every field must be bounded on its own.
)

func (p ConstantPolicy) String() string {
	if p == ConstantsReject {
		return "reject"
	}
	return "allow"
}

// Opt bundles per-call options for registry operations. When several are
// passed the last one wins.
type Opt struct {
	Constants ConstantPolicy
	Overrides Overrides
}

func pickOpt(opts []Opt) Opt {
	if len(opts) == 0 {
		return Opt{}
	}
	return opts[len(opts)-1]
}

// Kind classifies a field descriptor for handler dispatch.
type Kind int

const (
	KindOpaque  Kind = iota // No constraint model (strings, collections, maps, ...).
	KindNumeric             // Integer or real number with optional bounds.
	KindLiteral             // Fixed set of literal constants (bool included).
	KindEnum                // Members of an enumeration type.
	KindNested              // Nested schema.
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindLiteral:
		return "literal"
	case KindEnum:
		return "enum"
	case KindNested:
		return "nested"
	default:
		return "opaque"
	}
}
