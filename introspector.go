package wirebox

import (
	"fmt"
	"strings"
)

type (
	// TypeKind classifies the declared type of a constructor parameter.
	TypeKind int

	// Parameter describes one constructor parameter of an introspected type.
	// Position is 0-based; diagnostics print it 1-based.
	Parameter struct {
		Name     string
		Position int
		Kind     TypeKind

		// TypeName holds the canonical name for KindNamed parameters, or a
		// plain rendering of the type for KindBuiltin ones.
		TypeName string

		// Alternatives holds the member type names of a KindUnion parameter.
		Alternatives []string

		HasDefault bool
		Default    any
	}

	// Introspector is the type introspection capability the resolver relies
	// on to autowire identifiers that name types. Go has no runtime class
	// loading, so the default implementation is a registration table (see
	// TypeRegistry), but anything honoring this contract can back a
	// container: generated metadata, a restricted reflection facility, a
	// test double.
	Introspector interface {
		// Exists reports whether typeName names a loadable type, concrete
		// or abstract.
		Exists(typeName string) bool

		// Instantiable reports whether typeName names a concrete,
		// constructible type.
		Instantiable(typeName string) bool

		// ConstructorParameters returns the ordered parameter descriptors
		// of the type's constructor.
		ConstructorParameters(typeName string) ([]Parameter, error)

		// Construct builds an instance from the fully resolved argument
		// list, in declaration order.
		Construct(typeName string, args []any) (any, error)
	}
)

const (
	// KindNone marks a parameter with no declared type.
	KindNone TypeKind = iota
	// KindBuiltin marks a primitive or other type without class identity.
	KindBuiltin
	// KindNamed marks a parameter declared as a single named type.
	KindNamed
	// KindUnion marks a parameter declared as a union of several named types.
	KindUnion
)

// DescribeType renders the declared type of the parameter for diagnostics.
func (p Parameter) DescribeType() string {
	switch p.Kind {
	case KindBuiltin:
		return fmt.Sprintf("builtin type %s", p.TypeName)
	case KindNamed:
		return fmt.Sprintf("type %s", p.TypeName)
	case KindUnion:
		return fmt.Sprintf("union of [%s]", strings.Join(p.Alternatives, ", "))
	default:
		return "no declared type"
	}
}
