package wirebox

import (
	"reflect"
)

var (
	ErrorType     = TypeOf[error]()
	ContainerType = TypeOf[*Container]()
	AnyType       = TypeOf[any]()
)

// TypeOf returns the reflect.Type of I, interfaces included.
func TypeOf[I any]() reflect.Type {
	var i I
	t := reflect.TypeOf(i)
	if t == nil {
		t = reflect.TypeOf((*I)(nil)).Elem()
	}
	return t
}

// CanonicalName renders the identifier a type resolves under: the package
// path joined with the type name, pointers stripped. Unnamed types fall back
// to their reflect rendering.
func CanonicalName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() != "" && t.Name() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// classifyType maps a Go parameter type onto the declared-type model:
// the empty interface carries no class identity at all, named types (after
// pointer stripping) are resolvable, everything else counts as builtin.
func classifyType(t reflect.Type) TypeKind {
	if t == AnyType {
		return KindNone
	}
	elem := t
	for elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	if elem.PkgPath() != "" && elem.Name() != "" {
		return KindNamed
	}
	return KindBuiltin
}
