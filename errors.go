package wirebox

import (
	"fmt"
	"strings"
)

var (
	_ error = (*ConfigurationError)(nil)
	_ error = (*NotFoundError)(nil)
	_ error = (*CyclicDependencyError)(nil)
	_ error = (*UnresolvableParameterError)(nil)
	_ error = (*InstantiationError)(nil)
)

// ConfigurationError is returned by New when a registered definition is not
// callable. It aborts construction of the whole container, no partially
// populated registry is ever exposed.
type ConfigurationError struct {
	ID     string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid definition for identifier %q: %s", e.ID, e.Reason)
}

// NotFoundError is returned by Get when the identifier has no definition and
// does not name a loadable type.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no definition or loadable type found for identifier %q", e.ID)
}

// CyclicDependencyError is returned when an identifier is requested again
// while it is still being resolved. Trace holds every identifier on the
// resolution stack at the moment of failure, outermost first, with the
// re-entered identifier repeated at the end.
type CyclicDependencyError struct {
	ID    string
	Trace []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf(
		"cyclic dependency detected while resolving %q:\n\t%s",
		e.ID,
		strings.Join(e.Trace, " -> "),
	)
}

// UnresolvableParameterError is returned when a constructor parameter cannot
// be determined automatically: it has no declared type, a builtin type
// without a default, or a union of several named types (the container never
// guesses among alternatives). Position is 1-based.
type UnresolvableParameterError struct {
	ID       string
	Param    string
	Position int
	TypeDesc string
}

func (e *UnresolvableParameterError) Error() string {
	return fmt.Sprintf(
		"cannot resolve parameter %q (position %d, %s) of %q",
		e.Param, e.Position, e.TypeDesc, e.ID,
	)
}

// InstantiationError wraps any failure raised while autowiring an identifier:
// a non-instantiable type, a constructor body failure, or a nested error
// during recursive argument construction.
type InstantiationError struct {
	ID    string
	Cause error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("failed to instantiate %q:\n\t%v", e.ID, e.Cause)
}

func (e *InstantiationError) Unwrap() error {
	return e.Cause
}
