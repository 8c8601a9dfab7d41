// Package wirebox is a minimal inversion-of-control container.
//
// A Container maps identifiers (arbitrary strings or type names) to values.
// A value comes either from a user-registered definition, or from autowiring:
// the container introspects the type's constructor and recursively resolves
// its parameters. Resolved values are memoized for the container's lifetime,
// giving singleton-by-identity semantics: a stateful dependency is shared by
// every consumer of one container instance.
//
//	reg := wirebox.NewTypeRegistry()
//	wirebox.MustRegisterType[*Repository](reg, NewRepository)
//	wirebox.MustRegisterType[*Service](reg, NewService)
//
//	c := wirebox.MustNew(
//		[]wirebox.Def{wirebox.Define("dsn", func() any { return "postgres://..." })},
//		wirebox.WithIntrospector(reg),
//	)
//	svc, err := c.Get("github.com/acme/app.Service")
//
// wirebox is deliberately not a full DI framework: there are no scope
// lifetimes, no method or property injection, and no container hierarchies.
package wirebox
