package wirebox

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wirebox/wirebox/option"
)

type (
	// Container resolves identifiers to values: either through a registered
	// definition, or by autowiring a type through its introspector. Resolved
	// values are memoized for the container's lifetime, so every consumer
	// shares one instance per identifier.
	Container struct {
		id           string
		definitions  map[string]definition
		introspector Introspector

		store   *Store
		tracker *Tracker
		locks   *LockManager

		logger zerolog.Logger
	}

	// Closeable is an interface that can be used to close resources.
	Closeable interface {
		Close() error
	}

	Options struct {
		introspector Introspector
		logger       zerolog.Logger
	}
)

// WithIntrospector plugs a custom type introspector into the container.
// The default is an empty TypeRegistry.
func WithIntrospector(introspector Introspector) option.Option[Options] {
	return func(opts *Options) {
		opts.introspector = introspector
	}
}

// WithLogger sets the logger used for resolution events. The default
// discards everything.
func WithLogger(logger zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		opts.logger = logger
	}
}

// New builds a container from an ordered collection of definitions.
//
// Every factory is validated eagerly: the first invalid entry fails
// construction of the whole container with a ConfigurationError, so no
// partially populated registry is ever exposed. The definition map is
// immutable afterwards.
func New(defs []Def, opts ...option.Option[Options]) (*Container, error) {
	options := option.Build(
		&Options{
			introspector: NewTypeRegistry(),
			logger:       zerolog.Nop(),
		},
		opts...,
	)

	containerID := uuid.NewString()[:8]
	c := &Container{
		id:           containerID,
		definitions:  make(map[string]definition, len(defs)),
		introspector: options.introspector,

		store:   NewStore(),
		tracker: NewTracker(),
		locks:   NewLockManager(),

		logger: options.logger.With().Str("container", containerID).Logger(),
	}

	for _, def := range defs {
		if _, exists := c.definitions[def.ID]; exists {
			return nil, &ConfigurationError{
				ID:     def.ID,
				Reason: "identifier registered twice",
			}
		}
		d, err := newDefinition(def.ID, def.Factory)
		if err != nil {
			return nil, err
		}
		c.definitions[def.ID] = d
	}

	return c, nil
}

// MustNew is New, panicking on configuration errors.
func MustNew(defs []Def, opts ...option.Option[Options]) *Container {
	c, err := New(defs, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to build container:\n\t%v", err))
	}
	return c
}

// Get resolves the identifier: cached value first, then a registered
// definition, then autowiring when the identifier names a loadable type.
// It fails with a NotFoundError when the identifier is unknown, and with
// the relevant taxonomy error when resolution itself fails.
func (c *Container) Get(id string) (any, error) {
	return c.resolve(id)
}

// MustGet is Get, panicking on resolution failures.
func (c *Container) MustGet(id string) any {
	val, err := c.Get(id)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %q:\n\t%v", id, err))
	}
	return val
}

// Has reports whether the identifier has a definition or names a loadable
// type, instantiable or not. It never fails: Has returning true means Get
// cannot fail with a NotFoundError (it may still fail otherwise).
func (c *Container) Has(id string) bool {
	if _, found := c.definitions[id]; found {
		return true
	}
	return c.introspector.Exists(id)
}

// Close closes every resolved value implementing Closeable.
func (c *Container) Close() error {
	return c.store.Close()
}
