package wirebox

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test types for autowiring

type database struct {
	dsn string
}

func newDatabase() *database {
	return &database{dsn: "memory"}
}

type repository struct {
	db *database
}

func newRepository(db *database) *repository {
	return &repository{db: db}
}

type service struct {
	repo *repository
	db   *database
}

func newService(repo *repository, db *database) *service {
	return &service{repo: repo, db: db}
}

type pair struct {
	a *database
	b *database
}

func newPair(a, b *database) *pair {
	return &pair{a: a, b: b}
}

type cyclic struct{}

func newCyclic(_ *cyclic) *cyclic {
	return &cyclic{}
}

type alpha struct{ b *beta }

type beta struct{ a *alpha }

func newAlpha(b *beta) *alpha { return &alpha{b: b} }

func newBeta(a *alpha) *beta { return &beta{a: a} }

type logSink interface {
	Log(msg string)
}

type discardSink struct{}

func (discardSink) Log(string) {}

type notifier struct {
	sink logSink
}

func newNotifier(sink logSink) *notifier {
	return &notifier{sink: sink}
}

type listener struct {
	port int
}

func newListener(port int) *listener {
	return &listener{port: port}
}

type wrapper struct {
	dep any
}

func newWrapper(dep any) *wrapper {
	return &wrapper{dep: dep}
}

func nameOf[T any]() string {
	return CanonicalName(TypeOf[T]())
}

func newAutowired(reg *TypeRegistry, defs ...Def) *Container {
	return MustNew(defs, WithIntrospector(reg))
}

func TestAutowiring(t *testing.T) {
	t.Run("it should construct a type and recursively resolve its dependencies", func(t *testing.T) {
		// GIVEN
		reg := NewTypeRegistry()
		MustRegisterType[*database](reg, newDatabase)
		MustRegisterType[*repository](reg, newRepository, WithParamNames("db"))
		c := newAutowired(reg)

		// WHEN
		val, err := c.Get(nameOf[*repository]())

		// THEN
		require.NoError(t, err)
		repo, ok := val.(*repository)
		require.True(t, ok)
		require.NotNil(t, repo.db)

		// AND a later resolution of the dependency returns the exact embedded instance
		dbVal, err := c.Get(nameOf[*database]())
		require.NoError(t, err)
		assert.Same(t, repo.db, dbVal)
	})

	t.Run("it should share one instance across every consumer of the container", func(t *testing.T) {
		// GIVEN
		reg := NewTypeRegistry()
		MustRegisterType[*database](reg, newDatabase)
		MustRegisterType[*repository](reg, newRepository)
		MustRegisterType[*service](reg, newService)
		c := newAutowired(reg)

		// WHEN
		val, err := c.Get(nameOf[*service]())

		// THEN
		require.NoError(t, err)
		svc := val.(*service)
		assert.Same(t, svc.db, svc.repo.db, "a stateful dependency is shared, not request-scoped")
	})

	t.Run("it should allow one constructor to request the same dependency twice", func(t *testing.T) {
		// GIVEN
		reg := NewTypeRegistry()
		MustRegisterType[*database](reg, newDatabase)
		MustRegisterType[*pair](reg, newPair, WithParamNames("a", "b"))
		c := newAutowired(reg)

		// WHEN
		val, err := c.Get(nameOf[*pair]())

		// THEN no false cycle
		require.NoError(t, err)
		p := val.(*pair)
		assert.Same(t, p.a, p.b)
	})

	t.Run("it should construct a zero-parameter type freshly on first resolution", func(t *testing.T) {
		// GIVEN
		reg := NewTypeRegistry()
		MustRegisterType[*database](reg, newDatabase)
		c := newAutowired(reg)

		// WHEN
		val, err := c.Get(nameOf[*database]())

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "memory", val.(*database).dsn)
	})

	t.Run("it should fail with CyclicDependencyError on self-reference and recover afterwards", func(t *testing.T) {
		// GIVEN
		reg := NewTypeRegistry()
		MustRegisterType[*cyclic](reg, newCyclic, WithParamNames("self"))
		MustRegisterType[*database](reg, newDatabase)
		c := newAutowired(reg)

		// WHEN
		_, err := c.Get(nameOf[*cyclic]())

		// THEN
		var cycErr *CyclicDependencyError
		require.ErrorAs(t, err, &cycErr)
		assert.Equal(t, nameOf[*cyclic](), cycErr.ID)
		assert.Equal(t, []string{nameOf[*cyclic](), nameOf[*cyclic]()}, cycErr.Trace)
		assert.Zero(t, c.tracker.Depth(), "the resolution stack must be empty after a top-level Get")

		// AND the guard is released: an unrelated resolution still succeeds
		_, err = c.Get(nameOf[*database]())
		require.NoError(t, err)
	})

	t.Run("it should report the full trace of an indirect cycle", func(t *testing.T) {
		// GIVEN
		reg := NewTypeRegistry()
		MustRegisterType[*alpha](reg, newAlpha)
		MustRegisterType[*beta](reg, newBeta)
		c := newAutowired(reg)

		// WHEN
		_, err := c.Get(nameOf[*alpha]())

		// THEN
		var cycErr *CyclicDependencyError
		require.ErrorAs(t, err, &cycErr)
		assert.Equal(
			t,
			[]string{nameOf[*alpha](), nameOf[*beta](), nameOf[*alpha]()},
			cycErr.Trace,
		)
	})

	t.Run("it should prefer a definition over autowiring for the same identifier", func(t *testing.T) {
		// GIVEN
		reg := NewTypeRegistry()
		MustRegisterType[*database](reg, newDatabase)
		fromDefinition := &database{dsn: "definition wins"}
		c := newAutowired(reg, Define(nameOf[*database](), func() *database { return fromDefinition }))

		// WHEN
		val, err := c.Get(nameOf[*database]())

		// THEN
		require.NoError(t, err)
		assert.Same(t, fromDefinition, val)
	})

	t.Run("it should fail with InstantiationError for a non-instantiable type", func(t *testing.T) {
		// GIVEN
		reg := NewTypeRegistry()
		ifaceName := RegisterInterface[logSink](reg)
		c := newAutowired(reg)

		// WHEN
		_, err := c.Get(ifaceName)

		// THEN Has is true but Get fails with something other than NotFoundError
		assert.True(t, c.Has(ifaceName))
		var instErr *InstantiationError
		require.ErrorAs(t, err, &instErr)
		var notFound *NotFoundError
		assert.False(t, errors.As(err, &notFound))
	})

	t.Run("it should wrap a constructor body error in InstantiationError", func(t *testing.T) {
		// GIVEN
		boom := errors.New("connection refused")
		reg := NewTypeRegistry()
		MustRegisterType[*database](reg, func() (*database, error) { return nil, boom })
		c := newAutowired(reg)

		// WHEN
		_, err := c.Get(nameOf[*database]())

		// THEN
		var instErr *InstantiationError
		require.ErrorAs(t, err, &instErr)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("it should wrap a panicking constructor in InstantiationError", func(t *testing.T) {
		// GIVEN
		reg := NewTypeRegistry()
		MustRegisterType[*database](reg, func() *database { panic("not today") })
		c := newAutowired(reg)

		// WHEN
		_, err := c.Get(nameOf[*database]())

		// THEN
		var instErr *InstantiationError
		require.ErrorAs(t, err, &instErr)
		assert.Contains(t, err.Error(), "not today")
	})

	t.Run("it should wrap nested failures once per instantiate boundary", func(t *testing.T) {
		// GIVEN
		boom := errors.New("boom")
		reg := NewTypeRegistry()
		MustRegisterType[*database](reg, func() (*database, error) { return nil, boom })
		MustRegisterType[*repository](reg, newRepository)
		MustRegisterType[*service](reg, newService)
		c := newAutowired(reg)

		// WHEN
		_, err := c.Get(nameOf[*service]())

		// THEN the original cause is still reachable through the chain
		var instErr *InstantiationError
		require.ErrorAs(t, err, &instErr)
		assert.Equal(t, nameOf[*service](), instErr.ID)
		assert.ErrorIs(t, err, boom)
	})
}

func TestParameterResolution(t *testing.T) {
	t.Run("it should always prefer a default value, even for an unregistered interface", func(t *testing.T) {
		// GIVEN logSink is not registered at all
		reg := NewTypeRegistry()
		MustRegisterType[*notifier](
			reg, newNotifier,
			WithParamNames("sink"),
			WithDefault("sink", discardSink{}),
		)
		c := newAutowired(reg)

		// WHEN
		val, err := c.Get(nameOf[*notifier]())

		// THEN the declared type is never inspected
		require.NoError(t, err)
		assert.Equal(t, discardSink{}, val.(*notifier).sink)
	})

	t.Run("it should use a default for a builtin parameter", func(t *testing.T) {
		// GIVEN
		reg := NewTypeRegistry()
		MustRegisterType[*listener](
			reg, newListener,
			WithParamNames("port"),
			WithDefault("port", 8080),
		)
		c := newAutowired(reg)

		// WHEN
		val, err := c.Get(nameOf[*listener]())

		// THEN
		require.NoError(t, err)
		assert.Equal(t, 8080, val.(*listener).port)
	})

	t.Run("it should fail with UnresolvableParameterError for a builtin parameter without default", func(t *testing.T) {
		// GIVEN
		reg := NewTypeRegistry()
		MustRegisterType[*listener](reg, newListener, WithParamNames("port"))
		c := newAutowired(reg)

		// WHEN
		_, err := c.Get(nameOf[*listener]())

		// THEN
		var paramErr *UnresolvableParameterError
		require.ErrorAs(t, err, &paramErr)
		assert.Equal(t, "port", paramErr.Param)
		assert.Equal(t, 1, paramErr.Position)
		assert.Contains(t, paramErr.TypeDesc, "builtin")
	})

	t.Run("it should fail with UnresolvableParameterError for a parameter with no declared type", func(t *testing.T) {
		// GIVEN
		reg := NewTypeRegistry()
		MustRegisterType[*wrapper](reg, newWrapper, WithParamNames("dep"))
		c := newAutowired(reg)

		// WHEN
		_, err := c.Get(nameOf[*wrapper]())

		// THEN
		var paramErr *UnresolvableParameterError
		require.ErrorAs(t, err, &paramErr)
		assert.Equal(t, "no declared type", paramErr.TypeDesc)
	})

	t.Run("it should never guess among the members of a union", func(t *testing.T) {
		// GIVEN one union member would individually resolve
		reg := NewTypeRegistry()
		MustRegisterType[*database](reg, newDatabase)
		MustRegisterType[*wrapper](
			reg, newWrapper,
			WithParamNames("dep"),
			WithUnion("dep", nameOf[*database](), "acme.Cache"),
		)
		c := newAutowired(reg)

		// WHEN
		_, err := c.Get(nameOf[*wrapper]())

		// THEN
		var paramErr *UnresolvableParameterError
		require.ErrorAs(t, err, &paramErr)
		assert.Contains(t, paramErr.TypeDesc, "union of")
		assert.Contains(t, paramErr.TypeDesc, "acme.Cache")
	})

	t.Run("it should abort remaining parameters on the first failure", func(t *testing.T) {
		// GIVEN a constructor whose first parameter is unresolvable
		invoked := false
		reg := NewTypeRegistry()
		MustRegisterType[*database](reg, func() *database {
			invoked = true
			return &database{}
		})
		MustRegisterType[*listener](
			reg,
			func(port int, _ *database) *listener { return &listener{port: port} },
			WithParamNames("port", "db"),
		)
		c := newAutowired(reg)

		// WHEN
		_, err := c.Get(nameOf[*listener]())

		// THEN
		require.Error(t, err)
		assert.False(t, invoked, "parameters after the failing one must not be resolved")
	})

	t.Run("it should propagate a missing named dependency as NotFoundError", func(t *testing.T) {
		// GIVEN repository's database is not registered
		reg := NewTypeRegistry()
		MustRegisterType[*repository](reg, newRepository)
		c := newAutowired(reg)

		// WHEN
		_, err := c.Get(nameOf[*repository]())

		// THEN
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, nameOf[*database](), notFound.ID)
	})

	t.Run("it should resolve a named dependency from a definition", func(t *testing.T) {
		// GIVEN the dependency comes from a definition, not the registry
		reg := NewTypeRegistry()
		MustRegisterType[*repository](reg, newRepository)
		c := newAutowired(reg, Define(nameOf[*database](), func() *database {
			return &database{dsn: "defined"}
		}))

		// WHEN
		val, err := c.Get(nameOf[*repository]())

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "defined", val.(*repository).db.dsn)
	})
}
