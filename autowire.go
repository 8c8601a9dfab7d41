package wirebox

import (
	"fmt"
	"time"
)

func (c *Container) resolve(id string) (any, error) {
	if val, found := c.store.Get(id); found {
		c.logger.Debug().Str("id", id).Msg("resolved from cache")
		return val, nil
	}

	if def, found := c.definitions[id]; found {
		return c.invokeDefinition(def)
	}

	if !c.introspector.Exists(id) {
		return nil, &NotFoundError{ID: id}
	}

	return c.instantiate(id)
}

func (c *Container) invokeDefinition(def definition) (any, error) {
	// the guard covers definitions too: a factory re-requesting its own
	// identifier fails with a cycle instead of recursing forever
	if err := c.tracker.Enter(def.id); err != nil {
		return nil, err
	}
	defer c.tracker.Exit(def.id)

	lock := c.locks.GetLockFor(def.id)
	lock.Lock()
	defer func() {
		lock.Unlock()
		c.locks.ReleaseLock(def.id)
	}()

	// now that we have the lock, check if the value was resolved while we
	// were waiting
	if val, found := c.store.Get(def.id); found {
		return val, nil
	}

	val, err := def.invoke(c)
	if err != nil {
		return nil, fmt.Errorf("definition for %q failed:\n\t%w", def.id, err)
	}

	c.store.Put(def.id, val)
	c.logger.Debug().Str("id", def.id).Msg("resolved from definition")

	return val, nil
}

// instantiate autowires an identifier naming a type: it introspects the
// constructor, resolves every parameter in declaration order, and constructs
// the instance. The guard entry for id is released the instant its own value
// exists, before control returns to the caller, so a single constructor may
// request the same dependency more than once without a false cycle.
func (c *Container) instantiate(id string) (any, error) {
	if !c.introspector.Instantiable(id) {
		return nil, &InstantiationError{
			ID:    id,
			Cause: fmt.Errorf("type %s is not instantiable", id),
		}
	}

	params, err := c.introspector.ConstructorParameters(id)
	if err != nil {
		return nil, &InstantiationError{ID: id, Cause: err}
	}

	if len(params) == 0 {
		return c.construct(id, nil)
	}

	if err := c.tracker.Enter(id); err != nil {
		return nil, err
	}
	defer c.tracker.Exit(id)

	start := time.Now()
	args, err := c.resolveParameters(id, params)
	if err != nil {
		return nil, &InstantiationError{ID: id, Cause: err}
	}

	val, err := c.construct(id, args)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().
		Str("id", id).
		Int("parameters", len(params)).
		Dur("took", time.Since(start)).
		Msg("autowired component")

	return val, nil
}

// resolveParameters builds the ordered argument list, failing fast: the
// first unresolvable parameter aborts the rest.
func (c *Container) resolveParameters(id string, params []Parameter) ([]any, error) {
	args := make([]any, len(params))
	for i, param := range params {
		// a default value always wins, the declared type is never even
		// inspected
		if param.HasDefault {
			args[i] = param.Default
			continue
		}

		switch param.Kind {
		case KindNamed:
			val, err := c.resolve(param.TypeName)
			if err != nil {
				return nil, fmt.Errorf(
					"failed to resolve parameter %q (position %d, %s) of %q:\n\t%w",
					param.Name, param.Position+1, param.DescribeType(), id, err,
				)
			}
			args[i] = val
		default:
			// no declared type, builtin, or union: the container never
			// guesses
			return nil, &UnresolvableParameterError{
				ID:       id,
				Param:    param.Name,
				Position: param.Position + 1,
				TypeDesc: param.DescribeType(),
			}
		}
	}

	return args, nil
}

func (c *Container) construct(id string, args []any) (any, error) {
	lock := c.locks.GetLockFor(id)
	lock.Lock()
	defer func() {
		lock.Unlock()
		c.locks.ReleaseLock(id)
	}()

	// now that we have the lock, check if the value was built while we were
	// waiting
	if val, found := c.store.Get(id); found {
		return val, nil
	}

	val, err := c.introspector.Construct(id, args)
	if err != nil {
		return nil, &InstantiationError{ID: id, Cause: err}
	}

	c.store.Put(id, val)

	return val, nil
}
