package wirebox

import (
	"fmt"
	"reflect"
)

type (
	// Def is one (identifier, factory) registration pair handed to New.
	// The factory must be a function taking the container as its sole
	// argument (or nothing), returning a value or a value and an error.
	Def struct {
		ID      string
		Factory any
	}

	definition struct {
		id             string
		factory        reflect.Value
		takesContainer bool
		returnsErr     bool
	}
)

// Define builds a registration pair for New.
func Define(id string, factory any) Def {
	return Def{ID: id, Factory: factory}
}

func newDefinition(id string, factory any) (definition, error) {
	t := reflect.TypeOf(factory)
	if t == nil || t.Kind() != reflect.Func {
		return definition{}, &ConfigurationError{
			ID:     id,
			Reason: fmt.Sprintf("factory must be a function, got %T", factory),
		}
	}
	if t.NumIn() > 1 || (t.NumIn() == 1 && t.In(0) != ContainerType) {
		return definition{}, &ConfigurationError{
			ID:     id,
			Reason: "factory must take the container as its sole argument, or nothing",
		}
	}
	if t.NumOut() != 1 && t.NumOut() != 2 {
		return definition{}, &ConfigurationError{
			ID:     id,
			Reason: "factory must either return a value and an error, or just a value",
		}
	}
	if t.NumOut() == 2 && t.Out(1) != ErrorType {
		return definition{}, &ConfigurationError{
			ID:     id,
			Reason: "if factory returns two elements, the second must be an error",
		}
	}

	return definition{
		id:             id,
		factory:        reflect.ValueOf(factory),
		takesContainer: t.NumIn() == 1,
		returnsErr:     t.NumOut() == 2,
	}, nil
}

func (d definition) invoke(c *Container) (any, error) {
	var in []reflect.Value
	if d.takesContainer {
		in = []reflect.Value{reflect.ValueOf(c)}
	}

	// panic recovery, as `Call` can panic if the factory body panics
	var results []reflect.Value
	var callErr error

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				callErr = fmt.Errorf("panic in factory for %q: %v", d.id, rec)
			}
		}()
		results = d.factory.Call(in)
	}()

	if callErr != nil {
		return nil, callErr
	}

	if d.returnsErr && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}

	return results[0].Interface(), nil
}
