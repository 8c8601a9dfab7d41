package wirebox

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/wirebox/wirebox/option"
)

type (
	// TypeRegistry is the default Introspector: a registration table mapping
	// canonical type names to constructor metadata. Parameter descriptors
	// are derived from the constructor signature through reflection;
	// whatever a Go signature cannot express (parameter names, default
	// values, unions) is supplied through registration options.
	TypeRegistry struct {
		mu      sync.RWMutex
		entries map[string]*typeEntry
	}

	typeEntry struct {
		name         string
		instantiable bool

		ctor       reflect.Value
		ctorType   reflect.Type
		returnsErr bool
		params     []Parameter
	}

	TypeOptions struct {
		name       string
		paramNames []string
		defaults   map[string]any
		unions     map[string][]string
	}
)

// Named overrides the canonical name a type is registered under.
func Named(name string) option.Option[TypeOptions] {
	return func(opts *TypeOptions) {
		opts.name = name
	}
}

// WithParamNames names the constructor parameters, in declaration order.
// Unnamed parameters fall back to arg1, arg2, ...
func WithParamNames(names ...string) option.Option[TypeOptions] {
	return func(opts *TypeOptions) {
		opts.paramNames = names
	}
}

// WithDefault attaches a default value to the named parameter. A parameter
// with a default is never autowired, the default always wins.
func WithDefault(param string, value any) option.Option[TypeOptions] {
	return func(opts *TypeOptions) {
		if opts.defaults == nil {
			opts.defaults = make(map[string]any)
		}
		opts.defaults[param] = value
	}
}

// WithUnion declares the named parameter as a union of several named types.
// The parameter must be declared `any` in the constructor signature; the
// container refuses to guess among the members.
func WithUnion(param string, members ...string) option.Option[TypeOptions] {
	return func(opts *TypeOptions) {
		if opts.unions == nil {
			opts.unions = make(map[string][]string)
		}
		opts.unions[param] = members
	}
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		entries: make(map[string]*typeEntry),
	}
}

// RegisterInterface registers T as a loadable but non-instantiable type.
// Resolving its name fails with an InstantiationError unless a definition
// provides an implementation; Has still reports true for it.
func RegisterInterface[T any](r *TypeRegistry, opts ...option.Option[TypeOptions]) string {
	options := option.Build(&TypeOptions{}, opts...)

	name := options.name
	if name == "" {
		name = CanonicalName(TypeOf[T]())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &typeEntry{
		name:         name,
		instantiable: false,
	}

	return name
}

// RegisterType registers T as a concrete type constructible through ctor.
// The constructor must be a function returning T, or T and an error.
func RegisterType[T any](r *TypeRegistry, ctor any, opts ...option.Option[TypeOptions]) (string, error) {
	t := reflect.TypeOf(ctor)
	if t == nil || t.Kind() != reflect.Func {
		return "", fmt.Errorf("constructor must be a function, got %T", ctor)
	}
	if t.NumOut() != 1 && t.NumOut() != 2 {
		return "", errors.New("constructor must either return the instance and an error, or just the instance")
	}
	if t.NumOut() == 2 && t.Out(1) != ErrorType {
		return "", errors.New("if constructor returns two elements, it must return an error as the second element")
	}

	lookFor := TypeOf[T]()
	if provides := t.Out(0); !typeMatches(lookFor, provides) {
		return "", fmt.Errorf("constructor returns %s, which does not provide %s", provides, lookFor)
	}

	options := option.Build(&TypeOptions{}, opts...)
	name := options.name
	if name == "" {
		name = CanonicalName(lookFor)
	}

	if len(options.paramNames) > t.NumIn() {
		return "", fmt.Errorf(
			"%d parameter names given for a constructor with %d parameters",
			len(options.paramNames), t.NumIn(),
		)
	}

	params, err := buildParameters(t, options)
	if err != nil {
		return "", fmt.Errorf("failed to describe constructor parameters of %s:\n\t%w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, found := r.entries[name]; found && existing.instantiable {
		return "", fmt.Errorf("type %s is already registered", name)
	}
	r.entries[name] = &typeEntry{
		name:         name,
		instantiable: true,
		ctor:         reflect.ValueOf(ctor),
		ctorType:     t,
		returnsErr:   t.NumOut() == 2,
		params:       params,
	}

	return name, nil
}

// MustRegisterType is RegisterType, panicking on invalid registrations.
func MustRegisterType[T any](r *TypeRegistry, ctor any, opts ...option.Option[TypeOptions]) string {
	name, err := RegisterType[T](r, ctor, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to register type %T:\n\t%v", ctor, err))
	}
	return name
}

func buildParameters(ctorType reflect.Type, options *TypeOptions) ([]Parameter, error) {
	params := make([]Parameter, ctorType.NumIn())
	byName := make(map[string]int, ctorType.NumIn())

	for i := 0; i < ctorType.NumIn(); i++ {
		paramTyp := ctorType.In(i)
		name, found := tryGetAt(options.paramNames, i)
		if !found {
			name = fmt.Sprintf("arg%d", i+1)
		}

		param := Parameter{
			Name:     name,
			Position: i,
			Kind:     classifyType(paramTyp),
		}
		switch param.Kind {
		case KindNamed:
			param.TypeName = CanonicalName(paramTyp)
		case KindBuiltin:
			param.TypeName = paramTyp.String()
		}

		params[i] = param
		byName[name] = i
	}

	for name, members := range options.unions {
		idx, found := byName[name]
		if !found {
			return nil, fmt.Errorf("union declared for unknown parameter %q", name)
		}
		params[idx].Kind = KindUnion
		params[idx].TypeName = ""
		params[idx].Alternatives = members
	}

	for name, value := range options.defaults {
		idx, found := byName[name]
		if !found {
			return nil, fmt.Errorf("default value declared for unknown parameter %q", name)
		}
		params[idx].HasDefault = true
		params[idx].Default = value
	}

	return params, nil
}

func (r *TypeRegistry) Exists(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, found := r.entries[typeName]
	return found
}

func (r *TypeRegistry) Instantiable(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, found := r.entries[typeName]
	return found && entry.instantiable
}

func (r *TypeRegistry) ConstructorParameters(typeName string) ([]Parameter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, found := r.entries[typeName]
	if !found {
		return nil, fmt.Errorf("unknown type %s", typeName)
	}
	if !entry.instantiable {
		return nil, fmt.Errorf("type %s is not instantiable", typeName)
	}
	return entry.params, nil
}

func (r *TypeRegistry) Construct(typeName string, args []any) (any, error) {
	r.mu.RLock()
	entry, found := r.entries[typeName]
	r.mu.RUnlock()

	if !found {
		return nil, fmt.Errorf("unknown type %s", typeName)
	}
	if !entry.instantiable {
		return nil, fmt.Errorf("type %s is not instantiable", typeName)
	}
	if len(args) != entry.ctorType.NumIn() {
		return nil, fmt.Errorf(
			"constructor of %s takes %d arguments, got %d",
			typeName, entry.ctorType.NumIn(), len(args),
		)
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		paramTyp := entry.ctorType.In(i)
		if arg == nil {
			in[i] = reflect.Zero(paramTyp)
			continue
		}
		argVal := reflect.ValueOf(arg)
		if !argVal.Type().AssignableTo(paramTyp) {
			return nil, fmt.Errorf(
				"argument %d of %s constructor is %s, not assignable to %s",
				i+1, typeName, argVal.Type(), paramTyp,
			)
		}
		in[i] = argVal
	}

	// panic recovery, as `Call` can panic if the constructor body panics
	var results []reflect.Value
	var callErr error

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				callErr = fmt.Errorf("panic in constructor of %s: %v", typeName, rec)
			}
		}()
		results = entry.ctor.Call(in)
	}()

	if callErr != nil {
		return nil, callErr
	}

	if entry.returnsErr && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}

	return results[0].Interface(), nil
}

// TypeNames lists the registered type names, sorted.
func (r *TypeRegistry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func typeMatches(lookFor, provided reflect.Type) bool {
	if lookFor == provided {
		return true
	}
	if lookFor.Kind() == reflect.Interface && provided.Implements(lookFor) {
		return true
	}
	return false
}

func tryGetAt[T any](slice []T, index int) (val T, found bool) {
	if index < 0 || index >= len(slice) {
		return val, false
	}
	return slice[index], true
}
