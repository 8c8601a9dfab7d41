package wirebox

import (
	"sort"
	"strings"

	"github.com/wirebox/wirebox/set"
	"github.com/wirebox/wirebox/slices"
)

// typeLister is implemented by introspectors able to enumerate their types,
// TypeRegistry among them.
type typeLister interface {
	TypeNames() []string
}

// Describe renders the container content: definitions, introspectable types
// and the identifiers resolved so far.
func (c *Container) Describe() string {
	var b strings.Builder

	ids := make([]string, 0, len(c.definitions))
	for id := range c.definitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	b.WriteString("* Definitions:\n")
	b.WriteString(strings.Join(slices.Map(ids, asBullet), ""))

	if lister, ok := c.introspector.(typeLister); ok {
		b.WriteString("* Types:\n")
		b.WriteString(strings.Join(slices.Map(lister.TypeNames(), asBullet), ""))
	}

	resolved := c.store.Names()
	sort.Strings(resolved)
	b.WriteString("* Resolved:\n")
	b.WriteString(strings.Join(slices.Map(resolved, asBullet), ""))

	return b.String()
}

// Explain renders the autowire dependency tree below an identifier, without
// resolving anything.
func (c *Container) Explain(id string) string {
	var b strings.Builder
	b.WriteString(id)
	b.WriteString(c.annotate(id))
	b.WriteString("\n")
	c.explainChildren(&b, id, "", set.NewWithValues(id))
	return b.String()
}

func (c *Container) annotate(id string) string {
	if _, found := c.definitions[id]; found {
		return " (definition)"
	}
	if !c.introspector.Exists(id) {
		return " (not found)"
	}
	if !c.introspector.Instantiable(id) {
		return " (not instantiable)"
	}
	return ""
}

func (c *Container) explainChildren(b *strings.Builder, id, prefix string, seen set.Set[string]) {
	if _, found := c.definitions[id]; found {
		return
	}
	if !c.introspector.Instantiable(id) {
		return
	}
	params, err := c.introspector.ConstructorParameters(id)
	if err != nil {
		return
	}

	for i, param := range params {
		connector, childPrefix := "├─> ", prefix+"│   "
		if i == len(params)-1 {
			connector, childPrefix = "└─> ", prefix+"    "
		}

		var label string
		switch {
		case param.HasDefault:
			label = param.Name + ": default value"
		case param.Kind == KindNamed:
			label = param.Name + ": " + param.TypeName + c.annotate(param.TypeName)
		default:
			label = param.Name + ": " + param.DescribeType() + " (unresolvable)"
		}
		b.WriteString(prefix + connector + label + "\n")

		if param.Kind == KindNamed && !param.HasDefault && seen.DoesNotContain(param.TypeName) {
			seen.Add(param.TypeName)
			c.explainChildren(b, param.TypeName, childPrefix, seen)
		}
	}
}

func asBullet(id string) string {
	return "\t- " + id + "\n"
}
