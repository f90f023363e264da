// Package generics tracks generic parameters and their bindings across nested
// resolution scopes.
//
// A Context is created per resolution unit (one extracted type). Nested scopes
// (a property whose type introduces its own generics) get a child Context that
// keeps a plain pointer to its parent: children see every ancestor binding,
// ancestors never see child bindings, and a child binding shadows an ancestor
// binding of the same name.
//
// A Context is not safe for concurrent use; each resolution session owns its own.
package generics

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/cockroachdb/errors"

	"fluent-gen/internal/suggest"
	"fluent-gen/internal/typeinfo"
)

// MergeStrategy decides what Merge does when both contexts define a name.
type MergeStrategy string

const (
	KeepExisting    MergeStrategy = "keep-existing"
	Overwrite       MergeStrategy = "overwrite"
	ErrorOnConflict MergeStrategy = "error-on-conflict"
)

// ParseMergeStrategy validates a strategy name.
func ParseMergeStrategy(s string) (MergeStrategy, error) {
	switch MergeStrategy(s) {
	case KeepExisting, Overwrite, ErrorOnConflict:
		return MergeStrategy(s), nil
	default:
		return "", &Error{Code: CodeInvalidMergeStrategy, Detail: fmt.Sprintf("unknown strategy %q", s)}
	}
}

// Context is one scope of generic parameters and type-argument bindings.
type Context struct {
	params map[string]typeinfo.GenericParam
	order  []string // registration order of params
	args   map[string]typeinfo.TypeInfo
	parent *Context
}

// NewContext creates an empty root scope.
func NewContext() *Context {
	return &Context{
		params: make(map[string]typeinfo.GenericParam),
		args:   make(map[string]typeinfo.TypeInfo),
	}
}

// CreateChildContext returns a new scope whose lookups fall back to c.
func (c *Context) CreateChildContext() *Context {
	child := NewContext()
	child.parent = c

	return child
}

// Parent returns the enclosing scope, or nil for a root scope.
func (c *Context) Parent() *Context {
	return c.parent
}

// RegisterGenericParam validates and registers one parameter in this scope.
// Registering a name that already exists in this scope replaces it.
func (c *Context) RegisterGenericParam(p typeinfo.GenericParam) error {
	if err := c.validate(p, nil); err != nil {
		return err
	}

	c.commit(p)

	return nil
}

// RegisterGenericParams registers a batch all-or-nothing: every parameter is
// validated (including against earlier members of the batch) before any is
// committed.
func (c *Context) RegisterGenericParams(params []typeinfo.GenericParam) error {
	pending := make(map[string]typeinfo.GenericParam, len(params))

	for _, p := range params {
		if _, dup := pending[p.Name]; dup {
			return &Error{Code: CodeDuplicateParameter, Param: p.Name, Detail: "declared twice in one batch"}
		}

		if err := c.validate(p, pending); err != nil {
			return err
		}

		pending[p.Name] = p
	}

	for _, p := range params {
		c.commit(p)
	}

	return nil
}

func (c *Context) commit(p typeinfo.GenericParam) {
	if _, exists := c.params[p.Name]; !exists {
		c.order = append(c.order, p.Name)
	}

	c.params[p.Name] = p
}

// SetTypeArgument binds a concrete type to a parameter visible from this
// scope. The binding is stored locally, so it shadows ancestors.
func (c *Context) SetTypeArgument(name string, t typeinfo.TypeInfo) error {
	if !c.IsGenericParam(name) {
		err := error(&Error{Code: CodeUnregisteredParameter, Param: name})
		if hints := suggest.Closest(name, c.visibleNames(), suggest.DefaultMinScore, 1); len(hints) > 0 {
			err = errors.WithHintf(err, "did you mean %q?", hints[0])
		}

		return err
	}

	c.args[name] = t

	return nil
}

// GetResolvedType returns the bound type argument for name, searching this
// scope and then its ancestors. A parameter's default is never returned.
func (c *Context) GetResolvedType(name string) (typeinfo.TypeInfo, bool) {
	for s := c; s != nil; s = s.parent {
		if t, ok := s.args[name]; ok {
			return t, true
		}
	}

	return nil, false
}

// GetGenericParam returns the nearest declaration of name.
func (c *Context) GetGenericParam(name string) (typeinfo.GenericParam, bool) {
	for s := c; s != nil; s = s.parent {
		if p, ok := s.params[name]; ok {
			return p, true
		}
	}

	return typeinfo.GenericParam{}, false
}

// IsGenericParam reports whether name is declared in this scope or an ancestor.
func (c *Context) IsGenericParam(name string) bool {
	_, ok := c.GetGenericParam(name)
	return ok
}

// GetDefaultType returns the default of the nearest declaration of name.
func (c *Context) GetDefaultType(name string) (typeinfo.TypeInfo, bool) {
	p, ok := c.GetGenericParam(name)
	if !ok || typeinfo.IsNil(p.Default) {
		return nil, false
	}

	return p.Default, true
}

// GetUnresolvedGenerics returns the parameters of this scope with no type
// argument bound in this scope, in registration order.
func (c *Context) GetUnresolvedGenerics() []typeinfo.GenericParam {
	var out []typeinfo.GenericParam

	for _, name := range c.order {
		if _, bound := c.args[name]; !bound {
			out = append(out, c.params[name])
		}
	}

	return out
}

// GetAllGenericParams returns every parameter visible from this scope,
// ancestors first, with shadowed declarations replaced by the nearest one.
func (c *Context) GetAllGenericParams() []typeinfo.GenericParam {
	var chain []*Context
	for s := c; s != nil; s = s.parent {
		chain = append(chain, s)
	}

	index := make(map[string]int)

	var out []typeinfo.GenericParam

	for i := len(chain) - 1; i >= 0; i-- {
		s := chain[i]
		for _, name := range s.order {
			if at, ok := index[name]; ok {
				out[at] = s.params[name]
				continue
			}

			index[name] = len(out)
			out = append(out, s.params[name])
		}
	}

	return out
}

// Clone returns an independent copy of this scope sharing the same parent.
func (c *Context) Clone() *Context {
	cp := &Context{
		params: make(map[string]typeinfo.GenericParam, len(c.params)),
		order:  append([]string(nil), c.order...),
		args:   make(map[string]typeinfo.TypeInfo, len(c.args)),
		parent: c.parent,
	}

	for k, v := range c.params {
		cp.params[k] = v
	}

	for k, v := range c.args {
		cp.args[k] = v
	}

	return cp
}

// Merge folds the local declarations and bindings of other into c. The
// merge is atomic: on any failure c is left unchanged.
func (c *Context) Merge(other *Context, strategy MergeStrategy) error {
	if _, err := ParseMergeStrategy(string(strategy)); err != nil {
		return err
	}

	if other == nil {
		return nil
	}

	staged := c.Clone()

	for _, name := range other.order {
		p := other.params[name]

		existing, exists := staged.params[name]
		if exists && !reflect.DeepEqual(existing, p) {
			switch strategy {
			case KeepExisting:
				continue
			case ErrorOnConflict:
				return &Error{Code: CodeMergeConflict, Param: name, Detail: "parameter declared differently in both contexts"}
			}
		}

		if err := staged.validate(p, nil); err != nil {
			return err
		}

		staged.commit(p)
	}

	for _, name := range slices.Sorted(maps.Keys(other.args)) {
		t := other.args[name]

		existing, exists := staged.args[name]
		if exists && !reflect.DeepEqual(existing, t) {
			switch strategy {
			case KeepExisting:
				continue
			case ErrorOnConflict:
				return &Error{Code: CodeMergeConflict, Param: name, Detail: "type argument bound differently in both contexts"}
			}
		}

		if !staged.IsGenericParam(name) {
			return &Error{Code: CodeUnregisteredParameter, Param: name, Detail: "bound in the merged context but never declared here"}
		}

		staged.args[name] = t
	}

	c.params, c.order, c.args = staged.params, staged.order, staged.args

	return nil
}

// validate checks name syntax and constraint cycles for p. pending holds
// batch members validated earlier in the same call; they are visible to
// cycle detection but not yet committed.
func (c *Context) validate(p typeinfo.GenericParam, pending map[string]typeinfo.GenericParam) error {
	if !isIdentifier(p.Name) {
		return &Error{Code: CodeInvalidParameterName, Param: p.Name, Detail: "must be an identifier"}
	}

	if typeinfo.IsNil(p.Constraint) {
		return nil
	}

	lookup := func(name string) (typeinfo.GenericParam, bool) {
		if name == p.Name {
			return p, true
		}

		if q, ok := pending[name]; ok {
			return q, true
		}

		return c.GetGenericParam(name)
	}

	if chain := findCycle(p.Name, lookup); chain != nil {
		return &Error{Code: CodeCircularConstraint, Param: p.Name, Chain: chain}
	}

	return nil
}

// findCycle reports the dependency path from start back to itself through
// constraints, or nil when there is none. Visited names are tracked so an
// already-existing cycle elsewhere cannot cause endless traversal.
func findCycle(start string, lookup func(string) (typeinfo.GenericParam, bool)) []string {
	visited := make(map[string]bool)

	var dfs func(name string, path []string) []string
	dfs = func(name string, path []string) []string {
		p, ok := lookup(name)
		if !ok || typeinfo.IsNil(p.Constraint) {
			return nil
		}

		for _, dep := range typeinfo.ReferencedNames(p.Constraint) {
			next := append(append([]string(nil), path...), dep)
			if dep == start {
				return next
			}

			if visited[dep] {
				continue
			}

			visited[dep] = true

			if chain := dfs(dep, next); chain != nil {
				return chain
			}
		}

		return nil
	}

	return dfs(start, []string{start})
}

func (c *Context) visibleNames() []string {
	params := c.GetAllGenericParams()

	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name)
	}

	return names
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}
