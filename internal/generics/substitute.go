package generics

import (
	"fluent-gen/internal/typeinfo"
)

// Substitute returns a copy of t in which every generic placeholder with a
// bound type argument (in this scope or an ancestor) is replaced by that
// argument. Unbound placeholders stay as they are; defaults are never
// applied. Object and generic nodes drop the substituted names from their
// UnresolvedGenerics lists.
func (c *Context) Substitute(t typeinfo.TypeInfo) typeinfo.TypeInfo {
	if typeinfo.IsNil(t) {
		return t
	}

	switch n := t.(type) {
	case *typeinfo.Generic:
		if bound, ok := c.GetResolvedType(n.Name); ok {
			return bound
		}
	case *typeinfo.Reference:
		// Parsers emit bare references for in-scope parameters too.
		if len(n.TypeArguments) == 0 && c.IsGenericParam(n.Name) {
			if bound, ok := c.GetResolvedType(n.Name); ok {
				return bound
			}
		}
	}

	out := typeinfo.MapChildren(t, c.Substitute)

	switch n := out.(type) {
	case *typeinfo.Object:
		n.UnresolvedGenerics = c.stillUnresolved(n.UnresolvedGenerics)
	case *typeinfo.Generic:
		n.UnresolvedGenerics = c.stillUnresolved(n.UnresolvedGenerics)
	}

	return out
}

func (c *Context) stillUnresolved(params []typeinfo.GenericParam) []typeinfo.GenericParam {
	if params == nil {
		return nil
	}

	out := make([]typeinfo.GenericParam, 0, len(params))
	for _, p := range params {
		if _, bound := c.GetResolvedType(p.Name); !bound {
			out = append(out, p)
		}
	}

	return out
}
