package typeinfo

// MapChildren returns a shallow copy of t whose direct children have been
// replaced by fn(child). Absent children stay absent. t itself is never
// modified, so callers can use it to build rewritten trees bottom-up.
func MapChildren(t TypeInfo, fn func(TypeInfo) TypeInfo) TypeInfo {
	if IsNil(t) {
		return t
	}

	apply := func(c TypeInfo) TypeInfo {
		if IsNil(c) {
			return c
		}

		return fn(c)
	}

	list := func(ts []TypeInfo) []TypeInfo {
		if ts == nil {
			return nil
		}

		out := make([]TypeInfo, len(ts))
		for i, c := range ts {
			out[i] = apply(c)
		}

		return out
	}

	switch n := t.(type) {
	case *Object:
		cp := *n
		if n.Properties != nil {
			cp.Properties = make([]PropertyInfo, len(n.Properties))
			for i, p := range n.Properties {
				p.Type = apply(p.Type)
				cp.Properties[i] = p
			}
		}
		if n.IndexSignature != nil {
			sig := *n.IndexSignature
			sig.ValueType = apply(sig.ValueType)
			cp.IndexSignature = &sig
		}
		return &cp
	case *Array:
		return &Array{ElementType: apply(n.ElementType)}
	case *Union:
		return &Union{UnionTypes: list(n.UnionTypes)}
	case *Intersection:
		return &Intersection{IntersectionTypes: list(n.IntersectionTypes)}
	case *Generic:
		cp := *n
		cp.TypeArguments = list(n.TypeArguments)
		return &cp
	case *Reference:
		return &Reference{Name: n.Name, TypeArguments: list(n.TypeArguments)}
	case *Tuple:
		return &Tuple{Elements: list(n.Elements)}
	case *Keyof:
		return &Keyof{Target: apply(n.Target)}
	case *Typeof:
		return &Typeof{Target: apply(n.Target)}
	case *Index:
		return &Index{Object: apply(n.Object), Index: apply(n.Index)}
	case *Conditional:
		cp := *n
		cp.CheckType = apply(n.CheckType)
		cp.ExtendsType = apply(n.ExtendsType)
		cp.TrueType = apply(n.TrueType)
		cp.FalseType = apply(n.FalseType)
		return &cp
	default:
		return t
	}
}

// ReferencedNames returns the names of every Generic and Reference node in
// the tree rooted at t, including generic constraints and defaults. Each name
// appears once, in first-seen order.
func ReferencedNames(t TypeInfo) []string {
	var names []string

	seen := make(map[string]bool)

	var walk func(TypeInfo)
	walk = func(n TypeInfo) {
		if IsNil(n) {
			return
		}

		switch v := n.(type) {
		case *Generic:
			if !seen[v.Name] {
				seen[v.Name] = true
				names = append(names, v.Name)
			}
			walk(v.Constraint)
			walk(v.Default)
		case *Reference:
			if !seen[v.Name] {
				seen[v.Name] = true
				names = append(names, v.Name)
			}
		case *Object:
			for _, gp := range v.GenericParams {
				walk(gp.Constraint)
				walk(gp.Default)
			}
		}

		for _, c := range Children(n) {
			walk(c)
		}
	}

	walk(t)

	return names
}
