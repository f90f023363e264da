package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Map applies fn to every element and returns the results in order.
func Map[S ~[]E, E, R any](s S, fn func(E) R) []R {
	if s == nil {
		return nil
	}

	out := make([]R, len(s))
	for i, e := range s {
		out[i] = fn(e)
	}

	return out
}

// Clone returns a shallow copy of s that preserves nil-ness.
func Clone[S ~[]E, E any](s S) S {
	if s == nil {
		return nil
	}

	out := make(S, len(s))
	copy(out, s)

	return out
}
