package transform

import (
	"strings"
)

// precedence orders type operators from loosest to tightest binding.
type precedence int

const (
	precLowest       precedence = iota
	precConditional             // A extends B ? C : D, (a) => b
	precUnion                   // A | B
	precIntersection            // A & B
	precPrefix                  // keyof A, typeof a
	precPrimary                 // names, literals, A<B>, A[K], { ... }, [A, B]
)

var prefixOperators = []string{"keyof ", "typeof ", "unique ", "readonly ", "infer "}

// precedenceOf classifies rendered type text by its loosest top-level
// operator. Text inside brackets and string literals is skipped, so it works
// on callback output as well as on default renderings.
func precedenceOf(s string) precedence {
	s = strings.TrimSpace(s)

	var (
		depth int
		quote byte
		found = precPrimary
	)

	for i := 0; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}

			continue
		}

		switch c {
		case '"', '\'', '`':
			quote = c
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		case '=':
			if i+1 < len(s) && s[i+1] == '>' {
				i++
				if depth == 0 {
					return precConditional
				}
			}
		case '?':
			if depth == 0 {
				return precConditional
			}
		case '|':
			if depth == 0 {
				found = min(found, precUnion)
			}
		case '&':
			if depth == 0 {
				found = min(found, precIntersection)
			}
		}
	}

	if found == precPrimary {
		for _, op := range prefixOperators {
			if strings.HasPrefix(s, op) {
				return precPrefix
			}
		}
	}

	return found
}

// wrap parenthesizes s when it binds looser than the position it goes into.
func wrap(s string, at precedence) string {
	if precedenceOf(s) < at {
		return "(" + s + ")"
	}

	return s
}
