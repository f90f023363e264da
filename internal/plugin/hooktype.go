package plugin

import (
	"fluent-gen/internal/common"
)

//go:generate go tool stringer -type=HookType -linecomment -output=hooktype_string.go

// HookType names an extension point. The zero value is invalid.
type HookType int

const (
	_ HookType = iota // skip zero value

	HookBeforeParse             // beforeParse
	HookAfterParse              // afterParse
	HookBeforeResolve           // beforeResolve
	HookAfterResolve            // afterResolve
	HookBeforeGenerate          // beforeGenerate
	HookAfterGenerate           // afterGenerate
	HookTransformType           // transformType
	HookTransformProperty       // transformProperty
	HookTransformBuildMethod    // transformBuildMethod
	HookTransformPropertyMethod // transformPropertyMethod
	HookAddCustomMethods        // addCustomMethods
	HookTransformValue          // transformValue
	HookTransformImports        // transformImports

	// HookTypeTotal is the number of hook types plus one.
	HookTypeTotal = int(iota)
)

// ParseHookType maps a hook name ("beforeParse", ...) to its HookType.
func ParseHookType(s string) (HookType, bool) {
	for h := HookType(1); int(h) < HookTypeTotal; h++ {
		if h.String() == s {
			return h, true
		}
	}

	return 0, false
}

// IsPipe reports whether the hook threads one value through every plugin.
// The other hooks are aggregated: merged, collected or filter-collected.
func (h HookType) IsPipe() bool {
	switch h {
	case HookTransformPropertyMethod, HookAddCustomMethods, HookTransformValue:
		return false
	default:
		return common.IsInRange(1, int(h), HookTypeTotal-1)
	}
}
