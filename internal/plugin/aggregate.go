package plugin

import (
	"go.uber.org/zap"
)

// GetPropertyMethodTransform merges every plugin's transform for one property
// setter. Later plugins override the fields they set; fields they leave empty
// keep earlier values. It returns nil when no plugin contributed anything.
func (m *Manager) GetPropertyMethodTransform(ctx PropertyMethodContext) *PropertyMethodTransform {
	var (
		merged PropertyMethodTransform
		owners = map[string]string{}
	)

	set := func(plugin, field, value string, dst *string) {
		if value == "" {
			return
		}

		if prev, ok := owners[field]; ok && *dst != value {
			m.log.Debug("property method transform overridden",
				zap.String("property", ctx.Property.Name),
				zap.String("field", field),
				zap.String("previous", prev),
				zap.String("plugin", plugin))
		}

		owners[field] = plugin
		*dst = value
	}

	m.each(HookTransformPropertyMethod, ctx, func(plugin string, out any) {
		t, ok := out.(PropertyMethodTransform)
		if !ok || t.isEmpty() {
			return
		}

		set(plugin, "parameterType", t.ParameterType, &merged.ParameterType)
		set(plugin, "extractValue", t.ExtractValue, &merged.ExtractValue)
		set(plugin, "validate", t.Validate, &merged.Validate)
	})

	if merged.isEmpty() {
		return nil
	}

	return &merged
}

// GetCustomMethods concatenates every plugin's extra builder methods in
// registration order.
func (m *Manager) GetCustomMethods(ctx BuilderContext) []CustomMethod {
	var out []CustomMethod

	m.each(HookAddCustomMethods, ctx, func(_ string, v any) {
		if methods, ok := v.([]CustomMethod); ok {
			out = append(out, methods...)
		}
	})

	return out
}

// GetValueTransforms collects every plugin's value transform in registration
// order, dropping plugins that returned nil.
func (m *Manager) GetValueTransforms(ctx ValueContext) []ValueTransform {
	var out []ValueTransform

	m.each(HookTransformValue, ctx, func(_ string, v any) {
		if t, ok := v.(*ValueTransform); ok && t != nil {
			out = append(out, *t)
		}
	})

	return out
}

// TransformBuildMethod pipes the generated build method through every
// transformBuildMethod hook.
func (m *Manager) TransformBuildMethod(code string, ctx BuildMethodContext) Result[string] {
	return ExecuteHook(m, HookCall[string]{Hook: HookTransformBuildMethod, Input: code, Args: []any{ctx}})
}
