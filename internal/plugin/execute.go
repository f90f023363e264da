package plugin

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotPipeHook is returned by ExecuteHook for aggregated hooks, which have
// their own entry points (GetPropertyMethodTransform and friends).
var ErrNotPipeHook = errors.New("hook is not a pipe hook")

// HookError tags a hook failure with the plugin and hook that caused it.
type HookError struct {
	Plugin string
	Hook   HookType
	Err    error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("plugin %s failed in %s: %v", e.Plugin, e.Hook, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// HookCall describes one pipe execution: the hook, the value to thread and
// the context arguments passed to every plugin unchanged.
type HookCall[T any] struct {
	Hook  HookType
	Input T
	Args  []any
}

// ExecuteHook threads call.Input through every plugin implementing
// call.Hook, in registration order. Each plugin sees the previous plugin's
// output. The first failure (returned, malformed or panicked) stops the
// pipeline and is returned as a *HookError. With no implementing plugins the
// input comes back unchanged.
func ExecuteHook[T any](m *Manager, call HookCall[T]) Result[T] {
	if !call.Hook.IsPipe() {
		return Fail[T](errors.Wrapf(ErrNotPipeHook, "%s", call.Hook))
	}

	current := call.Input
	run := uuid.NewString()

	for _, e := range m.entries {
		h, ok := e.handlers[call.Hook]
		if !ok {
			continue
		}

		out, err := m.invoke(e.plugin.Name, call.Hook, h, current, call.Args)
		if err != nil {
			m.log.Debug("hook failed",
				zap.String("run", run),
				zap.String("plugin", e.plugin.Name),
				zap.Stringer("hook", call.Hook),
				zap.Error(err))

			return Fail[T](err)
		}

		next, err := as[T](out, "result")
		if err != nil {
			return Fail[T](&HookError{Plugin: e.plugin.Name, Hook: call.Hook, Err: err})
		}

		current = next
	}

	return Ok(current)
}

// invoke runs one handler, converting panics and malformed results into a
// *HookError.
func (m *Manager) invoke(plugin string, hook HookType, h handler, input any, args []any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HookError{Plugin: plugin, Hook: hook, Err: errors.Newf("panic: %v", r)}
		}
	}()

	res := h(input, args)

	switch {
	case !res.valid():
		return nil, &HookError{Plugin: plugin, Hook: hook, Err: ErrInvalidResult}
	case !res.ok:
		return nil, &HookError{Plugin: plugin, Hook: hook, Err: res.err}
	}

	return res.value, nil
}

// each calls every implementation of an aggregated hook with the same input
// and hands each successful output to fn. Failures are logged and skipped.
func (m *Manager) each(hook HookType, input any, fn func(plugin string, out any)) {
	run := uuid.NewString()

	for _, e := range m.entries {
		h, ok := e.handlers[hook]
		if !ok {
			continue
		}

		out, err := m.invoke(e.plugin.Name, hook, h, input, nil)
		if err != nil {
			m.log.Warn("plugin hook failed, skipping its contribution",
				zap.String("run", run),
				zap.String("plugin", e.plugin.Name),
				zap.Stringer("hook", hook),
				zap.Error(err))

			continue
		}

		if isNil(out) {
			continue
		}

		fn(e.plugin.Name, out)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
