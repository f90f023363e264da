package plugin

import (
	"slices"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"fluent-gen/internal/common"
)

type entry struct {
	plugin   *Plugin
	handlers map[HookType]handler
}

// Manager is the plugin registry of one generation session.
type Manager struct {
	entries     []entry
	byName      map[string]int
	log         *zap.Logger
	hostVersion string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for skipped plugin failures.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithHostVersion sets the generator version checked against each plugin's
// HostVersion constraint.
func WithHostVersion(v string) Option {
	return func(m *Manager) { m.hostVersion = v }
}

// NewManager returns an empty registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		byName: make(map[string]int),
		log:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Register validates p and appends a copy of it to the registry, so later
// changes to p do not reach the registry. On any failure the registry is left
// untouched.
func (m *Manager) Register(p *Plugin) error {
	diags := Validate(p, m.hostVersion)
	if diags.HasErrors() {
		name := ""
		if p != nil {
			name = p.Name
		}

		return &ValidationError{Plugin: name, Diagnostics: diags}
	}

	if _, exists := m.byName[p.Name]; exists {
		return errors.Wrapf(ErrDuplicatePlugin, "%s", p.Name)
	}

	for _, w := range diags.Warnings {
		m.log.Debug("plugin warning", zap.String("plugin", p.Name), zap.String("code", w.Code), zap.String("detail", w.String()))
	}

	cp := p.clone()

	m.byName[cp.Name] = len(m.entries)
	m.entries = append(m.entries, entry{plugin: cp, handlers: cp.Hooks.compile()})

	m.log.Debug("plugin registered", zap.String("plugin", p.Name), zap.String("version", p.Version))

	return nil
}

// Unregister removes the named plugin. It reports whether it was present.
func (m *Manager) Unregister(name string) bool {
	idx, ok := m.byName[name]
	if !ok {
		return false
	}

	m.entries = slices.Delete(m.entries, idx, idx+1)

	delete(m.byName, name)

	for i := idx; i < len(m.entries); i++ {
		m.byName[m.entries[i].plugin.Name] = i
	}

	return true
}

// Plugin returns the registered plugin with the given name. The result is
// the registry's own copy and must not be modified.
func (m *Manager) Plugin(name string) (*Plugin, bool) {
	idx, ok := m.byName[name]
	if !ok {
		return nil, false
	}

	return m.entries[idx].plugin, true
}

// Has reports whether name is registered.
func (m *Manager) Has(name string) bool {
	_, ok := m.byName[name]
	return ok
}

// Plugins returns the registered plugins in registration order.
func (m *Manager) Plugins() []*Plugin {
	return common.Map(m.entries, func(e entry) *Plugin { return e.plugin })
}

// Len returns the number of registered plugins.
func (m *Manager) Len() int {
	return len(m.entries)
}

// Implementing returns the names of plugins that implement hook, in
// registration order.
func (m *Manager) Implementing(hook HookType) []string {
	var names []string

	for _, e := range m.entries {
		if _, ok := e.handlers[hook]; ok {
			names = append(names, e.plugin.Name)
		}
	}

	return names
}
