package adapter

import (
	"reflect"
	"sort"
	"sync"

	"github.com/YuminosukeSato/framelearn/core/model"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
	"github.com/YuminosukeSato/framelearn/pkg/log"
)

// Factory returns a new estimator with default parameters.
type Factory func() any

type entry struct {
	name    string
	factory Factory
	typ     reflect.Type
	restore bool
}

// Registry maps estimator kinds to factories and records which kinds opted in
// to column restoration. Nothing outside a Registry is modified by
// registration: only proxies built through Adapt or Reconstruct pick it up.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*entry
	byType map[reflect.Type]*entry
	opts   []Option
	logger log.Logger
}

// NewRegistry creates an empty registry. opts are applied to every proxy the
// registry builds.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		byName: make(map[string]*entry),
		byType: make(map[reflect.Type]*entry),
		opts:   opts,
		logger: log.GetLoggerWithName("adapter.registry"),
	}
}

// Register records factory under name without column restoration.
func (r *Registry) Register(name string, factory Factory) error {
	_, err := r.register(name, factory, false)
	return err
}

// ApplyColumnRestoration records factory under name and opts the kind in to
// column restoration. The estimator must implement model.Transformer and
// model.SupportQuerier.
func (r *Registry) ApplyColumnRestoration(name string, factory Factory) error {
	_, err := r.register(name, factory, true)
	return err
}

func (r *Registry) register(name string, factory Factory, restore bool) (*entry, error) {
	if name == "" {
		return nil, errors.NewValidationError("name", "must not be empty", name)
	}
	if factory == nil {
		return nil, errors.NewValidationError("factory", "must not be nil", name)
	}
	est, ok := errors.SafeAccess(func() any { return factory() })
	if !ok || est == nil {
		return nil, errors.NewValidationError("factory", "must return an estimator", name)
	}
	if restore {
		if _, ok := est.(model.Selector); !ok {
			return nil, errors.NewValidationError(name, "column restoration requires Transform and GetSupport", typeName(est))
		}
	}
	e := &entry{name: name, factory: factory, typ: reflect.TypeOf(est), restore: restore}

	r.mu.Lock()
	if old, ok := r.byName[name]; ok && old.typ != e.typ {
		delete(r.byType, old.typ)
	}
	r.byName[name] = e
	r.byType[e.typ] = e
	r.mu.Unlock()

	r.logger.Debug("registered",
		log.EstimatorKindKey, name,
		log.ModelNameKey, e.typ.String(),
		"column_restoration", restore,
	)
	return e, nil
}

// RegisterCompatibleTypes registers the factories of one module. Kinds whose
// estimators implement model.Selector get column restoration, the others are
// registered plainly. It returns the names that received column restoration.
func (r *Registry) RegisterCompatibleTypes(module string, factories map[string]Factory) ([]string, error) {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)

	var restored []string
	for _, name := range names {
		factory := factories[name]
		if factory == nil {
			return restored, errors.NewValidationError("factory", "must not be nil", name)
		}
		est, ok := errors.SafeAccess(func() any { return factory() })
		if !ok || est == nil {
			return restored, errors.NewValidationError("factory", "must return an estimator", name)
		}
		_, selector := est.(model.Selector)
		if _, err := r.register(name, factory, selector); err != nil {
			return restored, err
		}
		if selector {
			restored = append(restored, name)
		}
	}
	r.logger.Info("module registered",
		log.ComponentKey, module,
		"kinds", len(names),
		"column_restoration", restored,
	)
	return restored, nil
}

// Kinds returns the sorted registered names.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// New instantiates the estimator registered under name.
func (r *Registry) New(name string) (any, error) {
	r.mu.RLock()
	e, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownKind, "%q", name)
	}
	return e.factory(), nil
}

// KindOf returns the registered name of est's type.
func (r *Registry) KindOf(est any) (string, bool) {
	if p, ok := est.(*Proxy); ok {
		est = p.Estimator()
	}
	e, ok := r.lookupType(reflect.TypeOf(est))
	if !ok {
		return "", false
	}
	return e.name, true
}

// RestoresColumns reports whether kind name opted in to column restoration.
func (r *Registry) RestoresColumns(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[name]
	return ok && e.restore
}

func (r *Registry) lookupType(typ reflect.Type) (*entry, bool) {
	if typ == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byType[typ]
	return e, ok
}

// Adapt wraps est with the registry options, adding column restoration when
// its type opted in.
func (r *Registry) Adapt(est any, opts ...Option) *Proxy {
	target := est
	if p, ok := est.(*Proxy); ok {
		target = p.Estimator()
	}
	all := append(append([]Option(nil), r.opts...), opts...)
	if e, ok := r.lookupType(reflect.TypeOf(target)); ok && e.restore {
		all = append(all, WithColumnRestoration())
	}
	return Adapt(est, all...)
}
