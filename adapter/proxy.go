package adapter

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/framelearn/core/frame"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
	"github.com/YuminosukeSato/framelearn/pkg/log"
)

type options struct {
	logger    log.Logger
	loggerSet bool
	restore   bool
	metrics   *Metrics
}

// Option configures Adapt.
type Option func(*options)

// WithLogger sets the logger used for construction and call records.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = l
		o.loggerSet = true
	}
}

// WithColumnRestoration relabels Transform and FitTransform results with the
// input columns selected by the estimator's support mask. It is ignored for
// estimators that do not implement both model.Transformer and
// model.SupportQuerier.
func WithColumnRestoration() Option {
	return func(o *options) { o.restore = true }
}

// WithMetrics records every call in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Proxy drives one estimator with labeled data.
//
// The method table is computed when the proxy is built and never changes.
// The labels of each call are passed along that call only, so a Proxy is safe
// for concurrent use whenever the underlying estimator is.
type Proxy struct {
	est      any
	value    reflect.Value
	table    *MethodTable
	caps     Capability
	restorer *ColumnRestorer

	opts   options
	logger log.Logger
}

// noResult marks a call that returned nothing besides a nil error.
type noResult struct{}

// results holds the non-error results of a call returning several values.
type results []any

// BoundMethod is a method of the adapted estimator bound to its proxy.
// Invoking it follows the same rules as Proxy.Call.
type BoundMethod func(args ...any) (any, error)

// Adapt wraps est. Adapting a *Proxy returns that proxy unless opts change
// its configuration, in which case a new proxy over the same estimator is
// returned. Proxies are never layered.
func Adapt(est any, opts ...Option) *Proxy {
	if p, ok := est.(*Proxy); ok {
		return p.reconfigure(opts)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return newProxy(est, o)
}

func newProxy(est any, o options) *Proxy {
	table := Classify(est)
	base := o.logger
	if base == nil {
		base = log.GetLoggerWithName("adapter")
	}
	p := &Proxy{
		est:    est,
		value:  reflect.ValueOf(est),
		table:  table,
		caps:   Capabilities(est),
		opts:   o,
		logger: base.With(log.ModelNameKey, table.Owner()),
	}
	if o.restore {
		if p.caps.Has(TransformCapability | SupportMaskCapability) {
			p.restorer = &ColumnRestorer{}
		} else {
			p.logger.Debug("column restoration skipped",
				log.SuggestionKey, "estimator must implement Transform and GetSupport")
		}
	}
	p.logger.Debug("adapted",
		log.MethodsKey, len(table.Classified()),
		"capabilities", p.caps.String(),
		"column_restoration", p.restorer != nil,
	)
	return p
}

func (p *Proxy) reconfigure(opts []Option) *Proxy {
	if len(opts) == 0 {
		return p
	}
	o := p.opts
	o.loggerSet = false
	for _, opt := range opts {
		opt(&o)
	}
	if !o.loggerSet && o.restore == p.opts.restore && o.metrics == p.opts.metrics {
		return p
	}
	if !o.loggerSet {
		o.logger = p.opts.logger
		o.loggerSet = p.opts.loggerSet
	}
	return newProxy(p.est, o)
}

// Estimator returns the wrapped estimator.
func (p *Proxy) Estimator() any { return p.est }

// Table returns the method table of the wrapped estimator.
func (p *Proxy) Table() *MethodTable { return p.table }

// Methods returns the sorted names of the wrapped methods.
func (p *Proxy) Methods() []string { return p.table.Classified() }

// Convention returns the classification of method name.
func (p *Proxy) Convention(name string) Convention { return p.table.Convention(name) }

// Capabilities returns the declared capabilities of the estimator.
func (p *Proxy) Capabilities() Capability { return p.caps }

// Restored reports whether column restoration is active.
func (p *Proxy) Restored() bool { return p.restorer != nil }

func (p *Proxy) String() string {
	if p.restorer != nil {
		return fmt.Sprintf("Adapted(%s, columns restored)", p.table.Owner())
	}
	return fmt.Sprintf("Adapted(%s)", p.table.Owner())
}

// Call invokes method name of the estimator.
//
// Wrapped methods require a *frame.Frame as first argument. X (and y for
// XYConvention methods) are converted to the declared raw types, the other
// arguments are passed unchanged, and the results are labeled with the row
// index and columns of X. Unclassified methods receive their arguments
// unchanged; a result that is itself an estimator is adapted.
//
// A call returning only a nil error, or returning the estimator itself,
// yields p. Errors returned by the estimator are passed through untouched.
func (p *Proxy) Call(name string, args ...any) (any, error) {
	if !p.table.Has(name) {
		return nil, errors.NewAttributeError(p.table.Owner(), name)
	}
	method := p.value.MethodByName(name)
	conv := p.table.Convention(name)
	if conv == Unclassified {
		return p.callDirect(name, method, args)
	}

	var X *frame.Frame
	if len(args) > 0 {
		X, _ = args[0].(*frame.Frame)
	}
	if X == nil {
		var got any
		if len(args) > 0 {
			got = args[0]
		}
		err := errors.NewArgumentError(name, 0, "*frame.Frame", typeName(got))
		p.observe(name, nil, 0, err)
		return nil, err
	}
	return p.run(name, X, func() (any, error) {
		in, err := buildArgs(name, method, conv, args)
		if err != nil {
			return nil, err
		}
		return splitResults(method.Call(in))
	})
}

func (p *Proxy) callDirect(name string, method reflect.Value, args []any) (any, error) {
	start := time.Now()
	in, err := buildArgs(name, method, Unclassified, args)
	var out any
	if err == nil {
		out, err = splitResults(method.Call(in))
	}
	p.observe(name, nil, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return p.chain(out), nil
}

func splitResults(out []reflect.Value) (any, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if e := out[n-1]; !e.IsNil() {
			return nil, e.Interface().(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return noResult{}, nil
	case 1:
		return out[0].Interface(), nil
	default:
		vals := make(results, len(out))
		for i, v := range out {
			vals[i] = v.Interface()
		}
		return vals, nil
	}
}

// run invokes a wrapped operation and labels its result with the labels of X.
func (p *Proxy) run(op string, X *frame.Frame, invoke func() (any, error)) (any, error) {
	start := time.Now()
	ctx := CaptureContext(X)
	raw, err := invoke()
	var out any
	if err == nil {
		out, err = p.label(op, ctx, raw)
	}
	p.observe(op, X, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Proxy) label(op string, ctx CallContext, raw any) (any, error) {
	switch v := raw.(type) {
	case noResult:
		return p, nil
	case results:
		out := make([]any, len(v))
		for i := range v {
			r, err := p.label(op, ctx, v[i])
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	}
	if sameObject(raw, p.est) {
		return p, nil
	}
	if p.restorer != nil && p.restorer.Applies(op) {
		if f, ok := raw.(*frame.Frame); ok && f != nil {
			return p.restorer.Restore(f, ctx.Columns, p.est)
		}
		cols, err := p.restorer.Columns(op, ctx.Columns, p.est)
		if err != nil {
			return nil, err
		}
		ctx.Columns = cols
	}
	return Rehydrate(op, ctx, raw)
}

// chain maps results of unclassified methods.
func (p *Proxy) chain(v any) any {
	switch r := v.(type) {
	case noResult:
		return p
	case results:
		out := make([]any, len(r))
		for i := range r {
			out[i] = p.chain(r[i])
		}
		return out
	}
	if sameObject(v, p.est) {
		return p
	}
	if chainable(v) {
		return newProxy(v, options{logger: p.opts.logger, loggerSet: p.opts.loggerSet, metrics: p.opts.metrics})
	}
	return v
}

// chainable reports whether v is an estimator worth adapting: a non-nil
// pointer to a struct with at least one wrapped method that is not itself
// matrix or labeled data.
func chainable(v any) bool {
	switch v.(type) {
	case *Proxy, mat.Matrix, mat.Vector, frame.Labeled:
		return false
	}
	t := reflect.TypeOf(v)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct || reflect.ValueOf(v).IsNil() {
		return false
	}
	return len(Classify(v).Classified()) > 0
}

func sameObject(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() || va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}
	return false
}

// Attr resolves name on the estimator. Methods are returned as a BoundMethod,
// exported fields as their current value. A member that does not exist, or
// whose access panics, yields an *errors.AttributeError.
func (p *Proxy) Attr(name string) (any, error) {
	if p.table.Has(name) {
		return BoundMethod(func(args ...any) (any, error) { return p.Call(name, args...) }), nil
	}
	type lookup struct {
		value any
		found bool
	}
	res, ok := errors.SafeAccess(func() lookup {
		v, found := fieldValue(p.value, name)
		return lookup{v, found}
	})
	if !ok || !res.found {
		return nil, errors.NewAttributeError(p.table.Owner(), name)
	}
	return res.value, nil
}

func fieldValue(v reflect.Value, name string) (any, bool) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	sf, ok := v.Type().FieldByName(name)
	if !ok || !sf.IsExported() {
		return nil, false
	}
	return v.FieldByIndex(sf.Index).Interface(), true
}

func (p *Proxy) observe(op string, X *frame.Frame, d time.Duration, err error) {
	conv := p.table.Convention(op)
	p.opts.metrics.observe(p.table.Owner(), op, conv, d, err)
	if !p.logger.Enabled(context.Background(), log.LevelDebug) {
		return
	}
	fields := []any{
		log.OperationKey, op,
		log.ConventionKey, conv.String(),
		log.DurationMsKey, d.Milliseconds(),
	}
	if X != nil {
		r, c := X.Dims()
		fields = append(fields, log.SamplesKey, r, log.FeaturesKey, c)
	}
	if err != nil {
		p.logger.Debug("call failed", append(fields, log.ErrAttrKey, err)...)
		return
	}
	p.logger.Debug("call", fields...)
}
