package adapter

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/framelearn/core/frame"
	"github.com/YuminosukeSato/framelearn/core/model"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
	"github.com/YuminosukeSato/framelearn/pkg/log"
)

// Convention is the calling convention of a method.
type Convention int

const (
	// Unclassified methods are delegated to the estimator unchanged.
	Unclassified Convention = iota
	// XConvention methods take a data matrix first.
	XConvention
	// XYConvention methods take a data matrix followed by a target.
	XYConvention
)

func (c Convention) String() string {
	switch c {
	case XConvention:
		return "x"
	case XYConvention:
		return "xy"
	default:
		return "unclassified"
	}
}

var (
	matrixType   = reflect.TypeOf((*mat.Matrix)(nil)).Elem()
	vectorType   = reflect.TypeOf((*mat.Vector)(nil)).Elem()
	denseType    = reflect.TypeOf((*mat.Dense)(nil))
	vecDenseType = reflect.TypeOf((*mat.VecDense)(nil))
	frameType    = reflect.TypeOf((*frame.Frame)(nil))
	seriesType   = reflect.TypeOf((*frame.Series)(nil))
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)

// parameter types accepted in the X position
func isDataType(t reflect.Type) bool {
	return t == matrixType || t == denseType || t == frameType
}

// parameter types accepted in the y position
func isTargetType(t reflect.Type) bool {
	switch t {
	case matrixType, vectorType, denseType, vecDenseType, seriesType, frameType:
		return true
	}
	return false
}

// delegated directly, never converted
var passthroughMethods = map[string]bool{
	"GetParams": true,
	"SetParams": true,
}

type methodInfo struct {
	name       string
	convention Convention
	err        error
}

// MethodTable holds the classification of every exported method of one
// estimator type. It is immutable once built.
type MethodTable struct {
	owner   string
	methods map[string]*methodInfo
	members []string
}

var tableCache sync.Map // map[reflect.Type]*MethodTable

// Classify returns the method table of est's dynamic type.
func Classify(est any) *MethodTable {
	typ := reflect.TypeOf(est)
	if typ == nil {
		return &MethodTable{owner: "nil", methods: map[string]*methodInfo{}}
	}
	if cached, ok := tableCache.Load(typ); ok {
		return cached.(*MethodTable)
	}
	table := buildTable(typ)
	actual, _ := tableCache.LoadOrStore(typ, table)
	return actual.(*MethodTable)
}

func buildTable(typ reflect.Type) *MethodTable {
	t := &MethodTable{
		owner:   typ.String(),
		methods: make(map[string]*methodInfo, typ.NumMethod()),
	}
	logger := log.GetLoggerWithName("adapter.classify")
	for i := 0; i < typ.NumMethod(); i++ {
		m, ok := errors.SafeAccess(func() reflect.Method { return typ.Method(i) })
		if !ok {
			continue
		}
		conv, err := classifyMethod(t.owner, m)
		if err != nil {
			logger.Debug("method left unwrapped",
				log.ModelNameKey, t.owner,
				log.ErrorCodeKey, log.ErrorIntrospection,
				log.ErrAttrKey, err,
			)
		}
		t.methods[m.Name] = &methodInfo{name: m.Name, convention: conv, err: err}
		t.members = append(t.members, m.Name)
	}
	sort.Strings(t.members)
	return t
}

// classifyMethod inspects parameter types. In(0) is the receiver.
func classifyMethod(owner string, m reflect.Method) (Convention, error) {
	if passthroughMethods[m.Name] {
		return Unclassified, nil
	}
	ft := m.Type
	n := ft.NumIn()
	if n < 2 {
		return Unclassified, nil
	}
	if ft.IsVariadic() && n == 2 {
		return Unclassified, nil
	}
	x := ft.In(1)
	if x.Kind() == reflect.Interface && x.NumMethod() == 0 {
		return Unclassified, errors.NewIntrospectionError(owner, m.Name, "parameter 1 is an empty interface")
	}
	if !isDataType(x) {
		return Unclassified, nil
	}
	if n >= 3 {
		trailingVariadic := ft.IsVariadic() && n == 3
		if !trailingVariadic && isTargetType(ft.In(2)) {
			return XYConvention, nil
		}
	}
	return XConvention, nil
}

// Owner returns the estimator type name.
func (t *MethodTable) Owner() string { return t.owner }

// Convention returns the classification of name, Unclassified when absent.
func (t *MethodTable) Convention(name string) Convention {
	if m, ok := t.methods[name]; ok {
		return m.convention
	}
	return Unclassified
}

// Has reports whether the estimator has an exported method called name.
func (t *MethodTable) Has(name string) bool {
	_, ok := t.methods[name]
	return ok
}

// Err returns the introspection error recorded for name, if any.
func (t *MethodTable) Err(name string) error {
	if m, ok := t.methods[name]; ok {
		return m.err
	}
	return nil
}

// Classified returns the sorted names of wrapped methods.
func (t *MethodTable) Classified() []string {
	var out []string
	for _, name := range t.members {
		if t.methods[name].convention != Unclassified {
			out = append(out, name)
		}
	}
	return out
}

// Members returns the sorted names of all exported methods.
func (t *MethodTable) Members() []string {
	return append([]string(nil), t.members...)
}

// Capability is a set of declared estimator capabilities.
type Capability uint16

const (
	TransformCapability Capability = 1 << iota
	PredictCapability
	SupervisedFitCapability
	UnsupervisedFitCapability
	FitTransformCapability
	InverseTransformCapability
	ScoreCapability
	SupportMaskCapability
	ParamsCapability
)

var capabilityNames = []struct {
	c    Capability
	name string
}{
	{TransformCapability, "transform"},
	{PredictCapability, "predict"},
	{SupervisedFitCapability, "supervised_fit"},
	{UnsupervisedFitCapability, "unsupervised_fit"},
	{FitTransformCapability, "fit_transform"},
	{InverseTransformCapability, "inverse_transform"},
	{ScoreCapability, "score"},
	{SupportMaskCapability, "support_mask"},
	{ParamsCapability, "params"},
}

// Has reports whether every capability in o is present in c.
func (c Capability) Has(o Capability) bool { return c&o == o }

func (c Capability) String() string {
	var names []string
	for _, cn := range capabilityNames {
		if c.Has(cn.c) {
			names = append(names, cn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Capabilities resolves the capabilities est declares through the
// interfaces of package model.
func Capabilities(est any) Capability {
	var c Capability
	if _, ok := est.(model.Transformer); ok {
		c |= TransformCapability
	}
	if _, ok := est.(model.Predictor); ok {
		c |= PredictCapability
	}
	if _, ok := est.(model.SupervisedFitter); ok {
		c |= SupervisedFitCapability
	}
	if _, ok := est.(model.UnsupervisedFitter); ok {
		c |= UnsupervisedFitCapability
	}
	switch est.(type) {
	case model.FitTransformer, model.SupervisedFitTransformer:
		c |= FitTransformCapability
	}
	if _, ok := est.(model.InverseTransformer); ok {
		c |= InverseTransformCapability
	}
	if _, ok := est.(model.Scorer); ok {
		c |= ScoreCapability
	}
	if _, ok := est.(model.SupportQuerier); ok {
		c |= SupportMaskCapability
	}
	if _, ok := est.(model.Estimator); ok {
		c |= ParamsCapability
	}
	return c
}
