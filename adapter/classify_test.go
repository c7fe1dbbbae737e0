package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

func TestClassify_Conventions(t *testing.T) {
	table := Classify(&oddball{})

	tests := []struct {
		method string
		want   Convention
	}{
		{"Apply", Unclassified},
		{"Sum", Unclassified},
		{"Weighted", XConvention},
		{"Child", Unclassified},
		{"Name", Unclassified},
		{"Self", Unclassified},
		{"Reset", Unclassified},
		{"Fail", XConvention},
		{"Native", XYConvention},
		{"Column", XYConvention},
		{"Narrow", XConvention},
		{"Short", XConvention},
		{"Pair", XConvention},
		{"Missing", Unclassified},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Convention(tt.method))
		})
	}

	assert.Equal(t, "*adapter.oddball", table.Owner())
	assert.True(t, table.Has("Sum"))
	assert.False(t, table.Has("Missing"))
	assert.Equal(t,
		[]string{"Column", "Fail", "Narrow", "Native", "Pair", "Short", "Weighted"},
		table.Classified())
}

func TestClassify_EmptyInterfaceRecordsIntrospectionError(t *testing.T) {
	table := Classify(&oddball{})

	var introErr *errors.IntrospectionError
	require.True(t, errors.As(table.Err("Apply"), &introErr))
	assert.Equal(t, "Apply", introErr.Method)
	assert.NoError(t, table.Err("Weighted"))
}

func TestClassify_ParamsNeverWrapped(t *testing.T) {
	table := Classify(newPicker())

	assert.Equal(t, Unclassified, table.Convention("GetParams"))
	assert.Equal(t, Unclassified, table.Convention("SetParams"))
	assert.Equal(t, XYConvention, table.Convention("Fit"))
	assert.Equal(t, XYConvention, table.Convention("FitTransform"))
	assert.Equal(t, XConvention, table.Convention("Transform"))
	assert.Equal(t, Unclassified, table.Convention("GetSupport"))

	assert.Equal(t, XConvention, Classify(newDoubler()).Convention("Fit"))
}

func TestClassify_CachedPerType(t *testing.T) {
	a := Classify(newDoubler())
	b := Classify(&doubler{Factor: 3})
	assert.Same(t, a, b)
	assert.NotSame(t, a, Classify(newPicker()))

	nilTable := Classify(nil)
	assert.Empty(t, nilTable.Members())
}

func TestCapabilities(t *testing.T) {
	tests := []struct {
		name string
		est  any
		has  Capability
		not  Capability
	}{
		{"doubler", newDoubler(), TransformCapability | UnsupervisedFitCapability | ParamsCapability, SupportMaskCapability | PredictCapability},
		{"picker", newPicker(), TransformCapability | SupervisedFitCapability | FitTransformCapability | SupportMaskCapability, UnsupervisedFitCapability},
		{"rowSum", rowSum{}, PredictCapability | SupervisedFitCapability, TransformCapability | ParamsCapability},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Capabilities(tt.est)
			assert.True(t, c.Has(tt.has), "capabilities %s", c)
			assert.Zero(t, c&tt.not, "capabilities %s", c)
		})
	}

	assert.Equal(t, "none", Capability(0).String())
	assert.Equal(t, "transform|predict", (TransformCapability | PredictCapability).String())
}

func TestConvention_String(t *testing.T) {
	assert.Equal(t, "x", XConvention.String())
	assert.Equal(t, "xy", XYConvention.String())
	assert.Equal(t, "unclassified", Unclassified.String())
}
