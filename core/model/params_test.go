package model

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

func TestParamInt(t *testing.T) {
	tests := []struct {
		name    string
		in      interface{}
		want    int
		wantErr bool
	}{
		{"int", 3, 3, false},
		{"int64", int64(7), 7, false},
		{"integral float", 2.0, 2, false},
		{"json number", json.Number("5"), 5, false},
		{"fractional float", 2.5, 0, true},
		{"string", "3", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParamInt("k", tt.in)
			if tt.wantErr {
				var valErr *errors.ValidationError
				require.True(t, errors.As(err, &valErr))
				assert.Equal(t, "k", valErr.ParamName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParamFloat(t *testing.T) {
	got, err := ParamFloat("threshold", 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = ParamFloat("threshold", json.Number("0.25"))
	require.NoError(t, err)
	assert.Equal(t, 0.25, got)

	_, err = ParamFloat("threshold", true)
	assert.Error(t, err)
}

func TestParamBool(t *testing.T) {
	got, err := ParamBool("with_mean", false)
	require.NoError(t, err)
	assert.False(t, got)

	_, err = ParamBool("with_mean", 1.0)
	assert.Error(t, err)
}
