package frame

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

func TestReadCSV(t *testing.T) {
	in := "id,a,b\nx,1,2\ny,3,4.5\n"

	f, err := ReadCSV(strings.NewReader(in), "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, f.Index())
	assert.Equal(t, []string{"a", "b"}, f.Columns())
	assert.Equal(t, 4.5, f.At(1, 1))

	f, err = ReadCSV(strings.NewReader(in[3:]), "")
	require.Error(t, err, "the index column is not numeric")

	f, err = ReadCSV(strings.NewReader("a,b\n1,2\n"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, f.Index())
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n"), "")
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = ReadCSV(strings.NewReader("a,b\n1,2\n"), "id")
	var attrErr *errors.AttributeError
	assert.True(t, errors.As(err, &attrErr))

	_, err = ReadCSV(strings.NewReader("a,b\n1,x\n"), "")
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr))
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	in := "index,a,b\nr0,1,2\nr1,3,4.5\n"
	f, err := ReadCSV(strings.NewReader(in), "index")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.WriteCSV(&buf))
	assert.Equal(t, in, buf.String())
}

func TestFrame_Drop(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("a,b,y\n1,2,3\n4,5,6\n"), "")
	require.NoError(t, err)

	X, err := f.Drop("y")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, X.Columns())
	assert.Equal(t, f.Index(), X.Index())

	_, err = f.Drop("missing")
	assert.Error(t, err)
}
