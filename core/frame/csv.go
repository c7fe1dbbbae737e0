package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

// ReadCSV reads a header row followed by numeric rows. When indexCol is not
// empty that column supplies the row labels, otherwise rows are labeled by
// position.
func ReadCSV(r io.Reader, indexCol string) (*Frame, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(records) < 2 {
		return nil, errors.Wrap(errors.ErrEmptyData, "frame.ReadCSV")
	}

	header := records[0]
	indexPos := -1
	if indexCol != "" {
		for j, name := range header {
			if name == indexCol {
				indexPos = j
			}
		}
		if indexPos < 0 {
			return nil, errors.NewAttributeError("csv", indexCol)
		}
	}

	var columns []string
	for j, name := range header {
		if j != indexPos {
			columns = append(columns, name)
		}
	}
	if len(columns) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "frame.ReadCSV")
	}

	rows := records[1:]
	data := make([]float64, 0, len(rows)*len(columns))
	var index []string
	for i, rec := range rows {
		for j, cell := range rec {
			if j == indexPos {
				index = append(index, cell)
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.NewValueError("frame.ReadCSV",
					fmt.Sprintf("row %d column %q: %q is not a number", i+1, header[j], cell))
			}
			data = append(data, v)
		}
	}
	return New(mat.NewDense(len(rows), len(columns), data), index, columns)
}

// WriteCSV writes f with a leading index column named "index".
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"index"}, f.columns...)); err != nil {
		return errors.Wrap(err, "write csv")
	}
	r, c := f.Dims()
	rec := make([]string, c+1)
	for i := 0; i < r; i++ {
		rec[0] = f.index[i]
		for j := 0; j < c; j++ {
			rec[j+1] = strconv.FormatFloat(f.values.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrap(err, "write csv")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "write csv")
}
