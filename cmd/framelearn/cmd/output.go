package cmd

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/framelearn/core/frame"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

type format string

const (
	formatTable format = "table"
	formatJSON  format = "json"
	formatYAML  format = "yaml"
)

func outputFormat(s string) (format, error) {
	switch f := format(s); f {
	case formatTable, formatJSON, formatYAML:
		return f, nil
	}
	return "", errors.NewValidationError("output", "must be table, json or yaml", s)
}

// render writes v as JSON or YAML, or calls table for the table format.
func (a *app) render(cmd *cobra.Command, v any, table func(w io.Writer) error) error {
	f, err := outputFormat(a.v.GetString("output"))
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	switch f {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return table(w)
	}
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	table.Header(cells...)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// number is a float64 that encodes infinities and NaN as JSON strings.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte(strconv.Quote(formatFloat(f))), nil
	}
	return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

type frameView struct {
	Index   []string   `json:"index" yaml:"index"`
	Columns []string   `json:"columns" yaml:"columns"`
	Data    [][]number `json:"data" yaml:"data"`
}

func newFrameView(f *frame.Frame) frameView {
	r, c := f.Dims()
	data := make([][]number, r)
	for i := range data {
		data[i] = make([]number, c)
		for j := range data[i] {
			data[i][j] = number(f.At(i, j))
		}
	}
	return frameView{Index: f.Index(), Columns: f.Columns(), Data: data}
}

type seriesView struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Index  []string `json:"index" yaml:"index"`
	Values []number `json:"values" yaml:"values"`
}

func newSeriesView(s *frame.Series) seriesView {
	values := make([]number, s.Len())
	for i := range values {
		values[i] = number(s.At(i))
	}
	return seriesView{Name: s.Name(), Index: s.Index(), Values: values}
}

// renderLabeled prints a frame or series result.
func (a *app) renderLabeled(cmd *cobra.Command, res frame.Labeled) error {
	switch v := res.(type) {
	case *frame.Frame:
		return a.render(cmd, newFrameView(v), func(w io.Writer) error {
			_, err := fmt.Fprintln(w, v.String())
			return err
		})
	case *frame.Series:
		return a.render(cmd, newSeriesView(v), func(w io.Writer) error {
			_, err := fmt.Fprintln(w, v.String())
			return err
		})
	}
	return errors.NewResultTypeError("render", "*frame.Frame or *frame.Series", fmt.Sprintf("%T", res))
}
