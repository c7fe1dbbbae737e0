// Package report renders estimator diagnostics as charts.
package report

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

// ScoresChart draws one bar per column. Infinite scores are drawn at the
// height of the largest finite score.
func ScoresChart(title string, columns []string, scores []float64) (*plot.Plot, error) {
	if len(columns) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "report.ScoresChart")
	}
	if len(columns) != len(scores) {
		return nil, errors.NewDimensionError("report.ScoresChart", len(columns), len(scores), 0)
	}

	ceiling := 0.0
	for _, s := range scores {
		if !math.IsInf(s, 0) && !math.IsNaN(s) && s > ceiling {
			ceiling = s
		}
	}
	values := make(plotter.Values, len(scores))
	for i, s := range scores {
		switch {
		case math.IsInf(s, 1):
			values[i] = ceiling
		case math.IsNaN(s) || math.IsInf(s, -1):
			values[i] = 0
		default:
			values[i] = s
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "score"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, errors.Wrap(err, "bar chart")
	}
	bars.Color = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(columns...)
	return p, nil
}

// SaveScoresChart writes the chart to filename. The format follows the file
// extension (png, svg, pdf).
func SaveScoresChart(filename, title string, columns []string, scores []float64) error {
	p, err := ScoresChart(title, columns, scores)
	if err != nil {
		return err
	}
	width := vg.Length(len(columns)+2) * vg.Inch / 2
	if width < 4*vg.Inch {
		width = 4 * vg.Inch
	}
	if err := p.Save(width, 3*vg.Inch, filename); err != nil {
		return errors.Wrap(err, "save chart")
	}
	return nil
}
