package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/framelearn/pkg/errors"
	"github.com/YuminosukeSato/framelearn/pkg/report"
)

type featureScore struct {
	Column   string `json:"column" yaml:"column"`
	Score    number `json:"score" yaml:"score"`
	PValue   number `json:"p_value" yaml:"p_value"`
	Selected bool   `json:"selected" yaml:"selected"`
}

func newScoresCmd(a *app) *cobra.Command {
	var (
		input, indexCol, target, plotFile string
		k                                 int
	)
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Rank the feature columns of a CSV file against a target",
		Long: `scores fits SelectKBest on --input and prints the F score and p-value of
every feature column. With --plot the scores are also drawn as a bar chart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			X, y, err := readInput(input, indexCol, target)
			if err != nil {
				return err
			}
			_, c := X.Dims()
			if k == 0 {
				k = c
			}
			p, err := a.buildProxy("SelectKBest", []string{fmt.Sprintf("k=%d", k)})
			if err != nil {
				return err
			}
			if _, err := p.Fit(X, y); err != nil {
				return err
			}

			scores, err := floatsResult(p.Call("Scores"))
			if err != nil {
				return err
			}
			pvalues, err := floatsResult(p.Call("PValues"))
			if err != nil {
				return err
			}
			support, err := p.GetSupport()
			if err != nil {
				return err
			}
			selected := make(map[int]bool, len(support))
			for _, j := range support {
				selected[j] = true
			}

			columns := X.Columns()
			views := make([]featureScore, len(columns))
			for j, name := range columns {
				views[j] = featureScore{
					Column:   name,
					Score:    number(scores[j]),
					PValue:   number(pvalues[j]),
					Selected: selected[j],
				}
			}

			if plotFile != "" {
				title := "f_regression scores for " + target
				if err := report.SaveScoresChart(plotFile, title, columns, scores); err != nil {
					return err
				}
			}

			return a.render(cmd, views, func(w io.Writer) error {
				rows := make([][]string, 0, len(views))
				for _, v := range views {
					rows = append(rows, []string{
						v.Column,
						formatFloat(float64(v.Score)),
						formatFloat(float64(v.PValue)),
						fmt.Sprint(v.Selected),
					})
				}
				return writeTable(w, []string{"Column", "Score", "P-Value", "Selected"}, rows)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&input, "input", "", "CSV file with a header row")
	f.StringVar(&indexCol, "index-col", "", "CSV column holding the row labels")
	f.StringVar(&target, "target", "", "CSV column used as the target")
	f.IntVarP(&k, "k", "k", 0, "number of columns to mark as selected (default all)")
	f.StringVar(&plotFile, "plot", "", "write a bar chart of the scores to this file (png, svg or pdf)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func floatsResult(res any, err error) ([]float64, error) {
	if err != nil {
		return nil, err
	}
	v, ok := res.([]float64)
	if !ok {
		return nil, errors.NewResultTypeError("scores", "[]float64", fmt.Sprintf("%T", res))
	}
	return v, nil
}
