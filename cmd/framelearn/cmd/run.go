package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/framelearn/adapter"
	"github.com/YuminosukeSato/framelearn/core/frame"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

const (
	methodFitTransform = "fit-transform"
	methodPredict      = "predict"
	methodScore        = "score"
)

type runOptions struct {
	snapshot string
	kind     string
	sets     []string
	input    string
	indexCol string
	target   string
	method   string
	outCSV   string
}

type scoreView struct {
	Kind  string `json:"kind" yaml:"kind"`
	Score number `json:"score" yaml:"score"`
}

func newRunCmd(a *app) *cobra.Command {
	var o runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fit an estimator on CSV data and print the labeled result",
		Long: `run loads an estimator from --snapshot or builds one from --kind and --set,
reads --input as a frame and runs --method on it. The --target column, when
given, is removed from the features and used as y.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.snapshot, "snapshot", "", "snapshot file (.json, .yaml or .yml)")
	f.StringVar(&o.kind, "kind", "", "registered kind to build when no snapshot is given")
	f.StringArrayVar(&o.sets, "set", nil, "parameter as key=value (repeatable)")
	f.StringVar(&o.input, "input", "", "CSV file with a header row")
	f.StringVar(&o.indexCol, "index-col", "", "CSV column holding the row labels")
	f.StringVar(&o.target, "target", "", "CSV column used as the target")
	f.StringVar(&o.method, "method", methodFitTransform, "fit-transform, predict or score")
	f.StringVar(&o.outCSV, "out-csv", "", "also write a frame result to this CSV file")
	_ = cmd.MarkFlagRequired("input")
	cmd.MarkFlagsMutuallyExclusive("snapshot", "kind")
	cmd.MarkFlagsOneRequired("snapshot", "kind")
	return cmd
}

// validate checks the flag combination before any file is read.
func (o runOptions) validate() error {
	switch o.method {
	case methodFitTransform:
	case methodPredict, methodScore:
		if o.target == "" {
			return errors.NewValidationError("target", "is required for "+o.method, o.target)
		}
	default:
		return errors.NewValidationError("method", "must be fit-transform, predict or score", o.method)
	}
	return nil
}

func (a *app) run(cmd *cobra.Command, o runOptions) error {
	if err := o.validate(); err != nil {
		return err
	}

	var (
		p   *adapter.Proxy
		err error
	)
	if o.snapshot != "" {
		p, err = a.readSnapshot(o.snapshot)
	} else {
		p, err = a.buildProxy(o.kind, o.sets)
	}
	if err != nil {
		return err
	}

	X, y, err := readInput(o.input, o.indexCol, o.target)
	if err != nil {
		return err
	}

	switch o.method {
	case methodFitTransform:
		out, err := p.FitTransform(X, y)
		if err != nil {
			return err
		}
		if o.outCSV != "" {
			if err := writeCSVFile(o.outCSV, out); err != nil {
				return err
			}
		}
		return a.renderLabeled(cmd, out)
	case methodPredict, methodScore:
		if _, err := p.Fit(X, y); err != nil {
			return err
		}
		if o.method == methodPredict {
			out, err := p.Predict(X)
			if err != nil {
				return err
			}
			return a.renderLabeled(cmd, out)
		}
		score, err := p.Score(X, y)
		if err != nil {
			return err
		}
		kind, _ := a.registry.KindOf(p)
		view := scoreView{Kind: kind, Score: number(score)}
		return a.render(cmd, view, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "%s score: %s\n", kind, formatFloat(score))
			return err
		})
	}
	return errors.NewValidationError("method", "must be fit-transform, predict or score", o.method)
}

// readInput reads the CSV file and splits off the target column.
func readInput(path, indexCol, target string) (*frame.Frame, *frame.Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	f, err := frame.ReadCSV(file, indexCol)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read %s", path)
	}
	if target == "" {
		return f, nil, nil
	}
	y, err := f.Col(target)
	if err != nil {
		return nil, nil, err
	}
	X, err := f.Drop(target)
	if err != nil {
		return nil, nil, err
	}
	return X, y, nil
}

func writeCSVFile(path string, out *frame.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := out.WriteCSV(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
