package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/framelearn/adapter"
)

type kindView struct {
	Kind              string   `json:"kind" yaml:"kind"`
	Type              string   `json:"type" yaml:"type"`
	ColumnRestoration bool     `json:"column_restoration" yaml:"column_restoration"`
	Capabilities      string   `json:"capabilities" yaml:"capabilities"`
	Methods           []string `json:"methods" yaml:"methods"`
}

func newKindsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the registered estimator kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var views []kindView
			for _, kind := range a.registry.Kinds() {
				p, err := a.newProxy(kind)
				if err != nil {
					return err
				}
				views = append(views, kindView{
					Kind:              kind,
					Type:              p.Table().Owner(),
					ColumnRestoration: p.Restored(),
					Capabilities:      p.Capabilities().String(),
					Methods:           p.Methods(),
				})
			}
			return a.render(cmd, views, func(w io.Writer) error {
				rows := make([][]string, 0, len(views))
				for _, v := range views {
					rows = append(rows, []string{
						v.Kind,
						fmt.Sprint(v.ColumnRestoration),
						v.Capabilities,
						strings.Join(v.Methods, ", "),
					})
				}
				return writeTable(w, []string{"Kind", "Restored", "Capabilities", "Methods"}, rows)
			})
		},
	}
}

type methodView struct {
	Method     string `json:"method" yaml:"method"`
	Convention string `json:"convention" yaml:"convention"`
	Note       string `json:"note,omitempty" yaml:"note,omitempty"`
}

type inspectView struct {
	kindView `yaml:",inline"`
	Params   map[string]interface{} `json:"params" yaml:"params"`
	Members  []methodView           `json:"members" yaml:"members"`
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <kind>",
		Short: "Show how each method of a kind is adapted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			p, err := a.newProxy(kind)
			if err != nil {
				return err
			}
			table := p.Table()
			view := inspectView{
				kindView: kindView{
					Kind:              kind,
					Type:              table.Owner(),
					ColumnRestoration: p.Restored(),
					Capabilities:      p.Capabilities().String(),
					Methods:           p.Methods(),
				},
				Params: p.GetParams(false),
			}
			for _, name := range table.Members() {
				m := methodView{Method: name, Convention: table.Convention(name).String()}
				if err := table.Err(name); err != nil {
					m.Note = err.Error()
				}
				view.Members = append(view.Members, m)
			}

			return a.render(cmd, view, func(w io.Writer) error {
				fmt.Fprintf(w, "%s (%s) capabilities=%s restored=%v\n",
					kind, view.Type, view.Capabilities, view.ColumnRestoration)
				rows := make([][]string, 0, len(view.Members))
				for _, m := range view.Members {
					rows = append(rows, []string{m.Method, m.Convention, m.Note})
				}
				if err := writeTable(w, []string{"Method", "Convention", "Note"}, rows); err != nil {
					return err
				}
				return writeTable(w, []string{"Param", "Value"}, paramRows(view.Params))
			})
		},
	}
}

func paramRows(params map[string]interface{}) [][]string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, fmt.Sprint(params[k])})
	}
	return rows
}

// newProxy instantiates kind with default parameters and adapts it through
// the registry.
func (a *app) newProxy(kind string) (*adapter.Proxy, error) {
	est, err := a.registry.New(kind)
	if err != nil {
		return nil, err
	}
	return a.registry.Adapt(est), nil
}
