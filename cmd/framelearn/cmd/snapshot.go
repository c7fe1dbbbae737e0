package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/framelearn/adapter"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

func newSnapshotCmd(a *app) *cobra.Command {
	var (
		sets []string
		file string
	)
	cmd := &cobra.Command{
		Use:   "snapshot <kind>",
		Short: "Build a snapshot of a kind with the given parameters",
		Long: `snapshot instantiates a registered kind, applies --set parameters and prints
the persisted form. With --file the snapshot is also written to disk, as YAML
for .yaml and .yml files and as JSON otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.buildProxy(args[0], sets)
			if err != nil {
				return err
			}
			snap, err := a.registry.Persist(p)
			if err != nil {
				return err
			}
			if file != "" {
				if err := a.writeSnapshot(file, p, snap); err != nil {
					return err
				}
			}
			return a.render(cmd, snap, func(w io.Writer) error {
				fmt.Fprintf(w, "%s restored=%v id=%s\n", snap.Kind, snap.ColumnRestoration, snap.ID)
				return writeTable(w, []string{"Param", "Value"}, paramRows(snap.Params))
			})
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "parameter as key=value, the value is parsed as YAML (repeatable)")
	cmd.Flags().StringVar(&file, "file", "", "write the snapshot to this file")
	return cmd
}

// parseSets turns key=value pairs into a parameter map. Values are decoded as
// YAML scalars, so 10 is an int, 0.5 a float and true a bool.
func parseSets(sets []string) (map[string]interface{}, error) {
	params := make(map[string]interface{}, len(sets))
	for _, s := range sets {
		key, raw, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return nil, errors.NewValidationError("set", "must be key=value", s)
		}
		var v interface{}
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			return nil, errors.Wrapf(err, "parse value of %s", key)
		}
		params[key] = v
	}
	return params, nil
}

// buildProxy instantiates kind and applies the --set parameters.
func (a *app) buildProxy(kind string, sets []string) (*adapter.Proxy, error) {
	params, err := parseSets(sets)
	if err != nil {
		return nil, err
	}
	p, err := a.newProxy(kind)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		if err := p.SetParams(params); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func isYAML(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (a *app) writeSnapshot(filename string, p *adapter.Proxy, snap *adapter.Snapshot) error {
	if !isYAML(filename) {
		return a.registry.SaveFile(filename, p)
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "encode snapshot")
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", filename)
	}
	return nil
}

// readSnapshot restores a proxy from a JSON or YAML snapshot file.
func (a *app) readSnapshot(filename string) (*adapter.Proxy, error) {
	if !isYAML(filename) {
		return a.registry.LoadFile(filename)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filename)
	}
	var snap adapter.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrapf(err, "decode %s", filename)
	}
	return a.registry.Reconstruct(&snap)
}
