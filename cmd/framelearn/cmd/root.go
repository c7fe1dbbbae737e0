// Package cmd implements the framelearn command line interface.
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/framelearn/adapter"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
	"github.com/YuminosukeSato/framelearn/pkg/log"
	"github.com/YuminosukeSato/framelearn/preprocessing"
	"github.com/YuminosukeSato/framelearn/sklearn/feature_selection"
	"github.com/YuminosukeSato/framelearn/sklearn/linear_model"
)

const envPrefix = "FRAMELEARN"

// app holds the state shared by every subcommand of one command tree.
type app struct {
	v        *viper.Viper
	cfgFile  string
	registry *adapter.Registry
	promReg  *prometheus.Registry
}

// Execute builds the command tree and runs it with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns a fresh command tree with its own configuration.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "framelearn",
		Short: "Run matrix estimators on labeled frames",
		Long: `framelearn adapts matrix-based estimators so they accept labeled frames and
return labeled results. It lists the registered estimator kinds, builds and
restores snapshots, and runs estimators over CSV data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.dumpMetrics(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.framelearn/config.yaml)")
	flags.StringP("output", "o", "table", "output format: table, json or yaml")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.Bool("metrics", false, "write adapter metrics in Prometheus text format to stderr")
	for _, name := range []string{"output", "log-level", "metrics"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		newKindsCmd(a),
		newInspectCmd(a),
		newSnapshotCmd(a),
		newRunCmd(a),
		newScoresCmd(a),
	)
	return root
}

// setup reads the config file and environment, installs the logger and
// builds the registry.
func (a *app) setup(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".framelearn"))
		}
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return errors.Wrap(err, "read config")
		}
	}

	level, err := log.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	log.SetProvider(log.NewZerologProvider(cmd.ErrOrStderr(), level))

	if _, err := outputFormat(a.v.GetString("output")); err != nil {
		return err
	}

	var opts []adapter.Option
	if a.v.GetBool("metrics") {
		a.promReg = prometheus.NewRegistry()
		m, err := adapter.NewMetrics(a.promReg)
		if err != nil {
			return err
		}
		opts = append(opts, adapter.WithMetrics(m))
	}
	a.registry, err = newRegistry(opts...)
	return err
}

// newRegistry registers every estimator package shipped with framelearn.
func newRegistry(opts ...adapter.Option) (*adapter.Registry, error) {
	r := adapter.NewRegistry(opts...)
	for _, register := range []func(*adapter.Registry) ([]string, error){
		preprocessing.Register,
		feature_selection.Register,
		linear_model.Register,
	} {
		if _, err := register(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (a *app) dumpMetrics(cmd *cobra.Command) error {
	if a.promReg == nil {
		return nil
	}
	families, err := a.promReg.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.FmtText)
	for _, mf := range families {
		if err := encoder.Encode(mf); err != nil {
			return errors.Wrapf(err, "encode metric %s", mf.GetName())
		}
	}
	_, err = cmd.ErrOrStderr().Write(buf.Bytes())
	return err
}
