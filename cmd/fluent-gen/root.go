package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fluent-gen/internal/config"
	"fluent-gen/internal/logger"
)

// app carries what every subcommand needs once the root has run.
type app struct {
	out io.Writer
	cfg config.Config
	log *zap.Logger

	configPath string
	logLevel   string
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, log: logger.Nop()}

	root := &cobra.Command{
		Use:           "fluent-gen",
		Short:         "Inspect and render type documents for fluent builder generation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to "+config.FileName)
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(
		newRenderCmd(a),
		newFindCmd(a),
		newParamsCmd(a),
		newDumpCmd(a),
		newPluginsCmd(a),
	)

	return root
}

func (a *app) setup() error {
	v, err := config.NewViper(a.configPath)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		v.Set("log.level", a.logLevel)
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log

	a.log.Debug("configuration loaded",
		zap.String("config", a.configPath),
		zap.String("mergeStrategy", string(cfg.Strategy())),
		zap.String("hostVersion", cfg.Plugins.HostVersion),
		zap.Int("maxDepth", cfg.Generator.MaxDepth))

	return nil
}
