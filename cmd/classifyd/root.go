package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"classifyd/internal/config"
)

// cliFlags collects flag values; zero values mean "not set" and leave lower
// precedence sources in place.
type cliFlags struct {
	configPath  string
	corsOrigins string
	over        config.Config
}

func buildRootCmd() *cobra.Command {
	f := &cliFlags{}
	root := &cobra.Command{
		Use:           "classifyd",
		Short:         "Furniture image classification server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", "", "Config file (.yaml, .yml, .json, .toml)")
	root.PersistentFlags().StringVar(&f.over.LogLevel, "log-level", "", "Log level: debug|info|warn|error (default info)")
	root.PersistentFlags().StringVar(&f.over.LogFormat, "log-format", "", "Log format: json|console (default json)")

	serveCmd := &cobra.Command{
		Use:     "serve",
		Short:   "Fetch the model if missing, load it and serve HTTP",
		Example: "  classifyd serve\n  classifyd serve --addr :8080 --threshold 75",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(f)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			if err := runServe(ctx, cfg, log); err != nil {
				log.Error().Err(err).Msg("serve failed")
				return err
			}
			return nil
		},
	}
	addModelFlags(serveCmd, f)
	serveCmd.Flags().StringVar(&f.over.Addr, "addr", "", "HTTP listen address (default 0.0.0.0:5000)")
	serveCmd.Flags().StringVar(&f.over.ViewPath, "view", "", "Homepage HTML document (default app/view/index.html)")
	serveCmd.Flags().StringVar(&f.over.StaticDir, "static-dir", "", "Directory served under /static (default app/static)")
	serveCmd.Flags().Float64Var(&f.over.ThresholdPercent, "threshold", 0, "Acceptance threshold in percent (default 69)")
	serveCmd.Flags().IntVar(&f.over.MaxImagePixels, "max-image-pixels", 0, "Largest accepted width*height of an upload (default 40000000)")
	serveCmd.Flags().IntVar(&f.over.Workers, "workers", 0, "Concurrent inferences (default number of CPUs)")
	serveCmd.Flags().StringVar(&f.corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins (default *)")

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the model artifact if missing, then exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(f)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			if _, err := runFetch(ctx, cfg, log); err != nil {
				log.Error().Err(err).Msg("fetch failed")
				return err
			}
			return nil
		},
	}
	addModelFlags(fetchCmd, f)

	root.AddCommand(serveCmd, fetchCmd)
	return root
}

func addModelFlags(cmd *cobra.Command, f *cliFlags) {
	cmd.Flags().StringVar(&f.over.ModelURL, "model-url", "", "Model artifact URL fetched when the local file is missing; must point at an ONNX export (the default serves the fastai pickle, which is refused at load)")
	cmd.Flags().StringVar(&f.over.ModelPath, "model-path", "", "Local model artifact path (default app/export_model.onnx)")
	cmd.Flags().StringVar(&f.over.ModelSHA256, "model-sha256", "", "Expected sha256 of a fresh download")
}

// resolveConfig applies defaults < config file < environment < flags.
func resolveConfig(f *cliFlags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		fc, err := config.Load(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = cfg.Merge(fc)
	}
	env, err := config.FromEnv()
	if err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	cfg = cfg.Merge(env)

	over := f.over
	if f.corsOrigins != "" {
		over.CORSOrigins = config.SplitCSV(f.corsOrigins)
	}
	cfg = cfg.Merge(over)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
