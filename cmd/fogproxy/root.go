package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fogproxy/internal/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// options are the command line values layered over the config file.
type options struct {
	configPath string
	logLevel   string
	logPretty  bool

	addr        string
	modelsPath  string
	policy      string
	backendURL  string
	corsOrigins string
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&options{configPath: os.Getenv("FOGPROXY_CONFIG")})
}

// newRootCmdWith constructs the command tree bound to opts.
func newRootCmdWith(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "fogproxy",
		Short:         "Fog computing inference proxy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", opts.configPath, "Config file (.yaml, .json, .toml); defaults to FOGPROXY_CONFIG")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	pf.BoolVar(&opts.logPretty, "log-pretty", false, "Human-readable console logs")
	pf.StringVar(&opts.modelsPath, "models", "", "Model catalog file or directory")

	root.AddCommand(newServeCmd(opts), newModelsCmd(opts), newVersionCmd())
	return root
}

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the proxy HTTP server",
		Example: "  fogproxy serve -c fog.yaml\n  fogproxy serve --models models.yaml --policy detour --backend-url http://127.0.0.1:8000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", "", "HTTP listen address, e.g. :8080")
	f.StringVar(&opts.policy, "policy", "", "Routing policy: sed|random|rrobin|mintime|detour")
	f.StringVar(&opts.backendURL, "backend-url", "", "Inference server base URL (empty runs the echo backend)")
	f.StringVar(&opts.corsOrigins, "cors-origins", "", "Comma-separated CORS origins; enables CORS when set")
	return cmd
}

func newModelsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Print the model catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			models, err := loadCatalog(cfg.ModelsPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range models {
				fmt.Fprintf(out, "%-32s accuracy=%-8g cost=%g\n", m.Name, m.Accuracy, m.Cost)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "fogproxy", version)
		},
	}
}

// loadConfig reads the config file (if any), applies flags that were set
// explicitly, fills defaults and validates.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	var cfg config.Config
	if opts.configPath != "" {
		c, err := config.Load(opts.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-pretty") {
		cfg.LogPretty = opts.logPretty
	}
	if flags.Changed("models") {
		cfg.ModelsPath = opts.modelsPath
	}
	if flags.Changed("addr") {
		cfg.Addr = opts.addr
	}
	if flags.Changed("policy") {
		cfg.Policy = opts.policy
	}
	if flags.Changed("backend-url") {
		cfg.Backend.URL = opts.backendURL
		cfg.Backend.Kind = ""
	}
	if flags.Changed("cors-origins") {
		cfg.CORS.Origins = splitCSV(opts.corsOrigins)
		cfg.CORS.Enabled = len(cfg.CORS.Origins) > 0
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
