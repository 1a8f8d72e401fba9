// Package commands holds the pystarter cobra command tree.
package commands

import (
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-pystarter/internal/config"
	"github.com/goliatone/go-pystarter/pkg/layout"
	"github.com/goliatone/go-pystarter/pkg/orchestrator"
	"github.com/goliatone/go-pystarter/pkg/render"
	"github.com/goliatone/go-pystarter/pkg/renderers/tui"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	v        *viper.Viper
	cfgFile  string
	envFiles []string
	cfg      config.Config
	prompts  tui.PromptDriver
}

// Option customises the command tree, mainly for tests.
type Option func(*app)

// WithViper uses v instead of a fresh viper instance.
func WithViper(v *viper.Viper) Option {
	return func(a *app) {
		if v != nil {
			a.v = v
		}
	}
}

// WithPromptDriver replaces the survey driver used by the prompt command.
func WithPromptDriver(driver tui.PromptDriver) Option {
	return func(a *app) {
		a.prompts = driver
	}
}

// NewRootCmd builds the pystarter command tree.
func NewRootCmd(options ...Option) *cobra.Command {
	a := &app{v: viper.New()}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}

	root := &cobra.Command{
		Use:   "pystarter",
		Short: "Generate boilerplate for a new Python package",
		Long: `pystarter derives package and repository names from a project name and
renders the folder layout, shell commands, pyproject.toml and mkdocs.yml
for a new Python package. Nothing is written to disk.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "Config file (default ~/.config/pystarter/config.yaml)")
	flags.StringSliceVar(&a.envFiles, "env-file", nil, "Env files to load before reading config (default .env)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("layout", "", "Layout file overriding the built-in tabs and field help")
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLayoutFile, flags.Lookup("layout"))

	root.AddCommand(
		newServeCmd(a),
		newRenderCmd(a),
		newPromptCmd(a),
		newNormalizeCmd(a),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		log.WithError(err).Error("pystarter")
		return 1
	}
	return 0
}

func (a *app) initConfig(errOut io.Writer) error {
	if err := config.Init(a.v, a.cfgFile, a.envFiles...); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log.SetHandler(cli.New(errOut))
	log.SetLevel(cfg.Level())
	return nil
}

// orchestrator assembles the pipeline from the resolved config.
func (a *app) orchestrator() (*orchestrator.Orchestrator, error) {
	options := []orchestrator.Option{
		orchestrator.WithCacheSize(a.cfg.CacheSize),
		orchestrator.WithDefaultRenderer(a.cfg.Renderer),
	}

	if a.cfg.LayoutFile != "" {
		l, err := layout.LoadFile(a.cfg.LayoutFile)
		if err != nil {
			return nil, err
		}
		log.WithField("file", a.cfg.LayoutFile).Debug("layout loaded")
		options = append(options, orchestrator.WithLayout(l))
	}

	selector, err := render.NewManifestSelector(a.cfg.Theme, a.cfg.Variant, render.DefaultThemeManifest())
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	options = append(options, orchestrator.WithThemeSelector(selector))

	return orchestrator.New(options...), nil
}
