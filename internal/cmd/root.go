package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/atikulmunna/jsonpretty/internal/input"
	"github.com/atikulmunna/jsonpretty/internal/model"
	"github.com/atikulmunna/jsonpretty/internal/output"
	"github.com/atikulmunna/jsonpretty/internal/source"
)

var _ pflag.Value = (*model.Level)(nil)

// version is set at build time with -ldflags "-X ...cmd.version=...".
var version = "dev"

// Config is the resolved command-line configuration.
type Config struct {
	Level   model.Level `mapstructure:"level"`
	Color   bool        `mapstructure:"color"`
	NoColor bool        `mapstructure:"no-color"`
	Debug   bool        `mapstructure:"debug"`
}

// UseColor decides whether output is colorized. Explicit flags win;
// otherwise color follows whether stdout is a terminal.
func (c Config) UseColor(isTerminal bool) bool {
	switch {
	case c.NoColor:
		return false
	case c.Color:
		return true
	default:
		return isTerminal
	}
}

// NewRootCmd builds the jsonpretty command.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	level := model.Trace

	cmd := &cobra.Command{
		Use:   "jsonpretty [files or globs...]",
		Short: "Pretty-print newline-delimited JSON logs",
		Long: `jsonpretty reads JSON log records, one per line, and prints them as
readable text. Each record needs "time", "level" and "message" fields; any
other fields are shown inline when short or in an indented block when long.

Lines that are not valid records are printed as-is, followed by the reason.

Examples:
  myservice | jsonpretty
  myservice | jsonpretty --level warn --no-color
  jsonpretty "logs/**/*.json"`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return run(cmd, cfg, args)
		},
	}

	flags := cmd.Flags()
	flags.VarP(&level, "level", "l", "only show messages at or above this level (trace, debug, info, warn, error, fatal)")
	flags.Bool("color", false, "colorize output (default: only when stdout is a terminal)")
	flags.Bool("no-color", false, "never colorize output")
	flags.Bool("debug", false, "log diagnostics to stderr")
	_ = flags.MarkHidden("debug")
	cmd.MarkFlagsMutuallyExclusive("color", "no-color")

	cobra.CheckErr(v.BindPFlags(flags))
	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg Config, args []string) error {
	log := newLogger(cmd.ErrOrStderr(), cfg.Debug)

	inputs, err := input.Resolve(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	color := cfg.UseColor(isTerminal(out))
	log.WithFields(logrus.Fields{
		"min_level": cfg.Level.Name(),
		"color":     color,
		"inputs":    len(inputs),
	}).Debug("starting")

	renderer := output.NewTextRenderer(out, output.Options{Color: color})
	p := source.New(cfg.Level, renderer, log)

	for _, in := range inputs {
		if err := processInput(p, in); err != nil {
			return err
		}
	}

	stats := p.Stats()
	log.WithFields(logrus.Fields{
		"lines":        stats.Lines,
		"emitted":      stats.Emitted,
		"filtered":     stats.Filtered,
		"parse_errors": stats.ParseErrors,
	}).Debug("end of input")
	return nil
}

func processInput(p *source.Processor, in input.Input) error {
	rc, err := in.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", in.Name, err)
	}
	defer rc.Close()

	if err := p.Process(rc); err != nil {
		return fmt.Errorf("%s: %w", in.Name, err)
	}
	return nil
}

func newLogger(w io.Writer, debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
