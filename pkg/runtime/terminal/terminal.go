package terminal

import (
	"io"
	"os"

	"github.com/de-tools/survey-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/survey-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/survey-atlas/pkg/services/calculator"
	"github.com/de-tools/survey-atlas/pkg/services/presets"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env       *commands.Env
	output    io.Writer
	errOutput io.Writer
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Calculator calculator.Service
	Presets    presets.Registry
	Output     io.Writer
	// ErrOutput receives logs and errors. Defaults to os.Stderr.
	ErrOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}
	if opts.Calculator == nil {
		opts.Calculator = calculator.NewService(nil)
	}
	if opts.Presets == nil {
		opts.Presets = presets.NewDefaultRegistry()
	}

	cli := &CLI{
		env: &commands.Env{
			Calculator: opts.Calculator,
			Presets:    opts.Presets,
		},
		output:    opts.Output,
		errOutput: opts.ErrOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "survey",
		Short:             "Survey design calculators",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.setupLogging,
	}
	cmd.SetOut(cli.output)
	cmd.SetErr(cli.errOutput)

	cmd.PersistentFlags().StringP(commands.FlagOutput, "o", export.FormatTable, "Output format: table, text or json")
	cmd.PersistentFlags().String(commands.FlagInput, "", "YAML, JSON or TOML file with command parameters")
	cmd.PersistentFlags().BoolP(commands.FlagVerbose, "v", false, "Enable debug logging")

	cmd.AddCommand(commands.NewSampleSizeCmd(cli.env))
	cmd.AddCommand(commands.NewMarginOfErrorCmd(cli.env))
	cmd.AddCommand(commands.NewABTestCmd(cli.env))
	cmd.AddCommand(commands.NewStratifyCmd(cli.env))
	cmd.AddCommand(commands.NewFieldCostCmd(cli.env))
	cmd.AddCommand(commands.NewDemandCmd(cli.env))
	cmd.AddCommand(commands.NewPresetsCmd(cli.env))

	return cmd
}

func (cli *CLI) setupLogging(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool(commands.FlagVerbose)

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.errOutput}).
		Level(level).
		With().
		Timestamp().
		Str("command", cmd.Name()).
		Logger()

	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}
