package commands

import (
	"fmt"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/survey-atlas/pkg/services/calculator"
	"github.com/de-tools/survey-atlas/pkg/services/formula"
	"github.com/de-tools/survey-atlas/pkg/services/presets"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flags shared by every command through the root command.
const (
	FlagOutput  = "output"
	FlagInput   = "input"
	FlagVerbose = "verbose"
)

// Env carries the services the commands evaluate against.
type Env struct {
	Calculator calculator.Service
	Presets    presets.Registry
}

// settings binds the command flags into a fresh viper instance and overlays
// the values of the --input file, if any. Flags set on the command line win
// over the file, which wins over flag defaults.
func settings(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.LocalFlags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	input, err := cmd.Flags().GetString(FlagInput)
	if err != nil || input == "" {
		return v, nil
	}

	v.SetConfigFile(input)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", input, err)
	}
	return v, nil
}

func (e *Env) render(cmd *cobra.Command, report *domain.Report) error {
	format, _ := cmd.Flags().GetString(FlagOutput)
	handler, err := export.NewHandler(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return handler.Handle(report)
}

func addConfidenceFlags(flags *pflag.FlagSet) {
	flags.Float64("confidence", 95, "Confidence level in percent (90, 95, 99 or any value in (0, 100))")
	flags.Float64("z", 0, "Critical value; overrides --confidence when positive")
	flags.Float64("heterogeneity", domain.DefaultHeterogeneity, "Expected proportion p in [0, 1]")
}

// criticalValue resolves z from the "z" key, falling back to "confidence"
// given in percent.
func criticalValue(v *viper.Viper) (float64, error) {
	if z := v.GetFloat64("z"); z > 0 {
		return z, nil
	}
	return formula.ZForConfidence(v.GetFloat64("confidence") / 100)
}

func heterogeneity(v *viper.Viper) (float64, error) {
	p := v.GetFloat64("heterogeneity")
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("heterogeneity %v outside [0, 1]: %w", p, formula.ErrInvalidInput)
	}
	return p, nil
}
