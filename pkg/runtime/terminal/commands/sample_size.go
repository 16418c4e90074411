package commands

import (
	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type SampleSizeCmd struct {
	env *Env
}

func NewSampleSizeCmd(env *Env) *cobra.Command {
	sc := &SampleSizeCmd{env: env}
	cmd := &cobra.Command{
		Use:   "sample-size",
		Short: "Estimate the interviews needed for a target margin of error",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}

	addConfidenceFlags(cmd.Flags())
	cmd.Flags().Float64("error", 5, "Target margin of error in percentage points")
	cmd.Flags().Int64("population", 0, "Population size; 0 means unbounded")

	return cmd
}

func (sc *SampleSizeCmd) run(cmd *cobra.Command, args []string) error {
	v, err := settings(cmd)
	if err != nil {
		return err
	}
	z, err := criticalValue(v)
	if err != nil {
		return err
	}
	p, err := heterogeneity(v)
	if err != nil {
		return err
	}

	in := domain.SampleSizeInput{
		Z:             z,
		P:             p,
		MarginOfError: v.GetFloat64("error"),
		Population:    v.GetInt64("population"),
	}
	n, err := sc.env.Calculator.SampleSize(cmd.Context(), in)
	if err != nil {
		return err
	}

	return sc.env.render(cmd, report.SampleSize(in, n))
}
