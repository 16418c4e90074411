package commands

import (
	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/services/formula"
	"github.com/de-tools/survey-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type MarginOfErrorCmd struct {
	env *Env
}

func NewMarginOfErrorCmd(env *Env) *cobra.Command {
	mc := &MarginOfErrorCmd{env: env}
	cmd := &cobra.Command{
		Use:   "margin-of-error",
		Short: "Compute the margin of error of a completed sample",
		Args:  cobra.NoArgs,
		RunE:  mc.run,
	}

	addConfidenceFlags(cmd.Flags())
	cmd.Flags().Int64("sample", 0, "Completed interviews")
	cmd.Flags().Int64("population", 0, "Population size; 0 means unbounded")
	cmd.Flags().Float64("observed", 0, "Observed share in percent; prints the interval around it")

	return cmd
}

func (mc *MarginOfErrorCmd) run(cmd *cobra.Command, args []string) error {
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

	in := domain.MarginOfErrorInput{
		Z:          z,
		P:          p,
		Sample:     v.GetInt64("sample"),
		Population: v.GetInt64("population"),
	}
	res := mc.env.Calculator.MarginOfError(cmd.Context(), in)

	var interval *domain.Interval
	if v.IsSet("observed") {
		iv := formula.IntervalAround(v.GetFloat64("observed"), res.MarginOfError)
		interval = &iv
	}

	return mc.env.render(cmd, report.MarginOfError(in, res, interval))
}
