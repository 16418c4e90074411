package commands

import (
	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type FieldCostCmd struct {
	env *Env
}

func NewFieldCostCmd(env *Env) *cobra.Command {
	fc := &FieldCostCmd{env: env}
	cmd := &cobra.Command{
		Use:   "field-cost",
		Short: "Project fieldwork budget, contacts and hours",
		Args:  cobra.NoArgs,
		RunE:  fc.run,
	}

	cmd.Flags().Int64("sample", 0, "Completed interviews required")
	cmd.Flags().Float64("cpi", 0, "Cost per completed interview")
	cmd.Flags().Float64("incidence", 100, "Incidence rate in percent")
	cmd.Flags().Float64("minutes", 0, "Interview length in minutes")
	cmd.Flags().String("currency", "USD", "Currency label for amounts")

	return cmd
}

func (fc *FieldCostCmd) run(cmd *cobra.Command, args []string) error {
	v, err := settings(cmd)
	if err != nil {
		return err
	}

	in := domain.FieldCostInput{
		SampleSize:       v.GetInt64("sample"),
		CostPerInterview: v.GetFloat64("cpi"),
		IncidenceRate:    v.GetFloat64("incidence"),
		DurationMinutes:  v.GetFloat64("minutes"),
	}
	est, err := fc.env.Calculator.FieldCost(cmd.Context(), in)
	if err != nil {
		return err
	}

	return fc.env.render(cmd, report.FieldCost(in, est, v.GetString("currency")))
}
