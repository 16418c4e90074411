package commands

import (
	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type DemandCmd struct {
	env *Env
}

func NewDemandCmd(env *Env) *cobra.Command {
	dc := &DemandCmd{env: env}
	cmd := &cobra.Command{
		Use:   "demand",
		Short: "Size a market through the five-layer demand funnel",
		Args:  cobra.NoArgs,
		RunE:  dc.run,
	}

	cmd.Flags().Int64("universe", 0, "Total population considered")
	cmd.Flags().Float64("potential", 100, "Share of the universe with the need, in percent")
	cmd.Flags().Float64("available", 100, "Share of potential with access and means, in percent")
	cmd.Flags().Float64("target", 100, "Share of available that is targeted, in percent")
	cmd.Flags().Float64("penetrated", 100, "Share of target expected to buy, in percent")
	cmd.Flags().Float64("frequency", 1, "Purchases per buyer per year")

	return cmd
}

func (dc *DemandCmd) run(cmd *cobra.Command, args []string) error {
	v, err := settings(cmd)
	if err != nil {
		return err
	}

	in := domain.DemandFunnelInput{
		Universe:      v.GetInt64("universe"),
		PotentialPct:  v.GetFloat64("potential"),
		AvailablePct:  v.GetFloat64("available"),
		TargetPct:     v.GetFloat64("target"),
		PenetratedPct: v.GetFloat64("penetrated"),
		Frequency:     v.GetFloat64("frequency"),
	}
	funnel, err := dc.env.Calculator.DemandFunnel(cmd.Context(), in)
	if err != nil {
		return err
	}

	return dc.env.render(cmd, report.DemandFunnel(funnel))
}
