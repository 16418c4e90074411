package commands

import (
	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type ABTestCmd struct {
	env *Env
}

func NewABTestCmd(env *Env) *cobra.Command {
	ac := &ABTestCmd{env: env}
	cmd := &cobra.Command{
		Use:   "ab-test",
		Short: "Test whether two conversion rates differ significantly",
		Args:  cobra.NoArgs,
		RunE:  ac.run,
	}

	cmd.Flags().Int64("a-sample", 0, "Visitors in variant A")
	cmd.Flags().Int64("a-successes", 0, "Conversions in variant A")
	cmd.Flags().Int64("b-sample", 0, "Visitors in variant B")
	cmd.Flags().Int64("b-successes", 0, "Conversions in variant B")

	return cmd
}

func (ac *ABTestCmd) run(cmd *cobra.Command, args []string) error {
	v, err := settings(cmd)
	if err != nil {
		return err
	}

	a := domain.ABGroup{Sample: v.GetInt64("a-sample"), Successes: v.GetInt64("a-successes")}
	b := domain.ABGroup{Sample: v.GetInt64("b-sample"), Successes: v.GetInt64("b-successes")}

	res, err := ac.env.Calculator.ABTest(cmd.Context(), a, b)
	if err != nil {
		return err
	}

	return ac.env.render(cmd, report.ABTest(a, b, res))
}
