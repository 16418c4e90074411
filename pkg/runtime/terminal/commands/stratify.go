package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/services/report"
	"github.com/de-tools/survey-atlas/pkg/services/strata"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stratumInput is a stratum as written in an --input file.
type stratumInput struct {
	Name       string  `mapstructure:"name"`
	Population float64 `mapstructure:"population"`
}

type StratifyCmd struct {
	env *Env
}

func NewStratifyCmd(env *Env) *cobra.Command {
	sc := &StratifyCmd{env: env}
	cmd := &cobra.Command{
		Use:   "stratify",
		Short: "Split a sample across strata proportionally to their population",
		Example: `  survey stratify --target 400 --stratum North=5000 --stratum South=15000
  survey stratify --input plan.yaml --method largest_remainder`,
		Args: cobra.NoArgs,
		RunE: sc.run,
	}

	cmd.Flags().Int64("target", 0, "Total sample to allocate")
	cmd.Flags().String("method", string(domain.AllocationProportional),
		"Allocation method: proportional or largest_remainder")
	cmd.Flags().StringArray("stratum", nil, "Stratum as name=population; repeat for each stratum")

	return cmd
}

func (sc *StratifyCmd) run(cmd *cobra.Command, args []string) error {
	v, err := settings(cmd)
	if err != nil {
		return err
	}

	list, err := sc.strata(cmd, v)
	if err != nil {
		return err
	}

	set, err := strata.NewSet(list...)
	if err != nil {
		return err
	}
	alloc, err := sc.env.Calculator.Allocate(
		cmd.Context(),
		v.GetInt64("target"),
		set.List(),
		domain.AllocationMethod(v.GetString("method")),
	)
	if err != nil {
		return err
	}

	return sc.env.render(cmd, report.Allocation(alloc))
}

// strata reads the --stratum flags, falling back to the "strata" list of the
// input file.
func (sc *StratifyCmd) strata(cmd *cobra.Command, v *viper.Viper) ([]domain.Stratum, error) {
	if cmd.Flags().Changed("stratum") {
		values, err := cmd.Flags().GetStringArray("stratum")
		if err != nil {
			return nil, err
		}

		out := make([]domain.Stratum, 0, len(values))
		for _, value := range values {
			s, err := parseStratum(value)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}

	var inputs []stratumInput
	if err := v.UnmarshalKey("strata", &inputs); err != nil {
		return nil, fmt.Errorf("failed to read strata: %w", err)
	}

	out := make([]domain.Stratum, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, domain.Stratum{Name: in.Name, Population: in.Population})
	}
	return out, nil
}

func parseStratum(value string) (domain.Stratum, error) {
	i := strings.LastIndex(value, "=")
	if i <= 0 {
		return domain.Stratum{}, fmt.Errorf("invalid stratum %q: expected name=population", value)
	}

	pop, err := strconv.ParseFloat(strings.TrimSpace(value[i+1:]), 64)
	if err != nil {
		return domain.Stratum{}, fmt.Errorf("invalid population in stratum %q: %w", value, err)
	}
	return domain.Stratum{Name: strings.TrimSpace(value[:i]), Population: pop}, nil
}
