package commands

import (
	"fmt"

	"github.com/de-tools/survey-atlas/pkg/services/presets"
	"github.com/de-tools/survey-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type PresetsCmd struct {
	env  *Env
	file string
}

func NewPresetsCmd(env *Env) *cobra.Command {
	pc := &PresetsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "List preset scenarios or evaluate one of them",
		Args:  cobra.MaximumNArgs(1),
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.file, "file", "", "Path to an ini file with additional presets")

	return cmd
}

func (pc *PresetsCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if pc.file != "" {
		if err := presets.LoadInto(pc.env.Presets, pc.file); err != nil {
			return err
		}
	}

	if len(args) == 1 {
		p, err := pc.env.Presets.Get(args[0])
		if err != nil {
			return err
		}

		n, err := pc.env.Calculator.SampleSize(ctx, p.Input)
		if err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
		r := report.SampleSize(p.Input, n)
		r.Title = fmt.Sprintf("%s: %s", r.Title, p.Title)
		return pc.env.render(cmd, r)
	}

	list := pc.env.Presets.List()
	sizes := make(map[string]int64, len(list))
	for _, p := range list {
		n, err := pc.env.Calculator.SampleSize(ctx, p.Input)
		if err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
		sizes[p.Name] = n
	}

	return pc.env.render(cmd, report.Presets(list, sizes))
}
