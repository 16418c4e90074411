package main

import (
	"fmt"
	"os"

	"github.com/de-tools/survey-atlas/pkg/runtime/terminal"
	"github.com/de-tools/survey-atlas/pkg/services/calculator"
	"github.com/de-tools/survey-atlas/pkg/services/presets"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Calculator: calculator.NewService(nil),
		Presets:    presets.NewDefaultRegistry(),
		Output:     os.Stdout,
		ErrOutput:  os.Stderr,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
