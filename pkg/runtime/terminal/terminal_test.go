package terminal

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/survey-atlas/pkg/services/formula"
	"github.com/de-tools/survey-atlas/pkg/services/presets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportDoc struct {
	Title      string `json:"title"`
	Calculator string `json:"calculator"`
	Sections   []struct {
		Title   string                 `json:"title"`
		Summary map[string]interface{} `json:"summary"`
		Details []struct {
			Name  string      `json:"name"`
			Value interface{} `json:"value"`
		} `json:"details"`
	} `json:"sections"`
}

func (r reportDoc) value(t *testing.T, section, name string) interface{} {
	t.Helper()
	for _, s := range r.Sections {
		if s.Title != section {
			continue
		}
		for _, d := range s.Details {
			if d.Name == name {
				return d.Value
			}
		}
	}
	t.Fatalf("detail %q not found in section %q", name, section)
	return nil
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cli := NewCLI(Options{Output: &out, ErrOutput: &errOut})
	cli.rootCmd.SetArgs(args)

	err := cli.Execute()
	return out.String(), err
}

func runJSON(t *testing.T, args ...string) reportDoc {
	t.Helper()

	out, err := run(t, append(args, "--output", "json")...)
	require.NoError(t, err)

	var doc reportDoc
	require.NoError(t, json.Unmarshal([]byte(out), &doc), out)
	return doc
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSampleSizeCommand(t *testing.T) {
	input := writeInput(t, "study.yaml", "error: 5\npopulation: 500\n")

	tests := []struct {
		name     string
		args     []string
		expected float64
	}{
		{name: "defaults", args: []string{"sample-size"}, expected: 385},
		{name: "confidence in percent", args: []string{"sample-size", "--confidence", "99", "--error", "2"}, expected: 4148},
		{name: "explicit z", args: []string{"sample-size", "--z", "1.645", "--error", "7"}, expected: 139},
		{name: "input file", args: []string{"sample-size", "--input", input}, expected: 218},
		{name: "flag overrides input file", args: []string{"sample-size", "--input", input, "--error", "2"}, expected: 414},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := runJSON(t, tt.args...)
			assert.Equal(t, "sample-size", doc.Calculator)
			assert.Equal(t, tt.expected, doc.value(t, "Result", "Sample size"))
		})
	}
}

func TestSampleSizeCommand_InvalidHeterogeneity(t *testing.T) {
	_, err := run(t, "sample-size", "--heterogeneity", "1.5")
	assert.ErrorIs(t, err, formula.ErrInvalidInput)
}

func TestSampleSizeCommand_TinyMargin(t *testing.T) {
	_, err := run(t, "sample-size", "--error", "1e-9")
	assert.ErrorIs(t, err, formula.ErrNotComputable)
}

func TestMarginOfErrorCommand(t *testing.T) {
	doc := runJSON(t, "margin-of-error", "--sample", "385", "--observed", "50")

	assert.Equal(t, "±4.99", doc.value(t, "Result", "Margin of error"))
	assert.Equal(t, "standard", doc.value(t, "Result", "Precision"))
	assert.Equal(t, "45.01 - 54.99", doc.value(t, "Result", "Interval"))
}

func TestABTestCommand(t *testing.T) {
	t.Run("not computable", func(t *testing.T) {
		_, err := run(t, "ab-test", "--a-sample", "0", "--b-sample", "100", "--b-successes", "10")
		assert.ErrorIs(t, err, formula.ErrNotComputable)
	})

	t.Run("significant", func(t *testing.T) {
		out, err := run(t, "ab-test",
			"--a-sample", "1000", "--a-successes", "200",
			"--b-sample", "1000", "--b-successes", "270")
		require.NoError(t, err)
		assert.Contains(t, out, "99%")
	})
}

func TestStratifyCommand(t *testing.T) {
	t.Run("strata from flags", func(t *testing.T) {
		doc := runJSON(t, "stratify", "--target", "400", "--stratum", "North=5000", "--stratum", "South=15000")

		assert.Equal(t, 100.0, doc.value(t, "Allocation", "North"))
		assert.Equal(t, 300.0, doc.value(t, "Allocation", "South"))
	})

	t.Run("strata from input file", func(t *testing.T) {
		input := writeInput(t, "plan.yaml", `
target: 100
method: largest_remainder
strata:
  - name: A
    population: 1
  - name: B
    population: 1
  - name: C
    population: 1
`)
		doc := runJSON(t, "stratify", "--input", input)

		assert.Equal(t, 34.0, doc.value(t, "Allocation", "A"))
		assert.Equal(t, 33.0, doc.value(t, "Allocation", "B"))
		assert.Equal(t, 0.0, doc.Sections[0].Summary["Drift"])
	})

	t.Run("malformed stratum", func(t *testing.T) {
		_, err := run(t, "stratify", "--target", "10", "--stratum", "North")
		assert.ErrorContains(t, err, "name=population")
	})

	t.Run("no strata", func(t *testing.T) {
		_, err := run(t, "stratify", "--target", "10")
		assert.ErrorIs(t, err, formula.ErrNotComputable)
	})
}

func TestFieldCostCommand(t *testing.T) {
	out, err := run(t, "field-cost", "--sample", "100", "--cpi", "12.5", "--incidence", "25",
		"--minutes", "20", "--output", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Total Amount: USD 1250.00")
	assert.Contains(t, out, "- Contacts needed: 400 contacts")
	assert.Contains(t, out, "Efficiency: critical")

	_, err = run(t, "field-cost", "--sample", "100", "--incidence", "0")
	assert.ErrorIs(t, err, formula.ErrNotComputable)
}

func TestDemandCommand(t *testing.T) {
	doc := runJSON(t, "demand", "--universe", "100000", "--available", "80",
		"--target", "50", "--penetrated", "10", "--frequency", "12")

	assert.Equal(t, 4000.0, doc.value(t, "Market layers", "penetrated"))
	assert.Equal(t, 48000.0, doc.Sections[0].Summary["Annual demand"])

	_, err := run(t, "demand", "--universe", "100000", "--frequency", "1e308")
	assert.ErrorIs(t, err, formula.ErrNotComputable)
}

func TestPresetsCommand(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		doc := runJSON(t, "presets")

		assert.Equal(t, 4148.0, doc.value(t, "Scenarios", "electoral"))
		assert.Equal(t, 139.0, doc.value(t, "Scenarios", "mvp"))
		assert.Equal(t, 218.0, doc.value(t, "Scenarios", "workplace"))
	})

	t.Run("single", func(t *testing.T) {
		doc := runJSON(t, "presets", "workplace")
		assert.Equal(t, 218.0, doc.value(t, "Result", "Sample size"))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := run(t, "presets", "census")
		assert.ErrorIs(t, err, presets.ErrPresetNotFound)
	})

	t.Run("extra file", func(t *testing.T) {
		file := writeInput(t, "extra.ini", "[panel]\ntitle = Consumer panel\nconfidence = 0.95\nerror = 5\n")
		doc := runJSON(t, "presets", "--file", file)
		assert.Equal(t, 385.0, doc.value(t, "Scenarios", "panel"))
	})
}

func TestUnsupportedOutput(t *testing.T) {
	_, err := run(t, "sample-size", "--output", "xml")
	assert.ErrorContains(t, err, "unsupported output format")
}
