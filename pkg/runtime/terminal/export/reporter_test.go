package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport() *domain.Report {
	return &domain.Report{
		Title:       "Field cost estimate",
		Calculator:  "field-cost",
		TotalAmount: 1250,
		Currency:    "USD",
		Sections: []domain.ReportSection{
			{
				Title:   "Field effort",
				Summary: map[string]interface{}{"Efficiency": "critical"},
				Details: []domain.ReportDetail{
					{Name: "Contacts needed", Value: int64(400), Unit: "contacts"},
					{Name: "Screened out", Value: int64(300), Unit: "contacts", Description: "Most contacts are screened out."},
				},
			},
		},
	}
}

func TestNewHandler(t *testing.T) {
	tests := []struct {
		format   string
		expected interface{}
		wantErr  bool
	}{
		{format: "", expected: &Reporter{}},
		{format: FormatTable, expected: &Reporter{}},
		{format: FormatText, expected: &TextReporter{}},
		{format: FormatJSON, expected: &JSONReporter{}},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			h, err := NewHandler(tt.format, &bytes.Buffer{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.expected, h)
		})
	}
}

func TestReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Handle(testReport()))

	out := buf.String()
	assert.Contains(t, out, "Field cost estimate")
	assert.Contains(t, out, "Total Amount: USD 1250.00")
	assert.Contains(t, out, "=== Field effort ===")
	assert.Contains(t, out, "Efficiency: critical")

	var rows []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "| ") {
			rows = append(rows, line)
		}
	}
	require.Len(t, rows, 3)
	assert.Contains(t, rows[1], "Contacts needed")
	assert.Contains(t, rows[1], "400")
	assert.Equal(t, len(rows[0]), len(rows[2]), "rows should be aligned")
}

func TestReporter_OmitsTotalWithoutCurrency(t *testing.T) {
	r := testReport()
	r.Currency = ""

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Handle(r))
	assert.NotContains(t, buf.String(), "Total Amount")
}

func TestTextReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextReporter(&buf).Handle(testReport()))

	out := buf.String()
	assert.Contains(t, out, "- Contacts needed: 400 contacts")
	assert.Contains(t, out, "  Most contacts are screened out.")
}

func TestJSONReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONReporter(&buf).Handle(testReport()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "field-cost", decoded["calculator"])
	assert.Equal(t, 1250.0, decoded["total_amount"])

	sections := decoded["sections"].([]interface{})
	require.Len(t, sections, 1)
	details := sections[0].(map[string]interface{})["details"].([]interface{})
	require.Len(t, details, 2)
	assert.Equal(t, 400.0, details[0].(map[string]interface{})["value"])
}
