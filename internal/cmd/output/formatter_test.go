package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equiref/diverso/internal/cmd/output"
	"github.com/equiref/diverso/internal/cmd/table"
)

type fakeReport struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

func (r fakeReport) TableData() table.Data {
	return table.Data{
		Headers: []string{"Name", "Rows"},
		Rows:    [][]string{{r.Name, "2"}},
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatJSON)
	require.NoError(t, f.Format(&buf, fakeReport{Name: "survey", Rows: 2}))
	assert.JSONEq(t, `{"name":"survey","rows":2}`, buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatYAML)
	require.NoError(t, f.Format(&buf, fakeReport{Name: "survey", Rows: 2}))
	assert.Contains(t, buf.String(), "name: survey")
	assert.Contains(t, buf.String(), "rows: 2")
}

func TestTableFormatterUsesTabler(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatTable)
	require.NoError(t, f.Format(&buf, fakeReport{Name: "survey", Rows: 2}))
	assert.Contains(t, buf.String(), "survey")
	// Rendered as a table, not as the JSON fallback.
	assert.NotContains(t, buf.String(), `"name"`)
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatTable)
	require.NoError(t, f.Format(&buf, map[string]int{"rows": 2}))
	assert.Contains(t, buf.String(), `"rows": 2`)
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"table", "json", "yaml", "JSON", ""} {
		format, err := output.ParseFormat(valid)
		require.NoError(t, err, valid)
		assert.Equal(t, strings.ToLower(valid), string(format))
	}

	_, err := output.ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
