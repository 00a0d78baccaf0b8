package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat accepts table, json or yaml (yml). An empty string is table.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table", "text":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	valueStyle  = cellStyle.Align(lipgloss.Right)
)

// Table renders reports as a bordered text table, one block per report.
func Table(reports ...Report) string {
	var b strings.Builder
	for i, r := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "H0=%g Ωm=%g ΩΛ=%g (%s, Ωk=%.6f)\n", r.H0, r.OmegaM, r.OmegaLambda, r.Geometry, r.OmegaK)

		rows := make([][]string, len(r.Records))
		for j, rec := range r.Records {
			rows[j] = []string{rec.Label(), rec.Formatted()}
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Quantity", "Value").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case col == 1:
					return valueStyle
				default:
					return cellStyle
				}
			})
		b.WriteString(t.String())
		b.WriteString("\n")
	}
	return b.String()
}

// Write encodes reports to w. A single report is encoded as an object, more
// than one as a list.
func Write(w io.Writer, format Format, reports ...Report) error {
	var v any = reports
	if len(reports) == 1 {
		v = reports[0]
	}

	switch format {
	case FormatTable:
		_, err := io.WriteString(w, Table(reports...))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}
