package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"sigs.k8s.io/yaml"

	"github.com/lethe222/lottie-preview-huanfu/internal/fixer"
)

// Report formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatNone  = "none"
)

// Reports writes a summary of the processed documents to w in the given format.
func Reports(w io.Writer, format string, reports []*fixer.Report) error {
	var data []byte
	var err error
	switch format {
	case FormatNone:
		return nil
	case FormatTable:
		data = reportsAsTable(reports)
	case FormatJSON:
		data, err = reportsAsJSON(reports)
	case FormatYAML:
		data, err = yaml.Marshal(summaries(reports))
	default:
		err = fmt.Errorf("unknown report format: %q", format)
	}
	if err != nil {
		return fmt.Errorf("rendering report as %q failed: %w", format, err)
	}
	_, err = io.Copy(w, bytes.NewReader(data))
	return err
}

// summary is the serialised form of a report.
type summary struct {
	Input      string         `json:"input"`
	Output     string         `json:"output"`
	InputSize  int64          `json:"inputSize"`
	OutputSize int64          `json:"outputSize"`
	Reduction  int64          `json:"reduction"`
	Removed    map[string]int `json:"removed,omitempty"`
	Replaced   map[string]int `json:"replaced,omitempty"`
	Duration   string         `json:"duration"`
}

func summaries(reports []*fixer.Report) []summary {
	list := make([]summary, 0, len(reports))
	for _, r := range reports {
		list = append(list, summary{
			Input:      r.Input,
			Output:     r.Output,
			InputSize:  r.InputSize,
			OutputSize: r.OutputSize,
			Reduction:  r.Reduction(),
			Removed:    r.Stats.Removed,
			Replaced:   r.Stats.Replaced,
			Duration:   r.Duration.String(),
		})
	}
	return list
}

func reportsAsJSON(reports []*fixer.Report) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summaries(reports)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func reportsAsTable(reports []*fixer.Report) []byte {
	var buf bytes.Buffer
	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.AppendHeader(table.Row{"Input", "Output", "Original", "Fixed", "Reduced", "Removed", "Replaced"})
	var totalIn, totalOut int64
	for _, r := range reports {
		totalIn += r.InputSize
		totalOut += r.OutputSize
		t.AppendRow(table.Row{
			r.Input,
			r.Output,
			KiB(r.InputSize),
			KiB(r.OutputSize),
			KiB(r.Reduction()),
			counts(r.Stats.Removed),
			counts(r.Stats.Replaced),
		})
	}
	if len(reports) > 1 {
		t.AppendFooter(table.Row{"", "", KiB(totalIn), KiB(totalOut), KiB(totalIn - totalOut), "", ""})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
	return buf.Bytes()
}

// KiB formats a byte count in kilobytes with two decimals.
func KiB(n int64) string {
	return fmt.Sprintf("%.2f KB", float64(n)/1024)
}

// counts formats per key counts as "ti=1 to=2", or "0" if there are none.
func counts(m map[string]int) string {
	if len(m) == 0 {
		return "0"
	}
	parts := make([]string, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, " ")
}
