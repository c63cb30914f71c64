package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ecoyoung/packform/internal/domain"
	"github.com/ecoyoung/packform/internal/taxonomy"
	"github.com/ecoyoung/packform/internal/usecase"
)

const none = "-"

type standardizeResult struct {
	Input string
	Label domain.Label
}

type classifyResult struct {
	Text      string
	Inference usecase.Inference
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

// renderReport prints the batch summary, the label distribution and the
// standardization examples.
func renderReport(w io.Writer, report domain.Report) {
	fillRate := none
	if report.FillRate != nil {
		fillRate = fmt.Sprintf("%.1f%%", *report.FillRate)
	}

	summary := newTable(w, "Batch "+report.BatchID)
	summary.AppendHeader(table.Row{"Metric", "Value"})
	summary.AppendRows([]table.Row{
		{"Total rows", report.TotalRows},
		{"Standardized", report.Standardized},
		{"Originally absent", report.OriginallyAbsent},
		{"Filled", report.Filled},
		{"Still absent", report.FinalAbsent},
		{"Fill rate", fillRate},
	})
	summary.Render()

	if len(report.Distribution) > 0 {
		dist := newTable(w, "Pack form distribution")
		dist.AppendHeader(table.Row{"Label", "Count"})
		for _, lc := range report.Distribution {
			dist.AppendRow(table.Row{lc.Label, lc.Count})
		}
		dist.Render()
	}

	if len(report.Examples) > 0 {
		examples := newTable(w, "Standardization examples")
		examples.AppendHeader(table.Row{"Row", "Product", "Label"})
		for _, ex := range report.Examples {
			examples.AppendRow(table.Row{ex.Row, ex.Text, ex.Label})
		}
		examples.Render()
	}
}

func renderStandardize(w io.Writer, results []standardizeResult) {
	t := newTable(w, "")
	t.AppendHeader(table.Row{"Input", "Label", "Kind"})
	for _, r := range results {
		label := r.Label.String()
		if r.Label.Kind() == domain.LabelAbsent {
			label = none
		}
		t.AppendRow(table.Row{r.Input, label, r.Label.Kind().String()})
	}
	t.Render()
}

func renderClassify(w io.Writer, results []classifyResult) {
	t := newTable(w, "")
	t.AppendHeader(table.Row{"Text", "Category", "Confidence", "Evidence"})
	for _, r := range results {
		category, evidence := none, none
		if r.Inference.Matched() {
			category = string(r.Inference.Category)
			evidence = strings.Join(r.Inference.Detection.Evidence, ", ")
		}
		t.AppendRow(table.Row{r.Text, category, fmt.Sprintf("%.1f", r.Inference.Confidence), evidence})
	}
	t.Render()
}

func renderCategories(w io.Writer, tax *taxonomy.Taxonomy) {
	t := newTable(w, "")
	t.AppendHeader(table.Row{"Category", "Description", "Rules", "Aliases"})
	for _, c := range domain.Categories {
		t.AppendRow(table.Row{c, c.Description(), tax.RuleCount(c), tax.AliasCount(c)})
	}
	t.Render()
}
