package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/pajak/internal/domain"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"rp":  FormatRupiah,
	"pct": FormatPercentage,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.CalculationReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.CalculationReport
		Assumptions []string
	}{report, Assumptions(report.Rules)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
