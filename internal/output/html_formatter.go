package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/rpgo/cashflow-projector/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"pct":   FormatPercentage,
	"date":  dateString,
	"flags": snapshotFlags,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// chartPoint is one period in the embedded net-worth chart data.
type chartPoint struct {
	Label       string `json:"label"`
	NetWorth    string `json:"net_worth"`
	Pessimistic string `json:"pessimistic"`
	Optimistic  string `json:"optimistic"`
}

func (h HTMLFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer

	forward := result.ForwardSnapshots()
	points := make([]chartPoint, 0, len(forward))
	for _, s := range forward {
		points = append(points, chartPoint{
			Label:       s.PeriodLabel,
			NetWorth:    s.NetWorth.StringFixed(2),
			Pessimistic: s.InvestmentBalance.Pessimistic.StringFixed(2),
			Optimistic:  s.InvestmentBalance.Optimistic.StringFixed(2),
		})
	}

	data := struct {
		*domain.ProjectionResult
		Assessment  Assessment
		Assumptions []string
		Chart       []chartPoint
	}{result, AnalyzeProjection(result), GenerateAssumptions(result), points}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
