package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/domain"
)

// FormatForecast renders per-item projections and the project summary.
func FormatForecast(resp *app.ForecastResponse) string {
	if len(resp.Forecasts) == 0 {
		return Dim("No work items to forecast.")
	}
	cols := []Column{
		{Title: "CODE"}, {Title: "PROGRESS"},
		{Title: "RATE", Right: true}, {Title: "CREW", Right: true},
		{Title: "DAYS LEFT", Right: true}, {Title: "END"},
		{Title: "MANDAY", Right: true}, {Title: "RISK"}, {Title: "NOTE"},
	}
	rows := make([][]string, 0, len(resp.Forecasts))
	for _, f := range resp.Forecasts {
		days := Dim("--")
		if f.EstDays != nil {
			days = fmt.Sprint(*f.EstDays)
		}
		rows = append(rows, []string{
			f.WBSCode,
			RenderProgress(f.ProgressPct, 10),
			fmt.Sprintf("%.3f", f.Productivity),
			Num(f.AvgRecentManpower),
			days,
			domain.FormatDate(f.PredictedEndDate),
			Num(f.PredictedTotalManday),
			RiskIndicator(f.RiskLevel),
			Dim(f.Recommendation),
		})
	}

	var b strings.Builder
	b.WriteString(RenderColumns(cols, rows))
	b.WriteString("\n" + forecastSummaryLine(resp.Summary))
	return RenderBox("Forecast", b.String())
}

func forecastSummaryLine(s app.ForecastSummary) string {
	parts := []string{Bold(fmt.Sprintf("%.1f%%", s.AvgProgressPct)) + " average progress"}
	if s.HighRisk > 0 {
		parts = append(parts, RiskColor(domain.RiskHigh).Render(fmt.Sprintf("%d high", s.HighRisk)))
	}
	if s.MediumRisk > 0 {
		parts = append(parts, RiskColor(domain.RiskMedium).Render(fmt.Sprintf("%d medium", s.MediumRisk)))
	}
	return strings.Join(parts, Dim("  ·  "))
}
