package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sitepace/internal/app"
)

// FormatDigest renders the daily digest: KPIs, highlights and concerns.
func FormatDigest(resp *app.DigestResponse) string {
	var b strings.Builder
	k := resp.KPI
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		kpi("workers", Num(k.TotalWorkers), TrendStyled(k.WorkerTrend, 0)),
		kpi("output", fmt.Sprintf("%.1f", k.QtyToday), TrendStyled(k.QtyTrend, 1)),
		kpi("active items", fmt.Sprint(k.ActiveItems), "")))
	b.WriteString(RenderProgress(k.OverallProgress, 20) + Dim(" overall") + "\n")

	if len(resp.Highlights) > 0 {
		b.WriteString("\n" + Header("Highlights") + "\n")
		for _, h := range resp.Highlights {
			b.WriteString(fmt.Sprintf("  %s %s %s  %s\n",
				StyleGreen.Render("▲"), Bold(h.WBSCode), h.WBSName,
				Dim(fmt.Sprintf("%s done by %s", Num(h.QtyToday), Num(h.Workers)))))
		}
	}
	if len(resp.Concerns) > 0 {
		b.WriteString("\n" + Header("Concerns") + "\n")
		for _, c := range resp.Concerns {
			b.WriteString(fmt.Sprintf("  %s %s %s  %s\n",
				StyleYellow.Render("!"), Bold(c.WBSCode), c.WBSName,
				Dim(fmt.Sprintf("%s (%s workers)", c.Issue, Num(c.Workers)))))
		}
	}
	b.WriteString("\n" + Dim(resp.Summary))
	return RenderBox("Digest "+resp.Date, b.String())
}

func kpi(label, value, trend string) string {
	s := Bold(value) + " " + Dim(label)
	if trend != "" {
		s += " " + trend
	}
	return s
}
