package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sitepace/internal/domain"
)

// FormatProjectList renders projects inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"CODE", "NAME", "STATUS", "START", "END"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		code := p.Code
		if strings.TrimSpace(code) == "" {
			code = TruncID(p.ID)
		}
		rows = append(rows, []string{
			code,
			Bold(p.Name),
			StatusPill(p.Status),
			DateCell(p.StartDate),
			DateCell(p.EndDate),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectShow renders a project card with its WBS tree.
func FormatProjectShow(p *domain.Project, items []*domain.WBSItem, now time.Time) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(p.Name) + "  " + Dim(p.Code) + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("STATUS"), StatusPill(p.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("ID    "), TruncID(p.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("START "), DateCell(p.StartDate)))
	end := DateCell(p.EndDate)
	if p.EndDate != nil {
		end += "  " + Dim("("+RelativeDateFrom(*p.EndDate, now)+")")
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("END   "), end))

	b.WriteString("\n" + Header("Work breakdown") + "\n")
	if len(items) == 0 {
		b.WriteString(Dim("No WBS items yet."))
	} else {
		b.WriteString(RenderTree(WBSTree(items)))
	}
	return RenderBox("", b.String())
}
