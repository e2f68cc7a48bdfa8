package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/domain"
)

// FormatWBSList renders a project's items as a tree.
func FormatWBSList(project *domain.Project, items []*domain.WBSItem) string {
	if len(items) == 0 {
		return Dim("No WBS items in " + project.Code + ".")
	}
	return RenderBox("WBS "+project.Code, RenderTree(WBSTree(items)))
}

// FormatHierarchyCheck lists structural problems or a clean bill.
func FormatHierarchyCheck(errs []error) string {
	if len(errs) == 0 {
		return StyleGreen.Render("✔ hierarchy is consistent")
	}
	var b strings.Builder
	b.WriteString(StyleYellow.Render(fmt.Sprintf("%d hierarchy issue(s)", len(errs))) + "\n")
	for _, err := range errs {
		b.WriteString("  " + StyleRed.Render("✖") + " " + err.Error() + "\n")
	}
	return b.String()
}

// FormatImportResult summarizes a WBS import with its rejected rows.
func FormatImportResult(res *app.ImportResult) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render(fmt.Sprintf("Imported %d item(s)", res.Imported)))
	if len(res.Errors) == 0 {
		return b.String() + "\n"
	}
	b.WriteString(", " + StyleRed.Render(fmt.Sprintf("%d row(s) rejected", len(res.Errors))) + "\n\n")
	rows := make([][]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		rows = append(rows, []string{fmt.Sprint(e.Row), e.WBSCode, Dim(e.Code), e.Error})
	}
	b.WriteString(RenderTable([]string{"ROW", "CODE", "ERROR CODE", "MESSAGE"}, rows))
	return b.String()
}

// FormatBatchResult summarizes an allocation batch with its rejected cells.
func FormatBatchResult(res *app.BatchResult) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render(fmt.Sprintf("Updated %d cell(s)", res.UpdatedCount)))
	if len(res.Errors) == 0 {
		return b.String() + "\n"
	}
	b.WriteString(", " + StyleRed.Render(fmt.Sprintf("%d rejected", len(res.Errors))) + "\n\n")
	rows := make([][]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		item := e.WBSCode
		if item == "" {
			item = TruncID(e.WBSItemID)
		}
		rows = append(rows, []string{item, e.Date, Dim(e.Code), e.Error})
	}
	b.WriteString(RenderTable([]string{"ITEM", "DATE", "ERROR CODE", "MESSAGE"}, rows))
	return b.String()
}
