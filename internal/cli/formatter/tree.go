package formatter

import (
	"strings"

	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title   string
	Level   int
	IsLast  bool
	Summary bool
	Detail  string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders TreeItems as an indented tree with box-drawing
// connectors. Summary nodes are bold and detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		if item.Summary {
			title = Bold(title)
		}
		content := Dim(prefix) + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render("[ " + item.Detail + " ]")
		}
		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := maxContentWidth - lipgloss.Width(li.content)
		if pad < 0 {
			pad = 0
		}
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
	}
	return b.String()
}

// WBSTree orders items depth-first under their parents, keeping the
// stored sibling order. Items whose parent is missing are shown as roots.
func WBSTree(items []*domain.WBSItem) []TreeItem {
	byID := make(map[string]bool, len(items))
	for _, it := range items {
		byID[it.ID] = true
	}
	children := make(map[string][]*domain.WBSItem)
	var roots []*domain.WBSItem
	for _, it := range items {
		if it.ParentID != nil && byID[*it.ParentID] {
			children[*it.ParentID] = append(children[*it.ParentID], it)
			continue
		}
		roots = append(roots, it)
	}

	var out []TreeItem
	var walk func(nodes []*domain.WBSItem, depth int)
	walk = func(nodes []*domain.WBSItem, depth int) {
		for i, it := range nodes {
			ti := TreeItem{
				Title:   it.Code + "  " + it.Name,
				Level:   depth,
				IsLast:  i == len(nodes)-1,
				Summary: it.IsSummary,
			}
			if !it.IsSummary {
				ti.Detail = Num(it.Qty) + " " + it.Unit
			}
			out = append(out, ti)
			walk(children[it.ID], depth+1)
		}
	}
	walk(roots, 0)
	return out
}
