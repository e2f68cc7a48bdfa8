package importer

import (
	"strings"
	"time"

	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/google/uuid"
)

// ToItem converts a row into a new WBS item with a fresh id. The row index
// becomes the sort order. ParentID is left for the caller to resolve.
func ToItem(projectID string, row int, r WBSRow) *domain.WBSItem {
	now := time.Now().UTC()
	item := &domain.WBSItem{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Code:      strings.TrimSpace(r.Code),
		Name:      strings.TrimSpace(r.Name),
		Qty:       r.Qty,
		Unit:      strings.TrimSpace(r.Unit),
		SortOrder: row,
		IsSummary: r.IsSummary,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if r.Level != nil {
		item.Level = *r.Level
	}
	return item
}

// ChildLevel picks the stored level for an item: the explicit row level
// when given, else one below its parent, else top level.
func ChildLevel(r WBSRow, parent *domain.WBSItem) int {
	switch {
	case r.Level != nil:
		return *r.Level
	case parent != nil:
		return parent.Level + 1
	default:
		return 0
	}
}
