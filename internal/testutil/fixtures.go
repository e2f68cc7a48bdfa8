package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/google/uuid"
)

var testCodeCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithStartDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &d
	}
}

func WithEndDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.EndDate = &d
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectCode(code string) ProjectOption {
	return func(p *domain.Project) {
		p.Code = code
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		Code:      fmt.Sprintf("PRJ-%03d", testCodeCounter.Add(1)),
		Name:      name,
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WBS item options
type WBSOption func(*domain.WBSItem)

func WithQty(q float64) WBSOption {
	return func(w *domain.WBSItem) {
		w.Qty = q
	}
}

func WithParent(id string) WBSOption {
	return func(w *domain.WBSItem) {
		w.ParentID = &id
		w.Level = 1
	}
}

func AsSummary() WBSOption {
	return func(w *domain.WBSItem) {
		w.IsSummary = true
	}
}

func WithSortOrder(i int) WBSOption {
	return func(w *domain.WBSItem) {
		w.SortOrder = i
	}
}

func WithUnit(u string) WBSOption {
	return func(w *domain.WBSItem) {
		w.Unit = u
	}
}

func NewTestWBSItem(projectID, code string, opts ...WBSOption) *domain.WBSItem {
	now := time.Now().UTC().Truncate(time.Second)
	w := &domain.WBSItem{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Code:      code,
		Name:      code + " work",
		Unit:      "m2",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Cell builds an allocation patch for one item and date. Zero manpower or
// qty are written as explicit zeros.
func Cell(wbsItemID, date string, manpower, qtyDone float64) *domain.AllocationPatch {
	return &domain.AllocationPatch{
		WBSItemID:      wbsItemID,
		Date:           MustDate(date),
		ActualManpower: Float(manpower),
		QtyDone:        Float(qtyDone),
		Source:         domain.SourceGrid,
	}
}

// MustDate parses YYYY-MM-DD and panics on malformed input.
func MustDate(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func Float(v float64) *float64 { return &v }

func String(s string) *string { return &s }
