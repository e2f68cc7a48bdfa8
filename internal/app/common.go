package app

import "github.com/alexanderramin/sitepace/internal/domain"

// ItemError is one rejected entry of a partial-success batch.
type ItemError struct {
	WBSItemID string
	WBSCode   string
	Date      string
	Row       int
	Code      string
	Error     string
}

// NewItemError copies the stable code out of err when it carries one.
func NewItemError(err error) ItemError {
	return ItemError{Code: domain.CodeOf(err), Error: err.Error()}
}

// WBSProgress is the all-time progress row of one item.
type WBSProgress struct {
	WBSItemID        string
	Code             string
	Name             string
	Unit             string
	Level            int
	IsSummary        bool
	Qty              float64
	QtyDone          float64
	Remaining        float64
	ProgressPct      float64
	TotalManday      float64
	WorkingDays      int
	ProductivityRate float64
}
