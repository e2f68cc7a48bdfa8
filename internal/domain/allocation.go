package domain

import (
	"time"
)

// MaxManpower caps a single day's recorded crew size for one item.
const MaxManpower = 200

// DailyAllocation is the planned and actual effort for one item on one date.
// (WBSItemID, Date) is unique; writes overwrite.
type DailyAllocation struct {
	WBSItemID       string
	Date            time.Time
	PlannedManpower float64
	ActualManpower  float64
	QtyDone         float64
	Notes           string
	Source          AllocationSource
	UpdatedAt       time.Time
}

// AllocationPatch is a partial cell update. Nil fields leave the stored
// value untouched.
type AllocationPatch struct {
	WBSItemID       string
	Date            time.Time
	PlannedManpower *float64
	ActualManpower  *float64
	QtyDone         *float64
	Notes           *string
	Source          AllocationSource
}

// Validate checks value ranges of the fields present on the patch.
func (p *AllocationPatch) Validate() error {
	if p.PlannedManpower != nil && (*p.PlannedManpower < 0 || *p.PlannedManpower > MaxManpower) {
		return Invalid(CodeOutOfRange, "planned_manpower must be within 0-%d, got %g", MaxManpower, *p.PlannedManpower)
	}
	if p.ActualManpower != nil {
		if *p.ActualManpower < 0 {
			return Invalid(CodeNegativeValue, "actual_manpower must be >= 0, got %g", *p.ActualManpower)
		}
		if *p.ActualManpower > MaxManpower {
			return Invalid(CodeOutOfRange, "actual_manpower must be <= %d, got %g", MaxManpower, *p.ActualManpower)
		}
	}
	if p.QtyDone != nil && *p.QtyDone < 0 {
		return Invalid(CodeNegativeValue, "qty_done must be >= 0, got %g", *p.QtyDone)
	}
	if p.Source == "" {
		p.Source = SourceGrid
	}
	if !p.Source.Valid() {
		return Invalid(CodeInvalidSource, "source must be grid or chat, got %q", p.Source)
	}
	return nil
}

// ChatActionLog records a batch of structured actions applied from chat.
type ChatActionLog struct {
	ID           string
	ProjectID    string
	Actions      string
	UpdatedCount int
	ErrorCount   int
	CreatedAt    time.Time
}
