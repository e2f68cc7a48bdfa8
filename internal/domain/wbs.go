package domain

import (
	"regexp"
	"strings"
	"time"
)

var wbsCodePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// WBSItem is one node of a project's work breakdown structure. Summary
// items group children and carry no quantity of their own.
type WBSItem struct {
	ID        string
	ProjectID string
	ParentID  *string
	Code      string
	Name      string
	Qty       float64
	Unit      string
	SortOrder int
	Level     int
	IsSummary bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate normalizes and checks an item before it is written.
func (w *WBSItem) Validate() error {
	w.Code = strings.TrimSpace(w.Code)
	w.Name = strings.TrimSpace(w.Name)
	if w.Code == "" || len(w.Code) > maxCodeLen || !wbsCodePattern.MatchString(w.Code) {
		return Invalid(CodeWBSInvalidCode, "wbs code %q must be 1-%d letters, digits, '.', '_' or '-'", w.Code, maxCodeLen)
	}
	if w.Name == "" || len(w.Name) > maxNameLen {
		return Invalid(CodeWBSInvalidCode, "wbs name must be 1-%d characters", maxNameLen)
	}
	if w.Qty < 0 {
		return Invalid(CodeNegativeValue, "qty must be >= 0, got %g", w.Qty)
	}
	if w.Level < 0 || w.SortOrder < 0 {
		return Invalid(CodeNegativeValue, "level and sort order must be >= 0")
	}
	if w.Unit == "" {
		w.Unit = "pcs"
	}
	if len(w.Unit) > 20 {
		return Invalid(CodeWBSInvalidCode, "unit %q longer than 20 characters", w.Unit)
	}
	return nil
}

// ValidateHierarchy reports summary items without children, items whose
// parent is missing from the set, and parent chains that loop.
func ValidateHierarchy(items []*WBSItem) []error {
	byID := make(map[string]*WBSItem, len(items))
	children := make(map[string]int, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	var errs []error
	for _, it := range items {
		if it.ParentID == nil {
			continue
		}
		if _, ok := byID[*it.ParentID]; !ok {
			errs = append(errs, Invalid(CodeWBSHierarchy, "item %s references unknown parent %s", it.Code, *it.ParentID))
			continue
		}
		children[*it.ParentID]++
	}
	for _, it := range items {
		if it.IsSummary && children[it.ID] == 0 {
			errs = append(errs, Invalid(CodeWBSHierarchy, "summary item %s has no children", it.Code))
		}
	}
	for _, it := range items {
		if inCycle(it, byID) {
			errs = append(errs, Invalid(CodeWBSHierarchy, "item %s is its own ancestor", it.Code))
		}
	}
	return errs
}

// inCycle follows parent links from it and reports whether they lead back
// to it. Chains ending at a root or an unknown parent are acyclic.
func inCycle(it *WBSItem, byID map[string]*WBSItem) bool {
	seen := map[string]bool{it.ID: true}
	cur := it
	for cur.ParentID != nil {
		next, ok := byID[*cur.ParentID]
		if !ok {
			return false
		}
		if next.ID == it.ID {
			return true
		}
		if seen[next.ID] {
			return false
		}
		seen[next.ID] = true
		cur = next
	}
	return false
}
