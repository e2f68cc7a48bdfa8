package importer

import (
	"strings"

	"github.com/alexanderramin/sitepace/internal/domain"
)

// ValidateWBSFile checks every row on its own and returns one error per
// rejected row, keyed by row index. Parent existence is not checked here
// because parents may already be stored; the import service resolves them.
func ValidateWBSFile(f *WBSFile) map[int]*RowError {
	errs := make(map[int]*RowError)
	seen := make(map[string]int, len(f.Items))

	for i, row := range f.Items {
		item := ToItem("", i, row)
		if err := item.Validate(); err != nil {
			errs[i] = &RowError{Row: i, Err: err}
			continue
		}
		if strings.TrimSpace(row.ParentCode) == item.Code {
			errs[i] = &RowError{Row: i, Err: domain.Invalid(domain.CodeWBSHierarchy, "item %q cannot be its own parent", item.Code)}
			continue
		}
		if first, dup := seen[item.Code]; dup {
			errs[i] = &RowError{Row: i, Err: domain.Invalid(domain.CodeWBSDuplicate, "wbs code %q repeats row %d", item.Code, first)}
			continue
		}
		seen[item.Code] = i
	}
	return errs
}
