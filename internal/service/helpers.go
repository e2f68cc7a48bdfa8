package service

import (
	"time"

	"github.com/alexanderramin/sitepace/internal/db"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/repository"
	"github.com/alexanderramin/sitepace/internal/scheduler"
)

// TxRepos binds repositories to the handle a unit of work passes in.
// Production code uses repository.NewSQLiteRepos.
type TxRepos func(tx db.DBTX) repository.Repos

// resolveNow returns now truncated to its UTC date, or today when now is nil.
func resolveNow(now *time.Time) time.Time {
	if now != nil {
		return domain.Today(*now)
	}
	return domain.Today(time.Now())
}

// historyByItem groups allocation rows into per-item actuals.
func historyByItem(allocs []*domain.DailyAllocation) map[string][]scheduler.DayActual {
	out := make(map[string][]scheduler.DayActual)
	for _, a := range allocs {
		out[a.WBSItemID] = append(out[a.WBSItemID], scheduler.DayActual{
			Date:     a.Date,
			Manpower: a.ActualManpower,
			QtyDone:  a.QtyDone,
		})
	}
	return out
}

// leafItems drops summary items, which carry no actuals of their own.
func leafItems(items []*domain.WBSItem) []*domain.WBSItem {
	out := make([]*domain.WBSItem, 0, len(items))
	for _, it := range items {
		if !it.IsSummary {
			out = append(out, it)
		}
	}
	return out
}
