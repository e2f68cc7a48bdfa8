package repository

import (
	"github.com/alexanderramin/sitepace/internal/db"
)

// Repos bundles every repository bound to one connection or transaction.
type Repos struct {
	Projects    ProjectRepo
	WBSItems    WBSItemRepo
	Allocations AllocationRepo
	Baselines   BaselineRepo
	Forecasts   ForecastRepo
	ChatLogs    ChatLogRepo
}

// NewSQLiteRepos binds all SQLite repositories to conn. Pass a *sql.DB for
// autocommit access or the DBTX handed to UnitOfWork.WithinTx.
func NewSQLiteRepos(conn db.DBTX) Repos {
	return Repos{
		Projects:    NewSQLiteProjectRepo(conn),
		WBSItems:    NewSQLiteWBSItemRepo(conn),
		Allocations: NewSQLiteAllocationRepo(conn),
		Baselines:   NewSQLiteBaselineRepo(conn),
		Forecasts:   NewSQLiteForecastRepo(conn),
		ChatLogs:    NewSQLiteChatLogRepo(conn),
	}
}
