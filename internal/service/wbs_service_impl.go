package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/db"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/importer"
	"github.com/alexanderramin/sitepace/internal/repository"
	"github.com/google/uuid"
)

type wbsService struct {
	projects repository.ProjectRepo
	items    repository.WBSItemRepo
	uow      db.UnitOfWork
	bind     TxRepos
	observer UseCaseObserver
}

func NewWBSService(
	projects repository.ProjectRepo,
	items repository.WBSItemRepo,
	uow db.UnitOfWork,
	bind TxRepos,
	observers ...UseCaseObserver,
) WBSService {
	return &wbsService{
		projects: projects,
		items:    items,
		uow:      uow,
		bind:     bind,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *wbsService) Create(ctx context.Context, w *domain.WBSItem) error {
	if _, err := s.projects.GetByID(ctx, w.ProjectID); err != nil {
		return err
	}
	if err := w.Validate(); err != nil {
		return err
	}
	if _, err := s.checkParent(ctx, w); err != nil {
		return err
	}
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	return s.items.Create(ctx, w)
}

// checkParent requires the parent to exist in the same project and, for a
// stored item, not to sit below the item itself.
func (s *wbsService) checkParent(ctx context.Context, w *domain.WBSItem) (*domain.WBSItem, error) {
	if w.ParentID == nil {
		return nil, nil
	}
	if w.ID != "" && *w.ParentID == w.ID {
		return nil, domain.Invalid(domain.CodeWBSHierarchy, "item %s cannot be its own parent", w.Code)
	}
	parent, err := s.items.GetByID(ctx, *w.ParentID)
	if err != nil {
		return nil, err
	}
	if parent.ProjectID != w.ProjectID {
		return nil, domain.Invalid(domain.CodeWBSHierarchy, "parent %s belongs to another project", parent.Code)
	}
	if w.ID == "" {
		return parent, nil
	}

	seen := map[string]bool{parent.ID: true}
	for cur := parent; cur.ParentID != nil; {
		if *cur.ParentID == w.ID {
			return nil, domain.Invalid(domain.CodeWBSHierarchy, "moving %s under %s would create a cycle", w.Code, parent.Code)
		}
		if seen[*cur.ParentID] {
			break
		}
		seen[*cur.ParentID] = true
		if cur, err = s.items.GetByID(ctx, *cur.ParentID); err != nil {
			return nil, err
		}
	}
	return parent, nil
}

func (s *wbsService) GetByID(ctx context.Context, id string) (*domain.WBSItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *wbsService) GetByCode(ctx context.Context, projectID, code string) (*domain.WBSItem, error) {
	return s.items.GetByCode(ctx, projectID, code)
}

func (s *wbsService) List(ctx context.Context, projectID string) ([]*domain.WBSItem, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.items.ListByProject(ctx, projectID)
}

// Update saves w. When the parent changes, w takes the level below its new
// parent and every descendant shifts by the same amount.
func (s *wbsService) Update(ctx context.Context, w *domain.WBSItem) error {
	if err := w.Validate(); err != nil {
		return err
	}
	parent, err := s.checkParent(ctx, w)
	if err != nil {
		return err
	}
	stored, err := s.items.GetByID(ctx, w.ID)
	if err != nil {
		return err
	}

	var moved []*domain.WBSItem
	if !sameParent(stored.ParentID, w.ParentID) {
		w.Level = 0
		if parent != nil {
			w.Level = parent.Level + 1
		}
		all, err := s.items.ListByProject(ctx, w.ProjectID)
		if err != nil {
			return err
		}
		moved = descendants(all, w.ID)
		for _, d := range moved {
			d.Level = max(d.Level+w.Level-stored.Level, 0)
		}
	}

	now := time.Now().UTC()
	w.UpdatedAt = now
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		items := s.bind(tx).WBSItems
		if err := items.Update(ctx, w); err != nil {
			return err
		}
		for _, d := range moved {
			d.UpdatedAt = now
			if err := items.Update(ctx, d); err != nil {
				return fmt.Errorf("relevelling %s: %w", d.Code, err)
			}
		}
		return nil
	})
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// descendants returns every item below rootID, parents before children.
func descendants(items []*domain.WBSItem, rootID string) []*domain.WBSItem {
	kids := make(map[string][]*domain.WBSItem, len(items))
	for _, it := range items {
		if it.ParentID != nil {
			kids[*it.ParentID] = append(kids[*it.ParentID], it)
		}
	}
	var out []*domain.WBSItem
	seen := map[string]bool{rootID: true}
	queue := []string{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, k := range kids[id] {
			if seen[k.ID] {
				continue
			}
			seen[k.ID] = true
			out = append(out, k)
			queue = append(queue, k.ID)
		}
	}
	return out
}

func (s *wbsService) CheckHierarchy(ctx context.Context, projectID string) ([]error, error) {
	items, err := s.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return domain.ValidateHierarchy(items), nil
}

func (s *wbsService) ImportFile(ctx context.Context, projectID, path string) (*app.ImportResult, error) {
	file, err := importer.LoadWBSFile(path)
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, domain.Invalid(domain.CodeImportInvalidFile, "reading %s: %v", path, err)
	}
	return s.Import(ctx, projectID, file)
}

// Import upserts every valid row in one transaction. Invalid rows and rows
// whose parent cannot be resolved are reported and skipped; storage
// failures roll the whole import back.
func (s *wbsService) Import(ctx context.Context, projectID string, file *importer.WBSFile) (result *app.ImportResult, err error) {
	fields := map[string]any{"project_id": projectID, "rows": len(file.Items)}
	defer observe(ctx, s.observer, "import-wbs", fields, &err)()

	if _, err = s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	rowErrs := importer.ValidateWBSFile(file)
	result = &app.ImportResult{}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := s.bind(tx)
		byCode := make(map[string]*domain.WBSItem, len(file.Items))

		for i, row := range file.Items {
			if rerr, bad := rowErrs[i]; bad {
				result.Errors = append(result.Errors, rowError(i, row.Code, rerr.Err))
				continue
			}

			parent, perr := s.resolveParent(ctx, repos.WBSItems, projectID, row.ParentCode, byCode)
			if errors.Is(perr, domain.ErrValidation) {
				result.Errors = append(result.Errors, rowError(i, row.Code, perr))
				continue
			}
			if perr != nil {
				return perr
			}

			item := importer.ToItem(projectID, i, row)
			item.Level = importer.ChildLevel(row, parent)
			if err := item.Validate(); err != nil {
				result.Errors = append(result.Errors, rowError(i, row.Code, err))
				continue
			}
			if parent != nil {
				item.ParentID = &parent.ID
			}
			if err := repos.WBSItems.Upsert(ctx, item); err != nil {
				return fmt.Errorf("importing row %d (%s): %w", i, item.Code, err)
			}
			byCode[item.Code] = item
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["imported"] = result.Imported
	fields["errors"] = len(result.Errors)
	return result, nil
}

// resolveParent finds a parent by code among rows imported so far, then
// among stored items. An empty code means a root item.
func (s *wbsService) resolveParent(ctx context.Context, items repository.WBSItemRepo, projectID, code string, byCode map[string]*domain.WBSItem) (*domain.WBSItem, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	if p, ok := byCode[code]; ok {
		return p, nil
	}
	p, err := items.GetByCode(ctx, projectID, code)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Invalid(domain.CodeWBSHierarchy, "parent code %q not found", code)
	}
	return p, err
}

func rowError(row int, code string, err error) app.ItemError {
	e := app.NewItemError(err)
	e.Row = row
	e.WBSCode = code
	return e
}
