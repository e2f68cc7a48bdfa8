package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/sitepace/internal/db"
	"github.com/alexanderramin/sitepace/internal/domain"
)

// MemStore is an in-memory stand-in for the SQLite repositories. Each field
// satisfies the matching repository interface and all share one lock, so a
// MemStore behaves like a single autocommit connection.
type MemStore struct {
	Projects    *MemProjects
	WBSItems    *MemWBSItems
	Allocations *MemAllocations
	Baselines   *MemBaselines
	Forecasts   *MemForecasts
	ChatLogs    *MemChatLogs
}

type memState struct {
	mu          sync.Mutex
	projects    map[string]*domain.Project
	items       map[string]*domain.WBSItem
	allocations map[string]*domain.DailyAllocation
	baselines   map[string]*domain.Baseline
	snapshots   map[string][]*domain.BaselineSnapshot
	forecasts   []*domain.Forecast
	chatLogs    []*domain.ChatActionLog
}

func NewMemStore() *MemStore {
	s := &memState{
		projects:    map[string]*domain.Project{},
		items:       map[string]*domain.WBSItem{},
		allocations: map[string]*domain.DailyAllocation{},
		baselines:   map[string]*domain.Baseline{},
		snapshots:   map[string][]*domain.BaselineSnapshot{},
	}
	return &MemStore{
		Projects:    &MemProjects{s},
		WBSItems:    &MemWBSItems{s},
		Allocations: &MemAllocations{s},
		Baselines:   &MemBaselines{s},
		Forecasts:   &MemForecasts{s},
		ChatLogs:    &MemChatLogs{s},
	}
}

// PassthroughUoW runs fn without a transaction. Use it with MemStore, whose
// repositories ignore the tx handle.
type PassthroughUoW struct{}

func (PassthroughUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return fn(ctx, nil)
}

type MemProjects struct{ s *memState }

func (r *MemProjects) Create(_ context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.projects {
		if existing.Code == p.Code {
			return domain.Invalid(domain.CodeProjectDuplicate, "project code %q already exists", p.Code)
		}
	}
	cp := *p
	r.s.projects[p.ID] = &cp
	return nil
}

func (r *MemProjects) GetByID(_ context.Context, id string) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	if !ok {
		return nil, domain.NotFound(domain.CodeProjectNotFound, "project %s not found", id)
	}
	cp := *p
	return &cp, nil
}

func (r *MemProjects) GetByCode(_ context.Context, code string) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.projects {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.NotFound(domain.CodeProjectNotFound, "project %s not found", code)
}

func (r *MemProjects) List(_ context.Context) ([]*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Project, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *MemProjects) Update(_ context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[p.ID]; !ok {
		return domain.NotFound(domain.CodeProjectNotFound, "project %s not found", p.ID)
	}
	cp := *p
	r.s.projects[p.ID] = &cp
	return nil
}

type MemWBSItems struct{ s *memState }

func (r *MemWBSItems) Create(_ context.Context, w *domain.WBSItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.byCode(w.ProjectID, w.Code) != nil {
		return domain.Invalid(domain.CodeWBSDuplicate, "wbs code %q already exists in project", w.Code)
	}
	cp := *w
	r.s.items[w.ID] = &cp
	return nil
}

func (r *MemWBSItems) byCode(projectID, code string) *domain.WBSItem {
	for _, it := range r.s.items {
		if it.ProjectID == projectID && it.Code == code {
			return it
		}
	}
	return nil
}

func (r *MemWBSItems) GetByID(_ context.Context, id string) (*domain.WBSItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, domain.NotFound(domain.CodeWBSNotFound, "wbs item %s not found", id)
	}
	cp := *it
	return &cp, nil
}

func (r *MemWBSItems) GetByCode(_ context.Context, projectID, code string) (*domain.WBSItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it := r.byCode(projectID, code)
	if it == nil {
		return nil, domain.NotFound(domain.CodeWBSNotFound, "wbs item %s not found", code)
	}
	cp := *it
	return &cp, nil
}

func (r *MemWBSItems) ListByProject(_ context.Context, projectID string) ([]*domain.WBSItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.WBSItem
	for _, it := range r.s.items {
		if it.ProjectID == projectID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func (r *MemWBSItems) Update(_ context.Context, w *domain.WBSItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[w.ID]; !ok {
		return domain.NotFound(domain.CodeWBSNotFound, "wbs item %s not found", w.ID)
	}
	if other := r.byCode(w.ProjectID, w.Code); other != nil && other.ID != w.ID {
		return domain.Invalid(domain.CodeWBSDuplicate, "wbs code %q already exists in project", w.Code)
	}
	cp := *w
	r.s.items[w.ID] = &cp
	return nil
}

func (r *MemWBSItems) Upsert(_ context.Context, w *domain.WBSItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing := r.byCode(w.ProjectID, w.Code); existing != nil {
		w.ID = existing.ID
		w.CreatedAt = existing.CreatedAt
	}
	cp := *w
	r.s.items[w.ID] = &cp
	return nil
}

type MemAllocations struct{ s *memState }

func allocKey(itemID string, date time.Time) string {
	return itemID + "|" + domain.FormatDate(date)
}

func (r *MemAllocations) Upsert(_ context.Context, p *domain.AllocationPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := allocKey(p.WBSItemID, p.Date)
	a, ok := r.s.allocations[key]
	if !ok {
		a = &domain.DailyAllocation{WBSItemID: p.WBSItemID, Date: domain.Today(p.Date)}
		r.s.allocations[key] = a
	}
	if p.PlannedManpower != nil {
		a.PlannedManpower = *p.PlannedManpower
	}
	if p.ActualManpower != nil {
		a.ActualManpower = *p.ActualManpower
	}
	if p.QtyDone != nil {
		a.QtyDone = *p.QtyDone
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
	a.Source = p.Source
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemAllocations) ListByItem(_ context.Context, wbsItemID string) ([]*domain.DailyAllocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.collect(func(a *domain.DailyAllocation) bool { return a.WBSItemID == wbsItemID }), nil
}

func (r *MemAllocations) ListByProject(_ context.Context, projectID string, from, to *time.Time) ([]*domain.DailyAllocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.collect(func(a *domain.DailyAllocation) bool {
		it, ok := r.s.items[a.WBSItemID]
		if !ok || it.ProjectID != projectID {
			return false
		}
		if from != nil && a.Date.Before(domain.Today(*from)) {
			return false
		}
		return to == nil || !a.Date.After(domain.Today(*to))
	}), nil
}

func (r *MemAllocations) collect(keep func(*domain.DailyAllocation) bool) []*domain.DailyAllocation {
	var out []*domain.DailyAllocation
	for _, a := range r.s.allocations {
		if keep(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].WBSItemID < out[j].WBSItemID
	})
	return out
}

type MemBaselines struct{ s *memState }

func (r *MemBaselines) NextVersion(_ context.Context, projectID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	next := 1
	for _, b := range r.s.baselines {
		if b.ProjectID == projectID && b.Version >= next {
			next = b.Version + 1
		}
	}
	return next, nil
}

func (r *MemBaselines) DeactivateAll(_ context.Context, projectID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.baselines {
		if b.ProjectID == projectID {
			b.IsActive = false
		}
	}
	return nil
}

func (r *MemBaselines) Create(_ context.Context, b *domain.Baseline) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.baselines {
		if existing.ProjectID != b.ProjectID {
			continue
		}
		if existing.Version == b.Version || (existing.IsActive && b.IsActive) {
			return domain.Conflict(domain.CodeVersionConflict, nil, "baseline version %d already taken", b.Version)
		}
	}
	cp := *b
	cp.Snapshots = nil
	r.s.baselines[b.ID] = &cp
	return nil
}

func (r *MemBaselines) CreateSnapshot(_ context.Context, s *domain.BaselineSnapshot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *s
	r.s.snapshots[s.BaselineID] = append(r.s.snapshots[s.BaselineID], &cp)
	return nil
}

func (r *MemBaselines) ListByProject(_ context.Context, projectID string) ([]*domain.Baseline, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Baseline
	for _, b := range r.s.baselines {
		if b.ProjectID == projectID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

func (r *MemBaselines) GetByVersion(_ context.Context, projectID string, version int) (*domain.Baseline, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.baselines {
		if b.ProjectID == projectID && b.Version == version {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.NotFound(domain.CodeBaselineNotFound, "baseline v%d not found", version)
}

func (r *MemBaselines) GetActive(_ context.Context, projectID string) (*domain.Baseline, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.baselines {
		if b.ProjectID == projectID && b.IsActive {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemBaselines) ListSnapshots(_ context.Context, baselineID string) ([]*domain.BaselineSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.BaselineSnapshot, 0, len(r.s.snapshots[baselineID]))
	for _, s := range r.s.snapshots[baselineID] {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

type MemForecasts struct{ s *memState }

func (r *MemForecasts) Create(_ context.Context, f *domain.Forecast) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *f
	r.s.forecasts = append(r.s.forecasts, &cp)
	return nil
}

// ListByProject returns newest first.
func (r *MemForecasts) ListByProject(_ context.Context, projectID string, limit int) ([]*domain.Forecast, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Forecast
	for i := len(r.s.forecasts) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if f := r.s.forecasts[i]; f.ProjectID == projectID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

type MemChatLogs struct{ s *memState }

func (r *MemChatLogs) Create(_ context.Context, l *domain.ChatActionLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.chatLogs = append(r.s.chatLogs, &cp)
	return nil
}

func (r *MemChatLogs) ListByProject(_ context.Context, projectID string, limit int) ([]*domain.ChatActionLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.ChatActionLog
	for i := len(r.s.chatLogs) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if l := r.s.chatLogs[i]; l.ProjectID == projectID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}
