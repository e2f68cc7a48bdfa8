package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/repository"
	"github.com/alexanderramin/sitepace/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAllocationService(repos repository.Repos, observers ...UseCaseObserver) AllocationService {
	return NewAllocationService(repos.Projects, repos.WBSItems, repos.Allocations, repos.ChatLogs, observers...)
}

func TestAllocationService_BatchUpdate_PartialFailure(t *testing.T) {
	ctx := context.Background()
	repos, _, _ := setupRepos(t)
	svc := newAllocationService(repos)
	proj := seedProject(t, repos)
	a := seedItem(t, repos, proj.ID, "A", testutil.WithQty(100))
	b := seedItem(t, repos, proj.ID, "B", testutil.WithQty(50))

	result, err := svc.BatchUpdate(ctx, proj.ID, []app.CellUpdate{
		{WBSItemID: a.ID, Date: "2026-02-17", ActualManpower: testutil.Float(6), QtyDone: testutil.Float(12)},
		{WBSItemID: b.ID, Date: "2026-02-17", ActualManpower: testutil.Float(-2)},
	}, domain.SourceGrid)
	require.NoError(t, err)
	assert.Equal(t, 1, result.UpdatedCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, b.ID, result.Errors[0].WBSItemID)
	assert.Equal(t, "2026-02-17", result.Errors[0].Date)
	assert.Equal(t, "B", result.Errors[0].WBSCode)
	assert.Equal(t, domain.CodeNegativeValue, result.Errors[0].Code)

	rows, err := repos.Allocations.ListByItem(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 6.0, rows[0].ActualManpower)
	assert.Equal(t, 12.0, rows[0].QtyDone)
	assert.Equal(t, domain.SourceGrid, rows[0].Source)

	rows, err = repos.Allocations.ListByItem(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAllocationService_BatchUpdate_CellErrors(t *testing.T) {
	ctx := context.Background()
	repos, _, _ := setupRepos(t)
	svc := newAllocationService(repos)
	proj := seedProject(t, repos)
	other := seedProject(t, repos)
	sum := seedItem(t, repos, proj.ID, "1", testutil.AsSummary())
	leaf := seedItem(t, repos, proj.ID, "1.1", testutil.WithParent(sum.ID))
	foreign := seedItem(t, repos, other.ID, "Z")

	tests := []struct {
		name string
		cell app.CellUpdate
		code string
	}{
		{"summary item", app.CellUpdate{WBSItemID: sum.ID, Date: "2026-02-17", ActualManpower: testutil.Float(1)}, domain.CodeWBSHierarchy},
		{"item of another project", app.CellUpdate{WBSItemID: foreign.ID, Date: "2026-02-17", ActualManpower: testutil.Float(1)}, domain.CodeWBSNotFound},
		{"bad date", app.CellUpdate{WBSItemID: leaf.ID, Date: "17/02/2026", ActualManpower: testutil.Float(1)}, domain.CodeDateInvalid},
		{"crew above cap", app.CellUpdate{WBSItemID: leaf.ID, Date: "2026-02-17", ActualManpower: testutil.Float(domain.MaxManpower + 1)}, domain.CodeOutOfRange},
		{"negative qty", app.CellUpdate{WBSItemID: leaf.ID, Date: "2026-02-17", QtyDone: testutil.Float(-1)}, domain.CodeNegativeValue},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.BatchUpdate(ctx, proj.ID, []app.CellUpdate{tc.cell}, domain.SourceGrid)
			require.NoError(t, err)
			assert.Zero(t, result.UpdatedCount)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tc.code, result.Errors[0].Code)
		})
	}
}

func TestAllocationService_BatchUpdate_PatchKeepsOmittedFields(t *testing.T) {
	ctx := context.Background()
	repos, _, _ := setupRepos(t)
	svc := newAllocationService(repos)
	proj := seedProject(t, repos)
	it := seedItem(t, repos, proj.ID, "A")

	_, err := svc.BatchUpdate(ctx, proj.ID, []app.CellUpdate{
		{WBSItemID: it.ID, Date: "2026-03-02", PlannedManpower: testutil.Float(4), ActualManpower: testutil.Float(3), QtyDone: testutil.Float(8)},
	}, "")
	require.NoError(t, err)
	_, err = svc.BatchUpdate(ctx, proj.ID, []app.CellUpdate{
		{WBSItemID: it.ID, Date: "2026-03-02", QtyDone: testutil.Float(9), Notes: testutil.String("rain after lunch")},
	}, domain.SourceGrid)
	require.NoError(t, err)

	rows, err := repos.Allocations.ListByItem(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4.0, rows[0].PlannedManpower)
	assert.Equal(t, 3.0, rows[0].ActualManpower)
	assert.Equal(t, 9.0, rows[0].QtyDone)
	assert.Equal(t, "rain after lunch", rows[0].Notes)
}

func TestAllocationService_BatchUpdate_RejectsCall(t *testing.T) {
	ctx := context.Background()
	repos, _, _ := setupRepos(t)
	svc := newAllocationService(repos)
	proj := seedProject(t, repos)

	_, err := svc.BatchUpdate(ctx, proj.ID, nil, "email")
	assert.Equal(t, domain.CodeInvalidSource, domain.CodeOf(err))

	_, err = svc.BatchUpdate(ctx, "ghost", nil, domain.SourceGrid)
	assert.Equal(t, domain.CodeProjectNotFound, domain.CodeOf(err))
}

func TestAllocationService_ApplyChatActions(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	repos, _, _ := setupRepos(t)
	svc := newAllocationService(repos, obs)
	proj := seedProject(t, repos)
	a := seedItem(t, repos, proj.ID, "A", testutil.WithQty(100))

	actions := []app.ChatAction{
		{WBSCode: "A", Date: "2026-02-18", ActualManpower: testutil.Float(5), QtyDone: testutil.Float(10), Note: "east wing"},
		{WBSCode: "NOPE", Date: "2026-02-18", ActualManpower: testutil.Float(2)},
	}
	result, err := svc.ApplyChatActions(ctx, proj.ID, actions)
	require.NoError(t, err)
	assert.Equal(t, 1, result.UpdatedCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "NOPE", result.Errors[0].WBSCode)
	assert.Equal(t, "2026-02-18", result.Errors[0].Date)
	assert.Equal(t, domain.CodeWBSNotFound, result.Errors[0].Code)

	rows, err := repos.Allocations.ListByItem(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.SourceChat, rows[0].Source)
	assert.Equal(t, "east wing", rows[0].Notes)

	logs, err := repos.ChatLogs.ListByProject(ctx, proj.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 1, logs[0].UpdatedCount)
	assert.Equal(t, 1, logs[0].ErrorCount)
	var stored []app.ChatAction
	require.NoError(t, json.Unmarshal([]byte(logs[0].Actions), &stored))
	assert.Equal(t, actions, stored)

	assert.Empty(t, obs.byName("log-chat-actions"), "successful log writes are not reported")
}

type failingChatLogs struct{ repository.ChatLogRepo }

func (failingChatLogs) Create(context.Context, *domain.ChatActionLog) error {
	return errors.New("chat log table locked")
}

func TestAllocationService_ApplyChatActions_LogFailureIsBestEffort(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	mem := testutil.NewMemStore()
	repos := memRepos(mem)
	svc := NewAllocationService(repos.Projects, repos.WBSItems, repos.Allocations, failingChatLogs{repos.ChatLogs}, obs)
	proj := seedProject(t, repos)
	seedItem(t, repos, proj.ID, "A")

	result, err := svc.ApplyChatActions(ctx, proj.ID, []app.ChatAction{
		{WBSCode: "A", Date: "2026-02-18", ActualManpower: testutil.Float(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.UpdatedCount)

	events := obs.byName("log-chat-actions")
	require.Len(t, events, 1)
	assert.True(t, events[0].BestEffort)
	assert.ErrorContains(t, events[0].Err, "chat log table locked")

	applied := obs.byName("apply-chat-actions")
	require.Len(t, applied, 1)
	assert.True(t, applied[0].Success)
}
