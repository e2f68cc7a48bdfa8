package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	proj := testutil.NewTestProject("Tower A", testutil.WithEndDate(end))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Tower A", fetched.Name)
	assert.Equal(t, domain.ProjectActive, fetched.Status)
	assert.Nil(t, fetched.StartDate)
	require.NotNil(t, fetched.EndDate)
	assert.Equal(t, "2025-06-30", fetched.EndDate.Format("2006-01-02"))
}

func TestProjectRepo_GetByCode_CaseInsensitive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Tower B", testutil.WithProjectCode("E2NS-001"))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByCode(ctx, "e2ns-001")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, domain.CodeProjectNotFound, domain.CodeOf(err))
}

func TestProjectRepo_DuplicateCode(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("A", testutil.WithProjectCode("DUP"))))
	err := repo.Create(ctx, testutil.NewTestProject("B", testutil.WithProjectCode("DUP")))
	require.Error(t, err)
	assert.Equal(t, domain.CodeProjectDuplicate, domain.CodeOf(err))
}

func TestProjectRepo_ListAndUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	p1 := testutil.NewTestProject("One")
	p2 := testutil.NewTestProject("Two")
	require.NoError(t, repo.Create(ctx, p1))
	require.NoError(t, repo.Create(ctx, p2))

	p2.Status = domain.ProjectPaused
	p2.Name = "Two (paused)"
	require.NoError(t, repo.Update(ctx, p2))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	byID := map[string]*domain.Project{list[0].ID: list[0], list[1].ID: list[1]}
	assert.Equal(t, domain.ProjectPaused, byID[p2.ID].Status)
	assert.Equal(t, "Two (paused)", byID[p2.ID].Name)

	ghost := testutil.NewTestProject("Ghost")
	assert.True(t, errors.Is(repo.Update(ctx, ghost), domain.ErrNotFound))
}
