package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create(t *testing.T) {
	repos, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(repos.Projects)

	end := testutil.MustDate("2026-12-31")
	proj := &domain.Project{Code: " HSP-01 ", Name: "Hospital Annex", EndDate: &end}
	require.NoError(t, svc.Create(ctx, proj))
	assert.NotEmpty(t, proj.ID, "UUID should be generated")
	assert.Equal(t, domain.ProjectActive, proj.Status, "status should default to active")

	fetched, err := svc.GetByCode(ctx, "HSP-01")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, end, *fetched.EndDate)
}

func TestProjectService_Create_Invalid(t *testing.T) {
	repos, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(repos.Projects)

	start := testutil.MustDate("2026-06-01")
	end := testutil.MustDate("2026-01-01")
	tests := []struct {
		name string
		proj *domain.Project
	}{
		{"empty code", &domain.Project{Name: "X"}},
		{"empty name", &domain.Project{Code: "X-1"}},
		{"end before start", &domain.Project{Code: "X-2", Name: "X", StartDate: &start, EndDate: &end}},
		{"bad status", &domain.Project{Code: "X-3", Name: "X", Status: "frozen"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Create(ctx, tc.proj)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, domain.CodeProjectInvalid, domain.CodeOf(err))
		})
	}
}

func TestProjectService_Create_DuplicateCode(t *testing.T) {
	repos, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(repos.Projects)

	require.NoError(t, svc.Create(ctx, &domain.Project{Code: "DUP", Name: "First"}))
	err := svc.Create(ctx, &domain.Project{Code: "DUP", Name: "Second"})
	assert.Equal(t, domain.CodeProjectDuplicate, domain.CodeOf(err))
}

func TestProjectService_Resolve(t *testing.T) {
	repos, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(repos.Projects)
	proj := seedProject(t, repos, testutil.WithProjectCode("BRG-7"))

	byCode, err := svc.Resolve(ctx, "BRG-7")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, byCode.ID)

	byID, err := svc.Resolve(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "BRG-7", byID.Code)

	_, err = svc.Resolve(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.CodeProjectNotFound, domain.CodeOf(err))
}

func TestProjectService_ListAndUpdate(t *testing.T) {
	repos, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(repos.Projects)
	proj := seedProject(t, repos)
	seedProject(t, repos)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	proj.Status = domain.ProjectPaused
	proj.Name = "Riverside Tower (phase 2)"
	require.NoError(t, svc.Update(ctx, proj))

	got, err := svc.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectPaused, got.Status)
	assert.Equal(t, "Riverside Tower (phase 2)", got.Name)
}
