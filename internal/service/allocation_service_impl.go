package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/repository"
	"github.com/google/uuid"
)

type allocationService struct {
	projects    repository.ProjectRepo
	items       repository.WBSItemRepo
	allocations repository.AllocationRepo
	chatLogs    repository.ChatLogRepo
	observer    UseCaseObserver
}

func NewAllocationService(
	projects repository.ProjectRepo,
	items repository.WBSItemRepo,
	allocations repository.AllocationRepo,
	chatLogs repository.ChatLogRepo,
	observers ...UseCaseObserver,
) AllocationService {
	return &allocationService{
		projects:    projects,
		items:       items,
		allocations: allocations,
		chatLogs:    chatLogs,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// BatchUpdate writes each cell on its own. A rejected or failed cell is
// recorded in the result and the rest of the batch still runs.
func (s *allocationService) BatchUpdate(ctx context.Context, projectID string, updates []app.CellUpdate, source domain.AllocationSource) (result *app.BatchResult, err error) {
	fields := map[string]any{"project_id": projectID, "cells": len(updates), "source": string(source)}
	defer observe(ctx, s.observer, "batch-update-allocations", fields, &err)()

	if source == "" {
		source = domain.SourceGrid
	}
	if !source.Valid() {
		return nil, domain.Invalid(domain.CodeInvalidSource, "source must be grid or chat, got %q", source)
	}
	if _, err = s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	byID, err := s.itemIndex(ctx, projectID)
	if err != nil {
		return nil, err
	}

	result = &app.BatchResult{}
	for _, u := range updates {
		if cerr := s.writeCell(ctx, byID, u, source); cerr != nil {
			e := app.NewItemError(cerr)
			e.WBSItemID = u.WBSItemID
			e.Date = u.Date
			if it, ok := byID[u.WBSItemID]; ok {
				e.WBSCode = it.Code
			}
			result.Errors = append(result.Errors, e)
			continue
		}
		result.UpdatedCount++
	}
	fields["updated"] = result.UpdatedCount
	fields["errors"] = len(result.Errors)
	return result, nil
}

func (s *allocationService) itemIndex(ctx context.Context, projectID string) (map[string]*domain.WBSItem, error) {
	items, err := s.items.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading wbs items: %w", err)
	}
	byID := make(map[string]*domain.WBSItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	return byID, nil
}

func (s *allocationService) writeCell(ctx context.Context, byID map[string]*domain.WBSItem, u app.CellUpdate, source domain.AllocationSource) error {
	item, ok := byID[u.WBSItemID]
	if !ok {
		return domain.NotFound(domain.CodeWBSNotFound, "wbs item %s not found in project", u.WBSItemID)
	}
	if item.IsSummary {
		return domain.Invalid(domain.CodeWBSHierarchy, "summary item %s takes no allocations", item.Code)
	}
	date, err := domain.ParseDate(u.Date)
	if err != nil {
		return err
	}
	patch := &domain.AllocationPatch{
		WBSItemID:       u.WBSItemID,
		Date:            date,
		PlannedManpower: u.PlannedManpower,
		ActualManpower:  u.ActualManpower,
		QtyDone:         u.QtyDone,
		Notes:           u.Notes,
		Source:          source,
	}
	if err := patch.Validate(); err != nil {
		return err
	}
	return s.allocations.Upsert(ctx, patch)
}

// ApplyChatActions resolves each action's wbs code and applies the batch as
// chat-sourced cells. The applied batch is logged best-effort.
func (s *allocationService) ApplyChatActions(ctx context.Context, projectID string, actions []app.ChatAction) (result *app.BatchResult, err error) {
	fields := map[string]any{"project_id": projectID, "actions": len(actions)}
	defer observe(ctx, s.observer, "apply-chat-actions", fields, &err)()

	if _, err = s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading wbs items: %w", err)
	}
	byCode := make(map[string]*domain.WBSItem, len(items))
	for _, it := range items {
		byCode[it.Code] = it
	}

	var unresolved []app.ItemError
	cells := make([]app.CellUpdate, 0, len(actions))
	for _, a := range actions {
		it, ok := byCode[a.WBSCode]
		if !ok {
			e := app.NewItemError(domain.NotFound(domain.CodeWBSNotFound, "wbs code %q not found in project", a.WBSCode))
			e.WBSCode = a.WBSCode
			e.Date = a.Date
			unresolved = append(unresolved, e)
			continue
		}
		cell := app.CellUpdate{
			WBSItemID:      it.ID,
			Date:           a.Date,
			ActualManpower: a.ActualManpower,
			QtyDone:        a.QtyDone,
		}
		if a.Note != "" {
			note := a.Note
			cell.Notes = &note
		}
		cells = append(cells, cell)
	}

	result, err = s.BatchUpdate(ctx, projectID, cells, domain.SourceChat)
	if err != nil {
		return nil, err
	}
	result.Errors = append(unresolved, result.Errors...)

	bestEffort(ctx, s.observer, "log-chat-actions", map[string]any{"project_id": projectID}, func(ctx context.Context) error {
		payload, err := json.Marshal(actions)
		if err != nil {
			return fmt.Errorf("encoding chat actions: %w", err)
		}
		return s.chatLogs.Create(ctx, &domain.ChatActionLog{
			ID:           uuid.New().String(),
			ProjectID:    projectID,
			Actions:      string(payload),
			UpdatedCount: result.UpdatedCount,
			ErrorCount:   len(result.Errors),
			CreatedAt:    time.Now().UTC(),
		})
	})
	return result, nil
}
