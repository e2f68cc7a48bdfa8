package domain

import (
	"strings"
	"time"
)

const (
	maxCodeLen = 50
	maxNameLen = 255
)

type Project struct {
	ID        string
	Code      string
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	Status    ProjectStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the fields a caller supplies on create.
func (p *Project) Validate() error {
	p.Code = strings.TrimSpace(p.Code)
	p.Name = strings.TrimSpace(p.Name)
	if p.Code == "" || len(p.Code) > maxCodeLen {
		return Invalid(CodeProjectInvalid, "project code must be 1-%d characters", maxCodeLen)
	}
	if p.Name == "" || len(p.Name) > maxNameLen {
		return Invalid(CodeProjectInvalid, "project name must be 1-%d characters", maxNameLen)
	}
	if p.Status == "" {
		p.Status = ProjectActive
	}
	if !ValidProjectStatuses[p.Status] {
		return Invalid(CodeProjectInvalid, "unknown project status %q", p.Status)
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return Invalid(CodeProjectInvalid, "end date %s is before start date %s",
			FormatDate(*p.EndDate), FormatDate(*p.StartDate))
	}
	return nil
}
