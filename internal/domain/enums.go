package domain

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectPaused   ProjectStatus = "paused"
	ProjectDone     ProjectStatus = "done"
	ProjectArchived ProjectStatus = "archived"
)

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[ProjectStatus]bool{
	ProjectActive: true, ProjectPaused: true, ProjectDone: true, ProjectArchived: true,
}

// AllocationSource records which surface wrote an allocation cell.
type AllocationSource string

const (
	SourceGrid AllocationSource = "grid"
	SourceChat AllocationSource = "chat"
)

func (s AllocationSource) Valid() bool {
	return s == SourceGrid || s == SourceChat
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type SuggestionType string

const (
	SuggestReallocate  SuggestionType = "reallocate"
	SuggestExtendShift SuggestionType = "extend_shift"
)
