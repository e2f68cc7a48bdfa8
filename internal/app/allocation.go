package app

// CellUpdate is one grid cell write. Nil fields keep the stored value.
type CellUpdate struct {
	WBSItemID       string   `json:"wbs_item_id" yaml:"wbs_item_id"`
	Date            string   `json:"date" yaml:"date"`
	PlannedManpower *float64 `json:"planned_manpower,omitempty" yaml:"planned_manpower,omitempty"`
	ActualManpower  *float64 `json:"actual_manpower,omitempty" yaml:"actual_manpower,omitempty"`
	QtyDone         *float64 `json:"qty_done,omitempty" yaml:"qty_done,omitempty"`
	Notes           *string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type BatchResult struct {
	UpdatedCount int
	Errors       []ItemError
}

// ChatAction is a structured record produced upstream from a chat message.
// Items are addressed by wbs code, not id.
type ChatAction struct {
	WBSCode        string   `json:"wbs_code" yaml:"wbs_code"`
	Date           string   `json:"date" yaml:"date"`
	ActualManpower *float64 `json:"actual_manpower,omitempty" yaml:"actual_manpower,omitempty"`
	QtyDone        *float64 `json:"qty_done,omitempty" yaml:"qty_done,omitempty"`
	Note           string   `json:"note,omitempty" yaml:"note,omitempty"`
}
