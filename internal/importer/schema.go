package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/sitepace/internal/domain"
	"gopkg.in/yaml.v3"
)

// WBSFile is the top-level structure of a WBS import file.
type WBSFile struct {
	Items []WBSRow `json:"items" yaml:"items"`
}

// WBSRow is one item in the import file. Parents are referenced by code and
// may be earlier rows or items already stored in the project.
type WBSRow struct {
	Code       string  `json:"code" yaml:"code"`
	Name       string  `json:"name" yaml:"name"`
	ParentCode string  `json:"parent_code,omitempty" yaml:"parent_code,omitempty"`
	Qty        float64 `json:"qty" yaml:"qty"`
	Unit       string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Level      *int    `json:"level,omitempty" yaml:"level,omitempty"`
	IsSummary  bool    `json:"is_summary,omitempty" yaml:"is_summary,omitempty"`
}

// LoadWBSFile reads and parses a .json, .yaml or .yml import file.
func LoadWBSFile(path string) (*WBSFile, error) {
	var f WBSFile
	if err := DecodeFile(path, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// DecodeFile reads path into v, choosing JSON or YAML by file extension.
// Unknown fields are rejected so typos in column names surface early.
func DecodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Decode(data, filepath.Ext(path), v)
}

// Decode parses data as JSON (".json") or YAML (".yaml", ".yml").
func Decode(data []byte, ext string, v any) error {
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return domain.Invalid(domain.CodeImportInvalidFile, "parsing json: %v", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return domain.Invalid(domain.CodeImportInvalidFile, "parsing yaml: %v", err)
		}
	default:
		return domain.Invalid(domain.CodeImportInvalidFile, "unsupported file type %q (want .json, .yaml or .yml)", ext)
	}
	return nil
}

// RowError ties a validation failure to its zero-based row.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("items[%d]: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
