// Package report saves the manual-review list of a run.
//
// The format follows the file extension: .json, or .yaml/.yml.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bomstock/pkg/enrich"
	bserrors "github.com/matzehuels/bomstock/pkg/errors"
)

// Format is a report serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is the saved report.
type Document struct {
	RunID    string         `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Input    string         `json:"input" yaml:"input"`
	Output   string         `json:"output" yaml:"output"`
	Started  time.Time      `json:"started" yaml:"started"`
	Duration string         `json:"duration" yaml:"duration"`
	Rows     int            `json:"rows" yaml:"rows"`
	Issues   []enrich.Issue `json:"issues" yaml:"issues"`
}

// New builds a document from a run report.
func New(runID, input, output string, rep *enrich.Report) *Document {
	issues := rep.Issues()
	if issues == nil {
		issues = []enrich.Issue{}
	}
	return &Document{
		RunID:    runID,
		Input:    input,
		Output:   output,
		Started:  rep.Started,
		Duration: rep.Duration.Round(time.Millisecond).String(),
		Rows:     len(rep.Rows),
		Issues:   issues,
	}
}

// FormatFor returns the format implied by the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", bserrors.New(bserrors.ErrCodeInvalidInput, "unsupported report extension %q (use .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, f Format, doc *Document) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return bserrors.New(bserrors.ErrCodeInvalidInput, "unsupported report format %q", f)
	}
}

// Save writes doc to path in the format implied by its extension.
func Save(path string, doc *Document) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := Encode(out, f, doc); err != nil {
		out.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return out.Close()
}
