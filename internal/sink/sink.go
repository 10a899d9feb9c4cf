// Package sink persists property records in tabular form.
package sink

import (
	"fmt"
	"strings"

	"github.com/rjmelnik/deedtrace/internal/model"
)

// Sink writes a batch of records to its destination
type Sink interface {
	// Write persists the records and returns the output path
	Write(records []model.PropertyRecord) (string, error)
}

// ForFormat selects a sink by format name: "csv" or "xlsx"
func ForFormat(format, path string) (Sink, error) {
	switch strings.ToLower(format) {
	case "csv", "":
		return &CSVSink{Path: path}, nil
	case "xlsx":
		return &XLSXSink{Path: path}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", format)
	}
}
