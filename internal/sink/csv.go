package sink

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rjmelnik/deedtrace/internal/model"
)

// CSVSink writes records as a CSV file with a fixed header row
type CSVSink struct {
	Path string
}

func (s *CSVSink) Write(records []model.PropertyRecord) (path string, err error) {
	f, err := os.Create(s.Path)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(model.Columns()); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(rec.Row()); err != nil {
			return "", fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush output: %w", err)
	}
	return s.Path, nil
}
