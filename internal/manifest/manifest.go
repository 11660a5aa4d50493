// Package manifest reads and writes delivery manifests as CSV, the tabular
// boundary between files on disk and the ingestion pipeline.
package manifest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"milkrun/internal/common"
	"milkrun/internal/model"
)

// ReadRecords parses a CSV manifest into flat records. The first row is the
// header; unknown columns are preserved so they survive a round trip. Ragged
// rows are tolerated: short rows leave trailing fields empty, long rows drop
// the overflow. Interpretation of the rows (which are required, which are
// junk) is the pipeline's job, not the reader's.
func ReadRecords(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: file is empty", common.ErrInvalidManifest)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidManifest, err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	records := []model.Record{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// Skip malformed rows individually rather than aborting the import.
			continue
		}
		if err != nil {
			// Not a bad row: the underlying reader failed.
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidManifest, err)
		}

		rec := model.NewRecord(columns)
		for i, name := range columns {
			if i < len(row) {
				rec.Fields[name] = row[i]
			} else {
				rec.Fields[name] = ""
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

// WriteRecords serializes records as CSV. The header is the first record's
// column order plus any extra columns from later records in first-seen order;
// every row is emitted against that merged header.
func WriteRecords(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)

	columns := mergeColumns(records)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write manifest header: %w", err)
	}

	row := make([]string, len(columns))
	for _, rec := range records {
		for i, name := range columns {
			row[i] = rec.Get(name)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write manifest row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func mergeColumns(records []model.Record) []string {
	var columns []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, name := range rec.Columns {
			if !seen[name] {
				seen[name] = true
				columns = append(columns, name)
			}
		}
	}
	if columns == nil {
		columns = append(columns, model.ExportColumns...)
	}
	return columns
}
