package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
)

// Format selects the artifact encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name. Empty selects CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv"
}

// Encode renders t. CSV carries a header row; JSON is an array of objects
// keyed by column name.
func Encode(t Table, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		buf := &bytes.Buffer{}
		w := csv.NewWriter(buf)
		if err := w.Write(t.Columns); err != nil {
			return nil, err
		}
		if err := w.WriteAll(t.Rows); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		records := make([]map[string]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			rec := make(map[string]string, len(t.Columns))
			for i, col := range t.Columns {
				if i < len(row) {
					rec[col] = row[i]
				}
			}
			records = append(records, rec)
		}
		payload, err := json.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
		return payload, nil
	}
	return nil, fmt.Errorf("unknown report format %q", f)
}
