// Package csvexport writes spreadsheet-friendly CSV downloads: a UTF-8 byte
// order mark so Excel detects the encoding, and cells guarded against
// formula injection.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime"
	"net/http"
	"unicode"
)

const BOM = "\ufeff"

// NewWriter writes the byte order mark and the header row.
func NewWriter(w io.Writer, header []string) (*csv.Writer, error) {
	if _, err := io.WriteString(w, BOM); err != nil {
		return nil, fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return cw, nil
}

// Cell neutralises spreadsheet formulas: a value starting with one of
// = + - @ or a tab or carriage return is prefixed with a single quote.
func Cell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

// SetHeaders marks the response as a CSV attachment named filename.
func SetHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", contentDisposition(filename))
}

// Non-ASCII names fall back to the RFC 2231 encoding of mime.FormatMediaType.
func contentDisposition(filename string) string {
	for _, r := range filename {
		if r > unicode.MaxASCII || r == '"' || r == '\\' {
			return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
		}
	}
	return `attachment; filename="` + filename + `"`
}
