package payroll

import (
	"strconv"
	"strings"
)

// Resolve scans the row's columns in sheet order and returns the cell of the
// first column whose header contains any of the keywords, case-insensitively.
// Keyword order does not matter; column order decides ties. The returned cell
// is trimmed of surrounding whitespace.
func Resolve(row Row, keywords []string) (string, bool) {
	for i, header := range row.Headers {
		h := strings.ToLower(header)
		for _, kw := range keywords {
			if strings.Contains(h, strings.ToLower(kw)) {
				if i < len(row.Cells) {
					return strings.TrimSpace(row.Cells[i]), true
				}
				return "", true
			}
		}
	}
	return "", false
}

// ResolveString resolves a text field, falling back when no column matches.
// A matched but empty cell also yields the fallback.
func ResolveString(row Row, keywords []string, fallback string) string {
	cell, ok := Resolve(row, keywords)
	if !ok || cell == "" {
		return fallback
	}
	return cell
}

// ResolveFloat resolves a numeric field. Thousands separators are tolerated;
// a missing column, empty cell, or unparseable value yields the fallback.
func ResolveFloat(row Row, keywords []string, fallback float64) float64 {
	cell, ok := Resolve(row, keywords)
	if !ok || cell == "" {
		return fallback
	}
	cell = strings.ReplaceAll(cell, ",", "")
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return fallback
	}
	return v
}
