package ingest

import (
	"strconv"
	"strings"
	"time"
)

// getValue returns the trimmed cell under col, or "" when the column is
// absent or the row is short.
func getValue(record []string, colMap map[string]int, col string) string {
	idx, ok := colMap[col]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// getOptional is getValue for nullable text columns.
func getOptional(record []string, colMap map[string]int, col string) *string {
	v := getValue(record, colMap, col)
	if v == "" {
		return nil
	}
	return &v
}

// getFloat parses a nullable numeric cell. Currency symbols and thousands
// separators from spreadsheet exports are stripped first.
func getFloat(record []string, colMap map[string]int, col string) *float64 {
	raw := getValue(record, colMap, col)
	if raw == "" {
		return nil
	}

	raw = strings.ReplaceAll(raw, "$", "")
	raw = strings.ReplaceAll(raw, ",", "")
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return &f
	}
	return nil
}

// getMoney is getFloat with 0 for missing or malformed cells.
func getMoney(record []string, colMap map[string]int, col string) float64 {
	if f := getFloat(record, colMap, col); f != nil {
		return *f
	}
	return 0
}

// getTime parses a nullable date cell, trying the formats the app and its
// spreadsheet exports produce.
func getTime(record []string, colMap map[string]int, col string) *time.Time {
	raw := getValue(record, colMap, col)
	if raw == "" || raw == "0000-00-00 00:00:00" {
		return nil
	}

	formats := []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		"1/2/2006",
		"1/2/06",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, raw); err == nil {
			return &t
		}
	}
	return nil
}
