// Package importer reads seating constraint sheets from CSV and Excel files.
// A sheet lists fixed seats and forbidden pairs, one per row. It supports
// automatic delimiter detection, flexible column mapping, and case-insensitive
// header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/SeatShuffle/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	FixedSeats     []model.FixedSeat
	ForbiddenPairs []model.Pair
	Errors         []string
	Warnings       []string
}

// HasErrors reports whether any row failed to import.
func (r ImportResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Apply merges the imported constraints into req. Forbidden pairs already
// present in req are not added twice; fixed seats are appended as-is and left
// to request validation.
func (r ImportResult) Apply(req *model.Request) {
	seen := make(map[model.Pair]bool, len(req.ForbiddenPairs))
	for _, p := range req.ForbiddenPairs {
		seen[p.Normalize()] = true
	}
	for _, p := range r.ForbiddenPairs {
		if !seen[p.Normalize()] {
			req.ForbiddenPairs = append(req.ForbiddenPairs, p)
			seen[p.Normalize()] = true
		}
	}
	req.FixedSeats = append(req.FixedSeats, r.FixedSeats...)
}

// Options controls how sheet values are interpreted.
type Options struct {
	// ZeroBased keeps row and column numbers as written. By default sheets
	// number rows and columns from 1.
	ZeroBased bool
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Kind    int
	Student int
	Partner int
	Row     int
	Col     int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"kind":    {"kind", "type", "constraint", "rule"},
	"student": {"student", "a", "student a", "id", "student id", "pupil"},
	"partner": {"partner", "b", "student b", "other", "with", "apart from"},
	"row":     {"row", "r", "seat row"},
	"col":     {"col", "column", "c", "seat", "seat col", "seat column"},
}

type constraintKind int

const (
	kindUnknown constraintKind = iota
	kindFixed
	kindForbid
)

// parseKind converts a kind cell to a constraint kind.
func parseKind(s string) (constraintKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "fix", "pin", "pinned":
		return kindFixed, true
	case "forbid", "forbidden", "apart", "pair", "separate", "avoid":
		return kindForbid, true
	case "":
		return kindUnknown, true
	default:
		return kindUnknown, false
	}
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := newCSVReader(bytes.NewReader(data), delim)
		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping kind, student, partner, row, col and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Kind: -1, Student: -1, Partner: -1, Row: -1, Col: -1}

	roles := map[string]*int{
		"kind":    &mapping.Kind,
		"student": &mapping.Student,
		"partner": &mapping.Partner,
		"row":     &mapping.Row,
		"col":     &mapping.Col,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if idx := roles[role]; *idx == -1 {
						*idx = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Kind: 0, Student: 1, Partner: 2, Row: 3, Col: 4}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseID(row []string, idx int, what, rowLabel string) (int, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s", rowLabel, what)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, what, s)
	}
	if n <= 0 {
		return 0, fmt.Sprintf("%s: %s must be positive, got %d", rowLabel, what, n)
	}
	return n, ""
}

func parseCoord(row []string, idx int, what, rowLabel string, opts Options) (int, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s", rowLabel, what)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, what, s)
	}
	if opts.ZeroBased {
		if n < 0 {
			return 0, fmt.Sprintf("%s: %s must not be negative, got %d", rowLabel, what, n)
		}
		return n, ""
	}
	if n < 1 {
		return 0, fmt.Sprintf("%s: %s is numbered from 1, got %d", rowLabel, what, n)
	}
	return n - 1, ""
}

// parseRow extracts one constraint from a row. Exactly one of the returned
// pointers is set when the error message is empty.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, opts Options) (*model.FixedSeat, *model.Pair, string) {
	kindStr := getCell(row, mapping.Kind)
	kind, ok := parseKind(kindStr)
	if !ok {
		return nil, nil, fmt.Sprintf("%s: Unknown constraint kind '%s'", rowLabel, kindStr)
	}
	if kind == kindUnknown {
		// Infer from the filled columns.
		switch {
		case getCell(row, mapping.Partner) != "":
			kind = kindForbid
		case getCell(row, mapping.Row) != "" || getCell(row, mapping.Col) != "":
			kind = kindFixed
		default:
			return nil, nil, fmt.Sprintf("%s: Cannot tell a fixed seat from a forbidden pair", rowLabel)
		}
	}

	student, errMsg := parseID(row, mapping.Student, "student", rowLabel)
	if errMsg != "" {
		return nil, nil, errMsg
	}

	if kind == kindForbid {
		partner, errMsg := parseID(row, mapping.Partner, "partner", rowLabel)
		if errMsg != "" {
			return nil, nil, errMsg
		}
		if partner == student {
			return nil, nil, fmt.Sprintf("%s: Student %d cannot be kept apart from itself", rowLabel, student)
		}
		return nil, &model.Pair{student, partner}, ""
	}

	r, errMsg := parseCoord(row, mapping.Row, "row", rowLabel, opts)
	if errMsg != "" {
		return nil, nil, errMsg
	}
	c, errMsg := parseCoord(row, mapping.Col, "column", rowLabel, opts)
	if errMsg != "" {
		return nil, nil, errMsg
	}
	return &model.FixedSeat{Student: student, Row: r, Col: c}, nil, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func newCSVReader(r io.Reader, delimiter rune) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.Comment = '#'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader
}

// Import reads a constraint sheet, choosing the reader by file extension.
func Import(path string, opts Options) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return ImportExcel(path, opts)
	case ".csv", ".tsv", ".txt", "":
		return ImportCSV(path, opts)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type '%s'", filepath.Ext(path))}}
	}
}

// ImportCSV imports constraints from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string, opts Options) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := newCSVReader(bytes.NewReader(data), delimiter).ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings, opts)
}

// ImportCSVFromReader imports constraints from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, opts Options) ImportResult {
	result := ImportResult{}

	records, err := newCSVReader(reader, delimiter).ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil, opts)
}

// ImportExcel imports constraints from the first sheet of an Excel workbook.
func ImportExcel(path string, opts Options) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil, opts)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string, opts Options) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Student == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: Student")
			return result
		}
		if mapping.Partner == -1 && (mapping.Row == -1 || mapping.Col == -1) {
			result.Errors = append(result.Errors, "Header needs a Partner column or both Row and Col columns")
			return result
		}
	} else if len(rows[0]) >= 2 {
		if _, err := strconv.Atoi(strings.TrimSpace(rows[0][1])); err != nil {
			// Unrecognized header; keep the positional mapping.
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seenPairs := make(map[model.Pair]string)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		fixed, pair, errMsg := parseRow(row, mapping, rowLabel, opts)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}

		if pair != nil {
			key := pair.Normalize()
			if first, dup := seenPairs[key]; dup {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Pair %s already listed on %s, ignoring", rowLabel, key, first))
				continue
			}
			seenPairs[key] = rowLabel
			result.ForbiddenPairs = append(result.ForbiddenPairs, *pair)
			continue
		}
		result.FixedSeats = append(result.FixedSeats, *fixed)
	}

	return result
}
