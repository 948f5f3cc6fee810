package leads

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Column headers shared by the upload and export formats.
const (
	ColumnCompanyName    = "Company Name"
	ColumnIndustry       = "Industry"
	ColumnCloudProvider  = "Cloud Provider"
	ColumnCompanySize    = "Company Size (Employees)"
	ColumnEstimatedSpend = "Estimated Spend ($M/year)"
	ColumnGrowthRate     = "Growth Rate (%)"
	ColumnChurnRisk      = "Churn Risk (%)"
	ColumnLeadScore      = "Lead Score"
)

const (
	ExportFileName    = "prioritized_leads.csv"
	ExportContentType = "text/csv"
)

var inputColumns = []string{
	ColumnCompanyName,
	ColumnIndustry,
	ColumnCloudProvider,
	ColumnCompanySize,
	ColumnEstimatedSpend,
	ColumnGrowthRate,
	ColumnChurnRisk,
}

// maxWhole bounds integer cells; sizes and percentages never come close.
const maxWhole = 1 << 31

// DecodeCSV reads lead rows keyed by header name. Column order is free, headers match
// case-insensitively, and unknown columns (including a stale Lead Score) are ignored.
// Industry and provider cells are kept exactly as written.
func DecodeCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrInvalidCSV)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}
	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, 16)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
		}
		line, _ := reader.FieldPos(0)
		rec, err := decodeRow(row, index, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// EncodeCSV writes records in the given order with the input columns followed by Lead Score.
func EncodeCSV(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)
	header := append(append([]string{}, inputColumns...), ColumnLeadScore)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.CompanyName,
			string(r.Industry),
			string(r.CloudProvider),
			strconv.Itoa(r.CompanySize),
			formatFloat(r.EstimatedSpend),
			strconv.Itoa(r.GrowthRate),
			strconv.Itoa(r.ChurnRisk),
			formatFloat(r.LeadScore),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// InputColumns returns the upload headers in canonical order.
func InputColumns() []string {
	return append([]string(nil), inputColumns...)
}

func headerIndex(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		positions[strings.ToLower(strings.TrimSpace(name))] = i
	}
	index := make(map[string]int, len(inputColumns))
	var missing []string
	for _, col := range inputColumns {
		pos, ok := positions[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		index[col] = pos
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}

func decodeRow(row []string, index map[string]int, line int) (Record, error) {
	raw := func(col string) string {
		pos := index[col]
		if pos >= len(row) {
			return ""
		}
		return row[pos]
	}
	cell := func(col string) string {
		return strings.TrimSpace(raw(col))
	}

	var rec Record
	var err error
	rec.CompanyName = cell(ColumnCompanyName)
	rec.Industry, _ = ParseIndustry(raw(ColumnIndustry))
	rec.CloudProvider, _ = ParseCloudProvider(raw(ColumnCloudProvider))
	if rec.CompanySize, err = parseWhole(cell(ColumnCompanySize)); err != nil {
		return Record{}, cellError(line, ColumnCompanySize, err)
	}
	if rec.EstimatedSpend, err = parseNumber(cell(ColumnEstimatedSpend)); err != nil {
		return Record{}, cellError(line, ColumnEstimatedSpend, err)
	}
	if rec.GrowthRate, err = parseWhole(cell(ColumnGrowthRate)); err != nil {
		return Record{}, cellError(line, ColumnGrowthRate, err)
	}
	if rec.ChurnRisk, err = parseWhole(cell(ColumnChurnRisk)); err != nil {
		return Record{}, cellError(line, ColumnChurnRisk, err)
	}
	return rec, nil
}

func cellError(line int, column string, err error) error {
	return fmt.Errorf("%w: line %d, %s: %v", ErrInvalidCSV, line, column, err)
}

func parseNumber(raw string) (float64, error) {
	if raw == "" {
		return 0, errors.New("value is required")
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return v, nil
}

// parseWhole accepts "12" as well as spreadsheet-style "12.0"; fractions such as "12.5"
// and values beyond maxWhole are rejected.
func parseWhole(raw string) (int, error) {
	v, err := parseNumber(raw)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%q is not a whole number", raw)
	}
	if math.Abs(v) >= maxWhole {
		return 0, fmt.Errorf("%q is out of range", raw)
	}
	return int(v), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
