package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/wonny/riskstats/internal/series"
)

// parseReturnsFrame reads an already-aligned returns CSV into a columnar
// frame: one column per series, one row per period, optional header row of
// column names. Empty cells parse as missing observations.
func parseReturnsFrame(r io.Reader) (series.Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return series.Frame{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return series.Frame{}, fmt.Errorf("csv is empty")
	}

	names, rows := splitHeader(records)
	if len(rows) == 0 {
		return series.Frame{}, fmt.Errorf("csv has no data rows")
	}

	cols := make([][]float64, len(names))
	for i := range cols {
		cols[i] = make([]float64, len(rows))
	}

	for r, row := range rows {
		if len(row) != len(names) {
			return series.Frame{}, fmt.Errorf("row %d has %d cells, want %d", r+1, len(row), len(names))
		}
		for c, cell := range row {
			v, err := parseCell(cell)
			if err != nil {
				return series.Frame{}, fmt.Errorf("row %d column %q: %w", r+1, names[c], err)
			}
			cols[c][r] = v
		}
	}

	out := make([]series.Series, len(names))
	for i, name := range names {
		out[i] = series.New(name, cols[i])
	}
	return series.NewFrame(out...)
}

// splitHeader treats the first row as a header when any of its cells is not
// numeric, otherwise generates column names.
func splitHeader(records [][]string) (names []string, rows [][]string) {
	first := records[0]
	for _, cell := range first {
		if _, err := parseCell(cell); err != nil {
			names = make([]string, len(first))
			for i, h := range first {
				names[i] = strings.TrimSpace(h)
			}
			return names, records[1:]
		}
	}

	names = make([]string, len(first))
	for i := range first {
		names[i] = fmt.Sprintf("series_%d", i)
	}
	return names, records
}

func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "nan") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}
