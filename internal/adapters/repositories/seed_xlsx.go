package repositories

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Column order of outlet directory exports: one row per outlet assignment.
// Rows repeating an outlet id add assignments to the first row's outlet.
const (
	colID = iota
	colName
	colAddress
	colLat
	colLon
	colTier
	colRepresentative
	colVisitDate
)

// parseCoord accepts comma decimal separators used by Turkish-locale exports.
func parseCoord(val string) (*float64, error) {
	val = strings.TrimSpace(strings.ReplaceAll(val, ",", "."))
	if val == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("coordinate %q is not finite", val)
	}
	return &f, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// loadXLSXSeed reads the first sheet of an outlet directory export.
// Unparseable coordinates are stored as missing rather than rejected.
func loadXLSXSeed(path string) ([]OutletSeed, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("load seed: open %q: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("load seed: %q has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("load seed: read sheet %q: %w", sheets[0], err)
	}

	byID := make(map[int64]int)
	out := make([]OutletSeed, 0, len(rows))

	// Row 0 is the header.
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if cell(row, colID) == "" {
			continue
		}

		id, err := strconv.ParseInt(cell(row, colID), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("load seed: row %d: invalid outlet id %q", i+1, cell(row, colID))
		}

		idx, seen := byID[id]
		if !seen {
			lat, errLat := parseCoord(cell(row, colLat))
			lon, errLon := parseCoord(cell(row, colLon))
			if errLat != nil || errLon != nil {
				lat, lon = nil, nil
			}

			out = append(out, OutletSeed{
				OutletID: id,
				Name:     cell(row, colName),
				Address:  cell(row, colAddress),
				Lat:      lat,
				Lon:      lon,
				Tier:     cell(row, colTier),
			})
			idx = len(out) - 1
			byID[id] = idx
		}

		rep := cell(row, colRepresentative)
		if rep == "" {
			continue
		}
		repID, err := strconv.ParseInt(rep, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("load seed: row %d: invalid representative id %q", i+1, rep)
		}

		out[idx].Assignments = append(out[idx].Assignments, AssignmentSeed{
			RepresentativeID: repID,
			VisitDate:        normalizeSheetDate(cell(row, colVisitDate)),
		})
	}

	return out, nil
}

// normalizeSheetDate accepts ISO dates and the dd.mm.yyyy form spreadsheets
// tend to produce; anything else is passed through for validation.
func normalizeSheetDate(s string) string {
	for _, layout := range []string{dateLayout, "02.01.2006", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout)
		}
	}
	return s
}
