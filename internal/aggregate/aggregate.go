// Package aggregate rolls the consolidated emergency dataset up into the
// keyed tallies the choropleth reads.
package aggregate

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Columns maps the dataset headers onto record fields. The count columns
// (persons, deaths, families) are optional; a missing column tallies as
// zero.
type Columns struct {
	Code     string
	Year     string
	Month    string
	Event    string
	Persons  string
	Deaths   string
	Families string
}

// Record is one event row from the consolidated dataset.
type Record struct {
	Code     string
	Event    string
	Year     int
	Month    int
	Persons  int
	Deaths   int
	Families int
}

// Tally accumulates the per-period measures shown on the map:
// events, persons affected, deaths and families.
type Tally struct {
	Events   int `json:"e"`
	Persons  int `json:"p"`
	Deaths   int `json:"m"`
	Families int `json:"f"`
}

// Key builds the "year_month" lookup key shared by every data blob. Zero
// stands for "all": "2011_5" is May 2011, "2011_0" the 2011 total, "0_5"
// all Mays, "0_0" the grand total.
func Key(year, month int) string {
	return fmt.Sprintf("%d_%d", year, month)
}

// ReadRecords parses the semicolon-separated event dataset. The header row
// resolves column positions; a UTF-8 BOM on the first header cell is
// stripped. Rows with an empty code are skipped and counted in the log.
func ReadRecords(r io.Reader, cols Columns) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[strings.TrimSpace(name)] = i
	}

	col := func(name string) (int, error) {
		i, ok := pos[name]
		if !ok {
			return -1, fmt.Errorf("dataset has no column %q", name)
		}
		return i, nil
	}

	codeIdx, err := col(cols.Code)
	if err != nil {
		return nil, err
	}
	yearIdx, err := col(cols.Year)
	if err != nil {
		return nil, err
	}
	monthIdx, err := col(cols.Month)
	if err != nil {
		return nil, err
	}
	eventIdx, err := col(cols.Event)
	if err != nil {
		return nil, err
	}

	// Optional count columns.
	personsIdx := optional(pos, cols.Persons)
	deathsIdx := optional(pos, cols.Deaths)
	familiesIdx := optional(pos, cols.Families)

	var records []Record
	skipped := 0

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+skipped+2, err)
		}

		code := field(row, codeIdx)
		if code == "" {
			skipped++
			continue
		}

		records = append(records, Record{
			Code:     code,
			Event:    strings.TrimSpace(field(row, eventIdx)),
			Year:     parseCount(field(row, yearIdx)),
			Month:    parseCount(field(row, monthIdx)),
			Persons:  parseCount(field(row, personsIdx)),
			Deaths:   parseCount(field(row, deathsIdx)),
			Families: parseCount(field(row, familiesIdx)),
		})
	}

	if skipped > 0 {
		log.Warn().Int("rows", skipped).Msg("Skipped rows without a municipality code")
	}

	return records, nil
}

func optional(pos map[string]int, name string) int {
	if name == "" {
		return -1
	}
	if i, ok := pos[name]; ok {
		return i
	}
	return -1
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseCount reads an integer that may be formatted as a float ("12.0")
// or missing entirely; both come back as their truncated or zero value.
func parseCount(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return int(f)
	}
	return 0
}

// Rollup builds the nested {code: {"year_month": tally}} structure the map
// reads, at four levels per record: full detail, the year total (month 0),
// the month total across years (year 0) and the grand total (0_0). The
// level keys are deduplicated per record, so rows that already carry a
// zero year or month are never counted twice into the same slot.
func Rollup(records []Record) map[string]map[string]Tally {
	out := make(map[string]map[string]Tally)

	for _, r := range records {
		keys := map[string]struct{}{
			Key(r.Year, r.Month): {},
			Key(r.Year, 0):       {},
			Key(0, r.Month):      {},
			Key(0, 0):            {},
		}

		byKey := out[r.Code]
		if byKey == nil {
			byKey = make(map[string]Tally)
			out[r.Code] = byKey
		}

		for k := range keys {
			t := byKey[k]
			t.Events++
			t.Persons += r.Persons
			t.Deaths += r.Deaths
			t.Families += r.Families
			byKey[k] = t
		}
	}

	return out
}
