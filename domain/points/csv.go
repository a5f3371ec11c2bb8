package points

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// CSVHeader is the column order used for import and export.
var CSVHeader = []string{"timestamp_ms", "object_id", "x", "y"}

// WriteCSV writes pts with a header, sorted by timestamp then object id.
func WriteCSV(w io.Writer, pts []TrackPoint) error {
	sorted := make([]TrackPoint, len(pts))
	copy(sorted, pts)
	SortPoints(sorted)
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range sorted {
		rec := []string{
			strconv.FormatInt(p.TimestampMs, 10),
			strconv.Itoa(p.ObjectID),
			strconv.FormatFloat(p.X, 'f', -1, 64),
			strconv.FormatFloat(p.Y, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatCSV renders pts as CSV text.
func FormatCSV(pts []TrackPoint) string {
	var b strings.Builder
	_ = WriteCSV(&b, pts)
	return b.String()
}

// maxLineBytes bounds one CSV line on import.
const maxLineBytes = 1 << 20

// ParseCSV reads points from r. The header row is optional and detected by
// the literal "timestamp_ms" in the first line. Lines are taken one at a
// time so a malformed row, unbalanced quotes included, only loses itself.
// Blank lines and rows whose fields do not all parse as numbers are
// skipped. Only read errors are returned.
func ParseCSV(r io.Reader) ([]TrackPoint, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var out []TrackPoint
	first := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			if strings.Contains(line, "timestamp_ms") {
				continue
			}
		}
		if p, ok := parseRow(splitFields(line)); ok {
			out = append(out, p)
		}
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("read csv: %w", err)
	}
	return out, nil
}

// splitFields splits a line on commas and strips one pair of enclosing
// quotes per field. A field with an unbalanced quote is left as is and
// fails to parse.
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if len(f) >= 2 && f[0] == '"' && f[len(f)-1] == '"' {
			f = f[1 : len(f)-1]
		}
		fields[i] = f
	}
	return fields
}

// ParseCSVString parses CSV text.
func ParseCSVString(s string) []TrackPoint {
	pts, _ := ParseCSV(strings.NewReader(s))
	return pts
}

func parseRow(rec []string) (TrackPoint, bool) {
	if len(rec) < 4 {
		return TrackPoint{}, false
	}
	var vals [4]float64
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return TrackPoint{}, false
		}
		vals[i] = v
	}
	ts := int64(math.Round(vals[0]))
	obj := int(math.Round(vals[1]))
	if ts < 0 || obj < 1 {
		return TrackPoint{}, false
	}
	return NewPoint(ts, obj, vals[2], vals[3]), true
}
