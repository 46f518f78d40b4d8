package scanlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Column layout of a drive log. The bracketed columns contain commas and
// must therefore be quoted in the file; encoding/csv handles that.
const (
	colRanges = iota
	colPosition
	colOrientation
	colMotionFirst
)

// ReadLog reads a headerless drive log from path. It returns a
// *FileAccessError if the file cannot be opened and a *MalformedLogError if
// any row fails to parse; on error no rows are returned.
func ReadLog(path string) ([]LogRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()
	return ReadLogFrom(f)
}

// ReadLogFrom reads a drive log from r. Row order in the input defines path
// and time order in the output.
func ReadLogFrom(r io.Reader) ([]LogRow, error) {
	cr := csv.NewReader(r)
	// Trailing motion channels are optional, so rows may differ in width.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []LogRow
	for i := 0; ; i++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedLogError{Row: i, Column: -1, Err: err}
		}

		row, err := parseRow(record)
		if err != nil {
			merr, ok := err.(*MalformedLogError)
			if !ok {
				merr = &MalformedLogError{Column: -1, Err: err}
			}
			merr.Row = i
			return nil, merr
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseRow converts one CSV record into a LogRow. The returned
// *MalformedLogError carries the column; the caller stamps the row index.
func parseRow(record []string) (LogRow, error) {
	if len(record) < colMotionFirst {
		return LogRow{}, &MalformedLogError{
			Column: -1,
			Err:    fmt.Errorf("expected at least %d columns, got %d", colMotionFirst, len(record)),
		}
	}

	ranges, err := parseFloatList(record[colRanges])
	if err != nil {
		return LogRow{}, &MalformedLogError{Column: colRanges, Err: err}
	}

	pos, err := parseFloatTuple(record[colPosition], 3)
	if err != nil {
		return LogRow{}, &MalformedLogError{Column: colPosition, Err: err}
	}

	rpy, err := parseFloatTuple(record[colOrientation], 3)
	if err != nil {
		return LogRow{}, &MalformedLogError{Column: colOrientation, Err: err}
	}

	row := LogRow{Ranges: ranges}
	copy(row.Position[:], pos)
	copy(row.Orientation[:], rpy)

	// Motion channels pass through unparsed.
	if len(record) > colMotionFirst {
		row.Motion = append(row.Motion, record[colMotionFirst:]...)
	}
	return row, nil
}
