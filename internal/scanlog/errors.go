package scanlog

import "fmt"

// FileAccessError reports an input log that is missing or unreadable.
// No partial output is produced when it occurs.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("log file %q: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// MalformedLogError reports a row whose column values do not parse into the
// expected tuple/array shapes, or a scan whose beam count disagrees with the
// rest of the log. Row is zero-based in file order. Column is the offending
// column index, or -1 when the problem spans the whole row.
type MalformedLogError struct {
	Row    int
	Column int
	Err    error
}

func (e *MalformedLogError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("malformed log row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("malformed log row %d column %d: %v", e.Row, e.Column, e.Err)
}

func (e *MalformedLogError) Unwrap() error { return e.Err }
