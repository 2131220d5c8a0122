package types

import (
	"fmt"
	"strings"
)

// FormatError reports malformed facet or tap content: bad headers, counts,
// arities, indices, or a tap file whose size is not a whole number of records.
type FormatError struct {
	Path   string
	Line   int // 1-based line number for text files, 0 if not applicable
	Record int // 0-based record index for tap files, -1 if not applicable
	Msg    string
	Err    error
}

func NewFormatError(path string, line int, format string, args ...any) *FormatError {
	return &FormatError{Path: path, Line: line, Record: -1, Msg: fmt.Sprintf(format, args...)}
}

func NewRecordFormatError(path string, record int, format string, args ...any) *FormatError {
	return &FormatError{Path: path, Record: record, Msg: fmt.Sprintf(format, args...)}
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("format error")
	if e.Path != "" {
		fmt.Fprintf(&b, " in %s", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Record >= 0 {
		fmt.Fprintf(&b, " at record %d", e.Record)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *FormatError) Unwrap() error { return e.Err }

// DegenerateGeometryError reports a face whose cross product has zero
// magnitude, meaning collapsed or duplicated vertices.
type DegenerateGeometryError struct {
	Kind string // "triangle" or "quad"
	Face int    // 0-based index within its connectivity block
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("degenerate geometry: %s %d has a zero-magnitude normal", e.Kind, e.Face)
}

// IOError reports a missing file, a short read, or a read outside the file.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("io error: %s %s", e.Op, e.Path)
	}
	return fmt.Sprintf("io error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// UnknownFieldError reports a derived field name outside the supported catalog.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field [%s]", e.Name)
}

// ConfigurationError reports missing or unusable configuration, most often
// the reference constants needed to derive pressure.
type ConfigurationError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.Path != "" {
		fmt.Fprintf(&b, " in %s", e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
