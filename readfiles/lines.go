package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notargets/gopersa/types"
)

// lineReader walks a text file one line at a time and remembers where it is,
// so every format error can name the offending line.
type lineReader struct {
	reader *bufio.Reader
	path   string
	line   int
}

func newLineReader(r io.Reader, path string) *lineReader {
	return &lineReader{reader: bufio.NewReader(r), path: path}
}

func (lr *lineReader) getLine() (line string, err error) {
	line, err = lr.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF || len(line) == 0 {
			if err == io.EOF {
				return "", lr.errorf("early end of file")
			}
			return "", &types.IOError{Path: lr.path, Op: "read", Err: err}
		}
		// Last line without a trailing newline
		err = nil
	}
	lr.line++
	line = strings.TrimRight(line, "\r\n") // Strip away the newline
	return
}

func (lr *lineReader) skipLines(n int) (err error) {
	for i := 0; i < n; i++ {
		if _, err = lr.getLine(); err != nil {
			return
		}
	}
	return
}

// readCount reads a line holding a single non-negative integer
func (lr *lineReader) readCount(what string) (num int, err error) {
	var line string
	if line, err = lr.getLine(); err != nil {
		return
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, lr.errorf("missing %s", what)
	}
	if num, err = strconv.Atoi(fields[0]); err != nil || num < 0 {
		return 0, lr.errorf("unable to read %s from token: [%s]", what, fields[0])
	}
	return
}

// readInts reads the first n integers of the next line
func (lr *lineReader) readInts(n int, what string) (nums []int, err error) {
	var line string
	if line, err = lr.getLine(); err != nil {
		return
	}
	fields := strings.Fields(line)
	if len(fields) < n {
		return nil, lr.errorf("%s needs %d integers, found %d", what, n, len(fields))
	}
	nums = make([]int, n)
	for i := 0; i < n; i++ {
		if nums[i], err = strconv.Atoi(fields[i]); err != nil {
			return nil, lr.errorf("unable to read integer from token: [%s]", fields[i])
		}
	}
	return
}

// readFloats reads the first n floats of the next line
func (lr *lineReader) readFloats(n int, what string) (nums []float64, err error) {
	var line string
	if line, err = lr.getLine(); err != nil {
		return
	}
	fields := strings.Fields(line)
	if len(fields) < n {
		return nil, lr.errorf("%s needs %d numbers, found %d", what, n, len(fields))
	}
	nums = make([]float64, n)
	for i := 0; i < n; i++ {
		if nums[i], err = strconv.ParseFloat(fields[i], 64); err != nil {
			return nil, lr.errorf("unable to read number from token: [%s]", fields[i])
		}
	}
	return
}

func (lr *lineReader) errorf(format string, args ...any) error {
	return types.NewFormatError(lr.path, lr.line, "%s", fmt.Sprintf(format, args...))
}
