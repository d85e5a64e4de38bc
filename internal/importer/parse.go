// Package importer loads term/definition pairs from caret-delimited text
// into the store.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Delimiter separates the term from its definition on each line.
const Delimiter = '^'

// ErrMalformedRecord is matched by every *RecordError.
var ErrMalformedRecord = errors.New("malformed record")

// Record is one parsed term/definition pair.
type Record struct {
	Term       string
	Definition string
}

// RecordError reports a line that does not hold exactly two fields.
type RecordError struct {
	Line   int
	Fields int
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: expected exactly two columns (term and definition), got %d", e.Line, e.Fields)
}

func (e *RecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// SourceError reports a source that could not be opened or read.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read source: %v", e.Err)
	}
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Parse reads every record from r. There is no header row and blank lines
// are skipped. Fields are trimmed of surrounding whitespace. The first
// record without exactly two fields fails the whole parse.
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.Comma = Delimiter
	reader.FieldsPerRecord = -1 // checked per record below
	reader.LazyQuotes = true

	var records []Record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &RecordError{Line: perr.Line, Fields: len(fields)}
			}
			return nil, &SourceError{Err: err}
		}
		if len(fields) != 2 {
			line, _ := reader.FieldPos(0)
			return nil, &RecordError{Line: line, Fields: len(fields)}
		}
		records = append(records, Record{
			Term:       strings.TrimSpace(fields[0]),
			Definition: strings.TrimSpace(fields[1]),
		})
	}
	return records, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		var serr *SourceError
		if errors.As(err, &serr) {
			serr.Path = path
		}
		return nil, err
	}
	return records, nil
}
