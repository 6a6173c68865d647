package report

import (
	"fmt"
	"os"
	"reflect"
	"strings"
)

// NewFileSinkOrExit calls NewFileSink, passing any error to
// DefaultExitFn.
func NewFileSinkOrExit(prefix string) *FileSink {
	s, err := NewFileSink(prefix)
	if err != nil {
		DefaultExitFn(fmt.Errorf("failed to open file sink - %w", err))
	}
	return s
}

// NewFileSink returns a FileSink that writes one file per operation,
// named "<prefix>.<op>.log", lazily created on the first WriteRow
// call for that op.
func NewFileSink(prefix string) (*FileSink, error) {
	return &FileSink{
		prefix: prefix,
		files:  make(map[string]*os.File),
	}, nil
}

// FileSink is report's default Sink: CSV after a header line, UTF-8,
// one file per operation, exactly as spec.md §6 specifies.
type FileSink struct {
	prefix string
	files  map[string]*os.File
}

// WriteRow writes fields as one CSV row to "<prefix>.<op>.log",
// creating the file and its header line on the first call for op. If
// a single struct value is passed, its exported field names become
// the header (mirroring bstruct's reflective field walk); otherwise
// the header is positional ("col0", "col1", ...).
func (o *FileSink) WriteRow(op string, fields ...any) error {
	f, isNew, err := o.fileFor(op)
	if err != nil {
		return err
	}

	header, values := rowOf(fields)

	if isNew {
		if _, err := fmt.Fprintln(f, strings.Join(header, ",")); err != nil {
			return fmt.Errorf("failed to write header for op %q - %w", op, err)
		}
	}

	if _, err := fmt.Fprintln(f, strings.Join(values, ",")); err != nil {
		return fmt.Errorf("failed to write row for op %q - %w", op, err)
	}

	return nil
}

func (o *FileSink) fileFor(op string) (*os.File, bool, error) {
	if f, ok := o.files[op]; ok {
		return f, false, nil
	}

	path := fmt.Sprintf("%s.%s.log", o.prefix, op)
	f, err := os.Create(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create %q - %w", path, err)
	}

	o.files[op] = f
	return f, true, nil
}

// CloseOrExit calls Close, passing any error to DefaultExitFn.
func (o *FileSink) CloseOrExit() {
	if err := o.Close(); err != nil {
		DefaultExitFn(fmt.Errorf("failed to close file sink - %w", err))
	}
}

// Close closes every file this sink has opened.
func (o *FileSink) Close() error {
	for op, f := range o.files {
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close log for op %q - %w", op, err)
		}
	}
	return nil
}

func rowOf(fields []any) (header, values []string) {
	if len(fields) == 1 {
		v := reflect.ValueOf(fields[0])
		if v.Kind() == reflect.Struct {
			t := v.Type()
			for i := 0; i < t.NumField(); i++ {
				field := t.Field(i)
				if !field.IsExported() {
					continue
				}
				header = append(header, field.Name)
				values = append(values, fmt.Sprint(v.Field(i).Interface()))
			}
			return header, values
		}
	}

	for i, f := range fields {
		header = append(header, fmt.Sprintf("col%d", i))
		values = append(values, fmt.Sprint(f))
	}
	return header, values
}
