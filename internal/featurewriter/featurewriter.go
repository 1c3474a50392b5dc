// Package featurewriter concatenates a labeled (query, document)
// feature row — label, query id, docno, then the fixed-order numerical
// feature block docfeat.Extract produces — into the CSV-like text line
// spec.md §4.5 describes.
//
// Grounded on trecrun/queryfile's plain-text line-oriented style: no
// third-party CSV library is pulled in because the format is a simple
// comma-joined line with a fixed 5-decimal numeric format, not a
// quoted/escaped CSV dialect — see DESIGN.md.
package featurewriter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kittclouds/rankgen/internal/docfeat"
)

// Row is one output line's worth of data.
type Row struct {
	Label   int
	QID     string
	Docno   string
	Columns []docfeat.Column
}

// Writer serializes Rows to an underlying io.Writer, one per line. A
// single Writer must not be shared across goroutines without external
// synchronization (spec.md §5: the output stream is serialized by a
// single writer goroutine or a mutex around writes).
type Writer struct {
	w           *bufio.Writer
	wroteHeader bool
}

// New wraps w in a buffered Writer.
func New(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteHeader writes a comment-free CSV header naming every column,
// derived from the first row's Columns. Subsequent calls are no-ops.
func (fw *Writer) WriteHeader(row Row) error {
	if fw.wroteHeader {
		return nil
	}
	fw.wroteHeader = true
	names := make([]string, 0, 3+len(row.Columns))
	names = append(names, "label", "qid", "docno")
	for _, c := range row.Columns {
		names = append(names, c.Name)
	}
	_, err := fmt.Fprintln(fw.w, strings.Join(names, ","))
	return err
}

// WriteRow writes one feature row, formatting every numeric feature
// with 5 fractional digits fixed (spec.md §4.5's numeric format).
func (fw *Writer) WriteRow(row Row) error {
	var b strings.Builder
	b.WriteString(strconv.Itoa(row.Label))
	b.WriteByte(',')
	b.WriteString(row.QID)
	b.WriteByte(',')
	b.WriteString(row.Docno)
	for _, c := range row.Columns {
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(c.Value, 'f', 5, 64))
	}
	b.WriteByte('\n')
	_, err := fw.w.WriteString(b.String())
	if err != nil {
		return fmt.Errorf("featurewriter: write row: %w", err)
	}
	return nil
}

// Flush flushes any buffered output to the underlying writer.
func (fw *Writer) Flush() error {
	return fw.w.Flush()
}
