package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/RichardKnop/heapstore/internal/heap"
)

const (
	truncatedStringEnd = " ..."
	fixedWidthLength   = 20
	maxLength          = 40
)

// TableWriter prints tuples as a bordered text table, one column per field.
type TableWriter struct {
	w          io.Writer
	fields     []heap.FieldItem
	columnSize []int
	tableWidth int
}

func NewTableWriter(w io.Writer, desc *heap.TupleDesc) *TableWriter {
	fields := desc.Items()
	columnSize, tableWidth := computeTableSize(fields)
	return &TableWriter{
		w:          w,
		fields:     fields,
		columnSize: columnSize,
		tableWidth: tableWidth,
	}
}

func (t *TableWriter) Header() {
	t.border()

	for i, aField := range t.fields {
		name := aField.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		fmt.Fprintf(t.w, "| %-*s ", t.columnSize[i], truncate(name))
	}
	fmt.Fprintf(t.w, "|\n")

	t.border()
}

func (t *TableWriter) Row(aTuple *heap.Tuple) {
	for i, aValue := range aTuple.Values {
		fmt.Fprintf(t.w, "| %-*s ", t.columnSize[i], truncate(fmt.Sprint(aValue)))
	}
	fmt.Fprintf(t.w, "|\n")
}

func (t *TableWriter) End() {
	t.border()
}

func (t *TableWriter) border() {
	fmt.Fprintf(t.w, "+%s+\n", strings.Repeat("-", t.tableWidth-2))
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > maxLength {
		return string(r[0:maxLength-len(truncatedStringEnd)]) + truncatedStringEnd
	}
	return s
}

func computeTableSize(fields []heap.FieldItem) ([]int, int) {
	columnSize := make([]int, len(fields))
	for i, aField := range fields {
		if aField.Type == heap.Varchar {
			columnSize[i] = maxLength
		} else {
			columnSize[i] = fixedWidthLength
		}
	}

	// left border is | followed by a space, right border is space followed by | (2+2=4)
	// then between each column we have space, |, space (3)
	tableWidth := 4 + (len(columnSize)-1)*3
	for _, columnWidth := range columnSize {
		tableWidth += columnWidth
	}

	return columnSize, tableWidth
}
