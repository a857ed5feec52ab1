package frame

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

var ErrRowLengthMismatch = errors.New("rows have different lengths")

// Text is one frame rendered as a grid of glyphs. It is immutable.
type Text struct {
	rows []string
}

func NewText(rows []string) Text {
	return Text{rows: slices.Clone(rows)}
}

func (t Text) Width() int {
	if len(t.rows) == 0 {
		return 0
	}
	return len(t.rows[0])
}

func (t Text) Height() int {
	return len(t.rows)
}

func (t Text) IsEmpty() bool {
	return len(t.rows) == 0
}

func (t Text) Row(idx int) string {
	return t.rows[idx]
}

func (t Text) Rows() []string {
	return slices.Clone(t.rows)
}

func (t Text) Equal(other Text) bool {
	return slices.Equal(t.rows, other.rows)
}

func (t Text) Validate() error {
	w := t.Width()
	for idx, row := range t.rows {
		if len(row) != w {
			return fmt.Errorf("%w: row #%d has %d glyphs, while row #0 has %d", ErrRowLengthMismatch, idx, len(row), w)
		}
	}
	return nil
}

// Len is the length of String().
func (t Text) Len() int {
	n := 0
	for _, row := range t.rows {
		n += len(row) + 1
	}
	return n
}

// String returns every row followed by a line break.
func (t Text) String() string {
	var b strings.Builder
	b.Grow(t.Len())
	for _, row := range t.rows {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}

func (t Text) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String())
	return int64(n), err
}
