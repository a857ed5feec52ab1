package framestore

import (
	"bufio"
	"fmt"
	"io"

	"github.com/xaionaro-go/asciivideo/pkg/frame"
)

// Writer appends frames to a store. Every Append is flushed to the
// underlying writer, nothing is buffered across frames.
type Writer struct {
	out   *bufio.Writer
	count int
	bytes int64
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		out: bufio.NewWriter(w),
	}
}

func (w *Writer) Append(txt frame.Text) error {
	n, err := w.writeFrame(txt)
	w.bytes += n
	if err != nil {
		return fmt.Errorf("%w: frame #%d: %w", ErrStoreWrite, w.count, err)
	}
	w.count++
	return nil
}

func (w *Writer) writeFrame(txt frame.Text) (int64, error) {
	var total int64
	n, err := w.out.WriteString(FrameMarker + "\n")
	total += int64(n)
	if err != nil {
		return total, err
	}
	m, err := txt.WriteTo(w.out)
	total += m
	if err != nil {
		return total, err
	}
	if err := w.out.WriteByte('\n'); err != nil {
		return total, err
	}
	total++
	return total, w.out.Flush()
}

// Count is the amount of frames appended successfully.
func (w *Writer) Count() int {
	return w.count
}

// Bytes is the amount of uncompressed bytes produced.
func (w *Writer) Bytes() int64 {
	return w.bytes
}
