package framestore

import (
	"bufio"
	"fmt"
	"io"

	"github.com/xaionaro-go/asciivideo/pkg/frame"
)

// Load reads the whole store into memory.
//
// The parser is lenient: lines before the first marker form a frame of
// their own, trailing empty lines of a frame are dropped and a frame
// without rows is omitted.
func Load(r io.Reader) ([]frame.Text, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), MaxLineLength)

	var acc accumulator
	for scanner.Scan() {
		acc = acc.step(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	return acc.flush().frames, nil
}

type accumulator struct {
	frames []frame.Text
	rows   []string
}

func (acc accumulator) step(line string) accumulator {
	if line == FrameMarker {
		return acc.flush()
	}
	acc.rows = append(acc.rows, line)
	return acc
}

func (acc accumulator) flush() accumulator {
	rows := acc.rows
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) > 0 {
		acc.frames = append(acc.frames, frame.NewText(rows))
	}
	acc.rows = acc.rows[:0]
	return acc
}
