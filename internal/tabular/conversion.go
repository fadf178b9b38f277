package tabular

import (
	"io"
	"strings"
)

// DefaultFill is the value written into target columns that have no
// counterpart in the source file.
const DefaultFill = "0.0"

// Conversion reshapes a source tab-delimited stream into the column
// layout of a target file. Columns present in the source but not the
// target are dropped; columns present in the target but not the source
// receive a fill value.
//
// The reshaping is driven by an instruction array: for each outgoing
// column index it holds the source column index, or -1 for the fill
// value. Conversion implements io.Reader so the result can be consumed
// anywhere a file could.
type Conversion struct {
	src          *Reader
	instructions []int
	current      string
	pos          int
	fill         string
	eof          bool
	err          error
}

// NewConversion builds a conversion of the source file into the target
// file's column layout with the standard fill value.
func NewConversion(sourcePath, targetPath string) (*Conversion, error) {
	return NewConversionWithFill(sourcePath, targetPath, DefaultFill)
}

// NewConversionWithFill builds a conversion with a caller-supplied fill
// value for missing columns.
func NewConversionWithFill(sourcePath, targetPath, fill string) (*Conversion, error) {
	src, err := Open(sourcePath)
	if err != nil {
		return nil, err
	}
	target, err := Open(targetPath)
	if err != nil {
		src.Close()
		return nil, err
	}
	defer target.Close()
	c := newConversion(src, target, fill)
	return c, nil
}

// newConversion wires a conversion from two open readers; the target
// reader is only needed for its header.
func newConversion(src *Reader, target *Reader, fill string) *Conversion {
	labels := target.Labels()
	instructions := make([]int, len(labels))
	for i, label := range labels {
		instructions[i] = src.FindColumn(label)
	}
	return &Conversion{
		src:          src,
		instructions: instructions,
		// The target header is the first output line.
		current: target.Header(),
		fill:    fill,
	}
}

// Read emits the converted stream line by line, each terminated by a
// newline.
func (c *Conversion) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if c.eof {
			if n > 0 {
				return n, nil
			}
			if c.err != nil {
				return 0, c.err
			}
			return 0, io.EOF
		}
		if c.pos == len(c.current) {
			p[n] = '\n'
			n++
			c.advance()
			continue
		}
		copied := copy(p[n:], c.current[c.pos:])
		n += copied
		c.pos += copied
	}
	return n, nil
}

// advance reads the next source line and reformats it, or marks end of
// stream.
func (c *Conversion) advance() {
	if !c.src.Next() {
		c.err = c.src.Err()
		c.eof = true
		return
	}
	fields := make([]string, len(c.instructions))
	for i, idx := range c.instructions {
		if idx < 0 {
			fields[i] = c.fill
		} else {
			fields[i] = c.src.Field(idx)
		}
	}
	c.current = strings.Join(fields, "\t")
	c.pos = 0
}

// Close releases the source file.
func (c *Conversion) Close() error {
	return c.src.Close()
}
