package textfile

import (
	"bytes"

	"github.com/natefinch/atomic"

	"github.com/tweakgen/tweakgen/pkg/errors"
)

// Writer assembles the output file in memory using the source's encoding
// record: the BOM (if any) first, then each line separated by the recorded
// terminator bytes, written before every line except the first so the file
// never gains a trailing newline.
//
// Nothing touches the destination path until Commit, which replaces the
// file atomically. An aborted run therefore never leaves a truncated live
// file behind.
type Writer struct {
	path      string
	enc       Encoding
	buf       bytes.Buffer
	wroteLine bool
}

// NewWriter returns a writer for path using the given encoding record.
func NewWriter(path string, enc Encoding) *Writer {
	w := &Writer{path: path, enc: enc}
	if enc.BOM != nil {
		w.buf.Write(enc.BOM)
	}
	return w
}

// WriteLine appends a single logical line.
func (w *Writer) WriteLine(line string) error {
	if w.enc.Charset == CharsetASCII && !isASCII([]byte(line)) {
		return errors.Newf(errors.ErrEncodeOutput,
			"line %q is not representable in ASCII for %s", line, w.path)
	}
	if w.wroteLine {
		w.buf.Write(w.enc.Newline)
	}
	w.buf.WriteString(line)
	w.wroteLine = true
	return nil
}

// Commit writes the buffered content to the destination path atomically.
func (w *Writer) Commit() error {
	if err := atomic.WriteFile(w.path, bytes.NewReader(w.buf.Bytes())); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", w.path)
	}
	return nil
}
