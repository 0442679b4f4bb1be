// Package textfile reads and writes template text files byte-faithfully.
// The goal is that a processed file differs from its source only on the
// lines the engine actually changed: the original encoding, byte-order
// mark and newline convention are detected per file and reproduced
// exactly on output, and no trailing newline is ever appended.
//
// Only two encodings are supported, UTF-8 with a BOM and 7-bit ASCII.
// Anything else is refused rather than guessed at, since writing a
// wrongly re-encoded file would corrupt it for the game reading it.
package textfile

import (
	"bytes"
	"os"

	"github.com/gogs/chardet"

	"github.com/tweakgen/tweakgen/pkg/errors"
	"github.com/tweakgen/tweakgen/pkg/logging"
)

var log = logging.GetLogger("textfile")

// detectSample is how many leading bytes feed the charset detector.
const detectSample = 1024

// minConfidence is the detector confidence (0-100) below which the file
// is rejected as undeterminable.
const minConfidence = 90

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Charset is one of the two normalized encodings this tool supports.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetUTF8BOM
)

func (c Charset) String() string {
	if c == CharsetUTF8BOM {
		return "UTF-8 (BOM)"
	}
	return "ASCII"
}

// Encoding records everything needed to write a file back the way its
// source was encoded.
type Encoding struct {
	Charset Charset
	BOM     []byte // nil when the source had none
	Newline []byte // the terminator byte sequence actually present
}

// File is a fully materialized source file: its encoding record plus every
// logical line with BOM and terminators stripped.
type File struct {
	Path     string
	Encoding Encoding
	Lines    []string
}

// Read loads path into memory, detecting its charset and newline style.
// Files in any encoding other than BOM'd UTF-8 or pure ASCII are a fatal
// error, as are files whose line endings cannot be determined.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read %s", path)
	}

	charset, err := detectCharset(data, path)
	if err != nil {
		return nil, err
	}

	enc := Encoding{Charset: charset}
	if charset == CharsetUTF8BOM {
		enc.BOM = bomUTF8
		data = data[len(bomUTF8):]
	}

	enc.Newline, err = detectNewline(data, path)
	if err != nil {
		return nil, err
	}

	f := &File{Path: path, Encoding: enc, Lines: splitLines(data)}
	log.Debug().
		Str("path", path).
		Stringer("charset", charset).
		Bytes("newline", enc.Newline).
		Int("lines", len(f.Lines)).
		Msg("Template file read")
	return f, nil
}

// detectCharset classifies the file content. A UTF-8 BOM or a pure 7-bit
// sample settles it directly; everything else goes through the statistical
// detector, which either lacks confidence (fatal) or names an encoding we
// do not support (also fatal).
func detectCharset(data []byte, path string) (Charset, error) {
	head := data
	if len(head) > detectSample {
		head = head[:detectSample]
	}

	if bytes.HasPrefix(head, bomUTF8) {
		return CharsetUTF8BOM, nil
	}
	if isASCII(head) {
		return CharsetASCII, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrEncodingConfidence,
			"character detection failed for %s", path)
	}
	if result.Confidence < minConfidence {
		return 0, errors.Newf(errors.ErrEncodingConfidence,
			"character detection not confident enough for %s: %s at %d%%",
			path, result.Charset, result.Confidence).
			WithDetail("file", path).
			WithDetail("confidence", result.Confidence)
	}
	return 0, errors.Newf(errors.ErrEncodingUnsupported,
		"unsupported encoding %s in %s", result.Charset, path).
		WithDetail("file", path)
}

// detectNewline reports the terminator of the first line in the content.
// A file containing no terminator at all cannot tell us its convention,
// which is fatal rather than guessed.
func detectNewline(data []byte, path string) ([]byte, error) {
	for i, b := range data {
		switch b {
		case '\n':
			return []byte("\n"), nil
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				return []byte("\r\n"), nil
			}
			return []byte("\r"), nil
		}
	}
	return nil, errors.Newf(errors.ErrNewlineUnknown,
		"unknown line endings for %s", path)
}

// splitLines breaks content into terminator-stripped lines. A final line
// without a terminator is kept whole; a final terminator produces no empty
// trailing line.
func splitLines(data []byte) []string {
	var lines []string
	start := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			lines = append(lines, string(data[start:i]))
			start = i + 1
		case '\r':
			lines = append(lines, string(data[start:i]))
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}
