package persist

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// compressedExtension is appended to file names of compressed exports.
const compressedExtension = ".lz4"

// Writer persists one result value per file. The zero value writes
// uncompressed JSON.
type Writer struct {
	codec    Codec
	compress bool
}

// NewWriter creates a writer over the given codec. With compress set the
// output is wrapped in an LZ4 frame and the file name gains a ".lz4"
// suffix.
func NewWriter(codec Codec, compress bool) *Writer {
	if codec == nil {
		codec = NewJSONCodec()
	}

	return &Writer{codec: codec, compress: compress}
}

// Path returns the file path the writer would produce for a base path,
// normalizing the extension to the codec's and appending the compression
// suffix when enabled.
func (w *Writer) Path(base string) string {
	path := strings.TrimSuffix(base, compressedExtension)
	path = strings.TrimSuffix(path, w.codec.Extension())
	path += w.codec.Extension()

	if w.compress {
		path += compressedExtension
	}

	return path
}

// Save writes the value to the path derived from base.
func (w *Writer) Save(base string, value any) error {
	path := w.Path(base)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer file.Close()

	var out io.Writer = file

	var lz4Writer *lz4.Writer

	if w.compress {
		lz4Writer = lz4.NewWriter(file)
		out = lz4Writer
	}

	if err := w.codec.Encode(out, value); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if lz4Writer != nil {
		if err := lz4Writer.Close(); err != nil {
			return fmt.Errorf("flush compressed result: %w", err)
		}
	}

	return nil
}

// Load reads a value previously written with Save. Compression is
// detected from the ".lz4" suffix of the path.
func (w *Writer) Load(path string, value any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open result file: %w", err)
	}
	defer file.Close()

	var in io.Reader = file
	if strings.HasSuffix(path, compressedExtension) {
		in = lz4.NewReader(file)
	}

	if err := w.codec.Decode(in, value); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}

	return nil
}
