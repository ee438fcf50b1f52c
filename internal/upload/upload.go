// Package upload materializes an incoming byte stream of unknown length as
// a single in-memory byte slice while enforcing a hard size ceiling. The
// ceiling is checked after every chunk, before the next read, so the buffer
// never grows unboundedly past the limit no matter how the client shapes
// the stream.
package upload

import (
	"bytes"
	"io"

	"github.com/erazemk/quicksave/internal/store"
)

// chunkSize is how much is pulled from the stream per read.
const chunkSize = 32 << 10 // 32 KiB

// ReadAll accumulates r into memory, returning a ValidationError naming the
// limit as soon as the accumulated length exceeds limit bytes. A stream
// totaling exactly limit bytes succeeds. Transport read errors are returned
// as-is.
func ReadAll(r io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, chunkSize)

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if int64(buf.Len()) > limit {
				return nil, store.Validationf("file exceeds the %dMB size limit", limit>>20)
			}
		}
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}
