package upload

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/erazemk/quicksave/internal/store"
)

func TestReadAllWithinLimit(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 100<<10)

	got, err := ReadAll(bytes.NewReader(data), 1<<20)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("content did not round-trip")
	}
}

func TestReadAllExactlyAtLimit(t *testing.T) {
	const limit = 256 << 10
	data := bytes.Repeat([]byte("y"), limit)

	got, err := ReadAll(bytes.NewReader(data), limit)
	if err != nil {
		t.Fatalf("expected a stream of exactly the limit to succeed, got %v", err)
	}
	if len(got) != limit {
		t.Errorf("expected %d bytes, got %d", limit, len(got))
	}
}

func TestReadAllOneByteOverLimit(t *testing.T) {
	const limit = 256 << 10
	data := bytes.Repeat([]byte("z"), limit+1)

	_, err := ReadAll(bytes.NewReader(data), limit)
	if !store.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestReadAllLimitInMessage(t *testing.T) {
	const limit = 50 << 20
	r := io.LimitReader(neverEnding('a'), limit+1)

	_, err := ReadAll(r, limit)
	if !store.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "50MB") {
		t.Errorf("expected configured limit in message, got %q", err.Error())
	}
}

// countingReader tracks how many bytes have been handed out.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// neverEnding is an infinite stream of a single byte.
type neverEnding byte

func (b neverEnding) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(b)
	}
	return len(p), nil
}

func TestReadAllStopsReadingPastLimit(t *testing.T) {
	const limit = 128 << 10
	src := &countingReader{r: neverEnding('q')}

	_, err := ReadAll(src, limit)
	if !store.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// The reader must be abandoned as soon as the ceiling is crossed: at
	// most one chunk past the limit may have been consumed.
	if src.n > limit+(32<<10) {
		t.Errorf("read %d bytes from an unbounded stream, limit %d", src.n, limit)
	}
}

func TestReadAllPropagatesReadError(t *testing.T) {
	boom := errors.New("connection reset")
	r := io.MultiReader(strings.NewReader("partial"), errReader{boom})

	_, err := ReadAll(r, 1<<20)
	if !errors.Is(err, boom) {
		t.Errorf("expected transport error to propagate, got %v", err)
	}
}

type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }
