// Package jsonl reads per-game box scores stored as JSON Lines, one game per
// line, in chronological order.
package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxLineSize bounds a single encoded game
const maxLineSize = 4 << 20

// Reader decodes box scores from a line-oriented stream
type Reader struct {
	name    string
	scanner *bufio.Scanner
	line    int
	closer  io.Closer
}

// NewReader reads games from r
func NewReader(r io.Reader) *Reader {
	return newNamedReader("input", r, nil)
}

func newNamedReader(name string, r io.Reader, closer io.Closer) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	return &Reader{
		name:    name,
		scanner: scanner,
		closer:  closer,
	}
}

// Next returns the next game, skipping blank lines. It returns io.EOF when
// the input is exhausted.
func (r *Reader) Next(ctx context.Context) (*models.BoxScore, error) {
	for r.scanner.Scan() {
		r.line++

		raw := bytes.TrimSpace(r.scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var boxscore models.BoxScore
		if err := json.Unmarshal(raw, &boxscore); err != nil {
			return nil, fmt.Errorf("%s:%d: decoding box score: %w", r.name, r.line, err)
		}
		return &boxscore, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s:%d: reading: %w", r.name, r.line, err)
	}
	return nil, io.EOF
}

// Close releases the underlying file or response body, if any
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
