package jsonl

import (
	"context"
	"errors"
	"io"

	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/contracts"
	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"
)

// MultiSource chains sources, draining each in order
type MultiSource struct {
	sources []contracts.BoxScoreSource
}

// NewMultiSource creates a source reading sources one after another
func NewMultiSource(sources ...contracts.BoxScoreSource) *MultiSource {
	return &MultiSource{sources: sources}
}

// Next returns the next game from the current source, moving on when it is
// exhausted
func (m *MultiSource) Next(ctx context.Context) (*models.BoxScore, error) {
	for len(m.sources) > 0 {
		boxscore, err := m.sources[0].Next(ctx)
		if errors.Is(err, io.EOF) {
			m.sources = m.sources[1:]
			continue
		}
		return boxscore, err
	}
	return nil, io.EOF
}

// OpenAll opens every location and chains them. Returned closers must be
// closed by the caller even when an error is returned.
func OpenAll(ctx context.Context, locations []string) (*MultiSource, []io.Closer, error) {
	var (
		sources []contracts.BoxScoreSource
		closers []io.Closer
	)

	for _, location := range locations {
		r, err := Open(ctx, location)
		if err != nil {
			return nil, closers, err
		}
		sources = append(sources, r)
		closers = append(closers, r)
	}

	return NewMultiSource(sources...), closers, nil
}
