package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/contracts"
)

// logEvery controls how often progress is logged while replaying a season
const logEvery = 500

// Run drains source in order, merging each game. It returns the number of
// games merged by this call. Games are never merged concurrently.
func (p *Processor) Run(ctx context.Context, source contracts.BoxScoreSource) (int, error) {
	merged := 0

	for {
		if err := ctx.Err(); err != nil {
			return merged, err
		}

		boxscore, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return merged, fmt.Errorf("reading game %d: %w", merged+1, err)
		}

		if err := p.ProcessGame(ctx, boxscore); err != nil {
			return merged, err
		}
		merged++

		if merged%logEvery == 0 {
			log.Printf("[ingest] Processed %d games, %d lines, %d players", merged, p.lines, p.store.Len())
		}
	}

	log.Printf("[ingest] Finished: %d games, %d lines, %d players", merged, p.lines, p.store.Len())
	return merged, nil
}
