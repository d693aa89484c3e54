package store

import (
	"context"
	"log/slog"
	"sync"

	"licmatch/internal/logging"
	"licmatch/internal/textdata"
)

// Match is the best catalog entry for a piece of text.
type Match struct {
	Score       float64
	Name        string
	LicenseType textdata.LicenseType
	// Data is the catalog text that produced the score.
	Data *textdata.TextData
}

// Analyze scores text against every catalog entry and returns the best one.
// When several entries tie, the one that sorts first by name and then by
// license type wins, so results do not depend on scheduling.
func (s *Store) Analyze(ctx context.Context, text *textdata.TextData) (Match, error) {
	candidates := s.candidates()
	if len(candidates) == 0 {
		return Match{}, ErrEmpty
	}

	scores := make([]float64, len(candidates))
	jobs := make(chan int)

	workers := min(s.workers, len(candidates))
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				scores[idx] = text.MatchScore(candidates[idx].data)
			}
		}()
	}

	var ctxErr error
feed:
	for idx := range candidates {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if ctxErr != nil {
		return Match{}, ctxErr
	}

	best := 0
	for idx := 1; idx < len(scores); idx++ {
		if scores[idx] > scores[best] {
			best = idx
		}
	}

	match := Match{
		Score:       scores[best],
		Name:        candidates[best].name,
		LicenseType: candidates[best].kind,
		Data:        candidates[best].data,
	}
	logging.WithContext(ctx, s.logger).Debug("analyzed text",
		slog.Int("candidates", len(candidates)),
		logging.License(match.Name),
		logging.Kind(match.LicenseType.Key()),
		logging.Score(match.Score),
	)
	return match, nil
}
