package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"licmatch/internal/config"
	"licmatch/internal/logging"
	"licmatch/internal/store"
	"licmatch/internal/textdata"
)

// ErrUnknownMode is returned for a scan mode other than elimination or top_down.
var ErrUnknownMode = errors.New("unknown scan mode")

// Strategy scans documents against a license store.
type Strategy struct {
	store  *store.Store
	cfg    config.Scan
	logger *slog.Logger
}

// New creates a Strategy. cfg is expected to have passed config validation.
func New(s *store.Store, cfg config.Scan, logger *slog.Logger) *Strategy {
	if cfg.StepSize < 1 {
		cfg.StepSize = 1
	}
	return &Strategy{
		store:  s,
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "scan"),
	}
}

// Scan identifies the licenses in text.
func (s *Strategy) Scan(ctx context.Context, text *textdata.TextData) (Result, error) {
	logger := logging.WithContext(ctx, s.logger)

	match, err := s.store.Analyze(ctx, text)
	if err != nil {
		return Result{}, err
	}

	result := Result{Score: match.Score, Containing: []Contained{}}
	if match.Score >= s.cfg.ConfidenceThreshold {
		result.License = &Identified{Name: match.Name, Kind: match.LicenseType}
	}
	logger.Debug("whole document scored",
		logging.License(match.Name),
		logging.Score(match.Score),
	)

	if match.Score >= s.cfg.ShallowLimit || !text.HasText() {
		return result, nil
	}

	switch s.cfg.Mode {
	case config.ModeElimination, "":
		if !s.cfg.Optimize {
			return result, nil
		}
		result.Containing, err = s.eliminate(ctx, text, match)
	case config.ModeTopDown:
		result.Containing, err = s.topDown(ctx, text)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownMode, s.cfg.Mode)
	}
	if err != nil {
		return Result{}, err
	}

	for _, c := range result.Containing {
		logger.Info("license found",
			logging.License(c.License.Name),
			logging.Kind(c.License.Kind.Key()),
			logging.Score(c.Score),
			logging.Lines(c.LineRange.Start, c.LineRange.End),
		)
	}
	return result, nil
}

// segments returns the parts of [0, lineCount) not covered by found, in
// order. found must not overlap.
func segments(lineCount int, found []LineRange) []LineRange {
	var out []LineRange
	cursor := 0
	for _, r := range sortedRanges(found) {
		if r.Start > cursor {
			out = append(out, LineRange{Start: cursor, End: r.Start})
		}
		cursor = max(cursor, r.End)
	}
	if cursor < lineCount {
		out = append(out, LineRange{Start: cursor, End: lineCount})
	}
	return out
}
