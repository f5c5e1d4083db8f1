package extract

import (
	"context"
	"errors"
	"log/slog"

	"github.com/joseph-ayodele/biodata-intake/constants"
	"github.com/joseph-ayodele/biodata-intake/internal/common"
)

// Chain tries each strategy once, in order, and returns the first success.
// A failed model call falls through to the next strategy exactly once per
// invocation; there are no retries of the same strategy.
type Chain struct {
	logger     *slog.Logger
	strategies []FieldExtractor
}

// NewChain composes an ordered strategy chain. The conventional order is
// model first, deterministic rules last (the rules strategy never fails,
// so a chain ending in it is total).
func NewChain(logger *slog.Logger, strategies ...FieldExtractor) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{logger: logger, strategies: strategies}
}

// ExtractFields runs the chain and reports which strategy produced the
// result. It fails only when every strategy fails.
func (c *Chain) ExtractFields(ctx context.Context, text string, examples []CorrectionExample) (constants.BiodataFields, []byte, constants.ExtractionSource, error) {
	var errs []error
	for _, s := range c.strategies {
		fields, raw, err := s.ExtractFields(ctx, text, examples)
		if err == nil {
			return fields, raw, s.Source(), nil
		}
		c.logger.Warn("extract.strategy_failed",
			"source", string(s.Source()),
			"intake_id", common.IntakeIDFromContext(ctx),
			"error", err,
		)
		errs = append(errs, err)
	}
	return constants.BiodataFields{}, nil, "", errors.Join(errs...)
}
