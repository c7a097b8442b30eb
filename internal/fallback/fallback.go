// Package fallback runs an ordered list of retrieval strategies, advancing
// to the next one whenever a strategy fails or yields nothing usable.
package fallback

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrExhausted is returned when every strategy in a chain has failed.
var ErrExhausted = errors.New("all strategies exhausted")

// ErrNoResult signals that a strategy ran without error but produced nothing
// usable; the chain advances the same way it does on failure.
var ErrNoResult = errors.New("no usable result")

// Strategy is one step in a chain.
type Strategy[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)
}

// Chain tries strategies in order and returns the first usable result.
type Chain[T any] struct {
	strategies []Strategy[T]
	logger     zerolog.Logger
}

// New creates a chain for the given component name.
func New[T any](component string, strategies ...Strategy[T]) *Chain[T] {
	return &Chain[T]{
		strategies: strategies,
		logger:     log.With().Str("component", component).Logger(),
	}
}

// Resolve runs the chain. It returns ErrExhausted (with the zero value) when
// no strategy produced a usable result; individual strategy errors are
// logged and swallowed.
func (c *Chain[T]) Resolve(ctx context.Context) (T, error) {
	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			break
		}
		value, err := s.Run(ctx)
		if err != nil {
			c.logger.Debug().Err(err).Str("strategy", s.Name).Msg("Strategy failed, advancing")
			continue
		}
		c.logger.Debug().Str("strategy", s.Name).Msg("Strategy succeeded")
		return value, nil
	}

	var zero T
	return zero, ErrExhausted
}
