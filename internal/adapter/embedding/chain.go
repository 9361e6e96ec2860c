package embedding

import (
	"fmt"
	"strings"

	"semdex/internal/port"
)

// Chain tries each strategy in order and returns the first usable vector,
// L2-normalized. Construction fails when no strategy is available or the
// strategies disagree on dimension; a process without any embedding source
// must refuse to start.
type Chain struct {
	strategies []port.Embedder
}

// NewChain creates a Chain from the non-nil strategies, in order.
func NewChain(strategies ...port.Embedder) (*Chain, error) {
	active := make([]port.Embedder, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return nil, fmt.Errorf("no embedding strategy available")
	}

	dim := active[0].Dimension()
	for _, s := range active[1:] {
		if s.Dimension() != dim {
			return nil, fmt.Errorf("embedding strategies disagree on dimension: %d vs %d (%s)",
				dim, s.Dimension(), s.ModelName())
		}
	}

	return &Chain{strategies: active}, nil
}

// Embed returns the first strategy's usable vector, unit-length. A nil
// vector with nil error means every strategy found the text unscoreable;
// an error is reported only when a strategy failed and none succeeded.
func (c *Chain) Embed(text string) ([]float32, error) {
	var firstErr error

	for _, s := range c.strategies {
		vec, err := s.Embed(text)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if normalized := L2Normalize(vec); normalized != nil {
			return normalized, nil
		}
	}

	return nil, firstErr
}

// Dimension returns the embedding vector dimension.
func (c *Chain) Dimension() int {
	return c.strategies[0].Dimension()
}

// ModelName returns the strategy names joined in attempt order.
func (c *Chain) ModelName() string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.ModelName()
	}
	return strings.Join(names, "+")
}
