package mock

import "github.com/fwojciec/docnav"

var _ docnav.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of docnav.Normalizer.
type Normalizer struct {
	NormalizeFn func(raw string) string
}

func (n *Normalizer) Normalize(raw string) string {
	return n.NormalizeFn(raw)
}
