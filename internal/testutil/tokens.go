package testutil

import (
	"fmt"
	"sync"
)

// TokenSequence generates numbered advance tokens ("advance-0001",
// "advance-0002", ...). It implements store.TokenGenerator; unlike
// store.FixedGenerator it never exhausts, so scenarios of any length
// stay deterministic without pre-counting their steps.
type TokenSequence struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewTokenSequence creates a generator with the given prefix. An empty
// prefix defaults to "advance".
func NewTokenSequence(prefix string) *TokenSequence {
	if prefix == "" {
		prefix = "advance"
	}
	return &TokenSequence{prefix: prefix}
}

// Generate returns the next numbered token.
func (g *TokenSequence) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}

// Count returns how many tokens have been handed out.
func (g *TokenSequence) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}
