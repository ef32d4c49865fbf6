package testfixtures

import (
	"fmt"
	"sync/atomic"
)

// IDGenerator hands out "<prefix>-<n>" identifiers starting at 1.
type IDGenerator struct {
	prefix string
	issued atomic.Uint64
}

// NewIDGenerator uses "cfg" when prefix is empty.
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "cfg"
	}
	return &IDGenerator{prefix: prefix}
}

func (g *IDGenerator) Next() string {
	return g.format(g.issued.Add(1))
}

// Last returns the most recently issued identifier, or "" before the first.
func (g *IDGenerator) Last() string {
	n := g.issued.Load()
	if n == 0 {
		return ""
	}
	return g.format(n)
}

// NextFunc adapts the generator to the func() string services take.
func (g *IDGenerator) NextFunc() func() string {
	if g == nil {
		return func() string { return "" }
	}
	return g.Next
}

func (g *IDGenerator) format(n uint64) string {
	return fmt.Sprintf("%s-%d", g.prefix, n)
}
