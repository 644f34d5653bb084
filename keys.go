package qb

import (
	"encoding/hex"
	"strconv"

	"github.com/google/uuid"
)

// KeyGenerator allocates placeholder keys for a single render.
//
// Keys only need to be unlikely to collide: whenever two fragments end up
// with the same key, the colliding one is renamed while merging.
type KeyGenerator interface {
	Next() string
}

type sequentialKeys struct {
	n int
}

func (g *sequentialKeys) Next() string {
	g.n++
	return "p" + strconv.Itoa(g.n)
}

// SequentialKeys returns a generator producing p1, p2, p3...
// It's the default, and makes rendered queries deterministic.
func SequentialKeys() KeyGenerator {
	return &sequentialKeys{}
}

type randomKeys struct{}

func (randomKeys) Next() string {
	id := uuid.New()
	return "param" + hex.EncodeToString(id[:5])
}

// RandomKeys returns a generator producing keys like "param1f0c3a9b2e",
// which hardly collide with keys of fragments rendered elsewhere.
func RandomKeys() KeyGenerator {
	return randomKeys{}
}
