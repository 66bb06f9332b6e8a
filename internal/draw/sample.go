package draw

import (
	"fmt"
	"math/rand"
	"sort"
)

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Result is the outcome of one draw.
type Result struct {
	Request
	Winners []int `json:"winners"`
}

// NewSource returns a non-cryptographic source seeded with seed.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Sample picks req.WinnersCount distinct integers from [req.Start, req.End]
// and returns them in ascending order.
//
// Every remaining candidate is equally likely at each step: an index is drawn
// by truncating src.Float64() scaled to the pool size, the candidate is
// recorded and removed from the pool.
//
// The pool holds the full range in memory. Sample assumes req already passed
// ValidateRequest and panics when more winners are requested than the range
// holds.
func Sample(req Request, src Source) []int {
	size := req.Size()
	if req.WinnersCount > size {
		panic(fmt.Sprintf("draw: %d winners requested from a pool of %d", req.WinnersCount, size))
	}

	pool := make([]int, size)
	for i := range pool {
		pool[i] = req.Start + i
	}

	winners := make([]int, 0, req.WinnersCount)
	for range req.WinnersCount {
		idx := pickIndex(src, len(pool))
		winners = append(winners, pool[idx])
		last := len(pool) - 1
		pool[idx] = pool[last]
		pool = pool[:last]
	}

	sort.Ints(winners)
	return winners
}

// pickIndex maps a uniform [0,1) draw onto [0, n) by truncation.
func pickIndex(src Source, n int) int {
	idx := int(src.Float64() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Draw validates req against limits and samples its winners.
func Draw(req Request, limits Limits, src Source) (Result, error) {
	if err := ValidateRequest(req, limits); err != nil {
		return Result{}, err
	}
	return Result{Request: req, Winners: Sample(req, src)}, nil
}
