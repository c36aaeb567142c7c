//
// engine.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package engine implements the recursive multiplication
// orchestrator: it splits both operands into high and low halves,
// computes the four quadrant products in concurrently running worker
// instances of the same algorithm, and combines the results with
// positional shifts and carry-propagating addition.
package engine

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/markkurossi/hexmul/hexnum"
	"github.com/markkurossi/hexmul/pkg/math"
	"github.com/markkurossi/hexmul/wire"
)

var (
	// ErrSpawn identifies a failure to create a worker task.
	ErrSpawn = errors.New("worker spawn failed")
	// ErrChildFailure identifies a worker that itself terminated with
	// an error. It is collected at the fan-in barrier and re-raised
	// as the invoking step's own failure.
	ErrChildFailure = errors.New("worker failed")
)

// Result is one quadrant product delivered at the fan-in barrier.
type Result struct {
	Index   int
	Product hexnum.Number
	Err     error
}

// Spawner creates the concurrent workers computing quadrant products.
type Spawner interface {
	// Spawn starts a worker for the index'th quadrant product of a
	// and b and delivers the outcome on results. Spawn never blocks:
	// all four workers of one step are created before any result is
	// collected.
	Spawn(index int, a, b hexnum.Number, results chan<- Result)
}

// Engine implements the recursive multiplication orchestrator.
type Engine struct {
	spawner Spawner
	stats   *Stats
}

// New creates an engine running quadrant workers as in-process
// goroutines connected over pipe pairs.
func New() *Engine {
	eng := &Engine{
		stats: NewStats(),
	}
	eng.spawner = &GoSpawner{
		eng: eng,
	}
	return eng
}

// NewExec creates an engine running quadrant workers as subprocesses
// of the executable at path, invoked with the environment env.
func NewExec(path string, env []string) *Engine {
	eng := &Engine{
		stats: NewStats(),
	}
	eng.spawner = &ExecSpawner{
		Path:  path,
		Env:   env,
		stats: eng.stats,
	}
	return eng
}

// Stats returns the work counters of the engine.
func (eng *Engine) Stats() *Stats {
	return eng.stats
}

// Multiply computes the product of a and b. The operands must be
// normalized: equal length, a power of two. The product has exactly
// twice the operand length.
func (eng *Engine) Multiply(a, b hexnum.Number) (hexnum.Number, error) {
	n := len(a)
	if len(b) != n || n != math.NextPow2(n) {
		return nil, fmt.Errorf("operands not normalized: %d and %d digits",
			len(a), len(b))
	}
	state := Start

	if n == 1 {
		state = state.advance(BaseCase)
		eng.stats.LeafMuls.Add(1)
		product := hexnum.MulDigit(a, b)
		state.advance(Done)
		return product, nil
	}

	state = state.advance(Splitting)
	ah, al := a.Split()
	bh, bl := b.Split()
	quadrants := [4][2]hexnum.Number{
		{ah, bh},
		{ah, bl},
		{al, bh},
		{al, bl},
	}

	// All four workers are created before any result is awaited.
	state = state.advance(Dispatching)
	eng.stats.Tasks.Add(1)
	results := make(chan Result, 4)
	for i, q := range quadrants {
		eng.spawner.Spawn(i, q[0], q[1], results)
	}

	// The fan-in barrier. Every worker is accounted for, also after
	// an earlier failure: a failure must not orphan live workers.
	state = state.advance(AwaitingAll)
	var parts [4]hexnum.Number
	var failure error
	for i := 0; i < 4; i++ {
		result := <-results
		if result.Err != nil {
			if failure == nil {
				failure = fmt.Errorf("quadrant %d: %w",
					result.Index, result.Err)
			}
			continue
		}
		parts[result.Index] = result.Product
	}
	if failure != nil {
		state.advance(Failed)
		return nil, failure
	}

	state = state.advance(Combining)
	product, err := hexnum.Combine(parts)
	if err != nil {
		state.advance(Failed)
		return nil, err
	}
	state.advance(Done)
	return product, nil
}

// serve runs one worker instance over conn: it receives an operand
// pair, multiplies it, and responds with the product. The operands
// arrive pre-normalized, so this is the top-level contract minus the
// normalization step.
func (eng *Engine) serve(conn *wire.Conn) error {
	defer conn.Close()

	a, b, err := conn.ReceiveRequest()
	if err != nil {
		return err
	}
	product, err := eng.Multiply(a, b)
	if err != nil {
		return err
	}
	return conn.SendProduct(product)
}

// exchange performs the invoker side of one worker exchange: send the
// request, signal end of input, and receive the double-width product.
func exchange(conn *wire.Conn, a, b hexnum.Number) (hexnum.Number, error) {
	if err := conn.SendRequest(a, b); err != nil {
		return nil, err
	}
	if err := conn.CloseWrite(); err != nil {
		return nil, err
	}
	return conn.ReceiveProduct(2 * len(a))
}

// Stats counts the work done across the recursion tree. In
// subprocess mode the counters cover only the current process.
type Stats struct {
	// Tasks is the number of dispatching multiplication steps, the
	// internal nodes of the recursion tree: (4^log2(n) - 1) / 3 for
	// an n-digit multiplication.
	Tasks *atomic.Uint64
	// LeafMuls is the number of single-digit base case
	// multiplications.
	LeafMuls *atomic.Uint64
	// IO counts protocol bytes, measured at the invoker endpoints.
	IO wire.IOStats
}

// NewStats creates a new statistics object.
func NewStats() *Stats {
	return &Stats{
		Tasks:    new(atomic.Uint64),
		LeafMuls: new(atomic.Uint64),
		IO:       wire.NewIOStats(),
	}
}
