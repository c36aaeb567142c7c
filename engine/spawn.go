//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package engine

import (
	"fmt"

	"github.com/markkurossi/hexmul/hexnum"
	"github.com/markkurossi/hexmul/wire"
)

// GoSpawner runs quadrant workers as in-process goroutines. Each
// worker serves its own dedicated pipe pair and re-enters the engine
// recursively, exchanging the same line framing a subprocess worker
// would.
type GoSpawner struct {
	eng *Engine
}

// Spawn implements Spawner.
func (s *GoSpawner) Spawn(index int, a, b hexnum.Number,
	results chan<- Result) {

	parent, worker := wire.Pipe()
	served := make(chan error, 1)

	go func() {
		served <- s.eng.serve(worker)
	}()
	go func() {
		product, err := exchange(parent, a, b)

		// The worker has terminated once its end of the pipe is
		// drained; its own failure wins over the protocol error its
		// death inflicted on the exchange.
		if werr := <-served; werr != nil {
			product = nil
			err = fmt.Errorf("%w: %s", ErrChildFailure, werr)
		}
		s.eng.stats.IO.Add(parent.Stats)
		results <- Result{
			Index:   index,
			Product: product,
			Err:     err,
		}
	}()
}
